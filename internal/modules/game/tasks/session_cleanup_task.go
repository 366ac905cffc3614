package tasks

import (
	"context"

	"github.com/robfig/cron/v3"

	"xiaochou-self/internal/modules/game/service"
	"xiaochou-self/internal/pkg/log"
	"xiaochou-self/internal/repository/interfaces"
)

// SessionCleanupTask 过期会话清理任务
type SessionCleanupTask struct {
	sessionService *service.SessionService
	snapshotRepo   interfaces.ShopSnapshotRepository
	logger         log.Logger
	cron           *cron.Cron
}

// NewSessionCleanupTask 创建过期会话清理任务实例
// snapshotRepo 可为 nil（未启用快照持久化时跳过快照清理）
func NewSessionCleanupTask(sessionService *service.SessionService, snapshotRepo interfaces.ShopSnapshotRepository, logger log.Logger) *SessionCleanupTask {
	return &SessionCleanupTask{
		sessionService: sessionService,
		snapshotRepo:   snapshotRepo,
		logger:         logger,
	}
}

// Start 启动定时任务
func (t *SessionCleanupTask) Start() {
	// 创建 cron 调度器
	t.cron = cron.New(cron.WithSeconds()) // 支持秒级调度（用于测试）

	// 每5分钟清理一次过期会话
	// Cron 表达式: 秒 分 时 日 月 周
	_, err := t.cron.AddFunc("0 */5 * * * *", func() {
		t.logger.Info("【定时任务】开始清理过期游戏会话")
		t.cleanupExpiredSessions()
	})

	if err != nil {
		t.logger.Error("【定时任务】添加会话清理任务失败", err)
		return
	}

	// 启动调度器
	t.cron.Start()
	t.logger.Info("【定时任务】已启动 - 每5分钟清理过期游戏会话")
}

// cleanupExpiredSessions 清理过期会话及其商店快照
func (t *SessionCleanupTask) cleanupExpiredSessions() {
	ctx := context.Background()

	expired := t.sessionService.CleanupExpired(ctx)
	for _, sessionID := range expired {
		t.CleanupSnapshot(ctx, sessionID)
	}
	if len(expired) > 0 {
		t.logger.Info("【定时任务】过期会话清理成功",
			"removed_count", len(expired),
			"remaining_count", t.sessionService.Count())
	} else {
		t.logger.Info("【定时任务】没有需要清理的过期会话")
	}
}

// CleanupSnapshot 删除指定会话的商店快照（会话结束时调用）
func (t *SessionCleanupTask) CleanupSnapshot(ctx context.Context, sessionID string) {
	if t.snapshotRepo == nil {
		return
	}
	if err := t.snapshotRepo.Delete(ctx, sessionID); err != nil {
		t.logger.Warn("【定时任务】删除商店快照失败", "session_id", sessionID, "error", err.Error())
	}
}

// Stop 停止定时任务（优雅关闭）
func (t *SessionCleanupTask) Stop() {
	if t.cron != nil {
		t.cron.Stop()
		t.logger.Info("【定时任务】会话清理任务已停止")
	}
}
