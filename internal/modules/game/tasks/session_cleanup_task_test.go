package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xiaochou-self/internal/modules/game/service"
	"xiaochou-self/internal/pkg/log"
)

// recordingSnapshotRepo 记录删除调用的快照仓储桩
type recordingSnapshotRepo struct {
	deleted   []string
	deleteErr error
}

func (r *recordingSnapshotRepo) Save(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) error {
	return nil
}

func (r *recordingSnapshotRepo) Load(ctx context.Context, sessionID string) ([]byte, error) {
	return nil, errors.New("快照不存在")
}

func (r *recordingSnapshotRepo) Delete(ctx context.Context, sessionID string) error {
	r.deleted = append(r.deleted, sessionID)
	return r.deleteErr
}

func TestCleanupExpiredSessions_DeletesSnapshots(t *testing.T) {
	svc := service.NewSessionService(time.Nanosecond, nil)
	repo := &recordingSnapshotRepo{}
	task := NewSessionCleanupTask(svc, repo, log.GetLogger())

	ctx := context.Background()
	session := svc.CreateSession(ctx)
	time.Sleep(time.Millisecond) // 令会话超过TTL

	task.cleanupExpiredSessions()

	assert.Equal(t, 0, svc.Count())
	require.Len(t, repo.deleted, 1)
	assert.Equal(t, session.ID, repo.deleted[0])
}

func TestCleanupSnapshot(t *testing.T) {
	svc := service.NewSessionService(30*time.Minute, nil)

	t.Run("删除指定会话的快照", func(t *testing.T) {
		repo := &recordingSnapshotRepo{}
		task := NewSessionCleanupTask(svc, repo, log.GetLogger())

		task.CleanupSnapshot(context.Background(), "session-1")
		assert.Equal(t, []string{"session-1"}, repo.deleted)
	})

	t.Run("删除失败仅记录日志不报错", func(t *testing.T) {
		repo := &recordingSnapshotRepo{deleteErr: errors.New("redis不可用")}
		task := NewSessionCleanupTask(svc, repo, log.GetLogger())

		task.CleanupSnapshot(context.Background(), "session-2")
		assert.Equal(t, []string{"session-2"}, repo.deleted)
	})

	t.Run("未配置快照仓储时跳过", func(t *testing.T) {
		task := NewSessionCleanupTask(svc, nil, log.GetLogger())
		task.CleanupSnapshot(context.Background(), "session-3")
	})
}
