package service

import (
	"context"

	"xiaochou-self/internal/pkg/log"
	"xiaochou-self/internal/pkg/metrics"
	"xiaochou-self/internal/pkg/notify"
	"xiaochou-self/internal/pkg/xerrors"
)

// EffectResolverService 效果解析器
// 状态机只有 idle / resolving 两态，仅愚者复制路径允许重入
type EffectResolverService struct {
	logger log.Logger
}

// NewEffectResolverService 创建效果解析器
func NewEffectResolverService(logger log.Logger) *EffectResolverService {
	if logger == nil {
		logger = log.GetLogger()
	}
	return &EffectResolverService{
		logger: logger.With("component", "effect_resolver"),
	}
}

// ResolveOutcome 一次完整解析（含复制链）的汇总结果
type ResolveOutcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// DestroyedCount 从手牌堆移除的牌数
	DestroyedCount int `json:"destroyed_count"`
	// NewCardCount 新增到手牌的牌数
	NewCardCount int `json:"new_card_count"`
	// SkippedConsumables 因栏位已满未能放入的新消耗牌数量（不视为失败）
	SkippedConsumables int `json:"skipped_consumables"`
	// CopyDepth 复制链深度（0表示没有发生复制）
	CopyDepth int `json:"copy_depth"`
}

// Resolve 对给定上下文解析一张消耗牌的效果
// 所有玩家可见的失败都以 Success=false 返回；
// 目录ID缺失是数据完整性错误，以 error 快速暴露
func (r *EffectResolverService) Resolve(ctx context.Context, session *GameSession, consumableID string, effectCtx *EffectContext) (*ResolveOutcome, error) {
	if session.resolving {
		return nil, xerrors.New(xerrors.CodeOperationNotAllowed, "正在结算其他效果")
	}
	session.resolving = true
	defer func() { session.resolving = false }()

	outcome, err := r.resolveStep(ctx, session, consumableID, effectCtx, 0)
	if err != nil {
		return nil, err
	}

	metrics.DefaultBusinessMetrics.ObserveCopyDepth(outcome.CopyDepth, metrics.GetServiceName())
	return outcome, nil
}

// resolveStep 单层解析；复制路径通过递归重放整个过程
func (r *EffectResolverService) resolveStep(ctx context.Context, session *GameSession, consumableID string, effectCtx *EffectContext, depth int) (*ResolveOutcome, error) {
	// 1. 目录查找
	consumable, err := GetConsumable(consumableID)
	if err != nil {
		return nil, err
	}

	// 2. 前置条件门
	if !consumable.CanUse(effectCtx) {
		message := consumable.UseCondition
		if message == "" {
			message = "当前无法使用「" + consumable.Name + "」"
		}
		return &ResolveOutcome{Success: false, Message: message, CopyDepth: depth}, nil
	}

	// 3. 执行效果；失败消息原样透传，不重试
	result := consumable.Use(effectCtx)
	if !result.Success {
		return &ResolveOutcome{Success: false, Message: result.Message, CopyDepth: depth}, nil
	}

	outcome := &ResolveOutcome{Success: true, Message: result.Message, CopyDepth: depth}

	// 4a. 金币：绝对值优先于增量
	if result.SetMoney != nil {
		session.Money = *result.SetMoney
	} else if result.MoneyChange != 0 {
		session.Money += result.MoneyChange
	}

	// 4b. 牌型升级信号转交计分协作方
	if result.HandTypeUpgrade != "" {
		session.UpgradeHand(result.HandTypeUpgrade)
	}
	if result.UpgradeAllHandLevels {
		session.UpgradeAllHands()
	}

	// 4c. 按身份移除被摧毁的牌（AffectedCards 永远不触发移除）
	if len(result.DestroyedCards) > 0 {
		outcome.DestroyedCount = session.RemoveCards(result.DestroyedCards)
	}

	// 4d. 插入新牌，绕过手牌上限
	for _, card := range result.NewCards {
		session.ForceAddCard(card)
		outcome.NewCardCount++
	}

	// 4e. 实例化新消耗牌；逐个尝试放入栏位，失败计数而不中止
	for _, id := range result.NewConsumableIDs {
		instance, err := GetConsumable(id)
		if err != nil {
			return nil, err
		}
		if addErr := session.AddConsumable(instance); addErr != nil {
			outcome.SkippedConsumables++
			continue
		}
	}

	// 4f. 复制路径：对同一上下文递归重放整个过程，
	//     "上一张使用的牌"记录为被复制条目而不是愚者自身
	if result.CopiedConsumableID != "" {
		inner, err := r.resolveStep(ctx, session, result.CopiedConsumableID, effectCtx, depth+1)
		if err != nil {
			return nil, err
		}
		outcome.Message = result.Message + "：" + inner.Message
		outcome.Success = inner.Success
		outcome.DestroyedCount += inner.DestroyedCount
		outcome.NewCardCount += inner.NewCardCount
		outcome.SkippedConsumables += inner.SkippedConsumables
		outcome.CopyDepth = inner.CopyDepth
		return outcome, nil
	}

	// 5. 记录本次（或最内层被复制）条目的身份，供后续愚者引用
	session.LastUsedConsumableID = consumable.ID

	r.logger.DebugContext(ctx, "effect resolved",
		log.String("session_id", session.ID),
		log.String("consumable_id", consumable.ID),
		log.Int("depth", depth))
	return outcome, nil
}

// UseHeldConsumable 使用玩家持有的消耗牌
// 解析成功后消耗该实例；失败时实例保留
func (r *EffectResolverService) UseHeldConsumable(ctx context.Context, session *GameSession, index int, selectedIndexes []int) (*ResolveOutcome, error) {
	if index < 0 || index >= len(session.Consumables) {
		return nil, xerrors.NewConsumableNotFoundError("index out of range")
	}
	held := session.Consumables[index]

	effectCtx, err := session.BuildEffectContext(selectedIndexes)
	if err != nil {
		return nil, err
	}

	outcome, err := r.Resolve(ctx, session, held.ID, effectCtx)
	if err != nil {
		return nil, err
	}

	metrics.DefaultBusinessMetrics.IncConsumableUse(string(held.Category), outcome.Success, metrics.GetServiceName())
	if outcome.Success {
		session.RemoveConsumableAt(index)
		if pubErr := notify.PublishGameEvent(ctx, notify.SubjectConsumableUse, map[string]any{
			"session_id":    session.ID,
			"consumable_id": held.ID,
			"copy_depth":    outcome.CopyDepth,
		}); pubErr != nil {
			r.logger.WarnContext(ctx, "publish consumable use event failed", log.String("error", pubErr.Error()))
		}
	}
	return outcome, nil
}
