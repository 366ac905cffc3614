package service

import (
	"xiaochou-self/internal/model/cardmodel"
)

// ConsumableCategory 消耗牌类别
type ConsumableCategory string

const (
	CategoryTarot    ConsumableCategory = "tarot"
	CategoryPlanet   ConsumableCategory = "planet"
	CategorySpectral ConsumableCategory = "spectral"
)

// JokerInfo 效果函数可见的小丑牌描述
// 效果函数只能读取这些字段，真正的修改通过回调钩子进行
type JokerInfo struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Edition    cardmodel.Edition  `json:"edition,omitempty"`
	HasEdition bool               `json:"has_edition"`
	SellPrice  int                `json:"sell_price"`
	Sticker    cardmodel.Sticker  `json:"sticker,omitempty"`
}

// EffectHooks 注入给效果函数的外部状态修改回调
// 效果目录不直接接触小丑牌列表、牌组等协作方集合，只通过钩子表达意图
type EffectHooks struct {
	// SetMoney 将金币设置为绝对值
	SetMoney func(amount int)
	// DecreaseHandSize 永久降低手牌上限
	DecreaseHandSize func(delta int)
	// AddJoker 按稀有度生成一张小丑牌，栏位已满时返回 false
	AddJoker func(rarity cardmodel.JokerRarity, edition cardmodel.Edition) bool
	// AddEditionToRandomJoker 为一张随机无版本小丑牌附加版本，返回该牌ID
	AddEditionToRandomJoker func(edition cardmodel.Edition) (string, bool)
	// DestroyOtherJokers 摧毁保留名单之外的全部小丑牌，返回摧毁数量
	DestroyOtherJokers func(keepIDs ...string) int
	// CopyRandomJoker 复制一张随机小丑牌，返回原牌与副本的ID
	CopyRandomJoker func() (sourceID, copyID string, ok bool)
}

// EffectContext 每次效果调用传入的上下文快照
// 每次调用都必须重新构建，效果函数不得跨调用缓存
type EffectContext struct {
	HandCards            []*cardmodel.Card
	SelectedCards        []*cardmodel.Card
	Money                int
	Jokers               []JokerInfo
	LastUsedConsumableID string
	Hooks                *EffectHooks
}

// EffectResult 效果函数与解析器之间唯一的状态变更通道
type EffectResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`

	// AffectedCards 属性被修改的牌（增强/版本/蜡封/花色/点数），绝不从牌堆移除
	AffectedCards []*cardmodel.Card `json:"affected_cards,omitempty"`
	// DestroyedCards 必须由解析器从手牌堆中移除的牌
	DestroyedCards []*cardmodel.Card `json:"destroyed_cards,omitempty"`
	// NewCards 新增到手牌/牌组的牌，允许超过手牌上限
	NewCards []*cardmodel.Card `json:"new_cards,omitempty"`

	// MoneyChange 金币增量；SetMoney 为绝对值，存在时优先
	MoneyChange int  `json:"money_change,omitempty"`
	SetMoney    *int `json:"set_money,omitempty"`

	// NewConsumableIDs 需实例化并尝试放入栏位的目录ID
	NewConsumableIDs []string `json:"new_consumable_ids,omitempty"`
	// CopiedConsumableID 指示解析器对同一上下文重放另一条目录条目（愚者模式）
	CopiedConsumableID string `json:"copied_consumable_id,omitempty"`

	// HandTypeUpgrade / UpgradeAllHandLevels 传递给外部计分协作方的信号
	HandTypeUpgrade      string `json:"hand_type_upgrade,omitempty"`
	UpgradeAllHandLevels bool   `json:"upgrade_all_hand_levels,omitempty"`
}

// Consumable 消耗牌（塔罗/星球/幻灵）
// 目录中的模板实例是规范形态，每次从目录取出都会得到独立副本，
// 可变状态（SellValueBonus）不会在模板与活动实例之间泄漏
type Consumable struct {
	ID           string
	Name         string
	Description  string
	Category     ConsumableCategory
	Cost         int
	UseCondition string
	// IsNegative 为 true 时不占用消耗牌栏位
	IsNegative bool
	// PackExclusive 仅出现在补充包中，不直接出售
	PackExclusive  bool
	SellValueBonus int

	// CanUseFn 为空表示总是可用
	CanUseFn func(ctx *EffectContext) bool
	// UseFn 必须对任意上下文形态全域有效：自行重新校验前置条件，
	// 失败时返回 {Success:false} 而不是崩溃
	UseFn func(ctx *EffectContext) *EffectResult
}

// CanUse 前置条件检查
func (c *Consumable) CanUse(ctx *EffectContext) bool {
	if c.CanUseFn == nil {
		return true
	}
	return c.CanUseFn(ctx)
}

// Use 执行效果
func (c *Consumable) Use(ctx *EffectContext) *EffectResult {
	return c.UseFn(ctx)
}

// Clone 返回独立副本
func (c *Consumable) Clone() *Consumable {
	dup := *c
	return &dup
}

// failResult 构造失败结果
func failResult(message string) *EffectResult {
	return &EffectResult{Success: false, Message: message}
}
