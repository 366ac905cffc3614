package service

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"xiaochou-self/internal/model/cardmodel"
)

// selectionWithin 校验选牌数量是否在 [min, max] 内
func selectionWithin(ctx *EffectContext, min, max int) bool {
	n := len(ctx.SelectedCards)
	return n >= min && n <= max
}

// selectionMessage 选牌数量提示
func selectionMessage(min, max int) string {
	if min == max {
		return fmt.Sprintf("需要选择%d张牌", min)
	}
	return fmt.Sprintf("需要选择%d-%d张牌", min, max)
}

// enhanceTarot 构建"将选中牌转换为指定增强"的塔罗牌
func enhanceTarot(id, name string, enh cardmodel.Enhancement, enhName string, minSel, maxSel int) *Consumable {
	return &Consumable{
		ID:           id,
		Name:         name,
		Description:  fmt.Sprintf("将选中的牌转换为%s牌", enhName),
		Category:     CategoryTarot,
		Cost:         3,
		UseCondition: selectionMessage(minSel, maxSel),
		CanUseFn: func(ctx *EffectContext) bool {
			return selectionWithin(ctx, minSel, maxSel)
		},
		UseFn: func(ctx *EffectContext) *EffectResult {
			if !selectionWithin(ctx, minSel, maxSel) {
				return failResult(selectionMessage(minSel, maxSel))
			}
			for _, card := range ctx.SelectedCards {
				card.Enhancement = enh
			}
			return &EffectResult{
				Success:       true,
				Message:       fmt.Sprintf("已将%d张牌转换为%s牌", len(ctx.SelectedCards), enhName),
				AffectedCards: ctx.SelectedCards,
			}
		},
	}
}

// suitTarot 构建"将选中牌转换为指定花色"的塔罗牌
func suitTarot(id, name string, suit cardmodel.Suit, suitName string) *Consumable {
	return &Consumable{
		ID:           id,
		Name:         name,
		Description:  fmt.Sprintf("将最多3张选中的牌转换为%s", suitName),
		Category:     CategoryTarot,
		Cost:         3,
		UseCondition: selectionMessage(1, 3),
		CanUseFn: func(ctx *EffectContext) bool {
			return selectionWithin(ctx, 1, 3)
		},
		UseFn: func(ctx *EffectContext) *EffectResult {
			if !selectionWithin(ctx, 1, 3) {
				return failResult(selectionMessage(1, 3))
			}
			for _, card := range ctx.SelectedCards {
				card.Suit = suit
			}
			return &EffectResult{
				Success:       true,
				Message:       fmt.Sprintf("已将%d张牌转换为%s", len(ctx.SelectedCards), suitName),
				AffectedCards: ctx.SelectedCards,
			}
		},
	}
}

// randomPlanetIDs 随机抽取n个星球牌ID（可重复）
func randomPlanetIDs(n int) []string {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, planetDefs[rand.Intn(len(planetDefs))].id)
	}
	return ids
}

// randomTarotIDs 随机抽取n个塔罗牌ID（可重复），排除指定ID
func randomTarotIDs(n int, excludeID string) []string {
	pool := make([]string, 0, 32)
	for _, entry := range tarotCatalog() {
		if entry.ID != excludeID {
			pool = append(pool, entry.ID)
		}
	}
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, pool[rand.Intn(len(pool))])
	}
	return ids
}

// randomJokerRarity 按权重随机小丑牌稀有度（common 70 / uncommon 25 / rare 5）
func randomJokerRarity() cardmodel.JokerRarity {
	roll := rand.Intn(100)
	switch {
	case roll < 70:
		return cardmodel.RarityCommon
	case roll < 95:
		return cardmodel.RarityUncommon
	default:
		return cardmodel.RarityRare
	}
}

// copyCard 复制一张牌（新ID，其余属性完全一致）
func copyCard(card *cardmodel.Card) *cardmodel.Card {
	dup := *card
	dup.ID = uuid.New().String()
	return &dup
}

// tarotCatalog 构建22张塔罗牌目录条目
func tarotCatalog() []*Consumable {
	return []*Consumable{
		// 愚者：复制上一张使用的塔罗牌或星球牌
		{
			ID:           "tarot_fool",
			Name:         "愚者",
			Description:  "复制上一张使用的塔罗牌或星球牌（愚者除外）",
			Category:     CategoryTarot,
			Cost:         3,
			UseCondition: "需要先使用过一张塔罗牌或星球牌",
			CanUseFn:     foolCanUse,
			UseFn: func(ctx *EffectContext) *EffectResult {
				if !foolCanUse(ctx) {
					return failResult("没有可复制的塔罗牌或星球牌")
				}
				return &EffectResult{
					Success:            true,
					Message:            "愚者重现了上一张牌的效果",
					CopiedConsumableID: ctx.LastUsedConsumableID,
				}
			},
		},

		enhanceTarot("tarot_magician", "魔术师", cardmodel.EnhancementLucky, "幸运", 1, 2),

		// 女祭司：生成最多2张随机星球牌
		{
			ID:          "tarot_high_priestess",
			Name:        "女祭司",
			Description: "生成最多2张随机星球牌",
			Category:    CategoryTarot,
			Cost:        3,
			UseFn: func(ctx *EffectContext) *EffectResult {
				return &EffectResult{
					Success:          true,
					Message:          "女祭司带来了2张星球牌",
					NewConsumableIDs: randomPlanetIDs(2),
				}
			},
		},

		enhanceTarot("tarot_empress", "女皇", cardmodel.EnhancementMult, "倍率", 1, 2),

		// 皇帝：生成最多2张随机塔罗牌（不含皇帝自身）
		{
			ID:          "tarot_emperor",
			Name:        "皇帝",
			Description: "生成最多2张随机塔罗牌",
			Category:    CategoryTarot,
			Cost:        3,
			UseFn: func(ctx *EffectContext) *EffectResult {
				return &EffectResult{
					Success:          true,
					Message:          "皇帝带来了2张塔罗牌",
					NewConsumableIDs: randomTarotIDs(2, "tarot_emperor"),
				}
			},
		},

		enhanceTarot("tarot_hierophant", "教皇", cardmodel.EnhancementBonus, "奖励", 1, 2),
		enhanceTarot("tarot_lovers", "恋人", cardmodel.EnhancementWild, "万能", 1, 1),
		enhanceTarot("tarot_chariot", "战车", cardmodel.EnhancementSteel, "钢铁", 1, 1),
		enhanceTarot("tarot_justice", "正义", cardmodel.EnhancementGlass, "玻璃", 1, 1),

		// 隐者：金币翻倍（最多+$20）
		{
			ID:          "tarot_hermit",
			Name:        "隐者",
			Description: "金币翻倍（最多获得$20）",
			Category:    CategoryTarot,
			Cost:        3,
			UseFn: func(ctx *EffectContext) *EffectResult {
				gain := ctx.Money
				if gain > 20 {
					gain = 20
				}
				if gain < 0 {
					gain = 0
				}
				return &EffectResult{
					Success:     true,
					Message:     fmt.Sprintf("隐者赐予了$%d", gain),
					MoneyChange: gain,
				}
			},
		},

		// 命运之轮：25%概率为随机无版本小丑牌附加版本
		{
			ID:           "tarot_wheel_of_fortune",
			Name:         "命运之轮",
			Description:  "1/4概率为随机小丑牌附加闪箔、镭射或多彩版本",
			Category:     CategoryTarot,
			Cost:         3,
			UseCondition: "需要至少一张无版本的小丑牌",
			CanUseFn: func(ctx *EffectContext) bool {
				for _, j := range ctx.Jokers {
					if !j.HasEdition {
						return true
					}
				}
				return false
			},
			UseFn: func(ctx *EffectContext) *EffectResult {
				eligible := false
				for _, j := range ctx.Jokers {
					if !j.HasEdition {
						eligible = true
						break
					}
				}
				if !eligible {
					return failResult("没有可升级的小丑牌")
				}
				if rand.Float64() >= 0.25 {
					// 25%判定未命中，牌照常消耗
					return &EffectResult{Success: true, Message: "什么都没有发生"}
				}
				editions := []cardmodel.Edition{
					cardmodel.EditionFoil,
					cardmodel.EditionHolo,
					cardmodel.EditionPolychrome,
				}
				edition := editions[rand.Intn(len(editions))]
				if ctx.Hooks == nil || ctx.Hooks.AddEditionToRandomJoker == nil {
					return failResult("没有可升级的小丑牌")
				}
				if _, ok := ctx.Hooks.AddEditionToRandomJoker(edition); !ok {
					return failResult("没有可升级的小丑牌")
				}
				return &EffectResult{
					Success: true,
					Message: "命运之轮转动了！一张小丑牌获得了版本",
				}
			},
		},

		// 力量：选中牌点数+1（A绕回2）
		{
			ID:           "tarot_strength",
			Name:         "力量",
			Description:  "将最多2张选中牌的点数提高1",
			Category:     CategoryTarot,
			Cost:         3,
			UseCondition: selectionMessage(1, 2),
			CanUseFn: func(ctx *EffectContext) bool {
				return selectionWithin(ctx, 1, 2)
			},
			UseFn: func(ctx *EffectContext) *EffectResult {
				if !selectionWithin(ctx, 1, 2) {
					return failResult(selectionMessage(1, 2))
				}
				for _, card := range ctx.SelectedCards {
					if card.Rank >= cardmodel.RankAce {
						card.Rank = cardmodel.RankTwo
					} else {
						card.Rank++
					}
				}
				return &EffectResult{
					Success:       true,
					Message:       fmt.Sprintf("已提高%d张牌的点数", len(ctx.SelectedCards)),
					AffectedCards: ctx.SelectedCards,
				}
			},
		},

		// 倒吊人：摧毁选中的牌
		{
			ID:           "tarot_hanged_man",
			Name:         "倒吊人",
			Description:  "摧毁最多2张选中的牌",
			Category:     CategoryTarot,
			Cost:         3,
			UseCondition: selectionMessage(1, 2),
			CanUseFn: func(ctx *EffectContext) bool {
				return selectionWithin(ctx, 1, 2)
			},
			UseFn: func(ctx *EffectContext) *EffectResult {
				if !selectionWithin(ctx, 1, 2) {
					return failResult(selectionMessage(1, 2))
				}
				return &EffectResult{
					Success:        true,
					Message:        fmt.Sprintf("倒吊人摧毁了%d张牌", len(ctx.SelectedCards)),
					DestroyedCards: ctx.SelectedCards,
				}
			},
		},

		// 死神：左边的牌变成右边牌的复制品
		{
			ID:           "tarot_death",
			Name:         "死神",
			Description:  "选择2张牌，将左边的牌变为右边牌的复制品",
			Category:     CategoryTarot,
			Cost:         3,
			UseCondition: selectionMessage(2, 2),
			CanUseFn: func(ctx *EffectContext) bool {
				return selectionWithin(ctx, 2, 2)
			},
			UseFn: func(ctx *EffectContext) *EffectResult {
				if !selectionWithin(ctx, 2, 2) {
					return failResult(selectionMessage(2, 2))
				}
				left, right := ctx.SelectedCards[0], ctx.SelectedCards[1]
				left.Suit = right.Suit
				left.Rank = right.Rank
				left.Enhancement = right.Enhancement
				left.Edition = right.Edition
				left.Seal = right.Seal
				return &EffectResult{
					Success:       true,
					Message:       "死神将一张牌化为了另一张的镜像",
					AffectedCards: []*cardmodel.Card{left},
				}
			},
		},

		// 节制：获得全部小丑牌售价总和（最多$50）
		{
			ID:          "tarot_temperance",
			Name:        "节制",
			Description: "获得等同于全部小丑牌售价总和的金币（最多$50）",
			Category:    CategoryTarot,
			Cost:        3,
			UseFn: func(ctx *EffectContext) *EffectResult {
				total := 0
				for _, j := range ctx.Jokers {
					total += j.SellPrice
				}
				if total > 50 {
					total = 50
				}
				return &EffectResult{
					Success:     true,
					Message:     fmt.Sprintf("节制赐予了$%d", total),
					MoneyChange: total,
				}
			},
		},

		enhanceTarot("tarot_devil", "恶魔", cardmodel.EnhancementGold, "黄金", 1, 1),
		enhanceTarot("tarot_tower", "高塔", cardmodel.EnhancementStone, "石头", 1, 1),

		suitTarot("tarot_star", "星星", cardmodel.SuitDiamonds, "方块"),
		suitTarot("tarot_moon", "月亮", cardmodel.SuitClubs, "梅花"),
		suitTarot("tarot_sun", "太阳", cardmodel.SuitHearts, "红桃"),

		// 审判：生成一张随机小丑牌
		{
			ID:           "tarot_judgement",
			Name:         "审判",
			Description:  "生成一张随机小丑牌",
			Category:     CategoryTarot,
			Cost:         3,
			UseCondition: "需要空余的小丑牌栏位",
			UseFn: func(ctx *EffectContext) *EffectResult {
				if ctx.Hooks == nil || ctx.Hooks.AddJoker == nil {
					return failResult("小丑牌栏位已满")
				}
				if !ctx.Hooks.AddJoker(randomJokerRarity(), cardmodel.EditionNone) {
					return failResult("小丑牌栏位已满")
				}
				return &EffectResult{Success: true, Message: "审判召唤了一张小丑牌"}
			},
		},

		suitTarot("tarot_world", "世界", cardmodel.SuitSpades, "黑桃"),
	}
}

// foolCanUse 愚者前置条件：
// 上一张使用的消耗牌存在、属于塔罗或星球类别、不是愚者本身，
// 且被复制条目自身的前置条件在当前上下文下同样满足
func foolCanUse(ctx *EffectContext) bool {
	lastID := ctx.LastUsedConsumableID
	if lastID == "" || lastID == "tarot_fool" {
		return false
	}
	template, ok := lookupTemplate(lastID)
	if !ok {
		return false
	}
	if template.Category != CategoryTarot && template.Category != CategoryPlanet {
		return false
	}
	return template.CanUse(ctx)
}
