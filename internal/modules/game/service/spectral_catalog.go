package service

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"xiaochou-self/internal/model/cardmodel"
)

// randomHandCards 从手牌中随机抽取n张互不相同的牌
func randomHandCards(ctx *EffectContext, n int) []*cardmodel.Card {
	if n > len(ctx.HandCards) {
		n = len(ctx.HandCards)
	}
	indices := rand.Perm(len(ctx.HandCards))[:n]
	picked := make([]*cardmodel.Card, 0, n)
	for _, i := range indices {
		picked = append(picked, ctx.HandCards[i])
	}
	return picked
}

// playableEnhancements 生成类幻灵效果可随机附加的增强
var playableEnhancements = []cardmodel.Enhancement{
	cardmodel.EnhancementBonus,
	cardmodel.EnhancementMult,
	cardmodel.EnhancementWild,
	cardmodel.EnhancementGlass,
	cardmodel.EnhancementSteel,
	cardmodel.EnhancementGold,
	cardmodel.EnhancementLucky,
}

// newEnhancedCard 生成一张带随机增强的牌，点数从给定池中抽取
func newEnhancedCard(ranks []cardmodel.Rank) *cardmodel.Card {
	return &cardmodel.Card{
		ID:          uuid.New().String(),
		Suit:        cardmodel.AllSuits[rand.Intn(len(cardmodel.AllSuits))],
		Rank:        ranks[rand.Intn(len(ranks))],
		Enhancement: playableEnhancements[rand.Intn(len(playableEnhancements))],
	}
}

var faceRanks = []cardmodel.Rank{cardmodel.RankJack, cardmodel.RankQueen, cardmodel.RankKing}

var numberedRanks = []cardmodel.Rank{
	cardmodel.RankTwo, cardmodel.RankThree, cardmodel.RankFour, cardmodel.RankFive,
	cardmodel.RankSix, cardmodel.RankSeven, cardmodel.RankEight, cardmodel.RankNine,
	cardmodel.RankTen,
}

// destroyAndCreateSpectral 构建"摧毁1张随机手牌并生成若干增强牌"的幻灵牌
func destroyAndCreateSpectral(id, name, desc string, createCount int, ranks []cardmodel.Rank) *Consumable {
	return &Consumable{
		ID:           id,
		Name:         name,
		Description:  desc,
		Category:     CategorySpectral,
		Cost:         4,
		UseCondition: "需要至少1张手牌",
		CanUseFn: func(ctx *EffectContext) bool {
			return len(ctx.HandCards) >= 1
		},
		UseFn: func(ctx *EffectContext) *EffectResult {
			if len(ctx.HandCards) < 1 {
				return failResult("需要至少1张手牌")
			}
			destroyed := randomHandCards(ctx, 1)
			created := make([]*cardmodel.Card, 0, createCount)
			for i := 0; i < createCount; i++ {
				created = append(created, newEnhancedCard(ranks))
			}
			return &EffectResult{
				Success:        true,
				Message:        fmt.Sprintf("%s摧毁了1张牌，生成了%d张增强牌", name, createCount),
				DestroyedCards: destroyed,
				NewCards:       created,
			}
		},
	}
}

// sealSpectral 构建"为选中牌附加蜡封"的幻灵牌
func sealSpectral(id, name string, seal cardmodel.Seal, sealName string) *Consumable {
	return &Consumable{
		ID:           id,
		Name:         name,
		Description:  fmt.Sprintf("为1张选中的牌附加%s蜡封", sealName),
		Category:     CategorySpectral,
		Cost:         4,
		UseCondition: selectionMessage(1, 1),
		CanUseFn: func(ctx *EffectContext) bool {
			return selectionWithin(ctx, 1, 1)
		},
		UseFn: func(ctx *EffectContext) *EffectResult {
			if !selectionWithin(ctx, 1, 1) {
				return failResult(selectionMessage(1, 1))
			}
			ctx.SelectedCards[0].Seal = seal
			return &EffectResult{
				Success:       true,
				Message:       fmt.Sprintf("已附加%s蜡封", sealName),
				AffectedCards: ctx.SelectedCards,
			}
		},
	}
}

// hasJokerWithoutEdition 是否存在无版本的小丑牌
func hasJokerWithoutEdition(ctx *EffectContext) bool {
	for _, j := range ctx.Jokers {
		if !j.HasEdition {
			return true
		}
	}
	return false
}

// spectralCatalog 构建19张幻灵牌目录条目
func spectralCatalog() []*Consumable {
	return []*Consumable{
		destroyAndCreateSpectral("spectral_familiar", "魔宠",
			"摧毁1张随机手牌，生成3张带增强的随机人头牌", 3, faceRanks),
		destroyAndCreateSpectral("spectral_grim", "死灵",
			"摧毁1张随机手牌，生成2张带增强的A", 2, []cardmodel.Rank{cardmodel.RankAce}),
		destroyAndCreateSpectral("spectral_incantation", "咒语",
			"摧毁1张随机手牌，生成4张带增强的随机数字牌", 4, numberedRanks),

		sealSpectral("spectral_talisman", "护身符", cardmodel.SealGold, "黄金"),

		// 灵光：为选中牌附加随机版本
		{
			ID:           "spectral_aura",
			Name:         "灵光",
			Description:  "为1张选中的牌附加闪箔、镭射或多彩版本",
			Category:     CategorySpectral,
			Cost:         4,
			UseCondition: selectionMessage(1, 1),
			CanUseFn: func(ctx *EffectContext) bool {
				return selectionWithin(ctx, 1, 1)
			},
			UseFn: func(ctx *EffectContext) *EffectResult {
				if !selectionWithin(ctx, 1, 1) {
					return failResult(selectionMessage(1, 1))
				}
				editions := []cardmodel.Edition{
					cardmodel.EditionFoil,
					cardmodel.EditionHolo,
					cardmodel.EditionPolychrome,
				}
				ctx.SelectedCards[0].Edition = editions[rand.Intn(len(editions))]
				return &EffectResult{
					Success:       true,
					Message:       "灵光为这张牌镀上了版本",
					AffectedCards: ctx.SelectedCards,
				}
			},
		},

		// 怨灵：生成稀有小丑牌，金币归零
		{
			ID:           "spectral_wraith",
			Name:         "怨灵",
			Description:  "生成1张稀有小丑牌，金币归零",
			Category:     CategorySpectral,
			Cost:         4,
			UseCondition: "需要空余的小丑牌栏位",
			UseFn: func(ctx *EffectContext) *EffectResult {
				if ctx.Hooks == nil || ctx.Hooks.AddJoker == nil {
					return failResult("小丑牌栏位已满")
				}
				if !ctx.Hooks.AddJoker(cardmodel.RarityRare, cardmodel.EditionNone) {
					return failResult("小丑牌栏位已满")
				}
				zero := 0
				return &EffectResult{
					Success:  true,
					Message:  "怨灵带来了一张稀有小丑牌，并卷走了全部金币",
					SetMoney: &zero,
				}
			},
		},

		// 魔符：全部手牌转换为同一随机花色
		{
			ID:           "spectral_sigil",
			Name:         "魔符",
			Description:  "将全部手牌转换为同一随机花色",
			Category:     CategorySpectral,
			Cost:         4,
			UseCondition: "需要至少1张手牌",
			CanUseFn: func(ctx *EffectContext) bool {
				return len(ctx.HandCards) >= 1
			},
			UseFn: func(ctx *EffectContext) *EffectResult {
				if len(ctx.HandCards) < 1 {
					return failResult("需要至少1张手牌")
				}
				suit := cardmodel.AllSuits[rand.Intn(len(cardmodel.AllSuits))]
				for _, card := range ctx.HandCards {
					card.Suit = suit
				}
				return &EffectResult{
					Success:       true,
					Message:       fmt.Sprintf("魔符将%d张手牌化为同一花色", len(ctx.HandCards)),
					AffectedCards: ctx.HandCards,
				}
			},
		},

		// 通灵板：全部手牌转换为同一随机点数，手牌上限-1
		{
			ID:           "spectral_ouija",
			Name:         "通灵板",
			Description:  "将全部手牌转换为同一随机点数，手牌上限-1",
			Category:     CategorySpectral,
			Cost:         4,
			UseCondition: "需要至少1张手牌",
			CanUseFn: func(ctx *EffectContext) bool {
				return len(ctx.HandCards) >= 1
			},
			UseFn: func(ctx *EffectContext) *EffectResult {
				if len(ctx.HandCards) < 1 {
					return failResult("需要至少1张手牌")
				}
				rank := cardmodel.AllRanks[rand.Intn(len(cardmodel.AllRanks))]
				for _, card := range ctx.HandCards {
					card.Rank = rank
				}
				if ctx.Hooks != nil && ctx.Hooks.DecreaseHandSize != nil {
					ctx.Hooks.DecreaseHandSize(1)
				}
				return &EffectResult{
					Success:       true,
					Message:       fmt.Sprintf("通灵板将%d张手牌化为同一点数，手牌上限-1", len(ctx.HandCards)),
					AffectedCards: ctx.HandCards,
				}
			},
		},

		// 灵质：随机小丑牌获得负片版本，手牌上限-1
		{
			ID:           "spectral_ectoplasm",
			Name:         "灵质",
			Description:  "为随机小丑牌附加负片版本，手牌上限-1",
			Category:     CategorySpectral,
			Cost:         4,
			UseCondition: "需要至少一张无版本的小丑牌",
			CanUseFn:     hasJokerWithoutEdition,
			UseFn: func(ctx *EffectContext) *EffectResult {
				if !hasJokerWithoutEdition(ctx) {
					return failResult("没有可附加负片的小丑牌")
				}
				if ctx.Hooks == nil || ctx.Hooks.AddEditionToRandomJoker == nil {
					return failResult("没有可附加负片的小丑牌")
				}
				if _, ok := ctx.Hooks.AddEditionToRandomJoker(cardmodel.EditionNegative); !ok {
					return failResult("没有可附加负片的小丑牌")
				}
				if ctx.Hooks.DecreaseHandSize != nil {
					ctx.Hooks.DecreaseHandSize(1)
				}
				return &EffectResult{
					Success: true,
					Message: "灵质渗入了一张小丑牌，手牌上限-1",
				}
			},
		},

		// 献祭：摧毁5张随机手牌，获得$20
		{
			ID:           "spectral_immolate",
			Name:         "献祭",
			Description:  "摧毁5张随机手牌，获得$20",
			Category:     CategorySpectral,
			Cost:         4,
			UseCondition: "需要至少5张手牌",
			CanUseFn: func(ctx *EffectContext) bool {
				return len(ctx.HandCards) >= 5
			},
			UseFn: func(ctx *EffectContext) *EffectResult {
				if len(ctx.HandCards) < 5 {
					return failResult("需要至少5张手牌")
				}
				return &EffectResult{
					Success:        true,
					Message:        "献祭焚毁了5张手牌，获得$20",
					DestroyedCards: randomHandCards(ctx, 5),
					MoneyChange:    20,
				}
			},
		},

		// 安卡：复制随机小丑牌，摧毁其余全部小丑牌
		{
			ID:           "spectral_ankh",
			Name:         "安卡",
			Description:  "复制1张随机小丑牌，摧毁其余全部小丑牌",
			Category:     CategorySpectral,
			Cost:         4,
			UseCondition: "需要至少一张小丑牌",
			CanUseFn: func(ctx *EffectContext) bool {
				return len(ctx.Jokers) >= 1
			},
			UseFn: func(ctx *EffectContext) *EffectResult {
				if len(ctx.Jokers) < 1 {
					return failResult("需要至少一张小丑牌")
				}
				if ctx.Hooks == nil || ctx.Hooks.CopyRandomJoker == nil || ctx.Hooks.DestroyOtherJokers == nil {
					return failResult("需要至少一张小丑牌")
				}
				sourceID, copyID, ok := ctx.Hooks.CopyRandomJoker()
				if !ok {
					return failResult("需要至少一张小丑牌")
				}
				destroyed := ctx.Hooks.DestroyOtherJokers(sourceID, copyID)
				return &EffectResult{
					Success: true,
					Message: fmt.Sprintf("安卡复制了一张小丑牌，摧毁了其余%d张", destroyed),
				}
			},
		},

		sealSpectral("spectral_deja_vu", "既视感", cardmodel.SealRed, "红色"),

		// 妖术：随机小丑牌获得多彩版本，摧毁其余全部小丑牌
		{
			ID:           "spectral_hex",
			Name:         "妖术",
			Description:  "为随机小丑牌附加多彩版本，摧毁其余全部小丑牌",
			Category:     CategorySpectral,
			Cost:         4,
			UseCondition: "需要至少一张无版本的小丑牌",
			CanUseFn:     hasJokerWithoutEdition,
			UseFn: func(ctx *EffectContext) *EffectResult {
				if !hasJokerWithoutEdition(ctx) {
					return failResult("没有可附加多彩的小丑牌")
				}
				if ctx.Hooks == nil || ctx.Hooks.AddEditionToRandomJoker == nil || ctx.Hooks.DestroyOtherJokers == nil {
					return failResult("没有可附加多彩的小丑牌")
				}
				jokerID, ok := ctx.Hooks.AddEditionToRandomJoker(cardmodel.EditionPolychrome)
				if !ok {
					return failResult("没有可附加多彩的小丑牌")
				}
				destroyed := ctx.Hooks.DestroyOtherJokers(jokerID)
				return &EffectResult{
					Success: true,
					Message: fmt.Sprintf("妖术附体！其余%d张小丑牌化为灰烬", destroyed),
				}
			},
		},

		sealSpectral("spectral_trance", "恍惚", cardmodel.SealBlue, "蓝色"),
		sealSpectral("spectral_medium", "灵媒", cardmodel.SealPurple, "紫色"),

		// 秘兽：为选中牌生成2张复制品
		{
			ID:           "spectral_cryptid",
			Name:         "秘兽",
			Description:  "生成2张选中牌的复制品",
			Category:     CategorySpectral,
			Cost:         4,
			UseCondition: selectionMessage(1, 1),
			CanUseFn: func(ctx *EffectContext) bool {
				return selectionWithin(ctx, 1, 1)
			},
			UseFn: func(ctx *EffectContext) *EffectResult {
				if !selectionWithin(ctx, 1, 1) {
					return failResult(selectionMessage(1, 1))
				}
				source := ctx.SelectedCards[0]
				return &EffectResult{
					Success:  true,
					Message:  "秘兽生成了2张复制品",
					NewCards: []*cardmodel.Card{copyCard(source), copyCard(source)},
				}
			},
		},

		// 凶兆：摧毁1张随机手牌，获得2张随机塔罗牌
		{
			ID:           "spectral_omen",
			Name:         "凶兆",
			Description:  "摧毁1张随机手牌，获得2张随机塔罗牌",
			Category:     CategorySpectral,
			Cost:         4,
			UseCondition: "需要至少1张手牌",
			CanUseFn: func(ctx *EffectContext) bool {
				return len(ctx.HandCards) >= 1
			},
			UseFn: func(ctx *EffectContext) *EffectResult {
				if len(ctx.HandCards) < 1 {
					return failResult("需要至少1张手牌")
				}
				return &EffectResult{
					Success:          true,
					Message:          "凶兆降临，换来了2张塔罗牌",
					DestroyedCards:   randomHandCards(ctx, 1),
					NewConsumableIDs: randomTarotIDs(2, "tarot_fool"),
				}
			},
		},

		// 灵魂：生成传奇小丑牌（仅在补充包中出现）
		{
			ID:            "spectral_soul",
			Name:          "灵魂",
			Description:   "生成1张传奇小丑牌",
			Category:      CategorySpectral,
			Cost:          0,
			PackExclusive: true,
			UseCondition:  "需要空余的小丑牌栏位",
			UseFn: func(ctx *EffectContext) *EffectResult {
				if ctx.Hooks == nil || ctx.Hooks.AddJoker == nil {
					return failResult("小丑牌栏位已满")
				}
				if !ctx.Hooks.AddJoker(cardmodel.RarityLegendary, cardmodel.EditionNone) {
					return failResult("小丑牌栏位已满")
				}
				return &EffectResult{Success: true, Message: "灵魂凝聚成了一张传奇小丑牌"}
			},
		},

		// 黑洞：升级全部牌型（仅在补充包中出现）
		{
			ID:            "spectral_black_hole",
			Name:          "黑洞",
			Description:   "升级全部牌型1级",
			Category:      CategorySpectral,
			Cost:          0,
			PackExclusive: true,
			UseFn: func(ctx *EffectContext) *EffectResult {
				return &EffectResult{
					Success:              true,
					Message:              "黑洞吞噬了一切，全部牌型升级",
					UpgradeAllHandLevels: true,
				}
			},
		},
	}
}
