package service

import (
	"math/rand"

	"github.com/google/uuid"

	"xiaochou-self/internal/model/cardmodel"
)

// JokerTemplate 小丑牌模板（目录形态，实例化时分配独立ID）
type JokerTemplate struct {
	TemplateID string
	Name       string
	Rarity     cardmodel.JokerRarity
	BaseCost   int
	// GrantsHallucination 持有时任意补充包有概率附赠1张塔罗牌
	GrantsHallucination bool
	// GrantsDuplicates 持有时商店允许出现重复小丑牌
	GrantsDuplicates bool
}

// jokerPool 小丑牌池
var jokerPool = []JokerTemplate{
	{TemplateID: "joker_clown", Name: "小丑", Rarity: cardmodel.RarityCommon, BaseCost: 2},
	{TemplateID: "joker_greedy", Name: "贪婪小丑", Rarity: cardmodel.RarityCommon, BaseCost: 5},
	{TemplateID: "joker_lusty", Name: "欲望小丑", Rarity: cardmodel.RarityCommon, BaseCost: 5},
	{TemplateID: "joker_wrathful", Name: "暴怒小丑", Rarity: cardmodel.RarityCommon, BaseCost: 5},
	{TemplateID: "joker_gluttonous", Name: "暴食小丑", Rarity: cardmodel.RarityCommon, BaseCost: 5},
	{TemplateID: "joker_jolly", Name: "快活小丑", Rarity: cardmodel.RarityCommon, BaseCost: 3},
	{TemplateID: "joker_zany", Name: "滑稽小丑", Rarity: cardmodel.RarityCommon, BaseCost: 4},
	{TemplateID: "joker_mad", Name: "疯癫小丑", Rarity: cardmodel.RarityCommon, BaseCost: 4},
	{TemplateID: "joker_crazy", Name: "癫狂小丑", Rarity: cardmodel.RarityCommon, BaseCost: 4},
	{TemplateID: "joker_droll", Name: "逗趣小丑", Rarity: cardmodel.RarityCommon, BaseCost: 4},
	{TemplateID: "joker_half", Name: "半张小丑", Rarity: cardmodel.RarityCommon, BaseCost: 5},
	{TemplateID: "joker_banner", Name: "旗帜", Rarity: cardmodel.RarityCommon, BaseCost: 5},
	{TemplateID: "joker_hallucination", Name: "幻觉", Rarity: cardmodel.RarityCommon, BaseCost: 4, GrantsHallucination: true},
	{TemplateID: "joker_showman", Name: "马戏团长", Rarity: cardmodel.RarityUncommon, BaseCost: 5, GrantsDuplicates: true},
	{TemplateID: "joker_fibonacci", Name: "斐波那契", Rarity: cardmodel.RarityUncommon, BaseCost: 8},
	{TemplateID: "joker_steel", Name: "钢铁小丑", Rarity: cardmodel.RarityUncommon, BaseCost: 7},
	{TemplateID: "joker_abstract", Name: "抽象小丑", Rarity: cardmodel.RarityUncommon, BaseCost: 4},
	{TemplateID: "joker_constellation", Name: "星座", Rarity: cardmodel.RarityUncommon, BaseCost: 6},
	{TemplateID: "joker_cartomancer", Name: "纸牌占卜师", Rarity: cardmodel.RarityUncommon, BaseCost: 6},
	{TemplateID: "joker_blueprint", Name: "蓝图", Rarity: cardmodel.RarityRare, BaseCost: 10},
	{TemplateID: "joker_brainstorm", Name: "头脑风暴", Rarity: cardmodel.RarityRare, BaseCost: 10},
	{TemplateID: "joker_invisible", Name: "隐形小丑", Rarity: cardmodel.RarityRare, BaseCost: 8},
	{TemplateID: "joker_canio", Name: "卡尼奥", Rarity: cardmodel.RarityLegendary, BaseCost: 20},
	{TemplateID: "joker_triboulet", Name: "特里布莱", Rarity: cardmodel.RarityLegendary, BaseCost: 20},
}

// jokerTemplateByID 按模板ID查找
func jokerTemplateByID(templateID string) (JokerTemplate, bool) {
	for _, tpl := range jokerPool {
		if tpl.TemplateID == templateID {
			return tpl, true
		}
	}
	return JokerTemplate{}, false
}

// randomJokerTemplate 按稀有度随机抽取模板
// 传奇小丑牌只通过"灵魂"产出，常规抽取不返回
func randomJokerTemplate(rarity cardmodel.JokerRarity) (JokerTemplate, bool) {
	pool := make([]JokerTemplate, 0, len(jokerPool))
	for _, tpl := range jokerPool {
		if tpl.Rarity == rarity {
			pool = append(pool, tpl)
		}
	}
	if len(pool) == 0 {
		return JokerTemplate{}, false
	}
	return pool[rand.Intn(len(pool))], true
}

// randomJokerTemplateExcluding 按稀有度权重随机抽取模板，排除给定模板ID集合
// 池被排空时回退为不排除的抽取
func randomJokerTemplateExcluding(exclude map[string]bool) JokerTemplate {
	rarity := randomJokerRarity()
	pool := make([]JokerTemplate, 0, len(jokerPool))
	fallback := make([]JokerTemplate, 0, len(jokerPool))
	for _, tpl := range jokerPool {
		if tpl.Rarity != rarity || tpl.Rarity == cardmodel.RarityLegendary {
			continue
		}
		fallback = append(fallback, tpl)
		if !exclude[tpl.TemplateID] {
			pool = append(pool, tpl)
		}
	}
	if len(pool) == 0 {
		pool = fallback
	}
	return pool[rand.Intn(len(pool))]
}

// InstantiateJoker 从模板实例化一张小丑牌
// 售价按当前买入价折半（至少1），版本加价计入
func InstantiateJoker(tpl JokerTemplate, edition cardmodel.Edition) *cardmodel.Joker {
	price := tpl.BaseCost + edition.Surcharge()
	sellPrice := price / 2
	if sellPrice < 1 {
		sellPrice = 1
	}
	return &cardmodel.Joker{
		ID:         uuid.New().String(),
		TemplateID: tpl.TemplateID,
		Name:       tpl.Name,
		Rarity:     tpl.Rarity,
		Edition:    edition,
		SellPrice:  sellPrice,
	}
}
