package service

import "fmt"

// 牌型标签，与外部计分协作方约定
const (
	HandHighCard      = "high_card"
	HandPair          = "pair"
	HandTwoPair       = "two_pair"
	HandThreeOfAKind  = "three_of_a_kind"
	HandStraight      = "straight"
	HandFlush         = "flush"
	HandFullHouse     = "full_house"
	HandFourOfAKind   = "four_of_a_kind"
	HandStraightFlush = "straight_flush"
	HandFiveOfAKind   = "five_of_a_kind"
	HandFlushHouse    = "flush_house"
	HandFlushFive     = "flush_five"
)

// AllHandTypes 全部牌型，顺序固定
var AllHandTypes = []string{
	HandHighCard, HandPair, HandTwoPair, HandThreeOfAKind,
	HandStraight, HandFlush, HandFullHouse, HandFourOfAKind,
	HandStraightFlush, HandFiveOfAKind, HandFlushHouse, HandFlushFive,
}

// planetDef 星球牌定义：每张牌与一个牌型一一对应
type planetDef struct {
	id        string
	name      string
	handType  string
	handName  string
	chipBonus int
	multBonus int
}

// planetDefs 12张星球牌
var planetDefs = []planetDef{
	{"planet_pluto", "冥王星", HandHighCard, "高牌", 10, 1},
	{"planet_mercury", "水星", HandPair, "对子", 15, 1},
	{"planet_uranus", "天王星", HandTwoPair, "两对", 20, 1},
	{"planet_venus", "金星", HandThreeOfAKind, "三条", 20, 2},
	{"planet_saturn", "土星", HandStraight, "顺子", 30, 3},
	{"planet_jupiter", "木星", HandFlush, "同花", 15, 2},
	{"planet_earth", "地球", HandFullHouse, "葫芦", 25, 2},
	{"planet_mars", "火星", HandFourOfAKind, "四条", 30, 3},
	{"planet_neptune", "海王星", HandStraightFlush, "同花顺", 40, 4},
	{"planet_x", "X行星", HandFiveOfAKind, "五条", 35, 3},
	{"planet_ceres", "谷神星", HandFlushHouse, "同花葫芦", 40, 4},
	{"planet_eris", "阋神星", HandFlushFive, "同花五条", 50, 3},
}

// PlanetIDForHandType 返回指定牌型对应的星球牌ID
func PlanetIDForHandType(handType string) (string, bool) {
	for _, def := range planetDefs {
		if def.handType == handType {
			return def.id, true
		}
	}
	return "", false
}

// planetCatalog 构建星球牌目录条目
// 星球牌永远成功，只发出 HandTypeUpgrade 信号，升级记账由解析器完成
func planetCatalog() []*Consumable {
	entries := make([]*Consumable, 0, len(planetDefs))
	for _, def := range planetDefs {
		def := def
		entries = append(entries, &Consumable{
			ID:          def.id,
			Name:        def.name,
			Description: fmt.Sprintf("升级「%s」牌型（+%d筹码，+%d倍率）", def.handName, def.chipBonus, def.multBonus),
			Category:    CategoryPlanet,
			Cost:        3,
			UseFn: func(ctx *EffectContext) *EffectResult {
				return &EffectResult{
					Success:         true,
					Message:         fmt.Sprintf("「%s」牌型已升级", def.handName),
					HandTypeUpgrade: def.handType,
				}
			},
		})
	}
	return entries
}
