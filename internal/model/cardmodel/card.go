package cardmodel

// Suit 花色
type Suit string

const (
	SuitSpades   Suit = "spades"
	SuitHearts   Suit = "hearts"
	SuitClubs    Suit = "clubs"
	SuitDiamonds Suit = "diamonds"
)

// AllSuits 全部花色，顺序固定
var AllSuits = []Suit{SuitSpades, SuitHearts, SuitClubs, SuitDiamonds}

// Rank 点数（2-10, J=11, Q=12, K=13, A=14）
type Rank int

const (
	RankTwo   Rank = 2
	RankThree Rank = 3
	RankFour  Rank = 4
	RankFive  Rank = 5
	RankSix   Rank = 6
	RankSeven Rank = 7
	RankEight Rank = 8
	RankNine  Rank = 9
	RankTen   Rank = 10
	RankJack  Rank = 11
	RankQueen Rank = 12
	RankKing  Rank = 13
	RankAce   Rank = 14
)

// AllRanks 全部点数，顺序固定
var AllRanks = []Rank{
	RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven,
	RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing, RankAce,
}

// IsFace 是否为人头牌
func (r Rank) IsFace() bool {
	return r == RankJack || r == RankQueen || r == RankKing
}

// Enhancement 卡牌增强类型
type Enhancement string

const (
	EnhancementNone     Enhancement = ""
	EnhancementBonus    Enhancement = "bonus"
	EnhancementMult     Enhancement = "mult"
	EnhancementWild     Enhancement = "wild"
	EnhancementGlass    Enhancement = "glass"
	EnhancementSteel    Enhancement = "steel"
	EnhancementStone    Enhancement = "stone"
	EnhancementGold     Enhancement = "gold"
	EnhancementLucky    Enhancement = "lucky"
)

// Edition 卡牌版本（影响商店加价）
type Edition string

const (
	EditionNone       Edition = ""
	EditionFoil       Edition = "foil"
	EditionHolo       Edition = "holographic"
	EditionPolychrome Edition = "polychrome"
	EditionNegative   Edition = "negative"
)

// Surcharge 版本加价（在折扣公式之前加到基础价上）
func (e Edition) Surcharge() int {
	switch e {
	case EditionFoil:
		return 2
	case EditionHolo:
		return 3
	case EditionPolychrome, EditionNegative:
		return 5
	default:
		return 0
	}
}

// Seal 蜡封类型
type Seal string

const (
	SealNone   Seal = ""
	SealRed    Seal = "red"
	SealBlue   Seal = "blue"
	SealGold   Seal = "gold"
	SealPurple Seal = "purple"
)

// Card 游戏牌（手牌/牌组中的单张扑克牌）
type Card struct {
	ID          string      `json:"id"`
	Suit        Suit        `json:"suit"`
	Rank        Rank        `json:"rank"`
	Enhancement Enhancement `json:"enhancement,omitempty"`
	Edition     Edition     `json:"edition,omitempty"`
	Seal        Seal        `json:"seal,omitempty"`
}

// HasEdition 是否带版本
func (c *Card) HasEdition() bool {
	return c.Edition != EditionNone
}
