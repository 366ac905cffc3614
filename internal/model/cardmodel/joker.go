package cardmodel

// JokerRarity 小丑牌稀有度
type JokerRarity string

const (
	RarityCommon    JokerRarity = "common"
	RarityUncommon  JokerRarity = "uncommon"
	RarityRare      JokerRarity = "rare"
	RarityLegendary JokerRarity = "legendary"
)

// Sticker 小丑牌贴纸
type Sticker string

const (
	StickerNone       Sticker = ""
	StickerRental     Sticker = "rental"
	StickerEternal    Sticker = "eternal"
	StickerPerishable Sticker = "perishable"
)

// Joker 小丑牌（持久修正牌）
// TemplateID 标识牌池中的原型，用于排重；ID 是实例身份
type Joker struct {
	ID         string      `json:"id"`
	TemplateID string      `json:"template_id"`
	Name       string      `json:"name"`
	Rarity     JokerRarity `json:"rarity"`
	Edition    Edition     `json:"edition,omitempty"`
	SellPrice  int         `json:"sell_price"`
	Sticker    Sticker     `json:"sticker,omitempty"`
}

// HasEdition 是否带版本
func (j *Joker) HasEdition() bool {
	return j.Edition != EditionNone
}
