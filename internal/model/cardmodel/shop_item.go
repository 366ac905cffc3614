package cardmodel

// ShopItemCategory 商店物品类别
type ShopItemCategory string

const (
	CategoryJoker      ShopItemCategory = "joker"
	CategoryConsumable ShopItemCategory = "consumable"
	CategoryPack       ShopItemCategory = "pack"
	CategoryVoucher    ShopItemCategory = "voucher"
	CategoryPlayingCard ShopItemCategory = "playing_card"
)

// ShopItem 商店货架上的一个物品
// Sold 只会从 false 变为 true，售出后本次进店内永久不可购买
type ShopItem struct {
	ID           string           `json:"id"`
	Category     ShopItemCategory `json:"category"`
	Item         any              `json:"item"`
	BasePrice    int              `json:"base_price"`
	CurrentPrice int              `json:"current_price"`
	Sold         bool             `json:"sold"`
}
