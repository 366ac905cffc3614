package handler

import (
	"xiaochou-self/internal/model/cardmodel"
	"xiaochou-self/internal/modules/game/service"
)

// ==================== 共享视图模型 ====================

// ConsumableInfo 持有的消耗牌视图
type ConsumableInfo struct {
	ID          string `json:"id"`          // 目录ID
	Name        string `json:"name"`        // 名称
	Description string `json:"description"` // 描述
	Category    string `json:"category"`    // 类别（tarot/planet/spectral）
	Cost        int    `json:"cost"`        // 印刷价
	IsNegative  bool   `json:"is_negative"` // 负片（不占栏位）
}

// ShopItemInfo 商店货架物品视图
type ShopItemInfo struct {
	ID           string                `json:"id"`                   // 货架物品ID
	Category     string                `json:"category"`             // 类别
	BasePrice    int                   `json:"base_price"`           // 基础价
	CurrentPrice int                   `json:"current_price"`        // 当前价（含折扣与涨价）
	Sold         bool                  `json:"sold"`                 // 是否已售出
	Joker        *cardmodel.Joker      `json:"joker,omitempty"`      // 小丑牌载荷
	Consumable   *ConsumableInfo       `json:"consumable,omitempty"` // 消耗牌载荷
	Card         *cardmodel.Card       `json:"card,omitempty"`       // 游戏牌载荷
	Pack         *cardmodel.BoosterPack `json:"pack,omitempty"`      // 补充包载荷
	Voucher      *cardmodel.Voucher    `json:"voucher,omitempty"`    // 优惠券载荷
}

// ShopInfo 商店视图
type ShopInfo struct {
	Items          []*ShopItemInfo `json:"items"`            // 货架
	RerollCost     int             `json:"reroll_cost"`      // 下次刷新费用
	RerollCount    int             `json:"reroll_count"`     // 本商店刷新次数
	BaseRerollCost int             `json:"base_reroll_cost"` // 基础刷新费用（受优惠券影响）
}

func convertConsumableView(view *service.ShopConsumableView) *ConsumableInfo {
	if view == nil {
		return nil
	}
	return &ConsumableInfo{
		ID:          view.ID,
		Name:        view.Name,
		Description: view.Description,
		Category:    string(view.Category),
		Cost:        view.Cost,
	}
}

func convertHeldConsumable(c *service.Consumable) *ConsumableInfo {
	return &ConsumableInfo{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Category:    string(c.Category),
		Cost:        c.Cost,
		IsNegative:  c.IsNegative,
	}
}

func convertShopItem(item *cardmodel.ShopItem) *ShopItemInfo {
	info := &ShopItemInfo{
		ID:           item.ID,
		Category:     string(item.Category),
		BasePrice:    item.BasePrice,
		CurrentPrice: item.CurrentPrice,
		Sold:         item.Sold,
	}
	switch payload := item.Item.(type) {
	case *cardmodel.Joker:
		info.Joker = payload
	case *service.ShopConsumableView:
		info.Consumable = convertConsumableView(payload)
	case *cardmodel.Card:
		info.Card = payload
	case cardmodel.BoosterPack:
		pack := payload
		info.Pack = &pack
	case cardmodel.Voucher:
		voucher := payload
		info.Voucher = &voucher
	}
	return info
}

func convertShop(shop *service.Shop) *ShopInfo {
	info := &ShopInfo{
		Items:          make([]*ShopItemInfo, 0, len(shop.Items)),
		RerollCost:     shop.RerollCost,
		RerollCount:    shop.RerollCount,
		BaseRerollCost: shop.BaseRerollCost,
	}
	for _, item := range shop.Items {
		info.Items = append(info.Items, convertShopItem(item))
	}
	return info
}

// PackContentInfo 补充包内容物视图
type PackContentInfo struct {
	Kind       string           `json:"kind"` // card / joker / consumable
	Card       *cardmodel.Card  `json:"card,omitempty"`
	Joker      *cardmodel.Joker `json:"joker,omitempty"`
	Consumable *ConsumableInfo  `json:"consumable,omitempty"`
}

func convertPackContents(contents []*service.PackContent) []*PackContentInfo {
	infos := make([]*PackContentInfo, 0, len(contents))
	for _, content := range contents {
		infos = append(infos, &PackContentInfo{
			Kind:       content.Kind,
			Card:       content.Card,
			Joker:      content.Joker,
			Consumable: convertConsumableView(content.Consumable),
		})
	}
	return infos
}
