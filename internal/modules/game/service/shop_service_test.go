package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xiaochou-self/internal/model/cardmodel"
)

func newTestShopService() *ShopService {
	cardService := NewPlayingCardService(DefaultCardProbabilities)
	packService := NewPackService(cardService, nil)
	return NewShopService(packService, cardService, nil)
}

func TestPriceFromBase(t *testing.T) {
	tests := []struct {
		name      string
		base      int
		purchased []string
		want      int
	}{
		{name: "无优惠券原价", base: 10, want: 10},
		{
			name:      "清仓75折叠加1张券通胀",
			base:      10,
			purchased: []string{cardmodel.VoucherClearance},
			want:      8, // floor(floor(10×0.75)×1.2)
		},
		{
			name:      "清算5折覆盖清仓且叠加2张券通胀",
			base:      10,
			purchased: []string{cardmodel.VoucherClearance, cardmodel.VoucherLiquidation},
			want:      7, // floor(floor(10×0.5)×1.4)
		},
		{
			name:      "空白券不参与通胀",
			base:      10,
			purchased: []string{cardmodel.VoucherClearance, cardmodel.VoucherBlank},
			want:      8,
		},
		{
			name:      "无折扣券只有通胀",
			base:      10,
			purchased: []string{cardmodel.VoucherTelescope, cardmodel.VoucherOverstock},
			want:      14, // floor(10×1.4)
		},
		{
			name:      "价格下限为1",
			base:      1,
			purchased: []string{cardmodel.VoucherClearance, cardmodel.VoucherLiquidation},
			want:      1, // floor(1×0.5)=0 → 下限拉回1
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := RestoreVoucherTracker(tt.purchased)
			assert.Equal(t, tt.want, priceFromBase(tt.base, tracker))
		})
	}
}

func TestCalculateSellPrice(t *testing.T) {
	tests := []struct {
		name    string
		price   int
		sticker cardmodel.Sticker
		want    int
	}{
		{name: "半价向下取整", price: 7, sticker: cardmodel.StickerNone, want: 3},
		{name: "偶数半价", price: 10, sticker: cardmodel.StickerNone, want: 5},
		{name: "卖价下限为1", price: 1, sticker: cardmodel.StickerNone, want: 1},
		{name: "租赁贴纸固定为1", price: 20, sticker: cardmodel.StickerRental, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateSellPrice(tt.price, tt.sticker))
		})
	}
}

func TestShopCategoryWeights(t *testing.T) {
	tests := []struct {
		name      string
		purchased []string
		wantJoker float64
		wantTarot float64
		wantCards float64
	}{
		{name: "基础权重", wantJoker: 20, wantTarot: 4, wantCards: 0},
		{
			name:      "塔罗商人替换为2.4倍",
			purchased: []string{cardmodel.VoucherTarotMerchant},
			wantJoker: 20, wantTarot: 9.6, wantCards: 0,
		},
		{
			name:      "塔罗大亨替换为8倍而非叠乘",
			purchased: []string{cardmodel.VoucherTarotMerchant, cardmodel.VoucherTarotTycoon},
			wantJoker: 20, wantTarot: 32, wantCards: 0,
		},
		{
			name:      "魔术戏法解锁游戏牌供应",
			purchased: []string{cardmodel.VoucherMagicTrick},
			wantJoker: 20, wantTarot: 4, wantCards: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := RestoreVoucherTracker(tt.purchased)
			joker, tarot, _, playingCard := shopCategoryWeights(tracker)
			assert.InDelta(t, tt.wantJoker, joker, 1e-9)
			assert.InDelta(t, tt.wantTarot, tarot, 1e-9)
			assert.InDelta(t, tt.wantCards, playingCard, 1e-9)
		})
	}
}

func TestEnterShop_FirstVisitStarterPack(t *testing.T) {
	svc := newTestShopService()
	session := newTestSession(100)

	shop := svc.EnterShop(context.Background(), session)
	require.Len(t, shop.Items, 5, "2卡牌+2补充包+1优惠券")
	assert.Same(t, shop, session.Shop)
	assert.Equal(t, defaultBaseRerollCost, shop.RerollCost)
	assert.False(t, shop.IsFirstShopVisit, "新手包标记进店即消耗")

	// 首访的第一个补充包固定为普通滑稽包
	starter := shop.Items[defaultCardSlots]
	require.Equal(t, cardmodel.CategoryPack, starter.Category)
	pack := starter.Item.(cardmodel.BoosterPack)
	assert.Equal(t, cardmodel.PackBuffoon, pack.Type)
	assert.Equal(t, cardmodel.SizeNormal, pack.Size)

	// 再次进店标记保持翻转状态
	second := svc.EnterShop(context.Background(), session)
	assert.False(t, second.IsFirstShopVisit)
	assert.Len(t, second.Items, 5)
}

func TestEnterShop_RerollVouchersLowerBase(t *testing.T) {
	svc := newTestShopService()
	session := newTestSession(100)
	session.Vouchers.MarkPurchased(cardmodel.VoucherRerollSurplus)
	session.Vouchers.MarkPurchased(cardmodel.VoucherRerollGlut)

	shop := svc.EnterShop(context.Background(), session)
	assert.Equal(t, 1, shop.BaseRerollCost)
	assert.Equal(t, 1, shop.RerollCost)
}

func TestReroll_CostEscalation(t *testing.T) {
	svc := newTestShopService()
	session := newTestSession(20)
	svc.EnterShop(context.Background(), session)

	first, err := svc.Reroll(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, 15, first.RemainingMoney)
	assert.Equal(t, 6, first.NextRerollCost)

	second, err := svc.Reroll(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, 9, second.RemainingMoney)
	assert.Equal(t, 7, second.NextRerollCost)

	// 再次进店重置刷新状态
	shop := svc.EnterShop(context.Background(), session)
	assert.Equal(t, 0, shop.RerollCount)
	assert.Equal(t, defaultBaseRerollCost, shop.RerollCost)
}

func TestReroll_Errors(t *testing.T) {
	svc := newTestShopService()

	t.Run("不在商店中", func(t *testing.T) {
		session := newTestSession(100)
		_, err := svc.Reroll(context.Background(), session)
		assert.Error(t, err)
	})

	t.Run("金币不足", func(t *testing.T) {
		session := newTestSession(2)
		svc.EnterShop(context.Background(), session)
		_, err := svc.Reroll(context.Background(), session)
		require.Error(t, err)
		assert.Equal(t, 2, session.Money)
	})
}

func TestBuyItem_Joker(t *testing.T) {
	svc := newTestShopService()
	session := newTestSession(10)
	item := &cardmodel.ShopItem{
		ID:       "item-joker",
		Category: cardmodel.CategoryJoker,
		Item: &cardmodel.Joker{
			ID: "j1", TemplateID: "joker_test", Name: "测试小丑",
			Rarity: cardmodel.RarityCommon,
		},
		BasePrice:    6,
		CurrentPrice: 6,
	}
	session.Shop = &Shop{Items: []*cardmodel.ShopItem{item}}

	resp, err := svc.BuyItem(context.Background(), session, "item-joker")
	require.NoError(t, err)
	assert.Equal(t, "购买了「测试小丑」", resp.Message)
	assert.Equal(t, 4, resp.RemainingMoney)
	assert.True(t, item.Sold)
	require.Len(t, session.Jokers, 1)
	assert.Equal(t, 3, session.Jokers[0].SellPrice, "卖价按成交价折半")
}

func TestBuyItem_Errors(t *testing.T) {
	svc := newTestShopService()

	t.Run("不在商店中", func(t *testing.T) {
		session := newTestSession(100)
		_, err := svc.BuyItem(context.Background(), session, "whatever")
		assert.Error(t, err)
	})

	t.Run("物品不存在", func(t *testing.T) {
		session := newTestSession(100)
		session.Shop = &Shop{}
		_, err := svc.BuyItem(context.Background(), session, "missing")
		assert.Error(t, err)
	})

	t.Run("重复购买已售出物品", func(t *testing.T) {
		session := newTestSession(100)
		session.Shop = &Shop{Items: []*cardmodel.ShopItem{{
			ID: "sold-item", Category: cardmodel.CategoryJoker, Sold: true,
		}}}
		_, err := svc.BuyItem(context.Background(), session, "sold-item")
		assert.Error(t, err)
	})

	t.Run("金币不足不交付", func(t *testing.T) {
		session := newTestSession(3)
		session.Shop = &Shop{Items: []*cardmodel.ShopItem{{
			ID: "pricey", Category: cardmodel.CategoryJoker,
			Item:      &cardmodel.Joker{ID: "j1", Name: "贵"},
			BasePrice: 6, CurrentPrice: 6,
		}}}
		_, err := svc.BuyItem(context.Background(), session, "pricey")
		require.Error(t, err)
		assert.Equal(t, 3, session.Money)
		assert.Empty(t, session.Jokers)
	})

	t.Run("小丑牌栏位已满不扣款", func(t *testing.T) {
		session := newTestSession(100)
		session.JokerSlots = 0
		session.Shop = &Shop{Items: []*cardmodel.ShopItem{{
			ID: "item-joker", Category: cardmodel.CategoryJoker,
			Item:      &cardmodel.Joker{ID: "j1", Name: "测试小丑"},
			BasePrice: 6, CurrentPrice: 6,
		}}}
		_, err := svc.BuyItem(context.Background(), session, "item-joker")
		require.Error(t, err)
		assert.Equal(t, 100, session.Money)
		assert.False(t, session.Shop.Items[0].Sold)
	})
}

func TestBuyItem_Consumable(t *testing.T) {
	svc := newTestShopService()
	session := newTestSession(5)
	view, err := consumableViewByID("tarot_hermit")
	require.NoError(t, err)
	session.Shop = &Shop{Items: []*cardmodel.ShopItem{{
		ID: "item-tarot", Category: cardmodel.CategoryConsumable,
		Item: view, BasePrice: 3, CurrentPrice: 3,
	}}}

	resp, err := svc.BuyItem(context.Background(), session, "item-tarot")
	require.NoError(t, err)
	assert.Equal(t, "购买了「隐者」", resp.Message)
	assert.Equal(t, 2, session.Money)
	require.Len(t, session.Consumables, 1)
	assert.Equal(t, "tarot_hermit", session.Consumables[0].ID)
}

func TestBuyItem_PlayingCardGoesToDeckTop(t *testing.T) {
	svc := newTestShopService()
	session := newTestSession(5)
	session.Deck = deckOfCards(3)
	card := &cardmodel.Card{ID: "bought", Suit: cardmodel.SuitHearts, Rank: cardmodel.RankAce}
	session.Shop = &Shop{Items: []*cardmodel.ShopItem{{
		ID: "item-card", Category: cardmodel.CategoryPlayingCard,
		Item: card, BasePrice: 1, CurrentPrice: 1,
	}}}

	resp, err := svc.BuyItem(context.Background(), session, "item-card")
	require.NoError(t, err)
	assert.Equal(t, "购买的游戏牌已放入牌组顶部", resp.Message)
	require.Len(t, session.Deck, 4)
	assert.Equal(t, "bought", session.Deck[0].ID)
}

func TestBuyItem_VoucherPriceLockedBeforeReprice(t *testing.T) {
	svc := newTestShopService()
	session := newTestSession(20)
	voucherItem := &cardmodel.ShopItem{
		ID: "item-voucher", Category: cardmodel.CategoryVoucher,
		Item:      cardmodel.Voucher{ID: cardmodel.VoucherClearance, Name: "清仓", Cost: 10},
		BasePrice: 10, CurrentPrice: 10,
	}
	jokerItem := &cardmodel.ShopItem{
		ID: "item-joker", Category: cardmodel.CategoryJoker,
		Item:      &cardmodel.Joker{ID: "j1", Name: "测试小丑"},
		BasePrice: 10, CurrentPrice: 10,
	}
	session.Shop = &Shop{Items: []*cardmodel.ShopItem{voucherItem, jokerItem}}

	resp, err := svc.BuyItem(context.Background(), session, "item-voucher")
	require.NoError(t, err)
	assert.Equal(t, "兑换了「清仓」", resp.Message)
	// 扣的是锁定时的价格，不受购买触发的重定价影响
	assert.Equal(t, 10, resp.RemainingMoney)
	assert.True(t, session.Vouchers.IsActive(cardmodel.VoucherClearance))
	// 未售出物品立即按新折扣与通胀重定价
	assert.Equal(t, 8, jokerItem.CurrentPrice)
	assert.True(t, voucherItem.Sold)
}

func TestSellJoker(t *testing.T) {
	svc := newTestShopService()

	t.Run("按卖价回收", func(t *testing.T) {
		session := newTestSession(0)
		session.Jokers = []*cardmodel.Joker{{ID: "j1", Name: "测试小丑", SellPrice: 3}}
		price, err := svc.SellJoker(context.Background(), session, "j1")
		require.NoError(t, err)
		assert.Equal(t, 3, price)
		assert.Equal(t, 3, session.Money)
		assert.Empty(t, session.Jokers)
	})

	t.Run("租赁贴纸固定卖1", func(t *testing.T) {
		session := newTestSession(0)
		session.Jokers = []*cardmodel.Joker{{ID: "j1", SellPrice: 5, Sticker: cardmodel.StickerRental}}
		price, err := svc.SellJoker(context.Background(), session, "j1")
		require.NoError(t, err)
		assert.Equal(t, 1, price)
	})

	t.Run("未持有报错", func(t *testing.T) {
		session := newTestSession(0)
		_, err := svc.SellJoker(context.Background(), session, "missing")
		assert.Error(t, err)
	})
}

func TestSellConsumable(t *testing.T) {
	svc := newTestShopService()

	tests := []struct {
		name      string
		cost      int
		bonus     int
		purchased []string
		want      int
	}{
		{name: "印刷价折半", cost: 3, want: 1},
		{name: "附加卖价加成", cost: 3, bonus: 2, want: 3},
		{
			name:      "按当下折扣后的商店价折半",
			cost:      10,
			purchased: []string{cardmodel.VoucherClearance, cardmodel.VoucherLiquidation},
			want:      3, // 当前价7 → 折半3
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := newTestSession(0)
			session.Vouchers = RestoreVoucherTracker(tt.purchased)
			held := mustConsumable("tarot_hermit")
			held.Cost = tt.cost
			held.SellValueBonus = tt.bonus
			session.Consumables = []*Consumable{held}

			price, err := svc.SellConsumable(context.Background(), session, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, price)
			assert.Equal(t, tt.want, session.Money)
			assert.Empty(t, session.Consumables)
		})
	}

	t.Run("下标越界报错", func(t *testing.T) {
		session := newTestSession(0)
		_, err := svc.SellConsumable(context.Background(), session, 0)
		assert.Error(t, err)
	})
}

func TestApplyVoucher_Overstock(t *testing.T) {
	svc := newTestShopService()
	session := newTestSession(100)
	svc.EnterShop(context.Background(), session)
	require.Equal(t, defaultCardSlots, session.Shop.CardSlots)
	before := len(session.Shop.Items)

	err := svc.ApplyVoucher(context.Background(), session, cardmodel.VoucherOverstock)
	require.NoError(t, err)
	assert.Equal(t, defaultCardSlots+1, session.Shop.CardSlots)
	assert.Len(t, session.Shop.Items, before+1, "囤货当场补一件货")

	// 加成栏位跨进店保留
	next := svc.EnterShop(context.Background(), session)
	assert.Equal(t, defaultCardSlots+1, next.CardSlots)
	assert.Len(t, next.Items, 6)
}

func TestApplyVoucher_RerollAfterCountAccumulated(t *testing.T) {
	svc := newTestShopService()
	session := newTestSession(100)
	svc.EnterShop(context.Background(), session)

	_, err := svc.Reroll(context.Background(), session)
	require.NoError(t, err)
	require.Equal(t, 6, session.Shop.RerollCost)

	err = svc.ApplyVoucher(context.Background(), session, cardmodel.VoucherRerollSurplus)
	require.NoError(t, err)
	assert.Equal(t, 3, session.Shop.BaseRerollCost)
	assert.Equal(t, 4, session.Shop.RerollCost, "基础费下降后保留已累积的刷新次数")
}

func TestShopSnapshot_RoundTrip(t *testing.T) {
	svc := newTestShopService()
	session := newTestSession(100)
	session.Vouchers.MarkPurchased(cardmodel.VoucherOverstock)
	svc.EnterShop(context.Background(), session)

	// 模拟刷新计数累积后基础费用又被优惠券改变的状态
	session.Shop.RerollCount = 2
	session.Shop.RerollCost = 9
	session.Shop.BaseRerollCost = 3

	snapshot, err := svc.Snapshot(session)
	require.NoError(t, err)

	payload, err := json.Marshal(snapshot)
	require.NoError(t, err)
	var decoded ShopSnapshot
	require.NoError(t, json.Unmarshal(payload, &decoded))

	restored := newTestSession(100)
	svc.RestoreShop(restored, &decoded)

	// 刷新费用按快照原样恢复，不重新推导
	assert.Equal(t, 9, restored.Shop.RerollCost)
	assert.Equal(t, 3, restored.Shop.BaseRerollCost)
	assert.Equal(t, 2, restored.Shop.RerollCount)
	assert.False(t, restored.Shop.IsFirstShopVisit)

	// 卡牌栏位从囤货券推导
	assert.Equal(t, defaultCardSlots+1, restored.Shop.CardSlots)
	assert.True(t, restored.Vouchers.IsActive(cardmodel.VoucherOverstock))

	require.Len(t, restored.Shop.Items, len(session.Shop.Items))
	for i, item := range restored.Shop.Items {
		original := session.Shop.Items[i]
		assert.Equal(t, original.ID, item.ID)
		assert.Equal(t, original.Category, item.Category)
		assert.Equal(t, original.BasePrice, item.BasePrice)
		assert.Equal(t, original.CurrentPrice, item.CurrentPrice)
		assert.Equal(t, original.Sold, item.Sold)
		assert.NotNil(t, item.Item, "载荷按类别还原")
	}

	_, err = svc.Snapshot(newTestSession(0))
	assert.Error(t, err, "不在商店中无法导出快照")
}
