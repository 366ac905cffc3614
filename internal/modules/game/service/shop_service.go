package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"xiaochou-self/internal/model/cardmodel"
	"xiaochou-self/internal/pkg/log"
	"xiaochou-self/internal/pkg/metrics"
	"xiaochou-self/internal/pkg/notify"
	"xiaochou-self/internal/pkg/xerrors"
)

const (
	defaultBaseRerollCost = 5
	defaultCardSlots      = 2
	playingCardBasePrice  = 1
)

// ShopConsumableView 商店货架/补充包中的消耗牌视图
// 只携带目录ID与展示信息，购买时再从目录实例化
type ShopConsumableView struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    ConsumableCategory `json:"category"`
	Cost        int                `json:"cost"`
}

// consumableViewByID 从目录构造视图
func consumableViewByID(id string) (*ShopConsumableView, error) {
	template, ok := lookupTemplate(id)
	if !ok {
		return nil, xerrors.New(xerrors.CodeDataIntegrityError, "消耗牌目录中不存在该ID: "+id)
	}
	return &ShopConsumableView{
		ID:          template.ID,
		Name:        template.Name,
		Description: template.Description,
		Category:    template.Category,
		Cost:        template.Cost,
	}, nil
}

// Shop 一次进店的货架状态
type Shop struct {
	Items          []*cardmodel.ShopItem
	RerollCost     int
	RerollCount    int
	BaseRerollCost int
	// CardSlots 卡牌栏位数（2 + 囤货券加成），加成栏位在刷新后保留
	CardSlots int
	// IsFirstShopVisit 一次性新手包标记：整局游戏只会从 true 翻转为 false 一次
	IsFirstShopVisit bool
}

// ShopService 商店经济引擎
type ShopService struct {
	packService *PackService
	cardService *PlayingCardService
	logger      log.Logger
}

// NewShopService 创建商店服务
func NewShopService(packService *PackService, cardService *PlayingCardService, logger log.Logger) *ShopService {
	if logger == nil {
		logger = log.GetLogger()
	}
	return &ShopService{
		packService: packService,
		cardService: cardService,
		logger:      logger.With("component", "shop_service"),
	}
}

// ---------------------------------------------------------------------------
// 定价
// ---------------------------------------------------------------------------

// priceFromBase 价格公式：
// max(1, floor(floor(base × 折扣系数) × (1 + 0.2 × 已购券数)))
// 折扣系数取最强的一档（清算0.5 / 清仓0.75 / 无1），绝不叠乘
func priceFromBase(base int, tracker *VoucherTracker) int {
	discount := 1.0
	switch {
	case tracker.IsActive(cardmodel.VoucherLiquidation):
		discount = 0.5
	case tracker.IsActive(cardmodel.VoucherClearance):
		discount = 0.75
	}
	price := math.Floor(float64(base) * discount)
	price = math.Floor(price * (1 + 0.2*float64(tracker.PurchasedCount())))
	if price < 1 {
		price = 1
	}
	return int(price)
}

// CalculateSellPrice 卖出价：max(1, floor(当前价/2))，贴纸修正见 stickerSellPrice
func CalculateSellPrice(currentPrice int, sticker cardmodel.Sticker) int {
	price := currentPrice / 2
	if price < 1 {
		price = 1
	}
	return stickerSellPrice(price, sticker)
}

// stickerSellPrice 贴纸对卖价的修正：rental 固定卖1
func stickerSellPrice(price int, sticker cardmodel.Sticker) int {
	if sticker == cardmodel.StickerRental {
		return 1
	}
	return price
}

// repriceUnsold 按当前优惠券状态重新计算未售出物品的价格
func (s *ShopService) repriceUnsold(shop *Shop, tracker *VoucherTracker) {
	for _, item := range shop.Items {
		if !item.Sold {
			item.CurrentPrice = priceFromBase(item.BasePrice, tracker)
		}
	}
}

// ---------------------------------------------------------------------------
// 货架生成
// ---------------------------------------------------------------------------

// shopCategoryWeights 单卡抽取权重
// 商人券/大亨券是对基础权重的替换（×2.4 / ×8），不是叠加
func shopCategoryWeights(tracker *VoucherTracker) (joker, tarot, planet, playingCard float64) {
	joker = 20
	tarot, planet, playingCard = 4, 4, 0

	switch {
	case tracker.IsActive(cardmodel.VoucherTarotTycoon):
		tarot = 4 * 8
	case tracker.IsActive(cardmodel.VoucherTarotMerchant):
		tarot = 4 * 2.4
	}
	switch {
	case tracker.IsActive(cardmodel.VoucherPlanetTycoon):
		planet = 4 * 8
	case tracker.IsActive(cardmodel.VoucherPlanetMerchant):
		planet = 4 * 2.4
	}
	if tracker.IsActive(cardmodel.VoucherMagicTrick) {
		playingCard = 4
	}
	return
}

// 单卡抽取的类别结果
const (
	drawJoker       = "joker"
	drawTarot       = "tarot"
	drawPlanet      = "planet"
	drawPlayingCard = "playing_card"
)

// drawCardCategory 在 [0, Σ权重) 上均匀采样，按固定顺序落入累积权重区间：
// joker → tarot → planet → playingCard
func drawCardCategory(tracker *VoucherTracker) string {
	joker, tarot, planet, playingCard := shopCategoryWeights(tracker)
	roll := rand.Float64() * (joker + tarot + planet + playingCard)

	cursor := joker
	if roll < cursor {
		return drawJoker
	}
	cursor += tarot
	if roll < cursor {
		return drawTarot
	}
	cursor += planet
	if roll < cursor {
		return drawPlanet
	}
	return drawPlayingCard
}

// rollShopJokerEdition 商店小丑牌的版本判定
func rollShopJokerEdition() cardmodel.Edition {
	roll := rand.Float64()
	switch {
	case roll < 0.02:
		return cardmodel.EditionFoil
	case roll < 0.034:
		return cardmodel.EditionHolo
	case roll < 0.04:
		return cardmodel.EditionPolychrome
	default:
		return cardmodel.EditionNone
	}
}

// generateCardItem 按权重抽取一个单卡货架物品
func (s *ShopService) generateCardItem(session *GameSession, shop *Shop) *cardmodel.ShopItem {
	tracker := session.Vouchers
	switch drawCardCategory(tracker) {
	case drawJoker:
		return s.generateJokerItem(session, shop)
	case drawTarot:
		return s.generateConsumableItem(shop, CategoryTarot, tracker)
	case drawPlanet:
		return s.generateConsumableItem(shop, CategoryPlanet, tracker)
	default:
		return s.generatePlayingCardItem(tracker)
	}
}

// generateJokerItem 小丑牌货架物品
// 排除玩家已持有及本店在售的模板，除非"允许重复"生效
func (s *ShopService) generateJokerItem(session *GameSession, shop *Shop) *cardmodel.ShopItem {
	exclude := make(map[string]bool)
	if !session.AllowDuplicateJokers() {
		exclude = session.OwnedJokerTemplateIDs()
		for _, item := range shop.Items {
			if item.Category != cardmodel.CategoryJoker || item.Sold {
				continue
			}
			if joker, ok := item.Item.(*cardmodel.Joker); ok {
				exclude[joker.TemplateID] = true
			}
		}
	}
	tpl := randomJokerTemplateExcluding(exclude)
	joker := InstantiateJoker(tpl, rollShopJokerEdition())
	base := tpl.BaseCost + joker.Edition.Surcharge()
	return &cardmodel.ShopItem{
		ID:           uuid.New().String(),
		Category:     cardmodel.CategoryJoker,
		Item:         joker,
		BasePrice:    base,
		CurrentPrice: priceFromBase(base, session.Vouchers),
	}
}

// generateConsumableItem 消耗牌货架物品（与本店在售的同ID排重）
func (s *ShopService) generateConsumableItem(shop *Shop, category ConsumableCategory, tracker *VoucherTracker) *cardmodel.ShopItem {
	exclude := make(map[string]bool)
	for _, item := range shop.Items {
		if item.Sold || item.Category != cardmodel.CategoryConsumable {
			continue
		}
		if view, ok := item.Item.(*ShopConsumableView); ok {
			exclude[view.ID] = true
		}
	}
	id := RandomConsumableID(category, false, exclude)
	view, _ := consumableViewByID(id)
	return &cardmodel.ShopItem{
		ID:           uuid.New().String(),
		Category:     cardmodel.CategoryConsumable,
		Item:         view,
		BasePrice:    view.Cost,
		CurrentPrice: priceFromBase(view.Cost, tracker),
	}
}

// generatePlayingCardItem 游戏牌货架物品
// 幻象券生效时可带增强/版本/蜡封；版本加价在折扣公式之前计入基础价
func (s *ShopService) generatePlayingCardItem(tracker *VoucherTracker) *cardmodel.ShopItem {
	var card *cardmodel.Card
	if tracker.IsActive(cardmodel.VoucherIllusion) {
		card = s.cardService.GenerateModified()
	} else {
		card = s.cardService.GeneratePlain()
	}
	base := playingCardBasePrice + card.Edition.Surcharge()
	return &cardmodel.ShopItem{
		ID:           uuid.New().String(),
		Category:     cardmodel.CategoryPlayingCard,
		Item:         card,
		BasePrice:    base,
		CurrentPrice: priceFromBase(base, tracker),
	}
}

// generatePackItem 补充包货架物品
func (s *ShopService) generatePackItem(pack cardmodel.BoosterPack, tracker *VoucherTracker) *cardmodel.ShopItem {
	return &cardmodel.ShopItem{
		ID:           uuid.New().String(),
		Category:     cardmodel.CategoryPack,
		Item:         pack,
		BasePrice:    pack.Cost,
		CurrentPrice: priceFromBase(pack.Cost, tracker),
	}
}

// generateVoucherItem 优惠券货架物品；供应池耗尽时给保底空白券
func (s *ShopService) generateVoucherItem(tracker *VoucherTracker) *cardmodel.ShopItem {
	available := tracker.GetAvailableVouchers()
	voucher := blankVoucher
	if len(available) > 0 {
		voucher = available[rand.Intn(len(available))]
	}
	return &cardmodel.ShopItem{
		ID:           uuid.New().String(),
		Category:     cardmodel.CategoryVoucher,
		Item:         voucher,
		BasePrice:    voucher.Cost,
		CurrentPrice: priceFromBase(voucher.Cost, tracker),
	}
}

// EnterShop 进入一家新商店（回合结束后调用）
// 重置刷新状态，但一次性新手包标记翻转后不再恢复
func (s *ShopService) EnterShop(ctx context.Context, session *GameSession) *Shop {
	firstVisitPending := true
	cardSlots := defaultCardSlots
	if session.Shop != nil {
		firstVisitPending = session.Shop.IsFirstShopVisit
		cardSlots = session.Shop.CardSlots
	}

	baseReroll := defaultBaseRerollCost
	if session.Vouchers.IsActive(cardmodel.VoucherRerollSurplus) {
		baseReroll -= 2
	}
	if session.Vouchers.IsActive(cardmodel.VoucherRerollGlut) {
		baseReroll -= 2
	}
	if baseReroll < 1 {
		baseReroll = 1
	}

	shop := &Shop{
		BaseRerollCost:   baseReroll,
		RerollCost:       baseReroll,
		CardSlots:        cardSlots,
		IsFirstShopVisit: firstVisitPending,
	}
	s.stockShop(session, shop)
	session.Shop = shop

	s.logger.InfoContext(ctx, "shop stocked",
		log.String("session_id", session.ID),
		log.Int("items", len(shop.Items)),
		log.Bool("first_visit", firstVisitPending))
	return shop
}

// stockShop 铺货：卡牌栏位 + 2个补充包 + 1张优惠券
// 首次进店时第一个包固定为新手滑稽包，标记随即消耗
func (s *ShopService) stockShop(session *GameSession, shop *Shop) {
	tracker := session.Vouchers
	shop.Items = shop.Items[:0]

	for i := 0; i < shop.CardSlots; i++ {
		shop.Items = append(shop.Items, s.generateCardItem(session, shop))
	}

	if shop.IsFirstShopVisit {
		starter, _ := GetPack(cardmodel.PackBuffoon, cardmodel.SizeNormal)
		shop.Items = append(shop.Items, s.generatePackItem(starter, tracker))
		shop.Items = append(shop.Items, s.generatePackItem(RandomPack(), tracker))
		shop.IsFirstShopVisit = false
	} else {
		shop.Items = append(shop.Items, s.generatePackItem(RandomPack(), tracker))
		shop.Items = append(shop.Items, s.generatePackItem(RandomPack(), tracker))
	}

	shop.Items = append(shop.Items, s.generateVoucherItem(tracker))
}

// ---------------------------------------------------------------------------
// 购买 / 刷新 / 卖出
// ---------------------------------------------------------------------------

// BuyItemResponse 购买结果
type BuyItemResponse struct {
	Message        string         `json:"message"`
	RemainingMoney int            `json:"remaining_money"`
	PackContents   []*PackContent `json:"pack_contents,omitempty"`
}

// BuyItem 购买货架物品
// 先校验全部前置条件再扣款，避免扣款后回滚
func (s *ShopService) BuyItem(ctx context.Context, session *GameSession, itemID string) (*BuyItemResponse, error) {
	if session.Shop == nil {
		return nil, xerrors.New(xerrors.CodeOperationNotAllowed, "当前不在商店中")
	}

	// 1. 定位物品
	var item *cardmodel.ShopItem
	for _, candidate := range session.Shop.Items {
		if candidate.ID == itemID {
			item = candidate
			break
		}
	}
	if item == nil {
		return nil, xerrors.NewShopItemNotFoundError(itemID)
	}
	if item.Sold {
		return nil, xerrors.New(xerrors.CodeShopItemSold, "该物品已售出")
	}

	// 2. 校验金币（价格在此时刻锁定：购买优惠券会触发全场重定价）
	price := item.CurrentPrice
	if session.Money < price {
		return nil, xerrors.NewInsufficientFundsError(price, session.Money)
	}

	// 3. 按类别校验容量并交付
	response := &BuyItemResponse{}
	switch item.Category {
	case cardmodel.CategoryJoker:
		if len(session.Jokers) >= session.JokerSlots {
			return nil, xerrors.New(xerrors.CodeOperationNotAllowed, "小丑牌栏位已满")
		}
		joker := item.Item.(*cardmodel.Joker)
		joker.SellPrice = CalculateSellPrice(price, joker.Sticker)
		session.Jokers = append(session.Jokers, joker)
		response.Message = fmt.Sprintf("购买了「%s」", joker.Name)

	case cardmodel.CategoryConsumable:
		view := item.Item.(*ShopConsumableView)
		instance, err := GetConsumable(view.ID)
		if err != nil {
			return nil, err
		}
		if err := session.AddConsumable(instance); err != nil {
			return nil, err
		}
		response.Message = fmt.Sprintf("购买了「%s」", instance.Name)

	case cardmodel.CategoryPlayingCard:
		card := item.Item.(*cardmodel.Card)
		session.AddToTopOfDeck(card)
		response.Message = "购买的游戏牌已放入牌组顶部"

	case cardmodel.CategoryPack:
		pack := item.Item.(cardmodel.BoosterPack)
		contents, err := s.packService.GeneratePackContents(ctx, session, pack)
		if err != nil {
			return nil, err
		}
		response.PackContents = contents
		response.Message = fmt.Sprintf("打开了「%s」", pack.Name)

	case cardmodel.CategoryVoucher:
		voucher := item.Item.(cardmodel.Voucher)
		if err := s.ApplyVoucher(ctx, session, voucher.ID); err != nil {
			return nil, err
		}
		response.Message = fmt.Sprintf("兑换了「%s」", voucher.Name)

	default:
		return nil, xerrors.New(xerrors.CodeDataIntegrityError, "未知的商店物品类别")
	}

	// 4. 扣款并标记售出（Sold 只会从 false 变 true）
	session.Money -= price
	item.Sold = true
	response.RemainingMoney = session.Money

	metrics.DefaultBusinessMetrics.IncPurchase(string(item.Category), metrics.GetServiceName())
	if err := notify.PublishGameEvent(ctx, notify.SubjectShopPurchase, map[string]any{
		"session_id": session.ID,
		"category":   string(item.Category),
		"price":      price,
	}); err != nil {
		s.logger.WarnContext(ctx, "publish purchase event failed", log.String("error", err.Error()))
	}
	return response, nil
}

// RerollResponse 刷新结果
type RerollResponse struct {
	Message        string `json:"message"`
	RemainingMoney int    `json:"remaining_money"`
	NextRerollCost int    `json:"next_reroll_cost"`
}

// Reroll 付费刷新货架
// 费用 = 基础刷新费 + 本次进店已刷新次数；加成栏位保留
func (s *ShopService) Reroll(ctx context.Context, session *GameSession) (*RerollResponse, error) {
	if session.Shop == nil {
		return nil, xerrors.New(xerrors.CodeOperationNotAllowed, "当前不在商店中")
	}
	shop := session.Shop
	if session.Money < shop.RerollCost {
		return nil, xerrors.NewInsufficientFundsError(shop.RerollCost, session.Money)
	}

	session.Money -= shop.RerollCost
	shop.RerollCount++
	shop.RerollCost = shop.BaseRerollCost + shop.RerollCount
	s.stockShop(session, shop)

	metrics.DefaultBusinessMetrics.IncReroll(metrics.GetServiceName())
	if err := notify.PublishGameEvent(ctx, notify.SubjectShopReroll, map[string]any{
		"session_id":   session.ID,
		"reroll_count": shop.RerollCount,
	}); err != nil {
		s.logger.WarnContext(ctx, "publish reroll event failed", log.String("error", err.Error()))
	}

	return &RerollResponse{
		Message:        "商店已刷新",
		RemainingMoney: session.Money,
		NextRerollCost: shop.RerollCost,
	}, nil
}

// SellJoker 卖出持有的小丑牌
func (s *ShopService) SellJoker(ctx context.Context, session *GameSession, jokerID string) (int, error) {
	for i, joker := range session.Jokers {
		if joker.ID != jokerID {
			continue
		}
		price := stickerSellPrice(joker.SellPrice, joker.Sticker)
		session.Jokers = append(session.Jokers[:i], session.Jokers[i+1:]...)
		session.Money += price
		return price, nil
	}
	return 0, xerrors.New(xerrors.CodeItemNotSellable, "未持有该小丑牌")
}

// SellConsumable 卖出持有的消耗牌
func (s *ShopService) SellConsumable(ctx context.Context, session *GameSession, index int) (int, error) {
	if index < 0 || index >= len(session.Consumables) {
		return 0, xerrors.New(xerrors.CodeItemNotSellable, "未持有该消耗牌")
	}
	held := session.Consumables[index]
	// 卖价按当下折扣后的商店价折半，而非印刷价
	current := priceFromBase(held.Cost, session.Vouchers)
	price := CalculateSellPrice(current, cardmodel.StickerNone) + held.SellValueBonus
	session.RemoveConsumableAt(index)
	session.Money += price
	return price, nil
}

// ---------------------------------------------------------------------------
// 优惠券效果
// ---------------------------------------------------------------------------

// ApplyVoucher 应用优惠券：记录进度并立即生效
// 刷新类券即刻重推导刷新费用；囤货类券追加持久卡牌栏位并当场补货
func (s *ShopService) ApplyVoucher(ctx context.Context, session *GameSession, voucherID string) error {
	tracker := session.Vouchers
	if err := tracker.CanBuyVoucher(voucherID); err != nil {
		return err
	}
	tracker.MarkPurchased(voucherID)

	shop := session.Shop
	if shop != nil {
		switch voucherID {
		case cardmodel.VoucherRerollSurplus, cardmodel.VoucherRerollGlut:
			shop.BaseRerollCost -= 2
			if shop.BaseRerollCost < 1 {
				shop.BaseRerollCost = 1
			}
			shop.RerollCost = shop.BaseRerollCost + shop.RerollCount

		case cardmodel.VoucherOverstock, cardmodel.VoucherOverstockPlus:
			shop.CardSlots++
			shop.Items = append(shop.Items, s.generateExtraSlotItem(session, shop))
		}

		// 折扣/通胀都可能变化，未售出物品统一重定价
		s.repriceUnsold(shop, tracker)
	}
	return nil
}

// generateExtraSlotItem 囤货栏位的当场补货
// 无控制的50/50类别选择，同批次内不做排重
func (s *ShopService) generateExtraSlotItem(session *GameSession, shop *Shop) *cardmodel.ShopItem {
	if rand.Float64() < 0.5 {
		return s.generateJokerItem(session, shop)
	}
	category := CategoryTarot
	if rand.Float64() < 0.5 {
		category = CategoryPlanet
	}
	return s.generateConsumableItem(shop, category, session.Vouchers)
}

// ---------------------------------------------------------------------------
// 持久化形态
// ---------------------------------------------------------------------------

// ShopSnapshotItem 货架物品的序列化形态（按类别展开具体载荷）
type ShopSnapshotItem struct {
	ID           string                     `json:"id"`
	Category     cardmodel.ShopItemCategory `json:"category"`
	BasePrice    int                        `json:"base_price"`
	CurrentPrice int                        `json:"current_price"`
	Sold         bool                       `json:"sold"`

	Joker      *cardmodel.Joker        `json:"joker,omitempty"`
	Consumable *ShopConsumableView     `json:"consumable,omitempty"`
	Card       *cardmodel.Card         `json:"card,omitempty"`
	Pack       *cardmodel.BoosterPack  `json:"pack,omitempty"`
	Voucher    *cardmodel.Voucher      `json:"voucher,omitempty"`
}

// ShopSnapshot 商店的完整持久化形态
// RerollCost 与 BaseRerollCost 必须同时保存：优惠券可能在刷新计数
// 已经累积之后再改变基础费用，恢复时不允许重推导
type ShopSnapshot struct {
	Items            []*ShopSnapshotItem `json:"items"`
	RerollCost       int                 `json:"reroll_cost"`
	RerollCount      int                 `json:"reroll_count"`
	VouchersUsed     []string            `json:"vouchers_used"`
	IsFirstShopVisit bool                `json:"is_first_shop_visit"`
	BaseRerollCost   int                 `json:"base_reroll_cost"`
}

// Snapshot 导出当前商店状态
func (s *ShopService) Snapshot(session *GameSession) (*ShopSnapshot, error) {
	if session.Shop == nil {
		return nil, xerrors.New(xerrors.CodeOperationNotAllowed, "当前不在商店中")
	}
	shop := session.Shop
	items := make([]*ShopSnapshotItem, 0, len(shop.Items))
	for _, item := range shop.Items {
		snapshot := &ShopSnapshotItem{
			ID:           item.ID,
			Category:     item.Category,
			BasePrice:    item.BasePrice,
			CurrentPrice: item.CurrentPrice,
			Sold:         item.Sold,
		}
		switch payload := item.Item.(type) {
		case *cardmodel.Joker:
			snapshot.Joker = payload
		case *ShopConsumableView:
			snapshot.Consumable = payload
		case *cardmodel.Card:
			snapshot.Card = payload
		case cardmodel.BoosterPack:
			snapshot.Pack = &payload
		case cardmodel.Voucher:
			snapshot.Voucher = &payload
		}
		items = append(items, snapshot)
	}
	return &ShopSnapshot{
		Items:            items,
		RerollCost:       shop.RerollCost,
		RerollCount:      shop.RerollCount,
		VouchersUsed:     session.Vouchers.PurchasedIDs(),
		IsFirstShopVisit: shop.IsFirstShopVisit,
		BaseRerollCost:   shop.BaseRerollCost,
	}, nil
}

// RestoreShop 从快照恢复商店
// 刷新费用按快照原样恢复；卡牌栏位数从已购囤货券推导
func (s *ShopService) RestoreShop(session *GameSession, snapshot *ShopSnapshot) {
	session.Vouchers = RestoreVoucherTracker(snapshot.VouchersUsed)

	cardSlots := defaultCardSlots
	if session.Vouchers.IsActive(cardmodel.VoucherOverstock) {
		cardSlots++
	}
	if session.Vouchers.IsActive(cardmodel.VoucherOverstockPlus) {
		cardSlots++
	}

	items := make([]*cardmodel.ShopItem, 0, len(snapshot.Items))
	for _, snap := range snapshot.Items {
		item := &cardmodel.ShopItem{
			ID:           snap.ID,
			Category:     snap.Category,
			BasePrice:    snap.BasePrice,
			CurrentPrice: snap.CurrentPrice,
			Sold:         snap.Sold,
		}
		switch {
		case snap.Joker != nil:
			item.Item = snap.Joker
		case snap.Consumable != nil:
			item.Item = snap.Consumable
		case snap.Card != nil:
			item.Item = snap.Card
		case snap.Pack != nil:
			item.Item = *snap.Pack
		case snap.Voucher != nil:
			item.Item = *snap.Voucher
		}
		items = append(items, item)
	}

	session.Shop = &Shop{
		Items:            items,
		RerollCost:       snapshot.RerollCost,
		RerollCount:      snapshot.RerollCount,
		BaseRerollCost:   snapshot.BaseRerollCost,
		CardSlots:        cardSlots,
		IsFirstShopVisit: snapshot.IsFirstShopVisit,
	}
}
