package service

import (
	"xiaochou-self/internal/model/cardmodel"
	"xiaochou-self/internal/pkg/xerrors"
)

// voucherPairs 优惠券对配置：基础券购买后才解锁升级券，整对购完后退出供应池
var voucherPairs = []cardmodel.VoucherPair{
	{
		Base:     cardmodel.Voucher{ID: cardmodel.VoucherClearance, Name: "清仓", Description: "商店全部物品75折", Cost: cardmodel.VoucherCost},
		Upgraded: cardmodel.Voucher{ID: cardmodel.VoucherLiquidation, Name: "清算", Description: "商店全部物品5折", Cost: cardmodel.VoucherCost},
	},
	{
		Base:     cardmodel.Voucher{ID: cardmodel.VoucherTarotMerchant, Name: "塔罗商人", Description: "塔罗牌在商店出现的频率提高到2.4倍", Cost: cardmodel.VoucherCost},
		Upgraded: cardmodel.Voucher{ID: cardmodel.VoucherTarotTycoon, Name: "塔罗大亨", Description: "塔罗牌在商店出现的频率提高到8倍", Cost: cardmodel.VoucherCost},
	},
	{
		Base:     cardmodel.Voucher{ID: cardmodel.VoucherPlanetMerchant, Name: "星球商人", Description: "星球牌在商店出现的频率提高到2.4倍", Cost: cardmodel.VoucherCost},
		Upgraded: cardmodel.Voucher{ID: cardmodel.VoucherPlanetTycoon, Name: "星球大亨", Description: "星球牌在商店出现的频率提高到8倍", Cost: cardmodel.VoucherCost},
	},
	{
		Base:     cardmodel.Voucher{ID: cardmodel.VoucherMagicTrick, Name: "魔术戏法", Description: "商店可以出售游戏牌", Cost: cardmodel.VoucherCost},
		Upgraded: cardmodel.Voucher{ID: cardmodel.VoucherIllusion, Name: "幻象", Description: "商店出售的游戏牌可以带增强、版本或蜡封", Cost: cardmodel.VoucherCost},
	},
	{
		Base:     cardmodel.Voucher{ID: cardmodel.VoucherRerollSurplus, Name: "刷新盈余", Description: "刷新商店的基础费用降低2", Cost: cardmodel.VoucherCost},
		Upgraded: cardmodel.Voucher{ID: cardmodel.VoucherRerollGlut, Name: "刷新过剩", Description: "刷新商店的基础费用再降低2", Cost: cardmodel.VoucherCost},
	},
	{
		Base:     cardmodel.Voucher{ID: cardmodel.VoucherTelescope, Name: "望远镜", Description: "天体包必定包含最常用牌型的星球牌", Cost: cardmodel.VoucherCost},
		Upgraded: cardmodel.Voucher{ID: cardmodel.VoucherObservatory, Name: "天文台", Description: "持有的星球牌为对应牌型提供额外倍率", Cost: cardmodel.VoucherCost},
	},
	{
		Base:     cardmodel.Voucher{ID: cardmodel.VoucherOverstock, Name: "囤货", Description: "商店卡牌栏位+1", Cost: cardmodel.VoucherCost},
		Upgraded: cardmodel.Voucher{ID: cardmodel.VoucherOverstockPlus, Name: "囤货加量", Description: "商店卡牌栏位再+1", Cost: cardmodel.VoucherCost},
	},
}

// blankVoucher 供应池耗尽时的保底空白券
var blankVoucher = cardmodel.Voucher{
	ID: cardmodel.VoucherBlank, Name: "空白券", Description: "没有任何效果", Cost: cardmodel.VoucherCost,
}

// VoucherTracker 会话内的优惠券进度
type VoucherTracker struct {
	purchased map[string]bool
}

// NewVoucherTracker 创建空进度
func NewVoucherTracker() *VoucherTracker {
	return &VoucherTracker{purchased: make(map[string]bool)}
}

// RestoreVoucherTracker 从已购ID列表恢复进度
func RestoreVoucherTracker(purchasedIDs []string) *VoucherTracker {
	t := NewVoucherTracker()
	for _, id := range purchasedIDs {
		t.purchased[id] = true
	}
	return t
}

// IsActive 指定优惠券是否已购买生效
func (t *VoucherTracker) IsActive(id string) bool {
	return t.purchased[id]
}

// PurchasedCount 已购优惠券数量（价格通胀系数用，不计空白券）
func (t *VoucherTracker) PurchasedCount() int {
	count := 0
	for id := range t.purchased {
		if id != cardmodel.VoucherBlank {
			count++
		}
	}
	return count
}

// PurchasedIDs 已购ID列表（持久化用）
func (t *VoucherTracker) PurchasedIDs() []string {
	ids := make([]string, 0, len(t.purchased))
	for _, pair := range voucherPairs {
		if t.purchased[pair.Base.ID] {
			ids = append(ids, pair.Base.ID)
		}
		if t.purchased[pair.Upgraded.ID] {
			ids = append(ids, pair.Upgraded.ID)
		}
	}
	if t.purchased[cardmodel.VoucherBlank] {
		ids = append(ids, cardmodel.VoucherBlank)
	}
	return ids
}

// GetAvailableVouchers 当前可购买的优惠券：
// 每对中基础券未购则给基础券；基础券已购而升级券未购则给升级券；整对购完则跳过
func (t *VoucherTracker) GetAvailableVouchers() []cardmodel.Voucher {
	available := make([]cardmodel.Voucher, 0, len(voucherPairs))
	for _, pair := range voucherPairs {
		switch {
		case !t.purchased[pair.Base.ID]:
			available = append(available, pair.Base)
		case !t.purchased[pair.Upgraded.ID]:
			available = append(available, pair.Upgraded)
		}
	}
	return available
}

// CanBuyVoucher 是否可购买指定优惠券，与 GetAvailableVouchers 的判定完全一致
func (t *VoucherTracker) CanBuyVoucher(id string) error {
	if id == cardmodel.VoucherBlank {
		return nil
	}
	for _, pair := range voucherPairs {
		if pair.Base.ID == id {
			if t.purchased[id] {
				return xerrors.New(xerrors.CodeVoucherAlreadyOwned, "优惠券已购买")
			}
			return nil
		}
		if pair.Upgraded.ID == id {
			if t.purchased[id] {
				return xerrors.New(xerrors.CodeVoucherAlreadyOwned, "优惠券已购买")
			}
			if !t.purchased[pair.Base.ID] {
				return xerrors.NewVoucherLockedError(id, pair.Base.ID)
			}
			return nil
		}
	}
	return xerrors.New(xerrors.CodeVoucherNotFound, "优惠券不存在: "+id)
}

// MarkPurchased 记录购买
func (t *VoucherTracker) MarkPurchased(id string) {
	t.purchased[id] = true
}

// VoucherByID 按ID查配置（含空白券）
func VoucherByID(id string) (cardmodel.Voucher, bool) {
	if id == cardmodel.VoucherBlank {
		return blankVoucher, true
	}
	for _, pair := range voucherPairs {
		if pair.Base.ID == id {
			return pair.Base, true
		}
		if pair.Upgraded.ID == id {
			return pair.Upgraded, true
		}
	}
	return cardmodel.Voucher{}, false
}
