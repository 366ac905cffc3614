package cardmodel

// 优惠券ID常量
const (
	VoucherClearance     = "voucher_clearance"      // 全场75折
	VoucherLiquidation   = "voucher_liquidation"    // 全场5折（覆盖清仓折扣）
	VoucherTarotMerchant = "voucher_tarot_merchant" // 塔罗牌出现权重 x2.4
	VoucherTarotTycoon   = "voucher_tarot_tycoon"   // 塔罗牌出现权重 x8
	VoucherPlanetMerchant = "voucher_planet_merchant" // 星球牌出现权重 x2.4
	VoucherPlanetTycoon   = "voucher_planet_tycoon"   // 星球牌出现权重 x8
	VoucherMagicTrick    = "voucher_magic_trick"    // 商店可出现游戏牌
	VoucherIllusion      = "voucher_illusion"       // 商店游戏牌可带增强/版本/蜡封
	VoucherRerollSurplus = "voucher_reroll_surplus" // 刷新基础费用 -2
	VoucherRerollGlut    = "voucher_reroll_glut"    // 刷新基础费用再 -2
	VoucherTelescope     = "voucher_telescope"      // 天体包必含最常用牌型的星球牌
	VoucherObservatory   = "voucher_observatory"    // 天体包星球牌附加倍率
	VoucherOverstock     = "voucher_overstock"      // 商店卡牌栏位 +1
	VoucherOverstockPlus = "voucher_overstock_plus" // 商店卡牌栏位再 +1
	VoucherBlank         = "voucher_blank"          // 空白券（无效果的保底）
)

// VoucherCost 所有优惠券统一售价
const VoucherCost = 10

// Voucher 优惠券
type Voucher struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
}

// VoucherPair 优惠券对：基础券购买后才解锁升级券
type VoucherPair struct {
	Base     Voucher `json:"base"`
	Upgraded Voucher `json:"upgraded"`
}
