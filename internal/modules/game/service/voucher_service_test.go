package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xiaochou-self/internal/model/cardmodel"
)

func TestVoucherTracker_PairGating(t *testing.T) {
	tracker := NewVoucherTracker()

	t.Run("初始只供应基础券", func(t *testing.T) {
		available := tracker.GetAvailableVouchers()
		require.Len(t, available, 7)
		ids := make([]string, 0, len(available))
		for _, v := range available {
			ids = append(ids, v.ID)
		}
		assert.Contains(t, ids, cardmodel.VoucherClearance)
		assert.NotContains(t, ids, cardmodel.VoucherLiquidation)
	})

	t.Run("买下基础券后换上升级券", func(t *testing.T) {
		tracker.MarkPurchased(cardmodel.VoucherClearance)
		available := tracker.GetAvailableVouchers()
		require.Len(t, available, 7)
		ids := make([]string, 0, len(available))
		for _, v := range available {
			ids = append(ids, v.ID)
		}
		assert.Contains(t, ids, cardmodel.VoucherLiquidation)
		assert.NotContains(t, ids, cardmodel.VoucherClearance)
	})

	t.Run("整对买完后退出供应池", func(t *testing.T) {
		tracker.MarkPurchased(cardmodel.VoucherLiquidation)
		available := tracker.GetAvailableVouchers()
		require.Len(t, available, 6)
		for _, v := range available {
			assert.NotEqual(t, cardmodel.VoucherClearance, v.ID)
			assert.NotEqual(t, cardmodel.VoucherLiquidation, v.ID)
		}
	})
}

func TestVoucherTracker_CanBuyVoucher(t *testing.T) {
	tests := []struct {
		name      string
		purchased []string
		buyID     string
		wantErr   bool
	}{
		{name: "基础券可直接购买", buyID: cardmodel.VoucherOverstock, wantErr: false},
		{name: "升级券在基础券之前锁定", buyID: cardmodel.VoucherOverstockPlus, wantErr: true},
		{
			name:      "基础券购买后升级券解锁",
			purchased: []string{cardmodel.VoucherOverstock},
			buyID:     cardmodel.VoucherOverstockPlus,
			wantErr:   false,
		},
		{
			name:      "重复购买被拒绝",
			purchased: []string{cardmodel.VoucherOverstock},
			buyID:     cardmodel.VoucherOverstock,
			wantErr:   true,
		},
		{name: "空白券总是可购买", buyID: cardmodel.VoucherBlank, wantErr: false},
		{name: "未知ID报错", buyID: "voucher_nonexistent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := RestoreVoucherTracker(tt.purchased)
			err := tracker.CanBuyVoucher(tt.buyID)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVoucherTracker_ExhaustionFallsBackToBlank(t *testing.T) {
	tracker := NewVoucherTracker()
	for _, pair := range voucherPairs {
		tracker.MarkPurchased(pair.Base.ID)
		tracker.MarkPurchased(pair.Upgraded.ID)
	}

	assert.Empty(t, tracker.GetAvailableVouchers())
	assert.NoError(t, tracker.CanBuyVoucher(cardmodel.VoucherBlank))

	// 空白券不参与价格通胀
	before := tracker.PurchasedCount()
	tracker.MarkPurchased(cardmodel.VoucherBlank)
	assert.Equal(t, before, tracker.PurchasedCount())
	assert.Equal(t, 14, tracker.PurchasedCount())
}

func TestVoucherTracker_PurchasedIDsOrdering(t *testing.T) {
	// 乱序购买，导出顺序仍按配置对顺序排列，保证持久化稳定
	tracker := NewVoucherTracker()
	tracker.MarkPurchased(cardmodel.VoucherOverstock)
	tracker.MarkPurchased(cardmodel.VoucherClearance)
	tracker.MarkPurchased(cardmodel.VoucherBlank)
	tracker.MarkPurchased(cardmodel.VoucherLiquidation)

	ids := tracker.PurchasedIDs()
	assert.Equal(t, []string{
		cardmodel.VoucherClearance,
		cardmodel.VoucherLiquidation,
		cardmodel.VoucherOverstock,
		cardmodel.VoucherBlank,
	}, ids)
}

func TestRestoreVoucherTracker_RoundTrip(t *testing.T) {
	tracker := NewVoucherTracker()
	tracker.MarkPurchased(cardmodel.VoucherTelescope)
	tracker.MarkPurchased(cardmodel.VoucherRerollSurplus)
	tracker.MarkPurchased(cardmodel.VoucherRerollGlut)

	restored := RestoreVoucherTracker(tracker.PurchasedIDs())
	assert.Equal(t, tracker.PurchasedIDs(), restored.PurchasedIDs())
	assert.True(t, restored.IsActive(cardmodel.VoucherTelescope))
	assert.False(t, restored.IsActive(cardmodel.VoucherObservatory))
	assert.Equal(t, 3, restored.PurchasedCount())
}

func TestVoucherByID(t *testing.T) {
	v, ok := VoucherByID(cardmodel.VoucherMagicTrick)
	require.True(t, ok)
	assert.Equal(t, "魔术戏法", v.Name)

	blank, ok := VoucherByID(cardmodel.VoucherBlank)
	require.True(t, ok)
	assert.Equal(t, "空白券", blank.Name)

	_, ok = VoucherByID("voucher_nonexistent")
	assert.False(t, ok)
}
