package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_EntryCounts(t *testing.T) {
	tests := []struct {
		name                 string
		category             ConsumableCategory
		includePackExclusive bool
		want                 int
	}{
		{name: "塔罗牌共22张", category: CategoryTarot, includePackExclusive: true, want: 22},
		{name: "星球牌共12张", category: CategoryPlanet, includePackExclusive: true, want: 12},
		{name: "幻灵牌共19张", category: CategorySpectral, includePackExclusive: true, want: 19},
		{name: "幻灵牌排除包限定后17张", category: CategorySpectral, includePackExclusive: false, want: 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := ConsumableIDsByCategory(tt.category, tt.includePackExclusive)
			assert.Equal(t, tt.want, len(ids))
		})
	}

	assert.Equal(t, 53, CatalogSize())
}

func TestCatalog_PackExclusiveFiltering(t *testing.T) {
	ids := ConsumableIDsByCategory(CategorySpectral, false)
	for _, id := range ids {
		assert.NotEqual(t, "spectral_soul", id, "灵魂只应在补充包中出现")
		assert.NotEqual(t, "spectral_black_hole", id, "黑洞只应在补充包中出现")
	}

	withExclusive := ConsumableIDsByCategory(CategorySpectral, true)
	assert.Contains(t, withExclusive, "spectral_soul")
	assert.Contains(t, withExclusive, "spectral_black_hole")
}

func TestGetConsumable(t *testing.T) {
	t.Run("返回目录条目的独立副本", func(t *testing.T) {
		first, err := GetConsumable("tarot_hermit")
		require.NoError(t, err)
		second, err := GetConsumable("tarot_hermit")
		require.NoError(t, err)

		// 修改一个副本不影响另一个
		first.Name = "被篡改的名字"
		assert.Equal(t, "隐者", second.Name)
	})

	t.Run("未知ID返回数据完整性错误", func(t *testing.T) {
		_, err := GetConsumable("tarot_nonexistent")
		assert.Error(t, err)
	})
}

func TestConsumable_CanUseDefaults(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ctx  *EffectContext
		want bool
	}{
		{
			name: "无前置条件的牌总是可用",
			id:   "planet_pluto",
			ctx:  &EffectContext{},
			want: true,
		},
		{
			name: "选牌类塔罗牌无选牌时不可用",
			id:   "tarot_magician",
			ctx:  &EffectContext{},
			want: false,
		},
		{
			name: "献祭手牌不足5张时不可用",
			id:   "spectral_immolate",
			ctx:  &EffectContext{HandCards: deckOfCards(4)},
			want: false,
		},
		{
			name: "献祭手牌足够时可用",
			id:   "spectral_immolate",
			ctx:  &EffectContext{HandCards: deckOfCards(5)},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			consumable, err := GetConsumable(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, consumable.CanUse(tt.ctx))
		})
	}
}

func TestPlanetCatalog_HandTypeMapping(t *testing.T) {
	// 每个牌型恰好对应一张星球牌
	seen := make(map[string]bool)
	for _, handType := range AllHandTypes {
		id, ok := PlanetIDForHandType(handType)
		require.True(t, ok, "牌型 %s 缺少对应星球牌", handType)
		assert.False(t, seen[id], "星球牌 %s 被映射了两次", id)
		seen[id] = true
	}

	_, ok := PlanetIDForHandType("不存在的牌型")
	assert.False(t, ok)
}

func TestPlanetCatalog_UpgradeSignal(t *testing.T) {
	pluto, err := GetConsumable("planet_pluto")
	require.NoError(t, err)

	result := pluto.Use(&EffectContext{})
	require.True(t, result.Success)
	assert.Equal(t, HandHighCard, result.HandTypeUpgrade)
	assert.Empty(t, result.DestroyedCards)
	assert.Empty(t, result.NewCards)
}

func TestRandomConsumableID_Exclusion(t *testing.T) {
	// 排除全部条目时回退到完整池，绝不返回空
	all := ConsumableIDsByCategory(CategoryPlanet, true)
	exclude := make(map[string]bool, len(all))
	for _, id := range all {
		exclude[id] = true
	}

	id := RandomConsumableID(CategoryPlanet, true, exclude)
	assert.Contains(t, all, id)
}
