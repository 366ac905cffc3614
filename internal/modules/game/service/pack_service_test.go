package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xiaochou-self/internal/model/cardmodel"
)

func newTestPackService() *PackService {
	return NewPackService(NewPlayingCardService(DefaultCardProbabilities), nil)
}

func TestGetPack_FixedTable(t *testing.T) {
	tests := []struct {
		name        string
		packType    cardmodel.PackType
		size        cardmodel.PackSize
		wantName    string
		wantCost    int
		wantChoices int
		wantSelect  int
	}{
		{name: "普通秘术包", packType: cardmodel.PackArcana, size: cardmodel.SizeNormal, wantName: "秘术包", wantCost: 4, wantChoices: 3, wantSelect: 1},
		{name: "巨型标准包", packType: cardmodel.PackStandard, size: cardmodel.SizeJumbo, wantName: "巨型标准包", wantCost: 6, wantChoices: 5, wantSelect: 1},
		{name: "超级天体包可选2张", packType: cardmodel.PackCelestial, size: cardmodel.SizeMega, wantName: "超级天体包", wantCost: 8, wantChoices: 5, wantSelect: 2},
		{name: "普通滑稽包张数缩减", packType: cardmodel.PackBuffoon, size: cardmodel.SizeNormal, wantName: "滑稽包", wantCost: 4, wantChoices: 2, wantSelect: 1},
		{name: "巨型幻灵包张数缩减", packType: cardmodel.PackSpectral, size: cardmodel.SizeJumbo, wantName: "巨型幻灵包", wantCost: 6, wantChoices: 4, wantSelect: 1},
		{name: "超级滑稽包张数缩减", packType: cardmodel.PackBuffoon, size: cardmodel.SizeMega, wantName: "超级滑稽包", wantCost: 8, wantChoices: 4, wantSelect: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pack, err := GetPack(tt.packType, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, pack.Name)
			assert.Equal(t, tt.wantCost, pack.Cost)
			assert.Equal(t, tt.wantChoices, pack.Choices)
			assert.Equal(t, tt.wantSelect, pack.SelectCount)
		})
	}
}

func TestGetPack_InvalidInput(t *testing.T) {
	_, err := GetPack("mystery", cardmodel.SizeNormal)
	assert.Error(t, err)

	_, err = GetPack(cardmodel.PackArcana, "colossal")
	assert.Error(t, err)
}

func TestRandomPack_AlwaysValid(t *testing.T) {
	for i := 0; i < 50; i++ {
		pack := RandomPack()
		assert.NotEmpty(t, pack.ID)
		assert.Greater(t, pack.Cost, 0)
		assert.Greater(t, pack.Choices, 0)
	}
}

func TestGeneratePackContents_Arcana(t *testing.T) {
	svc := newTestPackService()
	session := newTestSession(10)
	pack, err := GetPack(cardmodel.PackArcana, cardmodel.SizeJumbo)
	require.NoError(t, err)

	contents, err := svc.GeneratePackContents(context.Background(), session, pack)
	require.NoError(t, err)
	require.Len(t, contents, 5)

	seen := make(map[string]bool)
	for _, content := range contents {
		require.Equal(t, "consumable", content.Kind)
		require.NotNil(t, content.Consumable)
		assert.Equal(t, CategoryTarot, content.Consumable.Category)
		assert.False(t, seen[content.Consumable.ID], "同包内不出现重复条目")
		seen[content.Consumable.ID] = true
	}
}

func TestGeneratePackContents_Standard(t *testing.T) {
	svc := newTestPackService()
	session := newTestSession(10)
	pack, err := GetPack(cardmodel.PackStandard, cardmodel.SizeNormal)
	require.NoError(t, err)

	contents, err := svc.GeneratePackContents(context.Background(), session, pack)
	require.NoError(t, err)
	require.Len(t, contents, 3)
	for _, content := range contents {
		assert.Equal(t, "card", content.Kind)
		assert.NotNil(t, content.Card)
	}
}

func TestGeneratePackContents_CelestialTelescope(t *testing.T) {
	svc := newTestPackService()
	session := newTestSession(10)
	session.Vouchers.MarkPurchased(cardmodel.VoucherTelescope)
	session.RecordHandPlayed(HandFlush)
	session.RecordHandPlayed(HandFlush)
	session.RecordHandPlayed(HandPair)

	pack, err := GetPack(cardmodel.PackCelestial, cardmodel.SizeNormal)
	require.NoError(t, err)

	wantID, ok := PlanetIDForHandType(HandFlush)
	require.True(t, ok)

	for i := 0; i < 10; i++ {
		contents, err := svc.GeneratePackContents(context.Background(), session, pack)
		require.NoError(t, err)
		require.Len(t, contents, 3)
		assert.Equal(t, wantID, contents[0].Consumable.ID, "望远镜强制第一张为最常用牌型的星球牌")
	}
}

func TestGeneratePackContents_CelestialWithoutPlays(t *testing.T) {
	// 望远镜生效但从未出过牌时不强制任何条目
	svc := newTestPackService()
	session := newTestSession(10)
	session.Vouchers.MarkPurchased(cardmodel.VoucherTelescope)

	pack, err := GetPack(cardmodel.PackCelestial, cardmodel.SizeNormal)
	require.NoError(t, err)

	contents, err := svc.GeneratePackContents(context.Background(), session, pack)
	require.NoError(t, err)
	require.Len(t, contents, 3)
	for _, content := range contents {
		assert.Equal(t, CategoryPlanet, content.Consumable.Category)
	}
}

func TestGeneratePackContents_BuffoonExcludesOwned(t *testing.T) {
	svc := newTestPackService()
	session := newTestSession(10)
	session.Jokers = []*cardmodel.Joker{
		{ID: "owned-1", TemplateID: "joker_clown", Name: "小丑"},
		{ID: "owned-2", TemplateID: "joker_fibonacci", Name: "斐波那契"},
	}

	pack, err := GetPack(cardmodel.PackBuffoon, cardmodel.SizeNormal)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		contents, err := svc.GeneratePackContents(context.Background(), session, pack)
		require.NoError(t, err)
		require.Len(t, contents, 2)

		seen := make(map[string]bool)
		for _, content := range contents {
			require.Equal(t, "joker", content.Kind)
			require.NotNil(t, content.Joker)
			assert.NotEqual(t, "joker_clown", content.Joker.TemplateID, "不开出已持有的模板")
			assert.NotEqual(t, "joker_fibonacci", content.Joker.TemplateID, "不开出已持有的模板")
			assert.NotEqual(t, cardmodel.RarityLegendary, content.Joker.Rarity, "传奇只通过灵魂产出")
			assert.False(t, seen[content.Joker.TemplateID], "同包内不重复")
			seen[content.Joker.TemplateID] = true
		}
	}
}

func TestGeneratePackContents_Spectral(t *testing.T) {
	svc := newTestPackService()
	session := newTestSession(10)
	pack, err := GetPack(cardmodel.PackSpectral, cardmodel.SizeNormal)
	require.NoError(t, err)

	contents, err := svc.GeneratePackContents(context.Background(), session, pack)
	require.NoError(t, err)
	require.Len(t, contents, 2)
	for _, content := range contents {
		assert.Equal(t, CategorySpectral, content.Consumable.Category)
	}
}

func TestGeneratePackContents_InvalidType(t *testing.T) {
	svc := newTestPackService()
	session := newTestSession(10)

	_, err := svc.GeneratePackContents(context.Background(), session, cardmodel.BoosterPack{
		Type: "mystery", Choices: 3,
	})
	assert.Error(t, err)
}
