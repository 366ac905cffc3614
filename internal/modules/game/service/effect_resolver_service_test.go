package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xiaochou-self/internal/model/cardmodel"
)

func TestUseHeldConsumable_IndexOutOfRange(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	session := newTestSession(10)
	session.Consumables = []*Consumable{mustConsumable("tarot_hermit")}

	tests := []struct {
		name  string
		index int
	}{
		{name: "负下标", index: -1},
		{name: "下标越界", index: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.UseHeldConsumable(context.Background(), session, tt.index, nil)
			assert.Error(t, err)
		})
	}
}

func TestUseHeldConsumable_SelectionOutOfRange(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	session := newTestSession(10, deckOfCards(3)...)
	session.Consumables = []*Consumable{mustConsumable("tarot_hanged_man")}

	_, err := resolver.UseHeldConsumable(context.Background(), session, 0, []int{0, 99})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "选中的手牌下标超出范围")
}

func TestResolver_Hermit(t *testing.T) {
	tests := []struct {
		name      string
		money     int
		wantMoney int
	}{
		{name: "金币翻倍", money: 15, wantMoney: 30},
		{name: "收益封顶$20", money: 50, wantMoney: 70},
		{name: "零金币不产生收益", money: 0, wantMoney: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewEffectResolverService(nil)
			session := newTestSession(tt.money)
			session.Consumables = []*Consumable{mustConsumable("tarot_hermit")}

			outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
			require.NoError(t, err)
			assert.True(t, outcome.Success)
			assert.Equal(t, tt.wantMoney, session.Money)
			assert.Empty(t, session.Consumables, "使用成功后实例应被消耗")
			assert.Equal(t, "tarot_hermit", session.LastUsedConsumableID)
		})
	}
}

func TestResolver_Temperance(t *testing.T) {
	tests := []struct {
		name       string
		sellPrices []int
		wantGain   int
	}{
		{name: "售价求和", sellPrices: []int{3, 2, 4}, wantGain: 9},
		{name: "收益封顶$50", sellPrices: []int{30, 30}, wantGain: 50},
		{name: "没有小丑牌时收益为零", sellPrices: nil, wantGain: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewEffectResolverService(nil)
			session := newTestSession(10)
			for i, price := range tt.sellPrices {
				session.Jokers = append(session.Jokers, &cardmodel.Joker{
					ID:        "joker-" + string(rune('a'+i)),
					Name:      "测试小丑",
					Rarity:    cardmodel.RarityCommon,
					SellPrice: price,
				})
			}
			session.Consumables = []*Consumable{mustConsumable("tarot_temperance")}

			outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
			require.NoError(t, err)
			assert.True(t, outcome.Success)
			assert.Equal(t, 10+tt.wantGain, session.Money)
		})
	}
}

func TestResolver_Wraith_SetMoneyOverridesDelta(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	session := newTestSession(37)
	session.Consumables = []*Consumable{mustConsumable("spectral_wraith")}

	outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
	require.NoError(t, err)
	require.True(t, outcome.Success)
	assert.Equal(t, 0, session.Money, "怨灵将金币设置为绝对值0")
	require.Len(t, session.Jokers, 1)
	assert.Equal(t, cardmodel.RarityRare, session.Jokers[0].Rarity)
}

func TestResolver_Wraith_JokerSlotsFull(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	session := newTestSession(37)
	session.JokerSlots = 1
	session.Jokers = []*cardmodel.Joker{{ID: "j1", Name: "占位", Rarity: cardmodel.RarityCommon}}
	session.Consumables = []*Consumable{mustConsumable("spectral_wraith")}

	outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, 37, session.Money, "效果失败不触碰金币")
	assert.Len(t, session.Consumables, 1, "效果失败时实例保留")
}

func TestResolver_Immolate(t *testing.T) {
	t.Run("手牌不足5张时前置条件拦截", func(t *testing.T) {
		resolver := NewEffectResolverService(nil)
		session := newTestSession(10, deckOfCards(4)...)
		session.Consumables = []*Consumable{mustConsumable("spectral_immolate")}

		outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
		require.NoError(t, err)
		assert.False(t, outcome.Success)
		assert.Equal(t, "需要至少5张手牌", outcome.Message)
		assert.Len(t, session.HandCards, 4)
		assert.Len(t, session.Consumables, 1)
	})

	t.Run("焚毁5张并获得$20", func(t *testing.T) {
		resolver := NewEffectResolverService(nil)
		session := newTestSession(10, deckOfCards(8)...)
		session.Consumables = []*Consumable{mustConsumable("spectral_immolate")}

		outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
		require.NoError(t, err)
		require.True(t, outcome.Success)
		assert.Equal(t, 5, outcome.DestroyedCount)
		assert.Len(t, session.HandCards, 3)
		assert.Equal(t, 30, session.Money)
		assert.Empty(t, session.Consumables)
	})
}

func TestResolver_HangedMan_DestroysSelection(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	cards := deckOfCards(5)
	session := newTestSession(10, cards...)
	session.Consumables = []*Consumable{mustConsumable("tarot_hanged_man")}

	outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, []int{1, 3})
	require.NoError(t, err)
	require.True(t, outcome.Success)
	assert.Equal(t, 2, outcome.DestroyedCount)
	require.Len(t, session.HandCards, 3)
	// 按身份移除，幸存的是未选中的那三张
	assert.Equal(t, cards[0].ID, session.HandCards[0].ID)
	assert.Equal(t, cards[2].ID, session.HandCards[1].ID)
	assert.Equal(t, cards[4].ID, session.HandCards[2].ID)
}

func TestResolver_Death_CopiesWithoutRemoving(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	left := &cardmodel.Card{ID: "left", Suit: cardmodel.SuitSpades, Rank: cardmodel.RankTwo}
	right := &cardmodel.Card{
		ID:          "right",
		Suit:        cardmodel.SuitHearts,
		Rank:        cardmodel.RankAce,
		Enhancement: cardmodel.EnhancementGlass,
		Seal:        cardmodel.SealRed,
	}
	session := newTestSession(10, left, right)
	session.Consumables = []*Consumable{mustConsumable("tarot_death")}

	outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, []int{0, 1})
	require.NoError(t, err)
	require.True(t, outcome.Success)
	assert.Equal(t, 0, outcome.DestroyedCount, "属性修改不从牌堆移除")
	assert.Len(t, session.HandCards, 2)
	assert.Equal(t, cardmodel.SuitHearts, left.Suit)
	assert.Equal(t, cardmodel.RankAce, left.Rank)
	assert.Equal(t, cardmodel.EnhancementGlass, left.Enhancement)
	assert.Equal(t, cardmodel.SealRed, left.Seal)
	assert.Equal(t, "left", left.ID, "复制不改变身份")
}

func TestResolver_NewConsumables_SlotOverflowSkips(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	session := newTestSession(10)
	session.ConsumableSlots = 1
	// 女祭司自身在结算完成前仍占据栏位，生成的2张星球牌都放不下
	session.Consumables = []*Consumable{mustConsumable("tarot_high_priestess")}

	outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
	require.NoError(t, err)
	require.True(t, outcome.Success)
	assert.Equal(t, 2, outcome.SkippedConsumables)
	assert.Empty(t, session.Consumables)
}

func TestResolver_NewConsumables_FillAvailableSlots(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	session := newTestSession(10)
	session.ConsumableSlots = 3
	session.Consumables = []*Consumable{mustConsumable("tarot_high_priestess")}

	outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
	require.NoError(t, err)
	require.True(t, outcome.Success)
	assert.Equal(t, 0, outcome.SkippedConsumables)
	require.Len(t, session.Consumables, 2)
	for _, held := range session.Consumables {
		assert.Equal(t, CategoryPlanet, held.Category)
	}
}

func TestResolver_FoolCopiesPlanet(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	session := newTestSession(10)
	session.LastUsedConsumableID = "planet_pluto"
	session.Consumables = []*Consumable{mustConsumable("tarot_fool")}

	outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
	require.NoError(t, err)
	require.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.CopyDepth)
	assert.True(t, strings.HasPrefix(outcome.Message, "愚者重现了上一张牌的效果："))
	assert.Equal(t, 2, session.HandLevels[HandHighCard])
	// 记录的是被复制的条目，愚者可以被连续使用
	assert.Equal(t, "planet_pluto", session.LastUsedConsumableID)
}

func TestResolver_FoolPreconditions(t *testing.T) {
	tests := []struct {
		name   string
		lastID string
	}{
		{name: "从未使用过其他牌", lastID: ""},
		{name: "上一张是愚者自身", lastID: "tarot_fool"},
		{name: "幻灵牌不可复制", lastID: "spectral_immolate"},
		{name: "被复制条目自身前置条件不满足", lastID: "tarot_hanged_man"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewEffectResolverService(nil)
			session := newTestSession(10)
			session.LastUsedConsumableID = tt.lastID
			session.Consumables = []*Consumable{mustConsumable("tarot_fool")}

			outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
			require.NoError(t, err)
			assert.False(t, outcome.Success)
			assert.Equal(t, "需要先使用过一张塔罗牌或星球牌", outcome.Message)
			assert.Len(t, session.Consumables, 1, "前置条件失败时实例保留")
		})
	}
}

func TestResolver_FoolReplaysSelectionEffect(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	cards := deckOfCards(3)
	session := newTestSession(10, cards...)
	session.LastUsedConsumableID = "tarot_hanged_man"
	session.Consumables = []*Consumable{mustConsumable("tarot_fool")}

	outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, []int{0, 2})
	require.NoError(t, err)
	require.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.CopyDepth)
	assert.Equal(t, 2, outcome.DestroyedCount)
	assert.True(t, strings.HasPrefix(outcome.Message, "愚者重现了上一张牌的效果："))

	// 选中的两张按身份被摧毁，中间那张保留
	require.Len(t, session.HandCards, 1)
	assert.Equal(t, cards[1].ID, session.HandCards[0].ID)
	assert.Equal(t, "tarot_hanged_man", session.LastUsedConsumableID)
	assert.Empty(t, session.Consumables)
}

func TestResolver_ReentrancyGuard(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	session := newTestSession(10)
	session.resolving = true

	effectCtx, err := session.BuildEffectContext(nil)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), session, "tarot_hermit", effectCtx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "正在结算其他效果")
}

func TestResolver_UnknownCatalogID(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	session := newTestSession(10)

	effectCtx, err := session.BuildEffectContext(nil)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), session, "tarot_unknown", effectCtx)
	assert.Error(t, err, "目录ID缺失是数据完整性错误")
}

func TestResolver_BlackHole_UpgradesAllHands(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	session := newTestSession(10)
	session.Consumables = []*Consumable{mustConsumable("spectral_black_hole")}

	outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
	require.NoError(t, err)
	require.True(t, outcome.Success)
	for _, handType := range AllHandTypes {
		assert.Equal(t, 2, session.HandLevels[handType], "牌型 %s 应升至2级", handType)
	}
}

func TestResolver_WheelOfFortune_NoEligibleJoker(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	session := newTestSession(10)
	session.Jokers = []*cardmodel.Joker{
		{ID: "j1", Name: "闪箔小丑", Rarity: cardmodel.RarityCommon, Edition: cardmodel.EditionFoil},
	}
	session.Consumables = []*Consumable{mustConsumable("tarot_wheel_of_fortune")}

	outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, "需要至少一张无版本的小丑牌", outcome.Message)
	assert.Len(t, session.Consumables, 1, "前置条件失败时实例保留")
	assert.Equal(t, cardmodel.EditionFoil, session.Jokers[0].Edition)
}

func TestResolver_WheelOfFortune_QuarterChance(t *testing.T) {
	const trials = 400
	hits := 0
	for i := 0; i < trials; i++ {
		resolver := NewEffectResolverService(nil)
		session := newTestSession(10)
		session.Jokers = []*cardmodel.Joker{
			{ID: "j1", Name: "普通小丑", Rarity: cardmodel.RarityCommon},
		}
		session.Consumables = []*Consumable{mustConsumable("tarot_wheel_of_fortune")}

		outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
		require.NoError(t, err)
		require.True(t, outcome.Success, "命中与未命中都是成功使用")
		require.Empty(t, session.Consumables, "未命中时牌也照常消耗")

		if session.Jokers[0].HasEdition() {
			hits++
			assert.Equal(t, "命运之轮转动了！一张小丑牌获得了版本", outcome.Message)
		} else {
			assert.Equal(t, "什么都没有发生", outcome.Message)
		}
	}
	// 25%判定的宽松区间（400次试验远超±5个标准差）
	assert.Greater(t, hits, 55)
	assert.Less(t, hits, 145)
}

func TestResolver_Ankh_CopiesOneDestroysRest(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	session := newTestSession(10)
	session.Jokers = []*cardmodel.Joker{
		{ID: "j1", TemplateID: "joker_clown", Name: "小丑", Rarity: cardmodel.RarityCommon, SellPrice: 2},
		{ID: "j2", TemplateID: "joker_fibonacci", Name: "斐波那契", Rarity: cardmodel.RarityUncommon, SellPrice: 4},
		{ID: "j3", TemplateID: "joker_blueprint", Name: "蓝图", Rarity: cardmodel.RarityRare, SellPrice: 5},
	}
	session.Consumables = []*Consumable{mustConsumable("spectral_ankh")}

	outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
	require.NoError(t, err)
	require.True(t, outcome.Success)
	assert.Equal(t, "安卡复制了一张小丑牌，摧毁了其余2张", outcome.Message)

	// 仅剩源牌与其复制品，复制品属性一致但ID不同
	require.Len(t, session.Jokers, 2)
	source, dup := session.Jokers[0], session.Jokers[1]
	assert.Equal(t, source.TemplateID, dup.TemplateID)
	assert.Equal(t, source.Name, dup.Name)
	assert.Equal(t, source.Rarity, dup.Rarity)
	assert.NotEqual(t, source.ID, dup.ID)
	assert.Empty(t, session.Consumables)
}

func TestResolver_Ankh_RequiresJoker(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	session := newTestSession(10)
	session.Consumables = []*Consumable{mustConsumable("spectral_ankh")}

	outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, "需要至少一张小丑牌", outcome.Message)
	assert.Len(t, session.Consumables, 1, "前置条件失败时实例保留")
}

func TestResolver_Hex_PolychromeSurvivorOnly(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	session := newTestSession(10)
	// 已带版本的牌不可被选中附加多彩，唯一无版本的那张必然幸存
	session.Jokers = []*cardmodel.Joker{
		{ID: "j1", Name: "镭射小丑", Rarity: cardmodel.RarityCommon, Edition: cardmodel.EditionHolo},
		{ID: "j2", Name: "普通小丑", Rarity: cardmodel.RarityCommon},
	}
	session.Consumables = []*Consumable{mustConsumable("spectral_hex")}

	outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
	require.NoError(t, err)
	require.True(t, outcome.Success)
	assert.Equal(t, "妖术附体！其余1张小丑牌化为灰烬", outcome.Message)

	require.Len(t, session.Jokers, 1)
	assert.Equal(t, "j2", session.Jokers[0].ID)
	assert.Equal(t, cardmodel.EditionPolychrome, session.Jokers[0].Edition)
}

func TestResolver_Hex_ManyEligibleKeepsExactlyOne(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	session := newTestSession(10)
	session.Jokers = []*cardmodel.Joker{
		{ID: "j1", Name: "小丑甲", Rarity: cardmodel.RarityCommon},
		{ID: "j2", Name: "小丑乙", Rarity: cardmodel.RarityCommon},
		{ID: "j3", Name: "小丑丙", Rarity: cardmodel.RarityUncommon},
	}
	session.Consumables = []*Consumable{mustConsumable("spectral_hex")}

	outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
	require.NoError(t, err)
	require.True(t, outcome.Success)
	assert.Equal(t, "妖术附体！其余2张小丑牌化为灰烬", outcome.Message)

	require.Len(t, session.Jokers, 1)
	assert.Equal(t, cardmodel.EditionPolychrome, session.Jokers[0].Edition)
}

func TestResolver_Hex_AllJokersHaveEditions(t *testing.T) {
	resolver := NewEffectResolverService(nil)
	session := newTestSession(10)
	session.Jokers = []*cardmodel.Joker{
		{ID: "j1", Name: "闪箔小丑", Rarity: cardmodel.RarityCommon, Edition: cardmodel.EditionFoil},
		{ID: "j2", Name: "多彩小丑", Rarity: cardmodel.RarityCommon, Edition: cardmodel.EditionPolychrome},
	}
	session.Consumables = []*Consumable{mustConsumable("spectral_hex")}

	outcome, err := resolver.UseHeldConsumable(context.Background(), session, 0, nil)
	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, "需要至少一张无版本的小丑牌", outcome.Message)
	assert.Len(t, session.Jokers, 2, "失败时不摧毁任何小丑牌")
	assert.Len(t, session.Consumables, 1, "前置条件失败时实例保留")
}
