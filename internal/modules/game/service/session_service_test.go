package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xiaochou-self/internal/model/cardmodel"
)

func TestSessionService_Lifecycle(t *testing.T) {
	svc := NewSessionService(30*time.Minute, nil)
	ctx := context.Background()

	session := svc.CreateSession(ctx)
	assert.Equal(t, defaultStartingMoney, session.Money)
	assert.Len(t, session.HandCards, defaultHandSize)
	assert.Len(t, session.Deck, 52-defaultHandSize)
	for _, handType := range AllHandTypes {
		assert.Equal(t, 1, session.HandLevels[handType])
	}

	got, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)

	svc.DeleteSession(ctx, session.ID)
	_, err = svc.GetSession(ctx, session.ID)
	assert.Error(t, err)
}

func TestSessionService_Expiry(t *testing.T) {
	svc := NewSessionService(30*time.Minute, nil)
	ctx := context.Background()

	now := time.Now()
	svc.clock = func() time.Time { return now }
	session := svc.CreateSession(ctx)

	t.Run("访问刷新活跃时间", func(t *testing.T) {
		now = now.Add(20 * time.Minute)
		_, err := svc.GetSession(ctx, session.ID)
		require.NoError(t, err)

		now = now.Add(20 * time.Minute)
		_, err = svc.GetSession(ctx, session.ID)
		assert.NoError(t, err, "上次访问后未满TTL")
	})

	t.Run("超过TTL后过期", func(t *testing.T) {
		now = now.Add(31 * time.Minute)
		_, err := svc.GetSession(ctx, session.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "游戏会话已过期")
	})
}

func TestSessionService_CleanupExpired(t *testing.T) {
	svc := NewSessionService(30*time.Minute, nil)
	ctx := context.Background()

	now := time.Now()
	svc.clock = func() time.Time { return now }

	stale := svc.CreateSession(ctx)
	now = now.Add(40 * time.Minute)
	fresh := svc.CreateSession(ctx)

	expired := svc.CleanupExpired(ctx)
	assert.Equal(t, []string{stale.ID}, expired)
	assert.Equal(t, 1, svc.Count())

	_, err := svc.GetSession(ctx, stale.ID)
	assert.Error(t, err)
	_, err = svc.GetSession(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestGameSession_RemoveCardsByIdentity(t *testing.T) {
	cards := deckOfCards(4)
	session := newTestSession(0, cards...)

	// 同花色点数的另一张牌不会被误删
	lookalike := &cardmodel.Card{ID: "other", Suit: cards[0].Suit, Rank: cards[0].Rank}
	removed := session.RemoveCards([]*cardmodel.Card{cards[1], lookalike})
	assert.Equal(t, 1, removed)
	assert.Len(t, session.HandCards, 3)
}

func TestGameSession_AddConsumable(t *testing.T) {
	session := newTestSession(0)
	session.ConsumableSlots = 1

	require.NoError(t, session.AddConsumable(mustConsumable("tarot_hermit")))
	err := session.AddConsumable(mustConsumable("tarot_temperance"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "消耗牌栏位已满")

	// 负片消耗牌不占栏位
	negative := mustConsumable("tarot_temperance")
	negative.IsNegative = true
	assert.NoError(t, session.AddConsumable(negative))
	assert.Len(t, session.Consumables, 2)

	// 负片不挤占普通栏位判定
	session.RemoveConsumableAt(0)
	assert.NoError(t, session.AddConsumable(mustConsumable("tarot_hermit")))
}

func TestGameSession_MostPlayedHandType(t *testing.T) {
	session := newTestSession(0)
	assert.Empty(t, session.MostPlayedHandType(), "从未出牌时为空")

	session.RecordHandPlayed(HandPair)
	session.RecordHandPlayed(HandFlush)
	session.RecordHandPlayed(HandFlush)
	assert.Equal(t, HandFlush, session.MostPlayedHandType())
}

func TestGameSession_DecreaseHandSizeFloor(t *testing.T) {
	session := newTestSession(0)
	hooks := session.buildEffectHooks()

	hooks.DecreaseHandSize(defaultHandSize + 10)
	assert.Equal(t, 1, session.HandSize, "手牌上限下限为1")
}

func TestGameSession_AddJokerRespectsSlots(t *testing.T) {
	session := newTestSession(0)
	session.JokerSlots = 1
	hooks := session.buildEffectHooks()

	assert.True(t, hooks.AddJoker(cardmodel.RarityCommon, cardmodel.EditionNone))
	assert.False(t, hooks.AddJoker(cardmodel.RarityCommon, cardmodel.EditionNone))
	assert.Len(t, session.Jokers, 1)
}
