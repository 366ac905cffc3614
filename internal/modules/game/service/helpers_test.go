package service

import (
	"fmt"

	"xiaochou-self/internal/model/cardmodel"
)

// deckOfCards 生成 n 张带独立ID的测试用牌
func deckOfCards(n int) []*cardmodel.Card {
	cards := make([]*cardmodel.Card, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, &cardmodel.Card{
			ID:   fmt.Sprintf("card-%d", i),
			Suit: cardmodel.AllSuits[i%len(cardmodel.AllSuits)],
			Rank: cardmodel.AllRanks[i%len(cardmodel.AllRanks)],
		})
	}
	return cards
}

// newTestSession 构造一个最小可用的测试会话
func newTestSession(money int, handCards ...*cardmodel.Card) *GameSession {
	session := &GameSession{
		ID:              "test-session",
		Money:           money,
		HandSize:        defaultHandSize,
		HandCards:       handCards,
		JokerSlots:      defaultJokerSlots,
		ConsumableSlots: defaultConsumableSlots,
		HandLevels:      make(map[string]int, len(AllHandTypes)),
		HandPlayCounts:  make(map[string]int, len(AllHandTypes)),
		Vouchers:        NewVoucherTracker(),
	}
	for _, handType := range AllHandTypes {
		session.HandLevels[handType] = 1
	}
	return session
}

// mustConsumable 取目录条目副本，测试内不处理错误分支
func mustConsumable(id string) *Consumable {
	c, err := GetConsumable(id)
	if err != nil {
		panic(err)
	}
	return c
}
