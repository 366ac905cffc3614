package service

import (
	"math/rand"

	"github.com/google/uuid"

	"xiaochou-self/internal/model/cardmodel"
)

// CardProbabilityTable 生成游戏牌时各修饰的独立判定概率
// 由外部作为不透明依赖注入，核心不关心数值来源
type CardProbabilityTable struct {
	EnhancementChance float64
	EditionChance     float64
	SealChance        float64
}

// DefaultCardProbabilities 标准包使用的默认概率
var DefaultCardProbabilities = CardProbabilityTable{
	EnhancementChance: 0.4,
	EditionChance:     0.08,
	SealChance:        0.2,
}

// PlayingCardService 游戏牌生成器
type PlayingCardService struct {
	probabilities CardProbabilityTable
}

// NewPlayingCardService 创建游戏牌生成器
func NewPlayingCardService(probabilities CardProbabilityTable) *PlayingCardService {
	return &PlayingCardService{probabilities: probabilities}
}

// GeneratePlain 生成一张无修饰的随机牌
func (s *PlayingCardService) GeneratePlain() *cardmodel.Card {
	return &cardmodel.Card{
		ID:   uuid.New().String(),
		Suit: cardmodel.AllSuits[rand.Intn(len(cardmodel.AllSuits))],
		Rank: cardmodel.AllRanks[rand.Intn(len(cardmodel.AllRanks))],
	}
}

// GenerateModified 生成一张牌，增强/版本/蜡封各自独立判定
func (s *PlayingCardService) GenerateModified() *cardmodel.Card {
	card := s.GeneratePlain()
	if rand.Float64() < s.probabilities.EnhancementChance {
		card.Enhancement = playableEnhancements[rand.Intn(len(playableEnhancements))]
	}
	if rand.Float64() < s.probabilities.EditionChance {
		editions := []cardmodel.Edition{
			cardmodel.EditionFoil,
			cardmodel.EditionHolo,
			cardmodel.EditionPolychrome,
		}
		card.Edition = editions[rand.Intn(len(editions))]
	}
	if rand.Float64() < s.probabilities.SealChance {
		seals := []cardmodel.Seal{
			cardmodel.SealRed, cardmodel.SealBlue, cardmodel.SealGold, cardmodel.SealPurple,
		}
		card.Seal = seals[rand.Intn(len(seals))]
	}
	return card
}
