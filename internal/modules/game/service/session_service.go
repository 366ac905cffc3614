package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"xiaochou-self/internal/model/cardmodel"
	"xiaochou-self/internal/pkg/log"
	"xiaochou-self/internal/pkg/metrics"
	"xiaochou-self/internal/pkg/xerrors"
)

const (
	defaultStartingMoney   = 4
	defaultHandSize        = 8
	defaultJokerSlots      = 5
	defaultConsumableSlots = 2
)

// GameSession 一局游戏的全部可变状态
// 核心假设单会话串行访问；服务层在每个操作入口加锁
type GameSession struct {
	ID    string
	Money int

	HandSize  int
	HandCards []*cardmodel.Card
	Deck      []*cardmodel.Card

	Jokers     []*cardmodel.Joker
	JokerSlots int

	Consumables     []*Consumable
	ConsumableSlots int

	// HandLevels 各牌型等级；HandPlayCounts 各牌型累计出牌次数
	HandLevels     map[string]int
	HandPlayCounts map[string]int

	LastUsedConsumableID string

	Shop     *Shop
	Vouchers *VoucherTracker

	CreatedAt    time.Time
	LastActiveAt time.Time

	// resolving 效果结算重入保护，仅复制路径允许重入
	resolving bool

	mu sync.Mutex
}

// Lock 获取会话锁
func (s *GameSession) Lock() { s.mu.Lock() }

// Unlock 释放会话锁
func (s *GameSession) Unlock() { s.mu.Unlock() }

// newStandardDeck 生成标准52张牌组
func newStandardDeck() []*cardmodel.Card {
	deck := make([]*cardmodel.Card, 0, 52)
	for _, suit := range cardmodel.AllSuits {
		for _, rank := range cardmodel.AllRanks {
			deck = append(deck, &cardmodel.Card{
				ID:   uuid.New().String(),
				Suit: suit,
				Rank: rank,
			})
		}
	}
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// GetCards 手牌访问器
func (s *GameSession) GetCards() []*cardmodel.Card {
	return s.HandCards
}

// RemoveCards 按身份从手牌堆移除，返回实际移除数量
func (s *GameSession) RemoveCards(cards []*cardmodel.Card) int {
	doomed := make(map[string]bool, len(cards))
	for _, card := range cards {
		doomed[card.ID] = true
	}
	kept := make([]*cardmodel.Card, 0, len(s.HandCards))
	removed := 0
	for _, card := range s.HandCards {
		if doomed[card.ID] {
			removed++
			continue
		}
		kept = append(kept, card)
	}
	s.HandCards = kept
	return removed
}

// ForceAddCard 将牌加入手牌，绕过手牌上限
func (s *GameSession) ForceAddCard(card *cardmodel.Card) {
	s.HandCards = append(s.HandCards, card)
}

// AddToTopOfDeck 将牌放到牌组顶部
func (s *GameSession) AddToTopOfDeck(card *cardmodel.Card) {
	s.Deck = append([]*cardmodel.Card{card}, s.Deck...)
}

// AddToBottomOfDeck 将牌放到牌组底部
func (s *GameSession) AddToBottomOfDeck(card *cardmodel.Card) {
	s.Deck = append(s.Deck, card)
}

// JokerInfos 构造效果上下文可见的小丑牌描述
func (s *GameSession) JokerInfos() []JokerInfo {
	infos := make([]JokerInfo, 0, len(s.Jokers))
	for _, j := range s.Jokers {
		infos = append(infos, JokerInfo{
			ID:         j.ID,
			Name:       j.Name,
			Edition:    j.Edition,
			HasEdition: j.HasEdition(),
			SellPrice:  j.SellPrice,
			Sticker:    j.Sticker,
		})
	}
	return infos
}

// MostPlayedHandType 全局最常出的牌型；从未出过牌时返回空串
func (s *GameSession) MostPlayedHandType() string {
	best := ""
	bestCount := 0
	for _, handType := range AllHandTypes {
		if count := s.HandPlayCounts[handType]; count > bestCount {
			best = handType
			bestCount = count
		}
	}
	return best
}

// RecordHandPlayed 记录一次出牌
func (s *GameSession) RecordHandPlayed(handType string) {
	s.HandPlayCounts[handType]++
}

// UpgradeHand 升级指定牌型1级
func (s *GameSession) UpgradeHand(handType string) {
	s.HandLevels[handType]++
}

// UpgradeAllHands 升级全部牌型1级
func (s *GameSession) UpgradeAllHands() {
	for _, handType := range AllHandTypes {
		s.HandLevels[handType]++
	}
}

// HasHallucination 是否持有"幻觉"类小丑牌（开包附赠塔罗判定）
func (s *GameSession) HasHallucination() bool {
	for _, j := range s.Jokers {
		if tpl, ok := jokerTemplateByID(j.TemplateID); ok && tpl.GrantsHallucination {
			return true
		}
	}
	return false
}

// AllowDuplicateJokers 是否允许商店出现重复小丑牌
func (s *GameSession) AllowDuplicateJokers() bool {
	for _, j := range s.Jokers {
		if tpl, ok := jokerTemplateByID(j.TemplateID); ok && tpl.GrantsDuplicates {
			return true
		}
	}
	return false
}

// OwnedJokerTemplateIDs 当前持有的小丑牌模板ID集合
func (s *GameSession) OwnedJokerTemplateIDs() map[string]bool {
	owned := make(map[string]bool, len(s.Jokers))
	for _, j := range s.Jokers {
		owned[j.TemplateID] = true
	}
	return owned
}

// AddConsumable 尝试将消耗牌放入栏位
// 负片消耗牌不占栏位；栏位已满返回业务错误
func (s *GameSession) AddConsumable(c *Consumable) error {
	if !c.IsNegative {
		occupied := 0
		for _, held := range s.Consumables {
			if !held.IsNegative {
				occupied++
			}
		}
		if occupied >= s.ConsumableSlots {
			return xerrors.New(xerrors.CodeConsumableSlotsFull, "消耗牌栏位已满")
		}
	}
	s.Consumables = append(s.Consumables, c)
	return nil
}

// RemoveConsumableAt 按下标移除持有的消耗牌
func (s *GameSession) RemoveConsumableAt(index int) {
	s.Consumables = append(s.Consumables[:index], s.Consumables[index+1:]...)
}

// BuildEffectContext 为一次效果调用构建全新上下文
// selectedIndexes 为手牌下标；上下文绝不跨调用复用
func (s *GameSession) BuildEffectContext(selectedIndexes []int) (*EffectContext, error) {
	selected := make([]*cardmodel.Card, 0, len(selectedIndexes))
	for _, idx := range selectedIndexes {
		if idx < 0 || idx >= len(s.HandCards) {
			return nil, xerrors.New(xerrors.CodeInvalidSelection, "选中的手牌下标超出范围")
		}
		selected = append(selected, s.HandCards[idx])
	}
	return &EffectContext{
		HandCards:            s.HandCards,
		SelectedCards:        selected,
		Money:                s.Money,
		Jokers:               s.JokerInfos(),
		LastUsedConsumableID: s.LastUsedConsumableID,
		Hooks:                s.buildEffectHooks(),
	}, nil
}

// buildEffectHooks 构建回调钩子，效果目录通过它们表达对外部集合的修改意图
func (s *GameSession) buildEffectHooks() *EffectHooks {
	return &EffectHooks{
		SetMoney: func(amount int) {
			s.Money = amount
		},
		DecreaseHandSize: func(delta int) {
			s.HandSize -= delta
			if s.HandSize < 1 {
				s.HandSize = 1
			}
		},
		AddJoker: func(rarity cardmodel.JokerRarity, edition cardmodel.Edition) bool {
			if len(s.Jokers) >= s.JokerSlots {
				return false
			}
			tpl, ok := randomJokerTemplate(rarity)
			if !ok {
				return false
			}
			s.Jokers = append(s.Jokers, InstantiateJoker(tpl, edition))
			return true
		},
		AddEditionToRandomJoker: func(edition cardmodel.Edition) (string, bool) {
			eligible := make([]*cardmodel.Joker, 0, len(s.Jokers))
			for _, j := range s.Jokers {
				if !j.HasEdition() {
					eligible = append(eligible, j)
				}
			}
			if len(eligible) == 0 {
				return "", false
			}
			target := eligible[rand.Intn(len(eligible))]
			target.Edition = edition
			return target.ID, true
		},
		DestroyOtherJokers: func(keepIDs ...string) int {
			keep := make(map[string]bool, len(keepIDs))
			for _, id := range keepIDs {
				keep[id] = true
			}
			kept := make([]*cardmodel.Joker, 0, len(s.Jokers))
			destroyed := 0
			for _, j := range s.Jokers {
				if keep[j.ID] {
					kept = append(kept, j)
					continue
				}
				destroyed++
			}
			s.Jokers = kept
			return destroyed
		},
		CopyRandomJoker: func() (string, string, bool) {
			if len(s.Jokers) == 0 {
				return "", "", false
			}
			source := s.Jokers[rand.Intn(len(s.Jokers))]
			dup := *source
			dup.ID = uuid.New().String()
			s.Jokers = append(s.Jokers, &dup)
			return source.ID, dup.ID, true
		},
	}
}

// SessionService 管理内存中的游戏会话
type SessionService struct {
	ttl    time.Duration
	logger log.Logger
	clock  func() time.Time

	mu       sync.RWMutex
	sessions map[string]*GameSession
}

// NewSessionService 创建会话服务
func NewSessionService(ttl time.Duration, logger log.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if logger == nil {
		logger = log.GetLogger()
	}
	return &SessionService{
		ttl:      ttl,
		logger:   logger.With("component", "session_service"),
		clock:    time.Now,
		sessions: make(map[string]*GameSession),
	}
}

// CreateSession 新建会话：标准牌组洗牌，发初始手牌
func (svc *SessionService) CreateSession(ctx context.Context) *GameSession {
	deck := newStandardDeck()
	now := svc.clock()

	session := &GameSession{
		ID:              uuid.New().String(),
		Money:           defaultStartingMoney,
		HandSize:        defaultHandSize,
		Deck:            deck[defaultHandSize:],
		HandCards:       deck[:defaultHandSize],
		JokerSlots:      defaultJokerSlots,
		ConsumableSlots: defaultConsumableSlots,
		HandLevels:      make(map[string]int, len(AllHandTypes)),
		HandPlayCounts:  make(map[string]int, len(AllHandTypes)),
		Vouchers:        NewVoucherTracker(),
		CreatedAt:       now,
		LastActiveAt:    now,
	}
	for _, handType := range AllHandTypes {
		session.HandLevels[handType] = 1
	}

	svc.mu.Lock()
	svc.sessions[session.ID] = session
	svc.mu.Unlock()

	metrics.DefaultBusinessMetrics.IncSessionsActive(metrics.GetServiceName())
	svc.logger.InfoContext(ctx, "game session created", log.String("session_id", session.ID))
	return session
}

// GetSession 按ID取会话并刷新活跃时间
func (svc *SessionService) GetSession(ctx context.Context, id string) (*GameSession, error) {
	svc.mu.RLock()
	session, ok := svc.sessions[id]
	svc.mu.RUnlock()
	if !ok {
		return nil, xerrors.NewSessionNotFoundError(id)
	}

	now := svc.clock()
	if now.Sub(session.LastActiveAt) > svc.ttl {
		svc.removeSession(ctx, id, "expired")
		return nil, xerrors.New(xerrors.CodeSessionExpired, "游戏会话已过期")
	}
	session.LastActiveAt = now
	return session, nil
}

// DeleteSession 主动结束会话
func (svc *SessionService) DeleteSession(ctx context.Context, id string) {
	svc.removeSession(ctx, id, "deleted")
}

func (svc *SessionService) removeSession(ctx context.Context, id, reason string) {
	svc.mu.Lock()
	_, ok := svc.sessions[id]
	if ok {
		delete(svc.sessions, id)
	}
	svc.mu.Unlock()
	if ok {
		metrics.DefaultBusinessMetrics.DecSessionsActive(metrics.GetServiceName())
		svc.logger.InfoContext(ctx, "game session removed",
			log.String("session_id", id),
			log.String("reason", reason))
	}
}

// CleanupExpired 清理过期会话，返回被清理的会话ID（定时任务据此删除对应快照）
func (svc *SessionService) CleanupExpired(ctx context.Context) []string {
	now := svc.clock()

	svc.mu.RLock()
	expired := make([]string, 0)
	for id, session := range svc.sessions {
		if now.Sub(session.LastActiveAt) > svc.ttl {
			expired = append(expired, id)
		}
	}
	svc.mu.RUnlock()

	for _, id := range expired {
		svc.removeSession(ctx, id, "expired")
	}
	return expired
}

// Count 当前会话数
func (svc *SessionService) Count() int {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return len(svc.sessions)
}
