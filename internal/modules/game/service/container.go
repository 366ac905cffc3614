package service

import (
	"time"

	"xiaochou-self/internal/pkg/log"
	"xiaochou-self/internal/repository/interfaces"
)

// ServiceContainer 游戏服务容器 - 统一管理所有 Service
// 目的：共享实例，简化依赖注入
type ServiceContainer struct {
	SessionService     *SessionService
	PlayingCardService *PlayingCardService
	PackService        *PackService
	ShopService        *ShopService
	EffectResolver     *EffectResolverService

	// SnapshotRepo 可选依赖：为 nil 时商店快照持久化不可用
	SnapshotRepo interfaces.ShopSnapshotRepository
}

// NewServiceContainer 创建服务容器
func NewServiceContainer(sessionTTL time.Duration, snapshotRepo interfaces.ShopSnapshotRepository, logger log.Logger) *ServiceContainer {
	if logger == nil {
		logger = log.GetLogger()
	}

	c := &ServiceContainer{SnapshotRepo: snapshotRepo}
	c.SessionService = NewSessionService(sessionTTL, logger)
	c.PlayingCardService = NewPlayingCardService(DefaultCardProbabilities)
	c.PackService = NewPackService(c.PlayingCardService, logger)
	c.ShopService = NewShopService(c.PackService, c.PlayingCardService, logger)
	c.EffectResolver = NewEffectResolverService(logger)
	return c
}
