package game

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/nats-io/nats.go"

	custommiddleware "xiaochou-self/internal/middleware"
	"xiaochou-self/internal/modules/game/handler"
	"xiaochou-self/internal/modules/game/service"
	"xiaochou-self/internal/modules/game/tasks"
	"xiaochou-self/internal/pkg/config"
	"xiaochou-self/internal/pkg/i18n"
	"xiaochou-self/internal/pkg/log"
	"xiaochou-self/internal/pkg/metrics"
	"xiaochou-self/internal/pkg/notify"
	redisclient "xiaochou-self/internal/pkg/redis"
	"xiaochou-self/internal/pkg/response"
	"xiaochou-self/internal/pkg/trace"
	"xiaochou-self/internal/pkg/validator"
	"xiaochou-self/internal/repository/impl"
	"xiaochou-self/internal/repository/interfaces"
)

// GameModule 游戏服务模块：装配 HTTP 服务器、服务容器与定时任务
type GameModule struct {
	cfg               *config.ServerConfig
	redis             *redisclient.Client
	natsConn          *nats.Conn
	httpServer        *echo.Echo
	serviceContainer  *service.ServiceContainer
	sessionHandler    *handler.SessionHandler
	shopHandler       *handler.ShopHandler
	consumableHandler *handler.ConsumableHandler
	packHandler       *handler.PackHandler
	cleanupTask       *tasks.SessionCleanupTask
	respWriter        response.Writer
}

// NewGameModule 创建游戏服务模块
func NewGameModule(cfg *config.ServerConfig) *GameModule {
	return &GameModule{cfg: cfg}
}

// Init 初始化模块（分阶段装配，任一必需阶段失败即返回错误）
func (m *GameModule) Init() error {
	metrics.SetServiceName("game")
	logger := log.GetLogger()

	// 1. Redis（可选：未配置时商店快照持久化不可用）
	var snapshotRepo interfaces.ShopSnapshotRepository
	if m.cfg.RedisHost != "" {
		client, err := redisclient.NewClient(redisclient.Config{
			Host:     m.cfg.RedisHost,
			Port:     m.cfg.RedisPort,
			Password: m.cfg.RedisPassword,
			DB:       m.cfg.RedisDB,
		}, metrics.GetServiceName())
		if err != nil {
			return fmt.Errorf("连接 Redis 失败: %w", err)
		}
		m.redis = client
		snapshotRepo = impl.NewShopSnapshotRepository(client)
		logger.Info("Redis 已连接", "host", m.cfg.RedisHost, "port", m.cfg.RedisPort, "db", m.cfg.RedisDB)
	} else {
		logger.Info("未配置 Redis，商店快照持久化不可用")
	}

	// 2. NATS（可选：未配置时游戏事件通知静默降级）
	if m.cfg.NatsAddress != "" {
		conn, err := nats.Connect(m.cfg.NatsAddress)
		if err != nil {
			// 事件通知是旁路能力，连接失败不阻塞启动
			logger.Warn("连接 NATS 失败，游戏事件通知不可用", "address", m.cfg.NatsAddress, "error", err.Error())
		} else {
			m.natsConn = conn
			notify.SetNatsConn(conn)
			logger.Info("NATS 已连接", "address", m.cfg.NatsAddress)
		}
	}

	// 3. 响应处理器
	m.respWriter = response.NewResponseHandler(logger, m.cfg.Environment)

	// 4. HTTP 服务器与中间件
	m.initHTTPServer(logger)

	// 5. 服务与定时任务（会话处理器依赖清理任务删除快照，先于处理器创建）
	m.serviceContainer = service.NewServiceContainer(m.cfg.SessionTTL, snapshotRepo, logger)
	m.cleanupTask = tasks.NewSessionCleanupTask(m.serviceContainer.SessionService, snapshotRepo, logger)

	// 6. 处理器
	m.sessionHandler = handler.NewSessionHandler(m.serviceContainer, m.cleanupTask, m.respWriter)
	m.shopHandler = handler.NewShopHandler(m.serviceContainer, m.respWriter)
	m.consumableHandler = handler.NewConsumableHandler(m.serviceContainer, m.respWriter)
	m.packHandler = handler.NewPackHandler(m.serviceContainer, m.respWriter)

	// 7. 路由
	m.setupRoutes()

	// 8. 启动定时任务
	m.cleanupTask.Start()

	return nil
}

// initHTTPServer 初始化 HTTP 服务器
func (m *GameModule) initHTTPServer(logger log.Logger) {
	m.httpServer = echo.New()
	m.httpServer.HideBanner = true
	m.httpServer.HidePort = true
	m.httpServer.Validator = validator.New()

	// ========== 中间件配置（顺序很重要！） ==========

	// 1. TraceID 中间件 - 最先执行，生成或提取 TraceID
	m.httpServer.Use(trace.Middleware())

	// 2. Metrics 中间件 - 记录 HTTP 指标（Prometheus）
	m.httpServer.Use(metrics.EchoMiddleware())

	// 3. i18n 中间件 - 语言检测和设置
	m.httpServer.Use(i18n.Middleware())

	// 4. Logging 中间件 - 记录请求日志（依赖 TraceID）
	loggingConfig := custommiddleware.DefaultLoggingConfig()
	if m.cfg.Environment == "development" {
		loggingConfig.DetailedLog = true
		loggingConfig.LogRequestBody = true
	}
	m.httpServer.Use(custommiddleware.LoggingMiddlewareWithConfig(logger, loggingConfig))

	// 5. Recovery 中间件 - 捕获 panic
	m.httpServer.Use(custommiddleware.RecoveryMiddleware(m.respWriter, logger))

	// 6. Error 中间件 - 统一错误处理
	m.httpServer.Use(custommiddleware.ErrorMiddleware(m.respWriter, logger))

	// 7. RateLimit 中间件 - IP 级限流
	m.httpServer.Use(custommiddleware.RateLimitMiddleware())

	// 8. CORS 中间件
	m.httpServer.Use(echomiddleware.CORS())
}

// setupRoutes 配置 HTTP 路由
func (m *GameModule) setupRoutes() {
	v1 := m.httpServer.Group("/api/v1")
	game := v1.Group("/game")
	{
		// 会话管理
		sessions := game.Group("/sessions")
		{
			sessions.POST("", m.sessionHandler.CreateSession)                // 创建会话
			sessions.GET("/:session_id", m.sessionHandler.GetSessionState)   // 查询会话状态
			sessions.DELETE("/:session_id", m.sessionHandler.DeleteSession)  // 结束会话
		}

		// 商店
		shop := game.Group("/shop")
		{
			shop.POST("/enter", m.shopHandler.EnterShop)                        // 进入商店（补货）
			shop.POST("/buy", m.shopHandler.BuyItem)                            // 购买物品
			shop.POST("/reroll", m.shopHandler.RerollShop)                      // 刷新商店
			shop.POST("/sell/joker", m.shopHandler.SellJoker)                   // 卖出小丑牌
			shop.POST("/sell/consumable", m.shopHandler.SellConsumable)         // 卖出消耗牌
			shop.GET("/vouchers", m.shopHandler.ListVouchers)                   // 查询优惠券
			shop.POST("/snapshot", m.shopHandler.SaveShopSnapshot)              // 保存商店快照
			shop.POST("/snapshot/restore", m.shopHandler.RestoreShopSnapshot)   // 恢复商店快照
		}

		// 消耗牌
		consumables := game.Group("/consumables")
		{
			consumables.POST("/use", m.consumableHandler.UseConsumable) // 使用消耗牌
			consumables.GET("/catalog", m.consumableHandler.GetCatalog) // 查询目录
		}

		// 补充包
		packs := game.Group("/packs")
		{
			packs.GET("", m.packHandler.ListPacks)         // 查询补充包目录
			packs.POST("/open", m.packHandler.OpenPack)    // 开包
		}
	}

	// Health check
	m.httpServer.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status": "ok",
			"module": "game",
		})
	})

	// Prometheus metrics endpoint
	m.httpServer.GET("/metrics", metrics.EchoHandler())
}

// Start 启动 HTTP 服务器（阻塞）
func (m *GameModule) Start() error {
	log.Info("游戏服务器启动", "port", m.cfg.HTTPPort, "environment", m.cfg.Environment)
	return m.httpServer.Start(fmt.Sprintf(":%d", m.cfg.HTTPPort))
}

// Shutdown 优雅关闭
func (m *GameModule) Shutdown(ctx context.Context) {
	if m.cleanupTask != nil {
		m.cleanupTask.Stop()
	}

	if m.httpServer != nil {
		if err := m.httpServer.Shutdown(ctx); err != nil {
			log.Error("关闭 HTTP 服务器失败", err)
		}
	}

	if m.natsConn != nil {
		m.natsConn.Close()
	}

	if m.redis != nil {
		if err := m.redis.Close(); err != nil {
			log.Error("关闭 Redis 连接失败", err)
		}
	}

	log.Info("游戏服务器已关闭")
}
