package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"xiaochou-self/internal/modules/game"
	"xiaochou-self/internal/pkg/config"
	"xiaochou-self/internal/pkg/log"
)

func main() {
	// 1. 加载配置
	cfg := config.LoadServerConfig()

	// 2. 初始化日志
	level := slog.LevelInfo
	if cfg.Environment == "development" {
		level = slog.LevelDebug
	}
	log.Init(level, cfg.Environment)

	// 3. 装配游戏模块
	module := game.NewGameModule(cfg)
	if err := module.Init(); err != nil {
		log.Error("游戏模块初始化失败", err)
		os.Exit(1)
	}

	// 4. 启动 HTTP 服务器
	errCh := make(chan error, 1)
	go func() {
		if err := module.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// 5. 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("HTTP 服务器异常退出", err)
	case sig := <-quit:
		log.Info("收到退出信号", "signal", sig.String())
	}

	// 6. 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	module.Shutdown(ctx)
}
