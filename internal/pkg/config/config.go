package config

import "time"

// ServerConfig 游戏服务器配置
// 优先级：环境变量 > 默认值
type ServerConfig struct {
	Environment string // development / production
	HTTPPort    int

	// Redis（商店快照持久化，可选）
	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int

	// NATS（游戏事件通知，可选）
	NatsAddress string

	// 会话
	SessionTTL time.Duration
}

// LoadServerConfig 从环境变量加载服务器配置
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		Environment: GetEnvOrDefault("ENVIRONMENT", "development"),
		HTTPPort:    GetEnvIntOrDefault("HTTP_PORT", 8080),

		RedisHost:     GetEnvOrDefault("REDIS_HOST", ""),
		RedisPort:     GetEnvIntOrDefault("REDIS_PORT", 6379),
		RedisPassword: GetEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       GetEnvIntOrDefault("REDIS_DB", 0),

		NatsAddress: GetEnvOrDefault("NATS_ADDRESS", ""),

		SessionTTL: time.Duration(GetEnvIntOrDefault("SESSION_TTL_MINUTES", 120)) * time.Minute,
	}
}
