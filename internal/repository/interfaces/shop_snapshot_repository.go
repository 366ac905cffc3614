package interfaces

import (
	"context"
	"time"
)

// ShopSnapshotRepository 商店快照存取
// 载荷是序列化后的完整快照字节，仓储层不理解其结构
type ShopSnapshotRepository interface {
	// Save 保存会话的商店快照
	Save(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) error
	// Load 读取快照；不存在时返回 CodeResourceNotFound 业务错误
	Load(ctx context.Context, sessionID string) ([]byte, error)
	// Delete 删除快照
	Delete(ctx context.Context, sessionID string) error
}
