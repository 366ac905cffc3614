package impl

import (
	"context"
	"time"

	"xiaochou-self/internal/pkg/redis"
	"xiaochou-self/internal/pkg/xerrors"
	"xiaochou-self/internal/repository/interfaces"
)

const shopSnapshotKeyPrefix = "shop:snapshot:"

// ShopSnapshotRepository 基于 Redis 的商店快照仓储
type ShopSnapshotRepository struct {
	client *redis.Client
}

// NewShopSnapshotRepository 创建商店快照仓储
func NewShopSnapshotRepository(client *redis.Client) interfaces.ShopSnapshotRepository {
	return &ShopSnapshotRepository{client: client}
}

func snapshotKey(sessionID string) string {
	return shopSnapshotKeyPrefix + sessionID
}

// Save 保存快照，带会话TTL
func (r *ShopSnapshotRepository) Save(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) error {
	if err := r.client.SetWithTTL(ctx, snapshotKey(sessionID), payload, ttl); err != nil {
		return xerrors.NewCacheError("save shop snapshot", err)
	}
	return nil
}

// Load 读取快照
func (r *ShopSnapshotRepository) Load(ctx context.Context, sessionID string) ([]byte, error) {
	value, err := r.client.GetString(ctx, snapshotKey(sessionID))
	if err != nil {
		if redis.IsNil(err) {
			return nil, xerrors.New(xerrors.CodeResourceNotFound, "商店快照不存在")
		}
		return nil, xerrors.NewCacheError("load shop snapshot", err)
	}
	return []byte(value), nil
}

// Delete 删除快照
func (r *ShopSnapshotRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.DeleteKey(ctx, snapshotKey(sessionID)); err != nil {
		return xerrors.NewCacheError("delete shop snapshot", err)
	}
	return nil
}
