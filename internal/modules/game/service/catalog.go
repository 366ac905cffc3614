package service

import (
	"math/rand"
	"sync"

	"xiaochou-self/internal/pkg/xerrors"
)

var (
	catalogOnce  sync.Once
	catalogByID  map[string]*Consumable
	catalogOrder []string
)

// buildCatalog 汇总三类目录，按ID建立索引
// 注册顺序固定：塔罗 → 星球 → 幻灵
func buildCatalog() {
	catalogByID = make(map[string]*Consumable, 64)
	catalogOrder = make([]string, 0, 64)
	for _, entries := range [][]*Consumable{tarotCatalog(), planetCatalog(), spectralCatalog()} {
		for _, entry := range entries {
			catalogByID[entry.ID] = entry
			catalogOrder = append(catalogOrder, entry.ID)
		}
	}
}

// lookupTemplate 返回目录中的规范模板（不复制，仅供内部读取）
func lookupTemplate(id string) (*Consumable, bool) {
	catalogOnce.Do(buildCatalog)
	entry, ok := catalogByID[id]
	return entry, ok
}

// GetConsumable 按ID取出消耗牌的独立副本
// 目录ID不存在属于数据完整性错误，不是玩家可见的失败
func GetConsumable(id string) (*Consumable, error) {
	template, ok := lookupTemplate(id)
	if !ok {
		return nil, xerrors.New(xerrors.CodeDataIntegrityError, "消耗牌目录中不存在该ID: "+id)
	}
	return template.Clone(), nil
}

// ConsumableIDsByCategory 返回指定类别的全部ID（保持注册顺序）
// includePackExclusive 为 false 时过滤掉仅补充包可见的条目
func ConsumableIDsByCategory(category ConsumableCategory, includePackExclusive bool) []string {
	catalogOnce.Do(buildCatalog)
	ids := make([]string, 0, 32)
	for _, id := range catalogOrder {
		entry := catalogByID[id]
		if entry.Category != category {
			continue
		}
		if entry.PackExclusive && !includePackExclusive {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// RandomConsumableID 随机抽取指定类别的一个ID，排除给定集合
// 池被排空时回退为不排除的抽取
func RandomConsumableID(category ConsumableCategory, includePackExclusive bool, exclude map[string]bool) string {
	ids := ConsumableIDsByCategory(category, includePackExclusive)
	pool := make([]string, 0, len(ids))
	for _, id := range ids {
		if !exclude[id] {
			pool = append(pool, id)
		}
	}
	if len(pool) == 0 {
		pool = ids
	}
	return pool[rand.Intn(len(pool))]
}

// CatalogSize 目录条目总数
func CatalogSize() int {
	catalogOnce.Do(buildCatalog)
	return len(catalogOrder)
}
