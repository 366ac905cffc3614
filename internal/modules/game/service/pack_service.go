package service

import (
	"context"
	"fmt"
	"math/rand"

	"xiaochou-self/internal/model/cardmodel"
	"xiaochou-self/internal/pkg/log"
	"xiaochou-self/internal/pkg/metrics"
	"xiaochou-self/internal/pkg/notify"
	"xiaochou-self/internal/pkg/xerrors"
)

// packTypeNames 包类型中文名
var packTypeNames = map[cardmodel.PackType]string{
	cardmodel.PackStandard:  "标准包",
	cardmodel.PackArcana:    "秘术包",
	cardmodel.PackCelestial: "天体包",
	cardmodel.PackBuffoon:   "滑稽包",
	cardmodel.PackSpectral:  "幻灵包",
}

// packSizeNames 包规格中文名
var packSizeNames = map[cardmodel.PackSize]string{
	cardmodel.SizeNormal: "",
	cardmodel.SizeJumbo:  "巨型",
	cardmodel.SizeMega:   "超级",
}

// packRow 固定价格/张数表的一行
type packRow struct {
	cost           int
	choices        int
	reducedChoices int // buffoon/spectral 使用
	selectCount    int
}

// packTable 按规格索引的固定表，不做公式计算
var packTable = map[cardmodel.PackSize]packRow{
	cardmodel.SizeNormal: {cost: 4, choices: 3, reducedChoices: 2, selectCount: 1},
	cardmodel.SizeJumbo:  {cost: 6, choices: 5, reducedChoices: 4, selectCount: 1},
	cardmodel.SizeMega:   {cost: 8, choices: 5, reducedChoices: 4, selectCount: 2},
}

// GetPack 按 (类型, 规格) 返回补充包描述符
func GetPack(packType cardmodel.PackType, size cardmodel.PackSize) (cardmodel.BoosterPack, error) {
	row, ok := packTable[size]
	if !ok {
		return cardmodel.BoosterPack{}, xerrors.New(xerrors.CodePackTypeInvalid, "补充包规格无效: "+string(size))
	}
	typeName, ok := packTypeNames[packType]
	if !ok {
		return cardmodel.BoosterPack{}, xerrors.New(xerrors.CodePackTypeInvalid, "补充包类型无效: "+string(packType))
	}
	choices := row.choices
	if packType == cardmodel.PackBuffoon || packType == cardmodel.PackSpectral {
		choices = row.reducedChoices
	}
	return cardmodel.BoosterPack{
		ID:          fmt.Sprintf("pack_%s_%s", packType, size),
		Name:        packSizeNames[size] + typeName,
		Description: fmt.Sprintf("开出%d张，选择%d张", choices, row.selectCount),
		Type:        packType,
		Size:        size,
		Cost:        row.cost,
		Choices:     choices,
		SelectCount: row.selectCount,
	}, nil
}

// RandomPack 随机抽取一个补充包（规格权重 normal 4 / jumbo 2 / mega 1）
func RandomPack() cardmodel.BoosterPack {
	packType := cardmodel.AllPackTypes[rand.Intn(len(cardmodel.AllPackTypes))]
	sizes := []cardmodel.PackSize{
		cardmodel.SizeNormal, cardmodel.SizeNormal, cardmodel.SizeNormal, cardmodel.SizeNormal,
		cardmodel.SizeJumbo, cardmodel.SizeJumbo,
		cardmodel.SizeMega,
	}
	pack, _ := GetPack(packType, sizes[rand.Intn(len(sizes))])
	return pack
}

// PackContent 补充包开出的单个内容
type PackContent struct {
	Kind       string              `json:"kind"` // card / joker / consumable
	Card       *cardmodel.Card     `json:"card,omitempty"`
	Joker      *cardmodel.Joker    `json:"joker,omitempty"`
	Consumable *ShopConsumableView `json:"consumable,omitempty"`
}

// PackService 补充包内容生成器
type PackService struct {
	cardService *PlayingCardService
	logger      log.Logger
}

// NewPackService 创建补充包服务
func NewPackService(cardService *PlayingCardService, logger log.Logger) *PackService {
	if logger == nil {
		logger = log.GetLogger()
	}
	return &PackService{
		cardService: cardService,
		logger:      logger.With("component", "pack_service"),
	}
}

// GeneratePackContents 生成补充包的全部展示内容（恰好 Choices 个）
// 展示后的选择属于下游关注点，这里不处理 SelectCount
func (s *PackService) GeneratePackContents(ctx context.Context, session *GameSession, pack cardmodel.BoosterPack) ([]*PackContent, error) {
	var contents []*PackContent

	switch pack.Type {
	case cardmodel.PackStandard:
		contents = s.generateStandardContents(pack.Choices)
	case cardmodel.PackArcana:
		contents = s.generateConsumableContents(CategoryTarot, pack.Choices)
	case cardmodel.PackCelestial:
		contents = s.generateCelestialContents(session, pack.Choices)
	case cardmodel.PackSpectral:
		contents = s.generateConsumableContents(CategorySpectral, pack.Choices)
	case cardmodel.PackBuffoon:
		contents = s.generateBuffoonContents(session, pack.Choices)
	default:
		return nil, xerrors.New(xerrors.CodePackTypeInvalid, "补充包类型无效: "+string(pack.Type))
	}

	// 与包类型正交的"幻觉"判定：持有对应小丑牌时有一半概率附赠1张塔罗牌
	if session.HasHallucination() && rand.Float64() < 0.5 {
		id := RandomConsumableID(CategoryTarot, false, nil)
		if view, err := consumableViewByID(id); err == nil {
			contents = append(contents, &PackContent{Kind: "consumable", Consumable: view})
		}
	}

	metrics.DefaultBusinessMetrics.IncPackOpened(string(pack.Type), metrics.GetServiceName())
	if err := notify.PublishGameEvent(ctx, notify.SubjectPackOpened, map[string]any{
		"session_id": session.ID,
		"pack_type":  string(pack.Type),
		"pack_size":  string(pack.Size),
		"contents":   len(contents),
	}); err != nil {
		s.logger.WarnContext(ctx, "publish pack opened event failed", log.String("error", err.Error()))
	}

	return contents, nil
}

// generateStandardContents 标准包：带独立修饰判定的游戏牌
func (s *PackService) generateStandardContents(count int) []*PackContent {
	contents := make([]*PackContent, 0, count)
	for i := 0; i < count; i++ {
		contents = append(contents, &PackContent{Kind: "card", Card: s.cardService.GenerateModified()})
	}
	return contents
}

// generateConsumableContents 目录抽取，同包内排重
func (s *PackService) generateConsumableContents(category ConsumableCategory, count int) []*PackContent {
	contents := make([]*PackContent, 0, count)
	drawn := make(map[string]bool, count)
	for i := 0; i < count; i++ {
		id := RandomConsumableID(category, true, drawn)
		drawn[id] = true
		view, err := consumableViewByID(id)
		if err != nil {
			continue
		}
		contents = append(contents, &PackContent{Kind: "consumable", Consumable: view})
	}
	return contents
}

// generateCelestialContents 天体包
// 望远镜券生效且存在全局最常用牌型时，第一张强制为对应星球牌，其余抽取排重
func (s *PackService) generateCelestialContents(session *GameSession, count int) []*PackContent {
	contents := make([]*PackContent, 0, count)
	drawn := make(map[string]bool, count)

	if session.Vouchers.IsActive(cardmodel.VoucherTelescope) {
		if mostPlayed := session.MostPlayedHandType(); mostPlayed != "" {
			if id, ok := PlanetIDForHandType(mostPlayed); ok {
				if view, err := consumableViewByID(id); err == nil {
					contents = append(contents, &PackContent{Kind: "consumable", Consumable: view})
					drawn[id] = true
				}
			}
		}
	}

	for len(contents) < count {
		id := RandomConsumableID(CategoryPlanet, true, drawn)
		drawn[id] = true
		view, err := consumableViewByID(id)
		if err != nil {
			continue
		}
		contents = append(contents, &PackContent{Kind: "consumable", Consumable: view})
	}
	return contents
}

// generateBuffoonContents 滑稽包：排除玩家已持有及商店未售出的小丑牌
func (s *PackService) generateBuffoonContents(session *GameSession, count int) []*PackContent {
	exclude := session.OwnedJokerTemplateIDs()
	if session.Shop != nil {
		for _, item := range session.Shop.Items {
			if item.Sold || item.Category != cardmodel.CategoryJoker {
				continue
			}
			if joker, ok := item.Item.(*cardmodel.Joker); ok {
				exclude[joker.TemplateID] = true
			}
		}
	}

	contents := make([]*PackContent, 0, count)
	for i := 0; i < count; i++ {
		tpl := randomJokerTemplateExcluding(exclude)
		exclude[tpl.TemplateID] = true
		contents = append(contents, &PackContent{Kind: "joker", Joker: InstantiateJoker(tpl, cardmodel.EditionNone)})
	}
	return contents
}
