package cardmodel

// PackType 补充包类型
type PackType string

const (
	PackStandard  PackType = "standard"  // 标准包：游戏牌
	PackArcana    PackType = "arcana"    // 秘术包：塔罗牌
	PackCelestial PackType = "celestial" // 天体包：星球牌
	PackBuffoon   PackType = "buffoon"   // 滑稽包：小丑牌
	PackSpectral  PackType = "spectral"  // 幻灵包：幻灵牌
)

// AllPackTypes 全部包类型，顺序固定
var AllPackTypes = []PackType{PackStandard, PackArcana, PackCelestial, PackBuffoon, PackSpectral}

// PackSize 补充包规格
type PackSize string

const (
	SizeNormal PackSize = "normal"
	SizeJumbo  PackSize = "jumbo"
	SizeMega   PackSize = "mega"
)

// AllPackSizes 全部规格，顺序固定
var AllPackSizes = []PackSize{SizeNormal, SizeJumbo, SizeMega}

// BoosterPack 补充包描述符
// Cost/Choices/SelectCount 由 (Type, Size) 的固定表决定，不做公式计算
type BoosterPack struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        PackType `json:"type"`
	Size        PackSize `json:"size"`
	Cost        int      `json:"cost"`
	Choices     int      `json:"choices"`
	SelectCount int      `json:"select_count"`
}
