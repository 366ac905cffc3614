package handler

import (
	"github.com/labstack/echo/v4"

	"xiaochou-self/internal/model/cardmodel"
	"xiaochou-self/internal/modules/game/service"
	"xiaochou-self/internal/pkg/response"
	"xiaochou-self/internal/pkg/xerrors"
)

// PackHandler 补充包处理器
type PackHandler struct {
	services   *service.ServiceContainer
	respWriter response.Writer
}

// NewPackHandler 创建补充包处理器
func NewPackHandler(services *service.ServiceContainer, respWriter response.Writer) *PackHandler {
	return &PackHandler{
		services:   services,
		respWriter: respWriter,
	}
}

// ==================== HTTP Request/Response Models ====================

// ListPacksResponse 补充包目录响应
type ListPacksResponse struct {
	Packs []cardmodel.BoosterPack `json:"packs"` // 全部类型×规格组合
	Total int                     `json:"total"` // 组合数
}

// OpenPackRequest 开包请求
type OpenPackRequest struct {
	SessionID string `json:"session_id" validate:"required"`                                              // 会话ID（必填）
	PackType  string `json:"pack_type" validate:"required,oneof=standard arcana celestial buffoon spectral"` // 包类型（必填）
	PackSize  string `json:"pack_size" validate:"required,oneof=normal jumbo mega"`                       // 包规格（必填）
}

// OpenPackResponse 开包响应
type OpenPackResponse struct {
	Pack     cardmodel.BoosterPack `json:"pack"`     // 包定义
	Contents []*PackContentInfo    `json:"contents"` // 开出的候选内容
}

// ==================== HTTP Handlers ====================

// ListPacks 查询补充包目录
// @Summary 查询补充包目录
// @Description 返回全部补充包类型与规格的组合及其费用、候选数和可选数。
// @Tags Pack
// @Produce json
// @Success 200 {object} response.Response{data=ListPacksResponse} "成功"
// @Router /game/packs [get]
func (h *PackHandler) ListPacks(c echo.Context) error {
	resp := &ListPacksResponse{
		Packs: make([]cardmodel.BoosterPack, 0, len(cardmodel.AllPackTypes)*len(cardmodel.AllPackSizes)),
	}
	for _, packType := range cardmodel.AllPackTypes {
		for _, size := range cardmodel.AllPackSizes {
			pack, err := service.GetPack(packType, size)
			if err != nil {
				return response.EchoError(c, h.respWriter, err)
			}
			resp.Packs = append(resp.Packs, pack)
		}
	}
	resp.Total = len(resp.Packs)
	return response.EchoOK(c, h.respWriter, resp)
}

// OpenPack 开补充包
// @Summary 开补充包
// @Description 按类型和规格生成补充包内容并返回候选列表。内容生成考虑会话状态：望远镜券使天体包必含最常用牌型的星球牌，持有幻觉小丑时有概率附赠额外塔罗牌。
// @Tags Pack
// @Accept json
// @Produce json
// @Param request body OpenPackRequest true "开包请求"
// @Success 200 {object} response.Response{data=OpenPackResponse} "成功"
// @Failure 400 {object} response.Response "参数错误/包类型无效"
// @Failure 404 {object} response.Response "会话不存在或已过期"
// @Router /game/packs/open [post]
func (h *PackHandler) OpenPack(c echo.Context) error {
	// 1. 解析并验证请求
	var req OpenPackRequest
	if err := c.Bind(&req); err != nil {
		return response.EchoError(c, h.respWriter, xerrors.New(xerrors.CodeInvalidParams, "请求参数格式错误"))
	}
	if err := c.Validate(&req); err != nil {
		return response.EchoError(c, h.respWriter, xerrors.New(xerrors.CodeInvalidParams, "请求参数验证失败"))
	}

	// 2. 取会话与包定义
	session, err := h.services.SessionService.GetSession(c.Request().Context(), req.SessionID)
	if err != nil {
		return response.EchoError(c, h.respWriter, err)
	}
	pack, err := service.GetPack(cardmodel.PackType(req.PackType), cardmodel.PackSize(req.PackSize))
	if err != nil {
		return response.EchoError(c, h.respWriter, err)
	}

	// 3. 生成内容
	session.Lock()
	defer session.Unlock()
	contents, err := h.services.PackService.GeneratePackContents(c.Request().Context(), session, pack)
	if err != nil {
		return response.EchoError(c, h.respWriter, err)
	}

	return response.EchoOK(c, h.respWriter, &OpenPackResponse{
		Pack:     pack,
		Contents: convertPackContents(contents),
	})
}
