package handler

import (
	"github.com/labstack/echo/v4"

	"xiaochou-self/internal/modules/game/service"
	"xiaochou-self/internal/pkg/response"
	"xiaochou-self/internal/pkg/xerrors"
)

// ConsumableHandler 消耗牌处理器
type ConsumableHandler struct {
	services   *service.ServiceContainer
	respWriter response.Writer
}

// NewConsumableHandler 创建消耗牌处理器
func NewConsumableHandler(services *service.ServiceContainer, respWriter response.Writer) *ConsumableHandler {
	return &ConsumableHandler{
		services:   services,
		respWriter: respWriter,
	}
}

// ==================== HTTP Request/Response Models ====================

// UseConsumableRequest 使用消耗牌请求
type UseConsumableRequest struct {
	SessionID       string `json:"session_id" validate:"required"` // 会话ID（必填）
	Index           int    `json:"index" validate:"min=0"`         // 消耗牌栏位下标
	SelectedIndexes []int  `json:"selected_indexes"`               // 选中的手牌下标（可为空）
}

// UseConsumableResponse 使用消耗牌响应
type UseConsumableResponse struct {
	Success            bool   `json:"success"`             // 是否生效
	Message            string `json:"message"`             // 效果描述
	Money              int    `json:"money"`               // 结算后金币
	DestroyedCount     int    `json:"destroyed_count"`     // 被摧毁的手牌数
	NewCardCount       int    `json:"new_card_count"`      // 新增的手牌数
	SkippedConsumables int    `json:"skipped_consumables"` // 因栏位已满未放入的新消耗牌数
	CopyDepth          int    `json:"copy_depth"`          // 复制链深度
}

// CatalogEntry 目录条目
type CatalogEntry struct {
	ID            string `json:"id"`             // 目录ID
	Name          string `json:"name"`           // 名称
	Description   string `json:"description"`    // 描述
	Category      string `json:"category"`       // 类别
	Cost          int    `json:"cost"`           // 印刷价
	UseCondition  string `json:"use_condition"`  // 使用条件描述
	IsNegative    bool   `json:"is_negative"`    // 负片
	PackExclusive bool   `json:"pack_exclusive"` // 仅补充包掉落
}

// GetCatalogResponse 目录查询响应
type GetCatalogResponse struct {
	Entries []*CatalogEntry `json:"entries"` // 目录条目
	Total   int             `json:"total"`   // 条目数
}

// ==================== HTTP Handlers ====================

// UseConsumable 使用持有的消耗牌
// @Summary 使用持有的消耗牌
// @Description 使用指定栏位的消耗牌，可附带选中的手牌下标。使用成功后消耗牌被移除；愚者会复制上一张使用的塔罗/星球牌。
// @Tags Consumable
// @Accept json
// @Produce json
// @Param request body UseConsumableRequest true "使用请求"
// @Success 200 {object} response.Response{data=UseConsumableResponse} "成功（含使用条件不满足的业务失败）"
// @Failure 400 {object} response.Response "参数错误/选牌下标越界"
// @Failure 404 {object} response.Response "会话不存在或已过期"
// @Router /game/consumables/use [post]
func (h *ConsumableHandler) UseConsumable(c echo.Context) error {
	// 1. 解析并验证请求
	var req UseConsumableRequest
	if err := c.Bind(&req); err != nil {
		return response.EchoError(c, h.respWriter, xerrors.New(xerrors.CodeInvalidParams, "请求参数格式错误"))
	}
	if err := c.Validate(&req); err != nil {
		return response.EchoError(c, h.respWriter, xerrors.New(xerrors.CodeInvalidParams, "请求参数验证失败"))
	}

	// 2. 取会话
	session, err := h.services.SessionService.GetSession(c.Request().Context(), req.SessionID)
	if err != nil {
		return response.EchoError(c, h.respWriter, err)
	}

	// 3. 结算效果
	session.Lock()
	defer session.Unlock()
	outcome, err := h.services.EffectResolver.UseHeldConsumable(c.Request().Context(), session, req.Index, req.SelectedIndexes)
	if err != nil {
		return response.EchoError(c, h.respWriter, err)
	}

	// 4. 构建响应（效果失败不算 HTTP 错误，原样带回消息）
	return response.EchoOK(c, h.respWriter, &UseConsumableResponse{
		Success:            outcome.Success,
		Message:            outcome.Message,
		Money:              session.Money,
		DestroyedCount:     outcome.DestroyedCount,
		NewCardCount:       outcome.NewCardCount,
		SkippedConsumables: outcome.SkippedConsumables,
		CopyDepth:          outcome.CopyDepth,
	})
}

// GetCatalog 查询消耗牌目录
// @Summary 查询消耗牌目录
// @Description 按类别查询消耗牌目录（tarot/planet/spectral），默认不含仅补充包掉落的条目。
// @Tags Consumable
// @Produce json
// @Param category query string true "类别(tarot/planet/spectral)"
// @Param include_pack_exclusive query bool false "是否包含仅补充包掉落的条目"
// @Success 200 {object} response.Response{data=GetCatalogResponse} "成功"
// @Failure 400 {object} response.Response "参数错误"
// @Router /game/consumables/catalog [get]
func (h *ConsumableHandler) GetCatalog(c echo.Context) error {
	category := service.ConsumableCategory(c.QueryParam("category"))
	switch category {
	case service.CategoryTarot, service.CategoryPlanet, service.CategorySpectral:
	default:
		return response.EchoError(c, h.respWriter, xerrors.New(xerrors.CodeInvalidParams, "类别必须是 tarot/planet/spectral 之一"))
	}
	includePackExclusive := c.QueryParam("include_pack_exclusive") == "true"

	ids := service.ConsumableIDsByCategory(category, includePackExclusive)
	resp := &GetCatalogResponse{Entries: make([]*CatalogEntry, 0, len(ids))}
	for _, id := range ids {
		consumable, err := service.GetConsumable(id)
		if err != nil {
			return response.EchoError(c, h.respWriter, err)
		}
		resp.Entries = append(resp.Entries, &CatalogEntry{
			ID:            consumable.ID,
			Name:          consumable.Name,
			Description:   consumable.Description,
			Category:      string(consumable.Category),
			Cost:          consumable.Cost,
			UseCondition:  consumable.UseCondition,
			IsNegative:    consumable.IsNegative,
			PackExclusive: consumable.PackExclusive,
		})
	}
	resp.Total = len(resp.Entries)
	return response.EchoOK(c, h.respWriter, resp)
}
