package handler

import (
	"github.com/labstack/echo/v4"

	"xiaochou-self/internal/model/cardmodel"
	"xiaochou-self/internal/modules/game/service"
	"xiaochou-self/internal/modules/game/tasks"
	"xiaochou-self/internal/pkg/response"
	"xiaochou-self/internal/pkg/xerrors"
)

// SessionHandler 游戏会话处理器
type SessionHandler struct {
	services    *service.ServiceContainer
	cleanupTask *tasks.SessionCleanupTask
	respWriter  response.Writer
}

// NewSessionHandler 创建游戏会话处理器
// cleanupTask 用于在会话结束时同步删除对应的商店快照
func NewSessionHandler(services *service.ServiceContainer, cleanupTask *tasks.SessionCleanupTask, respWriter response.Writer) *SessionHandler {
	return &SessionHandler{
		services:    services,
		cleanupTask: cleanupTask,
		respWriter:  respWriter,
	}
}

// ==================== HTTP Request/Response Models ====================

// CreateSessionResponse 创建会话响应
type CreateSessionResponse struct {
	SessionID string            `json:"session_id"`       // 会话ID
	Money     int               `json:"money"`            // 初始金币
	HandCards []*cardmodel.Card `json:"hand_cards"`       // 初始手牌
	HandSize  int               `json:"hand_size"`        // 手牌上限
	DeckCount int               `json:"deck_count"`       // 剩余牌库数量
}

// SessionStateResponse 会话状态响应
type SessionStateResponse struct {
	SessionID        string            `json:"session_id"`         // 会话ID
	Money            int               `json:"money"`              // 当前金币
	HandCards        []*cardmodel.Card `json:"hand_cards"`         // 手牌
	HandSize         int               `json:"hand_size"`          // 手牌上限
	DeckCount        int               `json:"deck_count"`         // 剩余牌库数量
	Jokers           []*cardmodel.Joker `json:"jokers"`            // 持有的小丑牌
	JokerSlots       int               `json:"joker_slots"`        // 小丑牌栏位
	Consumables      []*ConsumableInfo `json:"consumables"`        // 持有的消耗牌
	ConsumableSlots  int               `json:"consumable_slots"`   // 消耗牌栏位
	HandLevels       map[string]int    `json:"hand_levels"`        // 各牌型等级
	PurchasedVouchers []string         `json:"purchased_vouchers"` // 已购优惠券
	Shop             *ShopInfo         `json:"shop,omitempty"`     // 当前商店（进入后才有）
}

// DeleteSessionResponse 结束会话响应
type DeleteSessionResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"游戏会话已结束"`
}

// ==================== HTTP Handlers ====================

// CreateSession 创建游戏会话
// @Summary 创建游戏会话
// @Description 新建一局游戏：洗标准52张牌组并发初始手牌，返回会话ID。
// @Tags Session
// @Produce json
// @Success 200 {object} response.Response{data=CreateSessionResponse} "成功"
// @Failure 500 {object} response.Response "服务器错误"
// @Router /game/sessions [post]
func (h *SessionHandler) CreateSession(c echo.Context) error {
	session := h.services.SessionService.CreateSession(c.Request().Context())

	resp := &CreateSessionResponse{
		SessionID: session.ID,
		Money:     session.Money,
		HandCards: session.HandCards,
		HandSize:  session.HandSize,
		DeckCount: len(session.Deck),
	}
	return response.EchoOK(c, h.respWriter, resp)
}

// GetSessionState 查询会话状态
// @Summary 查询会话状态
// @Description 返回会话的完整状态：金币、手牌、小丑牌、消耗牌、牌型等级、已购优惠券和当前商店。
// @Tags Session
// @Produce json
// @Param session_id path string true "会话ID"
// @Success 200 {object} response.Response{data=SessionStateResponse} "成功"
// @Failure 404 {object} response.Response "会话不存在或已过期"
// @Router /game/sessions/{session_id} [get]
func (h *SessionHandler) GetSessionState(c echo.Context) error {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		return response.EchoError(c, h.respWriter, xerrors.New(xerrors.CodeInvalidParams, "会话ID不能为空"))
	}

	session, err := h.services.SessionService.GetSession(c.Request().Context(), sessionID)
	if err != nil {
		return response.EchoError(c, h.respWriter, err)
	}

	session.Lock()
	defer session.Unlock()

	resp := &SessionStateResponse{
		SessionID:         session.ID,
		Money:             session.Money,
		HandCards:         session.HandCards,
		HandSize:          session.HandSize,
		DeckCount:         len(session.Deck),
		Jokers:            session.Jokers,
		JokerSlots:        session.JokerSlots,
		Consumables:       make([]*ConsumableInfo, 0, len(session.Consumables)),
		ConsumableSlots:   session.ConsumableSlots,
		HandLevels:        session.HandLevels,
		PurchasedVouchers: session.Vouchers.PurchasedIDs(),
	}
	for _, held := range session.Consumables {
		resp.Consumables = append(resp.Consumables, convertHeldConsumable(held))
	}
	if session.Shop != nil {
		resp.Shop = convertShop(session.Shop)
	}
	return response.EchoOK(c, h.respWriter, resp)
}

// DeleteSession 结束游戏会话
// @Summary 结束游戏会话
// @Description 主动结束并删除游戏会话。
// @Tags Session
// @Produce json
// @Param session_id path string true "会话ID"
// @Success 200 {object} response.Response{data=DeleteSessionResponse} "成功"
// @Router /game/sessions/{session_id} [delete]
func (h *SessionHandler) DeleteSession(c echo.Context) error {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		return response.EchoError(c, h.respWriter, xerrors.New(xerrors.CodeInvalidParams, "会话ID不能为空"))
	}

	h.services.SessionService.DeleteSession(c.Request().Context(), sessionID)
	if h.cleanupTask != nil {
		h.cleanupTask.CleanupSnapshot(c.Request().Context(), sessionID)
	}
	return response.EchoOK(c, h.respWriter, &DeleteSessionResponse{
		Success: true,
		Message: "游戏会话已结束",
	})
}
