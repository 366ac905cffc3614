package handler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"xiaochou-self/internal/model/cardmodel"
	"xiaochou-self/internal/modules/game/service"
	"xiaochou-self/internal/pkg/response"
	"xiaochou-self/internal/pkg/xerrors"
)

// 商店快照在 Redis 中的保留时长
const shopSnapshotTTL = 24 * time.Hour

// ShopHandler 商店处理器
type ShopHandler struct {
	services   *service.ServiceContainer
	respWriter response.Writer
}

// NewShopHandler 创建商店处理器
func NewShopHandler(services *service.ServiceContainer, respWriter response.Writer) *ShopHandler {
	return &ShopHandler{
		services:   services,
		respWriter: respWriter,
	}
}

// ==================== HTTP Request/Response Models ====================

// EnterShopRequest 进入商店请求
type EnterShopRequest struct {
	SessionID string `json:"session_id" validate:"required"` // 会话ID（必填）
}

// EnterShopResponse 进入商店响应
type EnterShopResponse struct {
	Shop  *ShopInfo `json:"shop"`  // 新补货的商店
	Money int       `json:"money"` // 当前金币
}

// BuyItemRequest 购买物品请求
type BuyItemRequest struct {
	SessionID string `json:"session_id" validate:"required"` // 会话ID（必填）
	ItemID    string `json:"item_id" validate:"required"`    // 货架物品ID（必填）
}

// BuyItemResponse 购买物品响应
type BuyItemResponse struct {
	Message        string             `json:"message"`                 // 购买结果描述
	RemainingMoney int                `json:"remaining_money"`         // 剩余金币
	PackContents   []*PackContentInfo `json:"pack_contents,omitempty"` // 补充包开出的内容
	Shop           *ShopInfo          `json:"shop"`                    // 购买后的商店
}

// RerollShopRequest 刷新商店请求
type RerollShopRequest struct {
	SessionID string `json:"session_id" validate:"required"` // 会话ID（必填）
}

// RerollShopResponse 刷新商店响应
type RerollShopResponse struct {
	Message        string    `json:"message"`          // 刷新结果描述
	RemainingMoney int       `json:"remaining_money"`  // 剩余金币
	NextRerollCost int       `json:"next_reroll_cost"` // 下次刷新费用
	Shop           *ShopInfo `json:"shop"`             // 刷新后的商店
}

// SellJokerRequest 卖出小丑牌请求
type SellJokerRequest struct {
	SessionID string `json:"session_id" validate:"required"` // 会话ID（必填）
	JokerID   string `json:"joker_id" validate:"required"`   // 小丑牌实例ID（必填）
}

// SellConsumableRequest 卖出消耗牌请求
type SellConsumableRequest struct {
	SessionID string `json:"session_id" validate:"required"` // 会话ID（必填）
	Index     int    `json:"index" validate:"min=0"`         // 消耗牌栏位下标
}

// SellResponse 卖出响应
type SellResponse struct {
	Message        string `json:"message"`         // 卖出结果描述
	SellPrice      int    `json:"sell_price"`      // 卖出所得
	RemainingMoney int    `json:"remaining_money"` // 剩余金币
}

// ListVouchersResponse 优惠券列表响应
type ListVouchersResponse struct {
	Available []cardmodel.Voucher `json:"available"` // 当前可购买的优惠券
	Purchased []string            `json:"purchased"` // 已购优惠券ID
}

// SaveShopSnapshotRequest 保存商店快照请求
type SaveShopSnapshotRequest struct {
	SessionID string `json:"session_id" validate:"required"` // 会话ID（必填）
}

// SaveShopSnapshotResponse 保存商店快照响应
type SaveShopSnapshotResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"商店快照已保存"`
}

// RestoreShopSnapshotRequest 恢复商店快照请求
type RestoreShopSnapshotRequest struct {
	SessionID string `json:"session_id" validate:"required"` // 会话ID（必填）
}

// RestoreShopSnapshotResponse 恢复商店快照响应
type RestoreShopSnapshotResponse struct {
	Shop *ShopInfo `json:"shop"` // 恢复后的商店
}

// ==================== HTTP Handlers ====================

// EnterShop 进入商店
// @Summary 进入商店
// @Description 进入新一轮商店：按权重补货卡牌栏位、2个补充包和1张优惠券，刷新费用重置为基础值。
// @Tags Shop
// @Accept json
// @Produce json
// @Param request body EnterShopRequest true "进入商店请求"
// @Success 200 {object} response.Response{data=EnterShopResponse} "成功"
// @Failure 400 {object} response.Response "参数错误"
// @Failure 404 {object} response.Response "会话不存在或已过期"
// @Router /game/shop/enter [post]
func (h *ShopHandler) EnterShop(c echo.Context) error {
	// 1. 解析并验证请求
	var req EnterShopRequest
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

	// 3. 补货
	session.Lock()
	defer session.Unlock()
	shop := h.services.ShopService.EnterShop(c.Request().Context(), session)

	return response.EchoOK(c, h.respWriter, &EnterShopResponse{
		Shop:  convertShop(shop),
		Money: session.Money,
	})
}

// BuyItem 购买商店物品
// @Summary 购买商店物品
// @Description 购买货架上的小丑牌、消耗牌、游戏牌、补充包或优惠券。补充包当场开出内容返回。
// @Tags Shop
// @Accept json
// @Produce json
// @Param request body BuyItemRequest true "购买请求"
// @Success 200 {object} response.Response{data=BuyItemResponse} "成功"
// @Failure 400 {object} response.Response "参数错误/金币不足"
// @Failure 404 {object} response.Response "会话或物品不存在"
// @Router /game/shop/buy [post]
func (h *ShopHandler) BuyItem(c echo.Context) error {
	// 1. 解析并验证请求
	var req BuyItemRequest
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

	// 3. 购买
	session.Lock()
	defer session.Unlock()
	result, err := h.services.ShopService.BuyItem(c.Request().Context(), session, req.ItemID)
	if err != nil {
		return response.EchoError(c, h.respWriter, err)
	}

	// 4. 构建响应
	resp := &BuyItemResponse{
		Message:        result.Message,
		RemainingMoney: result.RemainingMoney,
	}
	if len(result.PackContents) > 0 {
		resp.PackContents = convertPackContents(result.PackContents)
	}
	if session.Shop != nil {
		resp.Shop = convertShop(session.Shop)
	}
	return response.EchoOK(c, h.respWriter, resp)
}

// RerollShop 刷新商店
// @Summary 刷新商店
// @Description 付费重掷卡牌栏位；每次刷新后费用+1，进入下一家商店时重置。
// @Tags Shop
// @Accept json
// @Produce json
// @Param request body RerollShopRequest true "刷新请求"
// @Success 200 {object} response.Response{data=RerollShopResponse} "成功"
// @Failure 400 {object} response.Response "参数错误/金币不足"
// @Failure 404 {object} response.Response "会话不存在或已过期"
// @Router /game/shop/reroll [post]
func (h *ShopHandler) RerollShop(c echo.Context) error {
	// 1. 解析并验证请求
	var req RerollShopRequest
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

	// 3. 刷新
	session.Lock()
	defer session.Unlock()
	result, err := h.services.ShopService.Reroll(c.Request().Context(), session)
	if err != nil {
		return response.EchoError(c, h.respWriter, err)
	}

	resp := &RerollShopResponse{
		Message:        result.Message,
		RemainingMoney: result.RemainingMoney,
		NextRerollCost: result.NextRerollCost,
	}
	if session.Shop != nil {
		resp.Shop = convertShop(session.Shop)
	}
	return response.EchoOK(c, h.respWriter, resp)
}

// SellJoker 卖出小丑牌
// @Summary 卖出小丑牌
// @Description 卖出持有的小丑牌。租赁贴纸固定卖1金币，其余按当前卖价结算。
// @Tags Shop
// @Accept json
// @Produce json
// @Param request body SellJokerRequest true "卖出请求"
// @Success 200 {object} response.Response{data=SellResponse} "成功"
// @Failure 400 {object} response.Response "参数错误/未持有该小丑牌"
// @Router /game/shop/sell/joker [post]
func (h *ShopHandler) SellJoker(c echo.Context) error {
	// 1. 解析并验证请求
	var req SellJokerRequest
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

	// 3. 卖出
	session.Lock()
	defer session.Unlock()
	price, err := h.services.ShopService.SellJoker(c.Request().Context(), session, req.JokerID)
	if err != nil {
		return response.EchoError(c, h.respWriter, err)
	}

	return response.EchoOK(c, h.respWriter, &SellResponse{
		Message:        fmt.Sprintf("卖出小丑牌获得$%d", price),
		SellPrice:      price,
		RemainingMoney: session.Money,
	})
}

// SellConsumable 卖出消耗牌
// @Summary 卖出消耗牌
// @Description 按下标卖出持有的消耗牌，卖价为当前折扣价的一半（向下取整，至少1金币）。
// @Tags Shop
// @Accept json
// @Produce json
// @Param request body SellConsumableRequest true "卖出请求"
// @Success 200 {object} response.Response{data=SellResponse} "成功"
// @Failure 400 {object} response.Response "参数错误/未持有该消耗牌"
// @Router /game/shop/sell/consumable [post]
func (h *ShopHandler) SellConsumable(c echo.Context) error {
	// 1. 解析并验证请求
	var req SellConsumableRequest
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

	// 3. 卖出
	session.Lock()
	defer session.Unlock()
	price, err := h.services.ShopService.SellConsumable(c.Request().Context(), session, req.Index)
	if err != nil {
		return response.EchoError(c, h.respWriter, err)
	}

	return response.EchoOK(c, h.respWriter, &SellResponse{
		Message:        fmt.Sprintf("卖出消耗牌获得$%d", price),
		SellPrice:      price,
		RemainingMoney: session.Money,
	})
}

// ListVouchers 查询优惠券
// @Summary 查询优惠券
// @Description 返回当前可购买的优惠券（每对只露出一张：基础未购出基础，基础已购出升级）和已购清单。
// @Tags Shop
// @Produce json
// @Param session_id query string true "会话ID"
// @Success 200 {object} response.Response{data=ListVouchersResponse} "成功"
// @Failure 404 {object} response.Response "会话不存在或已过期"
// @Router /game/shop/vouchers [get]
func (h *ShopHandler) ListVouchers(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return response.EchoError(c, h.respWriter, xerrors.New(xerrors.CodeInvalidParams, "会话ID不能为空"))
	}

	session, err := h.services.SessionService.GetSession(c.Request().Context(), sessionID)
	if err != nil {
		return response.EchoError(c, h.respWriter, err)
	}

	session.Lock()
	defer session.Unlock()
	return response.EchoOK(c, h.respWriter, &ListVouchersResponse{
		Available: session.Vouchers.GetAvailableVouchers(),
		Purchased: session.Vouchers.PurchasedIDs(),
	})
}

// SaveShopSnapshot 保存商店快照
// @Summary 保存商店快照
// @Description 把当前商店（货架、刷新费用与次数、已购优惠券、新手包标记）序列化到 Redis。
// @Tags Shop
// @Accept json
// @Produce json
// @Param request body SaveShopSnapshotRequest true "保存请求"
// @Success 200 {object} response.Response{data=SaveShopSnapshotResponse} "成功"
// @Failure 400 {object} response.Response "参数错误/当前没有商店"
// @Failure 500 {object} response.Response "缓存服务错误"
// @Router /game/shop/snapshot [post]
func (h *ShopHandler) SaveShopSnapshot(c echo.Context) error {
	// 1. 解析并验证请求
	var req SaveShopSnapshotRequest
	if err := c.Bind(&req); err != nil {
		return response.EchoError(c, h.respWriter, xerrors.New(xerrors.CodeInvalidParams, "请求参数格式错误"))
	}
	if err := c.Validate(&req); err != nil {
		return response.EchoError(c, h.respWriter, xerrors.New(xerrors.CodeInvalidParams, "请求参数验证失败"))
	}
	if h.services.SnapshotRepo == nil {
		return response.EchoError(c, h.respWriter, xerrors.New(xerrors.CodeCacheError, "商店快照持久化未启用"))
	}

	// 2. 取会话并生成快照
	session, err := h.services.SessionService.GetSession(c.Request().Context(), req.SessionID)
	if err != nil {
		return response.EchoError(c, h.respWriter, err)
	}

	session.Lock()
	snapshot, err := h.services.ShopService.Snapshot(session)
	session.Unlock()
	if err != nil {
		return response.EchoError(c, h.respWriter, err)
	}

	// 3. 序列化并写入
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return response.EchoError(c, h.respWriter, xerrors.NewWithError(xerrors.CodeInternalError, "商店快照序列化失败", err))
	}
	if err := h.services.SnapshotRepo.Save(c.Request().Context(), session.ID, payload, shopSnapshotTTL); err != nil {
		return response.EchoError(c, h.respWriter, err)
	}

	return response.EchoOK(c, h.respWriter, &SaveShopSnapshotResponse{
		Success: true,
		Message: "商店快照已保存",
	})
}

// RestoreShopSnapshot 恢复商店快照
// @Summary 恢复商店快照
// @Description 从 Redis 读取快照重建商店。刷新费用按快照原样恢复，不重新推导。
// @Tags Shop
// @Accept json
// @Produce json
// @Param request body RestoreShopSnapshotRequest true "恢复请求"
// @Success 200 {object} response.Response{data=RestoreShopSnapshotResponse} "成功"
// @Failure 404 {object} response.Response "快照不存在"
// @Router /game/shop/snapshot/restore [post]
func (h *ShopHandler) RestoreShopSnapshot(c echo.Context) error {
	// 1. 解析并验证请求
	var req RestoreShopSnapshotRequest
	if err := c.Bind(&req); err != nil {
		return response.EchoError(c, h.respWriter, xerrors.New(xerrors.CodeInvalidParams, "请求参数格式错误"))
	}
	if err := c.Validate(&req); err != nil {
		return response.EchoError(c, h.respWriter, xerrors.New(xerrors.CodeInvalidParams, "请求参数验证失败"))
	}
	if h.services.SnapshotRepo == nil {
		return response.EchoError(c, h.respWriter, xerrors.New(xerrors.CodeCacheError, "商店快照持久化未启用"))
	}

	// 2. 取会话并读快照
	session, err := h.services.SessionService.GetSession(c.Request().Context(), req.SessionID)
	if err != nil {
		return response.EchoError(c, h.respWriter, err)
	}

	payload, err := h.services.SnapshotRepo.Load(c.Request().Context(), session.ID)
	if err != nil {
		return response.EchoError(c, h.respWriter, err)
	}

	var snapshot service.ShopSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return response.EchoError(c, h.respWriter, xerrors.NewWithError(xerrors.CodeDataIntegrityError, "商店快照反序列化失败", err))
	}

	// 3. 重建商店
	session.Lock()
	defer session.Unlock()
	h.services.ShopService.RestoreShop(session, &snapshot)

	return response.EchoOK(c, h.respWriter, &RestoreShopSnapshotResponse{
		Shop: convertShop(session.Shop),
	})
}
