// File: internal/pkg/i18n/error_messages.go
package i18n

import (
	"xiaochou-self/internal/pkg/xerrors"

	"golang.org/x/text/language"
)

// ErrorMessages 错误消息的多语言映射
var ErrorMessages = map[xerrors.ErrorCode]map[language.Tag]string{
	// 1xxxxx: 通用错误码
	xerrors.CodeSuccess:           {language.Chinese: "操作成功", language.English: "Operation successful"},
	xerrors.CodeInternalError:     {language.Chinese: "内部服务错误", language.English: "Internal server error"},
	xerrors.CodeInvalidParams:     {language.Chinese: "参数错误", language.English: "Invalid parameters"},
	xerrors.CodeInvalidRequest:    {language.Chinese: "请求格式错误", language.English: "Invalid request format"},
	xerrors.CodeResourceNotFound:  {language.Chinese: "资源不存在", language.English: "Resource not found"},
	xerrors.CodeDuplicateResource: {language.Chinese: "资源已存在", language.English: "Resource already exists"},
	xerrors.CodeRateLimitExceeded: {language.Chinese: "请求频率限制", language.English: "Rate limit exceeded"},

	// 6xxxxx: 业务逻辑错误码
	xerrors.CodeBusinessLogicError:  {language.Chinese: "业务逻辑错误", language.English: "Business logic error"},
	xerrors.CodeDataIntegrityError:  {language.Chinese: "数据完整性错误", language.English: "Data integrity error"},
	xerrors.CodeOperationNotAllowed: {language.Chinese: "操作不被允许", language.English: "Operation not allowed"},

	// 7xxxxx: 外部服务错误码
	xerrors.CodeExternalServiceError: {language.Chinese: "外部服务错误", language.English: "External service error"},
	xerrors.CodeCacheError:           {language.Chinese: "缓存服务错误", language.English: "Cache service error"},
	xerrors.CodeMessageQueueError:    {language.Chinese: "消息队列错误", language.English: "Message queue error"},

	// 8xxxxx: 游戏业务错误码
	// 会话相关 (80xxxx)
	xerrors.CodeSessionNotFound:   {language.Chinese: "游戏会话不存在", language.English: "Game session not found"},
	xerrors.CodeSessionExpired:    {language.Chinese: "游戏会话已过期", language.English: "Game session expired"},
	xerrors.CodeInsufficientFunds: {language.Chinese: "金币不足", language.English: "Not enough money"},

	// 消耗牌相关 (83xxxx)
	xerrors.CodeConsumableNotFound:  {language.Chinese: "消耗牌不存在", language.English: "Consumable not found"},
	xerrors.CodeConsumableNotUsable: {language.Chinese: "使用条件不满足", language.English: "Use condition not met"},
	xerrors.CodeConsumableSlotsFull: {language.Chinese: "消耗牌栏位已满", language.English: "Consumable slots are full"},
	xerrors.CodeInvalidSelection:    {language.Chinese: "选牌数量不符合要求", language.English: "Invalid card selection count"},

	// 商店相关 (84xxxx)
	xerrors.CodeShopItemNotFound: {language.Chinese: "商店物品不存在", language.English: "Shop item not found"},
	xerrors.CodeShopItemSold:     {language.Chinese: "商店物品已售出", language.English: "Shop item already sold"},
	xerrors.CodeItemNotSellable:  {language.Chinese: "物品不可出售", language.English: "Item cannot be sold"},

	// 优惠券相关 (85xxxx)
	xerrors.CodeVoucherNotFound:     {language.Chinese: "优惠券不存在", language.English: "Voucher not found"},
	xerrors.CodeVoucherAlreadyOwned: {language.Chinese: "优惠券已购买", language.English: "Voucher already owned"},
	xerrors.CodeVoucherLocked:       {language.Chinese: "需先购买基础优惠券", language.English: "Base voucher must be purchased first"},

	// 补充包相关 (86xxxx)
	xerrors.CodePackNotFound:    {language.Chinese: "补充包不存在", language.English: "Booster pack not found"},
	xerrors.CodePackTypeInvalid: {language.Chinese: "补充包类型无效", language.English: "Invalid booster pack type"},
}

// GetErrorMessage 获取错误码对应语言的消息
func GetErrorMessage(code xerrors.ErrorCode, lang language.Tag) string {
	if messages, ok := ErrorMessages[code]; ok {
		if msg, ok := messages[lang]; ok {
			return msg
		}
		// 如果指定语言没有翻译，返回中文（默认）
		if msg, ok := messages[language.Chinese]; ok {
			return msg
		}
	}
	// 如果完全没有定义，返回通用错误消息
	if lang == language.English {
		return "Unknown error"
	}
	return "未知错误"
}
