// File: internal/pkg/xerrors/codes.go
package xerrors

import "fmt"

// ErrorCode 错误码类型（类型安全）
type ErrorCode int

// IsValid 检查错误码是否在预定义列表中
func (c ErrorCode) IsValid() bool {
	_, exists := codeMessages[c]
	return exists
}

// String 返回错误码的字符串表示
func (c ErrorCode) String() string {
	if msg, ok := codeMessages[c]; ok {
		return fmt.Sprintf("%d (%s)", c, msg)
	}
	return fmt.Sprintf("%d (未定义的错误码)", c)
}

// Message 返回错误码对应的消息
func (c ErrorCode) Message() string {
	if msg, ok := codeMessages[c]; ok {
		return msg
	}
	return "未知错误"
}

// ToInt 转换为 int（用于 JSON 序列化等场景）
func (c ErrorCode) ToInt() int {
	return int(c)
}

// -----------------------------------------------------------------------------
// 业务错误码统一定义
// 按模块或领域对错误码进行分段，便于管理。
// -----------------------------------------------------------------------------
const (
	// 1xxxxx: 通用错误码
	CodeSuccess           ErrorCode = 100000 // 操作成功
	CodeInternalError     ErrorCode = 100001 // 内部服务错误
	CodeInvalidParams     ErrorCode = 100002 // 参数错误
	CodeInvalidRequest    ErrorCode = 100003 // 请求格式错误
	CodeResourceNotFound  ErrorCode = 100404 // 资源不存在
	CodeDuplicateResource ErrorCode = 100409 // 资源已存在
	CodeRateLimitExceeded ErrorCode = 100429 // 请求频率限制

	// 6xxxxx: 业务逻辑错误码
	CodeBusinessLogicError  ErrorCode = 600001 // 业务逻辑错误
	CodeDataIntegrityError  ErrorCode = 600002 // 数据完整性错误
	CodeOperationNotAllowed ErrorCode = 600003 // 操作不被允许

	// 7xxxxx: 外部服务错误码
	CodeExternalServiceError ErrorCode = 700001 // 外部服务错误
	CodeCacheError           ErrorCode = 700004 // 缓存服务错误
	CodeMessageQueueError    ErrorCode = 700005 // 消息队列错误

	// 8xxxxx: 游戏业务错误码
	// 会话相关 (80xxxx)
	CodeSessionNotFound   ErrorCode = 800001 // 游戏会话不存在
	CodeSessionExpired    ErrorCode = 800002 // 游戏会话已过期
	CodeInsufficientFunds ErrorCode = 800003 // 金币不足

	// 消耗牌相关 (83xxxx)
	CodeConsumableNotFound  ErrorCode = 830001 // 消耗牌不存在
	CodeConsumableNotUsable ErrorCode = 830002 // 使用条件不满足
	CodeConsumableSlotsFull ErrorCode = 830003 // 消耗牌栏位已满
	CodeInvalidSelection    ErrorCode = 830004 // 选牌数量不符合要求

	// 商店相关 (84xxxx)
	CodeShopItemNotFound ErrorCode = 840001 // 商店物品不存在
	CodeShopItemSold     ErrorCode = 840002 // 商店物品已售出
	CodeItemNotSellable  ErrorCode = 840003 // 物品不可出售

	// 优惠券相关 (85xxxx)
	CodeVoucherNotFound     ErrorCode = 850001 // 优惠券不存在
	CodeVoucherAlreadyOwned ErrorCode = 850002 // 优惠券已购买
	CodeVoucherLocked       ErrorCode = 850003 // 需先购买基础优惠券

	// 补充包相关 (86xxxx)
	CodePackNotFound    ErrorCode = 860001 // 补充包不存在
	CodePackTypeInvalid ErrorCode = 860002 // 补充包类型无效
)

// -----------------------------------------------------------------------------
// HTTP 状态码常量定义
// -----------------------------------------------------------------------------
const (
	HTTPStatusOK        = 200 // 请求成功
	HTTPStatusCreated   = 201 // 资源已创建
	HTTPStatusAccepted  = 202 // 请求已接受但未处理
	HTTPStatusNoContent = 204 // 请求成功但无内容返回

	HTTPStatusBadRequest          = 400 // 错误请求
	HTTPStatusUnauthorized        = 401 // 未经授权
	HTTPStatusForbidden           = 403 // 禁止访问
	HTTPStatusNotFound            = 404 // 资源未找到
	HTTPStatusMethodNotAllowed    = 405 // 方法不被允许
	HTTPStatusConflict            = 409 // 资源冲突
	HTTPStatusUnprocessableEntity = 422 // 无法处理的实体
	HTTPStatusTooManyRequests     = 429 // 请求过多

	HTTPStatusInternalServerError = 500 // 内部服务器错误
	HTTPStatusNotImplemented      = 501 // 未实现
	HTTPStatusBadGateway          = 502 // 错误网关
	HTTPStatusServiceUnavailable  = 503 // 服务不可用
	HTTPStatusGatewayTimeout      = 504 // 网关超时
)

// -----------------------------------------------------------------------------
// 错误消息映射
// -----------------------------------------------------------------------------
var codeMessages = map[ErrorCode]string{
	CodeSuccess:           "操作成功",
	CodeInternalError:     "内部服务错误",
	CodeInvalidParams:     "参数错误",
	CodeInvalidRequest:    "请求格式错误",
	CodeResourceNotFound:  "资源不存在",
	CodeDuplicateResource: "资源已存在",
	CodeRateLimitExceeded: "请求频率限制",

	CodeBusinessLogicError:  "业务逻辑错误",
	CodeDataIntegrityError:  "数据完整性错误",
	CodeOperationNotAllowed: "操作不被允许",

	CodeExternalServiceError: "外部服务错误",
	CodeCacheError:           "缓存服务错误",
	CodeMessageQueueError:    "消息队列错误",

	// 游戏业务错误消息
	CodeSessionNotFound:   "游戏会话不存在",
	CodeSessionExpired:    "游戏会话已过期",
	CodeInsufficientFunds: "金币不足",

	CodeConsumableNotFound:  "消耗牌不存在",
	CodeConsumableNotUsable: "使用条件不满足",
	CodeConsumableSlotsFull: "消耗牌栏位已满",
	CodeInvalidSelection:    "选牌数量不符合要求",

	CodeShopItemNotFound: "商店物品不存在",
	CodeShopItemSold:     "商店物品已售出",
	CodeItemNotSellable:  "物品不可出售",

	CodeVoucherNotFound:     "优惠券不存在",
	CodeVoucherAlreadyOwned: "优惠券已购买",
	CodeVoucherLocked:       "需先购买基础优惠券",

	CodePackNotFound:    "补充包不存在",
	CodePackTypeInvalid: "补充包类型无效",
}

// getCategoryByCode 根据错误码获取分类
func getCategoryByCode(code ErrorCode) string {
	switch {
	case code >= 100000 && code < 200000:
		return "system"
	case code >= 600000 && code < 700000:
		return "business"
	case code >= 700000 && code < 800000:
		return "external"
	case code >= 800000 && code < 830000:
		return "session"
	case code >= 830000 && code < 840000:
		return "consumable"
	case code >= 840000 && code < 850000:
		return "shop"
	case code >= 850000 && code < 860000:
		return "voucher"
	case code >= 860000 && code < 870000:
		return "pack"
	default:
		return "unknown"
	}
}

// getLevelByCode 根据错误码获取级别
func getLevelByCode(code ErrorCode) ErrorLevel {
	switch {
	case code == CodeSuccess:
		return LevelInfo
	case code >= 100001 && code <= 100003: // 参数错误等
		return LevelWarn
	case code == CodeDataIntegrityError: // 目录引用损坏属于程序错误
		return LevelCritical
	case code >= 700001 && code < 800000: // 外部服务错误
		return LevelCritical
	case code >= 800000: // 游戏内规则拒绝，属于正常业务流
		return LevelWarn
	default:
		return LevelError
	}
}

// isRetryableByCode 根据错误码判断是否可重试
func isRetryableByCode(code ErrorCode) bool {
	retryableCodes := map[ErrorCode]bool{
		CodeInternalError:        true,
		CodeExternalServiceError: true,
		CodeCacheError:           true,
		CodeMessageQueueError:    true,
		CodeRateLimitExceeded:    true,
	}
	return retryableCodes[code]
}
