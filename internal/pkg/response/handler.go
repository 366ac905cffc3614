package response

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"xiaochou-self/internal/pkg/i18n"
	"xiaochou-self/internal/pkg/log"
	"xiaochou-self/internal/pkg/trace"
	"xiaochou-self/internal/pkg/xerrors"
)

// Writer 统一的响应写入接口，供各 Handler 注入使用
type Writer interface {
	WriteSuccess(ctx context.Context, w http.ResponseWriter, data any) error
	WriteError(ctx context.Context, w http.ResponseWriter, err error) error
	WriteJSON(ctx context.Context, w http.ResponseWriter, data any, statusCode int) error
}

// ResponseHandler Writer 的默认实现
// 负责：业务码→HTTP状态码映射、错误消息本地化、TraceID 注入、错误日志
type ResponseHandler struct {
	logger      log.Logger
	environment string
}

// NewResponseHandler 创建响应处理器
func NewResponseHandler(logger log.Logger, environment string) Writer {
	if logger == nil {
		logger = log.GetLogger()
	}
	return &ResponseHandler{
		logger:      logger,
		environment: environment,
	}
}

// WriteSuccess 写入成功响应
func (h *ResponseHandler) WriteSuccess(ctx context.Context, w http.ResponseWriter, data any) error {
	resp := &ResponseResult[any]{
		Code:      xerrors.CodeSuccess.ToInt(),
		Message:   i18n.GetErrorMessage(xerrors.CodeSuccess, i18n.GetLanguage(ctx)),
		Data:      &data,
		Timestamp: time.Now().Unix(),
		TraceId:   trace.GetTraceID(ctx),
	}
	return h.writeJSON(w, http.StatusOK, resp)
}

// WriteError 写入错误响应
// 非 AppError 的错误会被归类为内部服务错误
func (h *ResponseHandler) WriteError(ctx context.Context, w http.ResponseWriter, err error) error {
	appErr, ok := err.(*xerrors.AppError)
	if !ok {
		appErr = xerrors.Wrap(err, xerrors.CodeInternalError, "未分类的内部错误")
	}

	log.LogAppError(ctx, "request failed", appErr)

	resp := &ResponseResult[any]{
		Code:      appErr.Code.ToInt(),
		Message:   i18n.GetErrorMessage(appErr.Code, i18n.GetLanguage(ctx)),
		Timestamp: time.Now().Unix(),
		TraceId:   trace.GetTraceID(ctx),
	}

	// 生产环境不暴露内部错误细节
	if h.environment != "production" {
		resp.Error = appErr.Error()
	} else if appErr.Code != xerrors.CodeInternalError {
		resp.Error = appErr.Message
	}

	return h.writeJSON(w, httpStatusFromCode(appErr.Code), resp)
}

// WriteJSON 直接写入 JSON 响应(跳过 APIResponse 包装)
func (h *ResponseHandler) WriteJSON(ctx context.Context, w http.ResponseWriter, data any, statusCode int) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func (h *ResponseHandler) writeJSON(w http.ResponseWriter, statusCode int, resp *ResponseResult[any]) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(resp)
}

// httpStatusFromCode 业务错误码到 HTTP 状态码的映射
func httpStatusFromCode(code xerrors.ErrorCode) int {
	switch code {
	case xerrors.CodeSuccess:
		return http.StatusOK
	case xerrors.CodeInvalidParams, xerrors.CodeInvalidRequest, xerrors.CodeInvalidSelection:
		return http.StatusBadRequest
	case xerrors.CodeResourceNotFound, xerrors.CodeSessionNotFound,
		xerrors.CodeConsumableNotFound, xerrors.CodeShopItemNotFound,
		xerrors.CodeVoucherNotFound, xerrors.CodePackNotFound:
		return http.StatusNotFound
	case xerrors.CodeDuplicateResource, xerrors.CodeShopItemSold,
		xerrors.CodeVoucherAlreadyOwned:
		return http.StatusConflict
	case xerrors.CodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case xerrors.CodeInsufficientFunds, xerrors.CodeConsumableNotUsable,
		xerrors.CodeConsumableSlotsFull, xerrors.CodeVoucherLocked,
		xerrors.CodeItemNotSellable, xerrors.CodeOperationNotAllowed,
		xerrors.CodePackTypeInvalid:
		return http.StatusUnprocessableEntity
	case xerrors.CodeSessionExpired:
		return http.StatusGone
	case xerrors.CodeCacheError, xerrors.CodeMessageQueueError, xerrors.CodeExternalServiceError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
