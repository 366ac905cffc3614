// File: internal/pkg/metrics/middleware.go
package metrics

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"xiaochou-self/internal/pkg/ctxkey"
)

// EchoMiddleware 返回用于 echo 的 HTTP 指标中间件
// 记录请求总数、延迟直方图和进行中请求数，route 标签使用路由模板避免高基数
func EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			service := GetServiceName()

			DefaultHTTPMetrics.IncInProgress(service)
			defer DefaultHTTPMetrics.DecInProgress(service)

			// 将 HTTP 方法写入 context，便于后续日志和错误上报使用
			ctx := ctxkey.WithValue(c.Request().Context(), ctxkey.HTTPMethod, c.Request().Method)
			c.SetRequest(c.Request().WithContext(ctx))

			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			// c.Path() 返回路由模板（如 /api/sessions/:id），而非真实路径
			route := c.Path()
			if route == "" {
				route = "unknown"
			}

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			DefaultHTTPMetrics.RecordRequest(service, route, c.Request().Method, status, duration)
			return err
		}
	}
}

// EchoHandler 返回 /metrics 端点的 echo handler
func EchoHandler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
