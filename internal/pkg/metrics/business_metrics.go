// File: internal/pkg/metrics/business_metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics 游戏业务指标收集器
type BusinessMetrics struct {
	// 活跃会话数（Gauge 类型，可增可减）
	SessionsActive *prometheus.GaugeVec

	// 商店购买次数（按物品类别分组：joker/consumable/pack/voucher）
	PurchasesTotal *prometheus.CounterVec

	// 商店刷新次数
	RerollsTotal *prometheus.CounterVec

	// 消耗牌使用次数（按类别与结果分组）
	ConsumableUsesTotal *prometheus.CounterVec

	// 补充包开启次数（按包类型分组）
	PacksOpenedTotal *prometheus.CounterVec

	// 效果复制链深度直方图（愚者复制递归）
	EffectCopyDepth *prometheus.HistogramVec
}

var (
	// DefaultBusinessMetrics 默认的业务指标实例
	DefaultBusinessMetrics *BusinessMetrics
)

// CopyDepthBuckets 复制链深度的 buckets
// 目录中只有愚者会发起复制，正常深度为 0 或 1
var CopyDepthBuckets = []float64{0, 1, 2, 3, 5}

// init 初始化默认指标
func init() {
	DefaultBusinessMetrics = NewBusinessMetrics("xiaochou")
}

// NewBusinessMetrics 创建新的业务指标收集器
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	return NewBusinessMetricsWithRegistry(namespace, GetRegisterer())
}

// NewBusinessMetricsWithRegistry 创建新的业务指标收集器（使用自定义注册表）
func NewBusinessMetricsWithRegistry(namespace string, registerer prometheus.Registerer) *BusinessMetrics {
	factory := promauto.With(registerer)

	return &BusinessMetrics{
		SessionsActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "game",
				Name:      "sessions_active",
				Help:      "Current number of active game sessions",
			},
			[]string{"service"},
		),

		PurchasesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "shop",
				Name:      "purchases_total",
				Help:      "Total number of shop purchases by item category",
			},
			[]string{"category", "service"},
		),

		RerollsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "shop",
				Name:      "rerolls_total",
				Help:      "Total number of paid shop rerolls",
			},
			[]string{"service"},
		),

		ConsumableUsesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "game",
				Name:      "consumable_uses_total",
				Help:      "Total number of consumable uses by category and result (success/failure)",
			},
			[]string{"category", "result", "service"},
		),

		PacksOpenedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "shop",
				Name:      "packs_opened_total",
				Help:      "Total number of booster packs opened by pack type",
			},
			[]string{"pack_type", "service"},
		),

		EffectCopyDepth: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "game",
				Name:      "effect_copy_depth",
				Help:      "Recursion depth of consumable effect copy chains",
				Buckets:   CopyDepthBuckets,
			},
			[]string{"service"},
		),
	}
}

// IncSessionsActive 活跃会话数 +1
func (m *BusinessMetrics) IncSessionsActive(service string) {
	m.SessionsActive.WithLabelValues(normalizeServiceName(service)).Inc()
}

// DecSessionsActive 活跃会话数 -1
func (m *BusinessMetrics) DecSessionsActive(service string) {
	m.SessionsActive.WithLabelValues(normalizeServiceName(service)).Dec()
}

// IncPurchase 记录一次商店购买
func (m *BusinessMetrics) IncPurchase(category, service string) {
	m.PurchasesTotal.WithLabelValues(category, normalizeServiceName(service)).Inc()
}

// IncReroll 记录一次付费刷新
func (m *BusinessMetrics) IncReroll(service string) {
	m.RerollsTotal.WithLabelValues(normalizeServiceName(service)).Inc()
}

// IncConsumableUse 记录一次消耗牌使用
func (m *BusinessMetrics) IncConsumableUse(category string, success bool, service string) {
	result := "success"
	if !success {
		result = "failure"
	}
	m.ConsumableUsesTotal.WithLabelValues(category, result, normalizeServiceName(service)).Inc()
}

// IncPackOpened 记录一次补充包开启
func (m *BusinessMetrics) IncPackOpened(packType, service string) {
	m.PacksOpenedTotal.WithLabelValues(packType, normalizeServiceName(service)).Inc()
}

// ObserveCopyDepth 记录效果复制链深度
func (m *BusinessMetrics) ObserveCopyDepth(depth int, service string) {
	m.EffectCopyDepth.WithLabelValues(normalizeServiceName(service)).Observe(float64(depth))
}
