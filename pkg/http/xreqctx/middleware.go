package xreqctx

import (
	"context"
	"net/http"

	"github.com/open-things/loggingex/pkg/context/xctx"
)

// =============================================================================
// 中间件选项
// =============================================================================

// Option 中间件与提取选项
type Option func(*config)

type config struct {
	headers     bool // 是否提取请求头
	runtimeInfo bool // 是否提取 proto_* 运行时信息
	requestID   bool // 是否注入 request_id
	trace       bool // 是否从活跃 span 提取 trace_id/span_id
}

func defaultConfig() *config {
	return &config{
		headers:   true,
		requestID: true,
		trace:     true,
	}
}

// WithHeaders 设置是否把请求头注入上下文
//
// 默认为 true。请求头可能包含敏感信息（Authorization、Cookie 等），
// 对外暴露日志时建议关闭或配合 xlog 的 ReplaceAttr 脱敏。
func WithHeaders(enabled bool) Option {
	return func(cfg *config) {
		cfg.headers = enabled
	}
}

// WithRuntimeInfo 设置是否注入 proto_* 运行时信息，默认为 false。
func WithRuntimeInfo(enabled bool) Option {
	return func(cfg *config) {
		cfg.runtimeInfo = enabled
	}
}

// WithRequestID 设置是否注入 request_id，默认为 true。
// 入站 X-Request-ID 非空时沿用，否则生成新的 UUID。
func WithRequestID(enabled bool) Option {
	return func(cfg *config) {
		cfg.requestID = enabled
	}
}

// WithTrace 设置是否从活跃 span 提取 trace_id/span_id，默认为 true。
// 请求 context 上没有有效 SpanContext 时不注入这两个字段。
func WithTrace(enabled bool) Option {
	return func(cfg *config) {
		cfg.trace = enabled
	}
}

// =============================================================================
// HTTP 中间件
// =============================================================================

// Middleware 返回 HTTP 中间件。
// 把提取出的请求信息作为作用域上下文覆盖整个下游 ServeHTTP 调用，
// 处理器内（含其 defer）产生的日志都会携带这些字段。
//
// 作用域建立失败时降级为无上下文直通，不阻断请求。
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fields := fieldsWithConfig(r, cfg)

			served := false
			err := xctx.Set(fields).Scope(r.Context(), func(ctx context.Context) error {
				served = true
				next.ServeHTTP(w, r.WithContext(ctx))
				return nil
			})
			if err != nil && !served {
				next.ServeHTTP(w, r)
			}
		})
	}
}
