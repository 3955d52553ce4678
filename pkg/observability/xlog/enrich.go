package xlog

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/open-things/loggingex/pkg/context/xctx"
)

// ErrNilHandler 当 NewEnrichHandler 的 base handler 为 nil 时返回
var ErrNilHandler = errors.New("xlog: base handler is nil")

// defaultReservedKeys slog 框架自身在每条记录上填充的字段名。
// 上下文映射中撞上这些名字的条目会被跳过，记录原有字段不受影响。
func defaultReservedKeys() map[string]struct{} {
	return map[string]struct{}{
		slog.TimeKey:    {},
		slog.LevelKey:   {},
		slog.MessageKey: {},
		slog.SourceKey:  {},
	}
}

// EnrichHandler 在记录分发前把当前执行流的上下文映射盖到记录上。
//
// 装饰模式实现，包装底层 slog.Handler。注入没有失败路径：
// ctx 为 nil、链上没有槽位、或映射为空时，记录原样通过。
// 属性按名字字典序注入，保证输出稳定。
type EnrichHandler struct {
	base     slog.Handler
	reserved map[string]struct{}
}

// EnrichOption EnrichHandler 的配置选项。
type EnrichOption func(*EnrichHandler)

// WithReservedKeys 在默认保留集（time/level/msg/source）之外追加保留字段名。
//
// 用于底层 handler 还会自行填充额外固定字段的场景。
func WithReservedKeys(keys ...string) EnrichOption {
	return func(h *EnrichHandler) {
		for _, key := range keys {
			h.reserved[key] = struct{}{}
		}
	}
}

// NewEnrichHandler 创建 EnrichHandler。
//
// 设计决策: 调用 WithGroup 后，注入的上下文字段会被归入 group 下。
// 这是 slog handler 架构的固有限制——group 作用于 handler 处理的所有属性。
// 需要顶层字段时，避免对带 enrich 的 logger 调用 WithGroup。
func NewEnrichHandler(base slog.Handler, opts ...EnrichOption) (*EnrichHandler, error) {
	if base == nil {
		return nil, ErrNilHandler
	}
	h := &EnrichHandler{
		base:     base,
		reserved: defaultReservedKeys(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Enabled 委托给底层 handler
func (h *EnrichHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// Handle 在调用底层 handler 前注入上下文字段。
//
// 根据 slog 契约，必须 Clone record 后再修改，避免影响其他 handler。
func (h *EnrichHandler) Handle(ctx context.Context, r slog.Record) error {
	fields := xctx.Current(ctx)
	if len(fields) > 0 {
		names := make([]string, 0, len(fields))
		for name := range fields {
			if _, skip := h.reserved[name]; skip {
				continue
			}
			names = append(names, name)
		}
		if len(names) > 0 {
			sort.Strings(names)
			r = r.Clone()
			for _, name := range names {
				r.AddAttrs(slog.Any(name, fields[name]))
			}
		}
	}
	return h.base.Handle(ctx, r)
}

// WithAttrs 返回带额外属性的新 handler
func (h *EnrichHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EnrichHandler{
		base:     h.base.WithAttrs(attrs),
		reserved: h.reserved,
	}
}

// WithGroup 返回带分组的新 handler
func (h *EnrichHandler) WithGroup(name string) slog.Handler {
	return &EnrichHandler{
		base:     h.base.WithGroup(name),
		reserved: h.reserved,
	}
}
