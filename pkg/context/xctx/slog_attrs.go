package xctx

import (
	"context"
	"log/slog"
	"sort"
)

// =============================================================================
// slog 集成
// =============================================================================

// AppendAttrs 将当前映射按名字字典序追加到现有切片。
//
// 热路径优化：传入预分配的切片，避免重复分配。
// 映射是无序的，排序保证同一映射每次产出相同的属性序列，
// 便于文本输出稳定和测试断言。
// nil ctx 或无槽位时原样返回 attrs。
func AppendAttrs(attrs []slog.Attr, ctx context.Context) []slog.Attr {
	fields := Current(ctx)
	if len(fields) == 0 {
		return attrs
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		attrs = append(attrs, slog.Any(name, fields[name]))
	}
	return attrs
}

// Attrs 将当前映射转换为 slog.Attr 切片。
//
// 映射为空时返回 nil。每次调用会分配新切片，热路径建议使用 AppendAttrs。
func Attrs(ctx context.Context) []slog.Attr {
	fields := Current(ctx)
	if len(fields) == 0 {
		return nil
	}
	return AppendAttrs(make([]slog.Attr, 0, len(fields)), ctx)
}
