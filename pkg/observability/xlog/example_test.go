package xlog_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/open-things/loggingex/pkg/context/xctx"
	"github.com/open-things/loggingex/pkg/observability/xlog"
)

// Example_scopedLogging 演示作用域字段自动注入。
func Example_scopedLogging() {
	// 去掉时间戳便于稳定输出
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	enriched, _ := xlog.NewEnrichHandler(handler)
	logger := slog.New(enriched)

	ctx, _ := xctx.EnsureStore(context.Background())
	_ = xctx.Set(xctx.Fields{"file": "a.txt"}).Scope(ctx, func(ctx context.Context) error {
		logger.InfoContext(ctx, "processing")
		return nil
	})
	logger.InfoContext(ctx, "done")

	// Output:
	// level=INFO msg=processing file=a.txt
	// level=INFO msg=done
}
