package xctx_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/open-things/loggingex/pkg/context/xctx"
)

func TestAttrsSortedByName(t *testing.T) {
	t.Parallel()

	ctx, store := xctx.EnsureStore(context.Background())
	store.Replace(xctx.Fields{"zebra": 1, "alpha": "x", "mid": true})

	attrs := xctx.Attrs(ctx)
	want := []string{"alpha", "mid", "zebra"}
	if len(attrs) != len(want) {
		t.Fatalf("Attrs() 返回 %d 个属性, want %d", len(attrs), len(want))
	}
	for i, key := range want {
		if attrs[i].Key != key {
			t.Errorf("attrs[%d].Key = %q, want %q", i, attrs[i].Key, key)
		}
	}
}

func TestAttrsEmpty(t *testing.T) {
	t.Parallel()

	if got := xctx.Attrs(context.Background()); got != nil {
		t.Errorf("无槽位时 Attrs() = %v, want nil", got)
	}
	if got := xctx.Attrs(nil); got != nil { //nolint:staticcheck // 故意传 nil
		t.Errorf("nil ctx 时 Attrs() = %v, want nil", got)
	}
}

func TestAppendAttrsReusesSlice(t *testing.T) {
	t.Parallel()

	ctx, store := xctx.EnsureStore(context.Background())
	store.Replace(xctx.Fields{"k": "v"})

	buf := make([]slog.Attr, 0, 4)
	attrs := xctx.AppendAttrs(buf, ctx)
	if len(attrs) != 1 || attrs[0].Key != "k" {
		t.Errorf("AppendAttrs() = %v", attrs)
	}
}
