package xctx_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/open-things/loggingex/pkg/context/xctx"
)

// =============================================================================
// Get/Replace/Restore 基础语义
// =============================================================================

func TestStoreGetEmpty(t *testing.T) {
	t.Parallel()

	s := xctx.NewStore()
	if got := s.Get(); len(got) != 0 {
		t.Errorf("Get() = %v, want empty", got)
	}
}

func TestStoreGetIdempotent(t *testing.T) {
	t.Parallel()

	s := xctx.NewStore()
	s.Replace(xctx.Fields{"foo": 1, "bar": "x"})

	first := s.Get()
	second := s.Get()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("两次 Get() 结果不一致: %v vs %v", first, second)
	}
}

func TestStoreReplaceRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := xctx.NewStore()
	before := xctx.Fields{"a": 1}
	s.Replace(before)

	token := s.Replace(xctx.Fields{"b": 2})
	if got := s.Get(); !reflect.DeepEqual(got, xctx.Fields{"b": 2}) {
		t.Fatalf("Replace 后 Get() = %v", got)
	}

	if err := s.Restore(token); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got := s.Get(); !reflect.DeepEqual(got, before) {
		t.Errorf("Restore 后 Get() = %v, want %v", got, before)
	}
}

func TestStoreRestoreToNeverSet(t *testing.T) {
	t.Parallel()

	// Token 可以指向"从未安装"的初始状态
	s := xctx.NewStore()
	token := s.Replace(xctx.Fields{"x": 1})
	if err := s.Restore(token); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got := s.Get(); len(got) != 0 {
		t.Errorf("恢复到初始状态后 Get() = %v, want empty", got)
	}
}

// =============================================================================
// Token 防御性校验
// =============================================================================

func TestStoreRestoreInvalidToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token func() (*xctx.Store, xctx.Token)
	}{
		{
			name: "零值 Token",
			token: func() (*xctx.Store, xctx.Token) {
				return xctx.NewStore(), xctx.Token{}
			},
		},
		{
			name: "外来 Token",
			token: func() (*xctx.Store, xctx.Token) {
				other := xctx.NewStore()
				return xctx.NewStore(), other.Replace(xctx.Fields{"x": 1})
			},
		},
		{
			name: "已消费的 Token",
			token: func() (*xctx.Store, xctx.Token) {
				s := xctx.NewStore()
				tok := s.Replace(xctx.Fields{"x": 1})
				if err := s.Restore(tok); err != nil {
					t.Fatalf("首次 Restore() error = %v", err)
				}
				return s, tok
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, tok := tt.token()
			if err := s.Restore(tok); !errors.Is(err, xctx.ErrInvalidToken) {
				t.Errorf("Restore() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestStoreReset(t *testing.T) {
	t.Parallel()

	s := xctx.NewStore()
	s.Replace(xctx.Fields{"x": 1})
	s.Reset()
	if got := s.Get(); len(got) != 0 {
		t.Errorf("Reset 后 Get() = %v, want empty", got)
	}
}

// =============================================================================
// context 携带
// =============================================================================

func TestWithStoreNilArguments(t *testing.T) {
	t.Parallel()

	if _, err := xctx.WithStore(nil, xctx.NewStore()); !errors.Is(err, xctx.ErrNilContext) { //nolint:staticcheck // 故意传 nil
		t.Errorf("WithStore(nil, s) error = %v, want ErrNilContext", err)
	}
	if _, err := xctx.WithStore(context.Background(), nil); !errors.Is(err, xctx.ErrNilStore) {
		t.Errorf("WithStore(ctx, nil) error = %v, want ErrNilStore", err)
	}
}

func TestEnsureStoreLazyInit(t *testing.T) {
	t.Parallel()

	ctx, s := xctx.EnsureStore(context.Background())
	if s == nil {
		t.Fatal("EnsureStore() 返回 nil store")
	}

	// 再次调用返回同一个槽位
	ctx2, s2 := xctx.EnsureStore(ctx)
	if s2 != s {
		t.Error("重复 EnsureStore 应返回已挂载的槽位")
	}
	if ctx2 != ctx {
		t.Error("已有槽位时 ctx 应原样返回")
	}
}

func TestCurrentWithoutStore(t *testing.T) {
	t.Parallel()

	if got := xctx.Current(context.Background()); len(got) != 0 {
		t.Errorf("无槽位时 Current() = %v, want empty", got)
	}
	if got := xctx.Current(nil); len(got) != 0 { //nolint:staticcheck // 故意传 nil
		t.Errorf("nil ctx 时 Current() = %v, want empty", got)
	}
}

// =============================================================================
// 执行流隔离
// =============================================================================

func TestForkSnapshotIsolation(t *testing.T) {
	t.Parallel()

	ctx, parent := xctx.EnsureStore(context.Background())
	parent.Replace(xctx.Fields{"inherited": "yes"})

	childCtx, err := xctx.Fork(ctx)
	if err != nil {
		t.Fatalf("Fork() error = %v", err)
	}
	child, ok := xctx.StoreFrom(childCtx)
	if !ok {
		t.Fatal("Fork 后子链上没有槽位")
	}

	// 子槽位继承派生时刻的快照
	if got := child.Get(); !reflect.DeepEqual(got, xctx.Fields{"inherited": "yes"}) {
		t.Errorf("子槽位初始映射 = %v", got)
	}

	// 派生之后双向不可见
	parent.Replace(xctx.Fields{"parent_only": 1})
	child.Replace(xctx.Fields{"child_only": 2})
	if _, ok := parent.Get()["child_only"]; ok {
		t.Error("子流的写入泄漏到了父流")
	}
	if _, ok := child.Get()["parent_only"]; ok {
		t.Error("父流的写入泄漏到了子流")
	}
}

func TestConcurrentFlowIsolation(t *testing.T) {
	t.Parallel()

	// 两个并发流各自激活不同的 Change，互相不可见
	root, _ := xctx.EnsureStore(context.Background())

	var g errgroup.Group
	for _, id := range []string{"flow-a", "flow-b"} {
		id := id
		g.Go(func() error {
			flowCtx, err := xctx.Fork(root)
			if err != nil {
				return err
			}
			return xctx.Set(xctx.Fields{"flow": id}).Scope(flowCtx, func(ctx context.Context) error {
				for i := 0; i < 100; i++ {
					got := xctx.Current(ctx)["flow"]
					if got != id {
						t.Errorf("流 %s 观察到 flow=%v", id, got)
					}
				}
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("errgroup error = %v", err)
	}
}
