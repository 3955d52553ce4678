package xctx

import "context"

// keyStore context 链上挂载槽位指针的唯一 key
const keyStore = contextKey("xctx:store")

// WithStore 将槽位挂到 context 链上。
//
// 如果 ctx 为 nil，返回 ErrNilContext；如果 store 为 nil，返回 ErrNilStore。
// 通常不直接调用——EnsureStore/Fork 覆盖了绝大多数场景。
func WithStore(ctx context.Context, store *Store) (context.Context, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if store == nil {
		return nil, ErrNilStore
	}
	return context.WithValue(ctx, keyStore, store), nil
}

// StoreFrom 从 context 提取槽位。
//
// 返回 (nil, false) 表示该 context 链尚未挂载槽位。nil ctx 安全。
func StoreFrom(ctx context.Context) (*Store, bool) {
	if ctx == nil {
		return nil, false
	}
	if s, ok := ctx.Value(keyStore).(*Store); ok {
		return s, true
	}
	return nil, false
}

// EnsureStore 确保 context 链上挂有槽位。
//
// 已有槽位时原样返回；否则创建空槽位并挂载（执行流首次接触上下文时的
// 惰性初始化）。nil ctx 会被提升为 context.Background()，便于在入口处
// 无条件调用。
func EnsureStore(ctx context.Context) (context.Context, *Store) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s, ok := StoreFrom(ctx); ok {
		return ctx, s
	}
	s := NewStore()
	return context.WithValue(ctx, keyStore, s), s
}

// Fork 为派生执行流创建子槽位。
//
// 子槽位的初始内容是父映射在调用时刻的快照；此后父子两侧各自的
// Replace/Restore 互不可见。父链没有槽位时，子槽位从空映射起步。
//
// 在启动 goroutine 前调用：
//
//	child, _ := xctx.Fork(ctx)
//	go worker(child)
//
// 如果 ctx 为 nil，返回 ErrNilContext。
func Fork(ctx context.Context) (context.Context, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	child := NewStore()
	if parent, ok := StoreFrom(ctx); ok {
		child.current = parent.Get().clone()
	}
	return context.WithValue(ctx, keyStore, child), nil
}

// Current 返回 context 所属执行流的当前映射。
//
// 链上没有槽位（或 ctx 为 nil）时返回空映射，不报错——
// 这支撑了日志过滤器"缺失上下文等于没有额外字段"的无失败契约。
// 返回值应视为只读。
func Current(ctx context.Context) Fields {
	if s, ok := StoreFrom(ctx); ok {
		return s.Get()
	}
	return Fields{}
}
