package xctx

import "errors"

// =============================================================================
// Context Key 类型定义
// =============================================================================

// 设计决策: contextKey 使用 string 而非 struct{}，理由如下：
//   - 作为包私有类型，不会与其他包的 context key 冲突（Go context 比较包含类型信息）
//   - 字符串值在调试/日志中可读性高，便于排查 context 传播问题
//   - 本包整条 context 链只挂一个 key（槽位指针），性能差异可忽略
type contextKey string

// =============================================================================
// 通用错误
// =============================================================================

var (
	// ErrNilContext 表示传入的 context 为 nil。
	ErrNilContext = errors.New("xctx: nil context")

	// ErrNilStore 表示传入的 store 为 nil。
	ErrNilStore = errors.New("xctx: nil store")
)

// =============================================================================
// 命名校验错误
// =============================================================================

var (
	// ErrInvalidName 上下文变量名非法（空串或不满足标识符语法）
	ErrInvalidName = errors.New("xctx: invalid context variable name")
)

// =============================================================================
// Change 生命周期错误
// =============================================================================

var (
	// ErrAlreadyStarted Change 已进入 Active/Settled 状态，不可再配置或重复 Start
	ErrAlreadyStarted = errors.New("xctx: context change already started")

	// ErrNotStarted Change 尚未 Start，不可 Stop
	ErrNotStarted = errors.New("xctx: context change not started")
)

// =============================================================================
// Store 防御性错误
// =============================================================================

var (
	// ErrInvalidToken Token 不属于该 Store、是零值、或已被消费
	//
	// 设计决策: 正常用法下恢复总是 LIFO 的，Store 不强制校验恢复顺序，
	// 只拒绝明显非法的 Token（外来/零值/重复使用）。顺序纪律由 Scope/Wrap
	// 的结构化用法保证。
	ErrInvalidToken = errors.New("xctx: invalid restore token")
)
