package xctx

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// changeState Change 的生命周期状态。
//
// 设计决策: 显式状态标签而非散落的布尔判断。Building→Active→Settled
// 单向推进，Settled 是终态——一个 Change 不允许跨两个激活周期复用，
// 重复调用场景请用 Clone 或 Wrap。
type changeState uint8

const (
	// stateBuilding 初始态：可配置（Fresh/Remove/Update），可 Start
	stateBuilding changeState = iota

	// stateActive 已安装新映射，持有恢复 Token，只可 Stop
	stateActive

	// stateSettled 终态：已恢复旧映射，整个对象废弃
	stateSettled
)

// Change 原子上下文变更单元。
//
// 由三部分配置构成：fresh 标志（丢弃旧映射从零开始 vs 在旧映射上叠加）、
// remove 集合（要删除的名字）、update 映射（要设置/覆盖的名字）。
// Start 之前配置可变；Start 之后配置冻结，只剩 Stop 一条路。
//
// 配置方法是链式的，沿用 xlog.Builder 的暂存错误习惯：
// 非法输入不中断链，而是记入内部错误并丢弃本次调用的全部参数
// （整体性校验，不会部分生效），Start 时优先返回暂存错误，
// 也可随时用 Err 检查。
//
// Change 不是并发安全的：它描述单个执行流内的一次变更。
type Change struct {
	fresh  bool
	remove map[string]struct{}
	update Fields

	state changeState
	store *Store
	token Token
	err   error
}

// New 创建空的 Building 态 Change。
func New() *Change {
	return &Change{
		remove: make(map[string]struct{}),
		update: Fields{},
	}
}

// setErr 记录首个错误（后续错误不覆盖）。
func (c *Change) setErr(err error) {
	if c.err == nil {
		c.err = err
	}
}

// canChange 配置前置检查：必须处于 Building 态。
func (c *Change) canChange() bool {
	if c.state != stateBuilding {
		c.setErr(ErrAlreadyStarted)
		return false
	}
	return true
}

// Err 返回配置阶段暂存的首个错误。
//
// ErrInvalidName（非法名字）或 ErrAlreadyStarted（启动后仍在配置）。
// Start 会在触碰槽位之前返回同一个错误。
func (c *Change) Err() error {
	return c.err
}

// Started 报告 Change 是否处于 Active 态。
func (c *Change) Started() bool {
	return c.state == stateActive
}

// Fresh 设置 fresh 标志。
//
// fresh 为 true 时，Start 将忽略旧映射和 remove 集合，
// 以空映射为起点只叠加 update。
func (c *Change) Fresh(value bool) *Change {
	if !c.canChange() {
		return c
	}
	c.fresh = value
	return c
}

// Remove 把名字加入 remove 集合。
//
// 整体性校验：任意一个名字非法时，本次调用的所有名字都不会被加入。
func (c *Change) Remove(names ...string) *Change {
	if !c.canChange() {
		return c
	}
	if err := validateNames(names); err != nil {
		c.setErr(err)
		return c
	}
	for _, name := range names {
		c.remove[name] = struct{}{}
	}
	return c
}

// Update 把 fields 合并进 update 映射（后写覆盖先写的同名项）。
//
// 整体性校验：任意一个 key 非法时，本次调用的所有项都不会被合并。
func (c *Change) Update(fields Fields) *Change {
	if !c.canChange() {
		return c
	}
	if err := validateFieldNames(fields); err != nil {
		c.setErr(err)
		return c
	}
	for name, value := range fields {
		c.update[name] = value
	}
	return c
}

// Apply 对 base 施加本变更，返回全新的映射（纯函数，任何状态下可调用）。
//
// fresh 为 true 时完全忽略 base 和 remove 集合，结果就是 update 的拷贝。
// 否则先从 base 中删去 remove 集合里的名字，再叠加 update——
// 两阶段顺序意味着同一名字既在 remove 又在 update 时，update 胜出。
// base 不会被修改。
func (c *Change) Apply(base Fields) Fields {
	result := Fields{}
	if !c.fresh {
		for name, value := range base {
			if _, dropped := c.remove[name]; dropped {
				continue
			}
			result[name] = value
		}
	}
	for name, value := range c.update {
		result[name] = value
	}
	return result
}

// Start 激活变更：读取当前映射，安装合并结果，留存恢复 Token。
//
// 返回的 context 携带槽位（链上原本没有槽位时惰性挂载），后续代码
// 和日志调用应使用它。配置阶段有暂存错误时原样返回，不触碰槽位；
// 已经 Start 过返回 ErrAlreadyStarted。
func (c *Change) Start(ctx context.Context) (context.Context, error) {
	if c.err != nil {
		return ctx, c.err
	}
	if c.state != stateBuilding {
		return ctx, ErrAlreadyStarted
	}
	ctx, store := EnsureStore(ctx)
	c.token = store.Replace(c.Apply(store.Get()))
	c.store = store
	c.state = stateActive
	return ctx, nil
}

// Stop 撤销变更：用留存的 Token 把槽位恢复到 Start 前的映射。
//
// 只能在 Active 态调用一次，此后 Change 进入终态。
// 未 Start 过（或已 Stop 过）返回 ErrNotStarted。
func (c *Change) Stop() error {
	if c.state != stateActive {
		return ErrNotStarted
	}
	err := c.store.Restore(c.token)
	c.token = Token{}
	c.store = nil
	c.state = stateSettled
	return err
}

// Scope 以结构化方式包裹一个工作单元：Start → fn → Stop。
//
// 无论 fn 正常返回、返回错误还是 panic，Stop 都恰好执行一次；
// fn 的错误和 panic 原样向外传播，绝不吞没或改写。
// fn 成功而 Stop 失败时（防御性分支，正常用法不会发生）返回 Stop 的错误。
func (c *Change) Scope(ctx context.Context, fn func(context.Context) error) (err error) {
	ctx, err = c.Start(ctx)
	if err != nil {
		return err
	}
	defer func() {
		stopErr := c.Stop()
		if err == nil {
			err = stopErr
		}
	}()
	return fn(ctx)
}

// Clone 返回处于 Building 态的深拷贝（remove/update 独立，暂存错误一并复制）。
//
// 激活状态不随拷贝传递：无论原对象处于什么状态，克隆体都可独立 Start。
func (c *Change) Clone() *Change {
	clone := &Change{
		fresh:  c.fresh,
		remove: make(map[string]struct{}, len(c.remove)),
		update: c.update.clone(),
		err:    c.err,
	}
	for name := range c.remove {
		clone.remove[name] = struct{}{}
	}
	return clone
}

// Wrap 把 fn 包装成带作用域的新函数。
//
// 每次调用都先 Clone 出独立的 Building 态变更，再走 Scope 协议——
// 因此同一个包装函数可以重复调用、并发调用、递归调用：每层递归各自
// 压入/弹出自己的映射，在本层返回时恢复，而不是等最外层返回。
// 参数与返回值原样转发。
func (c *Change) Wrap(fn func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		return c.Clone().Scope(ctx, fn)
	}
}

// WrapResult 与 Change.Wrap 相同，但支持带返回值的函数。
//
// 方法不能携带类型参数，因此以包级函数提供。
func WrapResult[T any](c *Change, fn func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		var out T
		err := c.Clone().Scope(ctx, func(ctx context.Context) error {
			var fnErr error
			out, fnErr = fn(ctx)
			return fnErr
		})
		return out, err
	}
}

// String 返回规范文本形式，用于诊断和测试断言。
//
// 依次拼接：已激活时的 "!"，fresh 时的 "-*"，按字典序的 "-被删名字"，
// 按名字字典序的 "+名字=值"（值为 %#v 形式），空格连接，缺席部分省略。
func (c *Change) String() string {
	parts := make([]string, 0, 2+len(c.remove)+len(c.update))
	if c.state == stateActive {
		parts = append(parts, "!")
	}
	if c.fresh {
		parts = append(parts, "-*")
	}

	removed := make([]string, 0, len(c.remove))
	for name := range c.remove {
		removed = append(removed, name)
	}
	sort.Strings(removed)
	for _, name := range removed {
		parts = append(parts, "-"+name)
	}

	updated := make([]string, 0, len(c.update))
	for name := range c.update {
		updated = append(updated, name)
	}
	sort.Strings(updated)
	for _, name := range updated {
		parts = append(parts, fmt.Sprintf("+%s=%#v", name, c.update[name]))
	}

	return strings.Join(parts, " ")
}
