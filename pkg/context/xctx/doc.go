// Package xctx 提供按执行流隔离的日志上下文管理。
//
// 把诊断字段（name→value）挂到一个逻辑工作单元上（一次请求、一次循环迭代、
// 一次递归调用），使该单元内产生的每条日志自动携带这些字段，
// 而无需在每层函数签名里透传参数。
//
// # 核心模型
//
//   - Fields: 当前可见的上下文映射（name→value），一经构建不再原地修改
//   - Store : 每个执行流独享的槽位，保存"当前" Fields，支持 Get/Replace/Restore
//   - Token : Replace 返回的恢复凭证，单次使用，只能撤销它对应的那次安装
//   - Change: 原子变更单元（fresh 标志 + remove 集合 + update 映射），
//     Start 时计算并安装新映射，Stop 时用 Token 恢复旧映射
//
// # 执行流与隔离
//
// Go 没有 goroutine-local 存储，运行时提供的等价能力是 context.Context 传递。
// 本包中一个"执行流"就是一条携带 *Store 的 context 链：
//
//   - EnsureStore(ctx) 在流首次接触上下文时惰性挂载空槽位
//   - Fork(ctx) 在派生 goroutine 时创建子槽位，内容是父映射在派生时刻的快照，
//     此后父子两侧的变更互不可见
//
// 隔离依赖"每个流独享槽位"而非互斥锁；Store 内部的锁仅是防御性的。
//
// # 典型用法
//
//	ctx, store := xctx.EnsureStore(context.Background())
//	err := xctx.Set(xctx.Fields{"request_id": "r-1"}).Scope(ctx, func(ctx context.Context) error {
//	    slog.InfoContext(ctx, "processing") // 经 xlog.EnrichHandler 自动带上 request_id
//	    return nil
//	})
//
// 嵌套的 Change 必须严格 LIFO：后 Start 的先 Stop。Scope 与 Wrap
// 两种结构化入口会自动保证这一点（包括 panic 等异常退出路径）。
//
// # 命名校验
//
// remove/update 中的每个 name 必须是非空的标识符（字母/数字/下划线，
// 不以数字开头）。校验是整体性的：任意一个 name 非法，本次调用不产生任何修改。
//
// # 哨兵错误
//
//	ErrNilContext     - context 为 nil
//	ErrNilStore       - store 为 nil
//	ErrInvalidName    - 上下文变量名非法
//	ErrAlreadyStarted - Change 已启动，不可再配置或重复启动
//	ErrNotStarted     - Change 未启动，不可 Stop
//	ErrInvalidToken   - Token 不属于该 Store 或已被消费
//
// 所有错误都同步返回给调用方，本包内部不重试、不吞错。
package xctx
