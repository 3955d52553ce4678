// Package context 提供执行流上下文相关的子包。
//
// 子包列表：
//   - xctx: 执行流日志上下文，作用域化的字段叠加与恢复
//
// 设计原则：
//   - 所有上下文信息通过 context.Context 传递，不使用全局变量
//   - 变更成对出现（安装/恢复），结构化用法保证恢复顺序
package context
