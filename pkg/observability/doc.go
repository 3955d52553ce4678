// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展，自动注入执行流上下文字段
//   - xrotate: 日志文件轮转
//
// 设计原则：
//   - 自动从 context 中提取上下文字段注入日志
//   - 支持动态级别控制
package observability
