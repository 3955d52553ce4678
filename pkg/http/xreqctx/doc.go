// Package xreqctx 在 HTTP 请求边界把请求信息注入执行流上下文。
//
// 中间件从 *http.Request 提取一个扁平映射（request_method、
// request_path_info、header_user_agent 等），用 xctx 的作用域把整个
// 下游 ServeHTTP 包在其中。配合 xlog 的 EnrichHandler，请求内的每条
// 日志都自动携带这些字段。
//
// # 典型用法
//
//	mux := http.NewServeMux()
//	mux.Handle("/orders", ordersHandler)
//	handler := xreqctx.Middleware()(mux)
//	_ = http.ListenAndServe(":8080", handler)
//
// 字段命名约定：请求与服务端信息用 request_ 前缀，请求头用 header_
// 前缀（名字小写、连字符转下划线），协议运行时信息用 proto_ 前缀。
// 所有名字都满足 xctx 的标识符语法。
package xreqctx
