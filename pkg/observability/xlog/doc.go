// Package xlog 把 xctx 的日志上下文接入 log/slog。
//
// 核心是 EnrichHandler：包装任意 slog.Handler，在每条记录被分发前
// 读取当前执行流的上下文映射（见 xctx 包），把其中的每个字段盖到
// 记录上——保留字段（slog 框架自身填充的 time/level/msg/source）除外。
// 上下文缺失或为空时不注入任何字段，也不报错。
//
// 其余部分是围绕它的常规日志装配：
//
//   - Logger / Leveler / LoggerWithLevel 接口：强制 context 传递的日志面
//   - Builder：输出目标、级别、text/json 格式、源码位置、轮转（xrotate）、
//     属性治理（ReplaceAttr）、enrich 开关
//   - 全局默认 Logger：脚手架场景用，服务端推荐依赖注入
//
// # 快速开始
//
//	logger, cleanup, err := xlog.New().
//	    SetFormat("json").
//	    SetLevelString("debug").
//	    Build()
//	if err != nil {
//	    // 配置错误
//	}
//	defer cleanup()
//
//	ctx, _ := xctx.EnsureStore(context.Background())
//	_ = xctx.Set(xctx.Fields{"task_id": "t-1"}).Scope(ctx, func(ctx context.Context) error {
//	    logger.Info(ctx, "processing") // 输出自动带上 task_id
//	    return nil
//	})
//
// 也可以直接把 EnrichHandler 套在标准 slog.Logger 上：
//
//	h, _ := xlog.NewEnrichHandler(slog.NewTextHandler(os.Stderr, nil))
//	slog.SetDefault(slog.New(h))
//	slog.InfoContext(ctx, "msg") // 同样自动注入
package xlog
