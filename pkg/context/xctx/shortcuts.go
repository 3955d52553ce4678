package xctx

// 快捷构造器：对 Change 的糖衣，一行拿到配置好的 Building 态对象。
// 与 New().Update(...)/New().Remove(...) 完全等价，仅为可发现性服务。

// Set 创建一个设置 fields 的 Change。
//
//	xctx.Set(xctx.Fields{"task_id": id}).Scope(ctx, fn)
//
// 需要同时删除名字时继续链式调用：Set(fields).Remove("stale")。
func Set(fields Fields) *Change {
	return New().Update(fields)
}

// Unset 创建一个删除 names 的 Change。
func Unset(names ...string) *Change {
	return New().Remove(names...)
}

// Fresh 创建一个丢弃继承映射、只设置 fields 的 Change。
//
// 适用于希望工作单元从干净上下文起步的场景（如后台任务入口）。
func Fresh(fields Fields) *Change {
	return New().Fresh(true).Update(fields)
}
