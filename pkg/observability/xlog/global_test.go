package xlog_test

import (
	"context"
	"testing"

	"github.com/open-things/loggingex/pkg/observability/xlog"
)

// 全局状态测试不加 t.Parallel，避免用例间互相覆盖默认 Logger。

func TestDefaultLazyInit(t *testing.T) {
	xlog.ResetDefault()
	t.Cleanup(xlog.ResetDefault)

	first := xlog.Default()
	if first == nil {
		t.Fatal("Default() = nil")
	}
	if second := xlog.Default(); second != first {
		t.Error("重复 Default() 应返回同一实例")
	}
}

func TestSetDefault(t *testing.T) {
	xlog.ResetDefault()
	t.Cleanup(xlog.ResetDefault)

	custom, cleanup, err := xlog.New().SetLevelString("debug").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer cleanup() //nolint:errcheck

	xlog.SetDefault(custom)
	if got := xlog.Default(); got != custom {
		t.Error("SetDefault 后 Default() 未返回替换的实例")
	}

	// nil 被忽略
	xlog.SetDefault(nil)
	if got := xlog.Default(); got != custom {
		t.Error("SetDefault(nil) 不应改变当前实例")
	}
}

func TestGlobalHelpersDoNotPanic(t *testing.T) {
	xlog.ResetDefault()
	t.Cleanup(xlog.ResetDefault)

	ctx := context.Background()
	xlog.Debug(ctx, "d")
	xlog.Info(ctx, "i")
	xlog.Warn(ctx, "w")
	xlog.Error(ctx, "e")
}
