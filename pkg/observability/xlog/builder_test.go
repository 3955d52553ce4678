package xlog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/open-things/loggingex/pkg/context/xctx"
	"github.com/open-things/loggingex/pkg/observability/xlog"
)

func TestBuilderDefaults(t *testing.T) {
	t.Parallel()

	logger, cleanup, err := xlog.New().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			t.Errorf("cleanup() error = %v", err)
		}
	}()

	if got := logger.GetLevel(); got != xlog.LevelInfo {
		t.Errorf("默认级别 = %v, want INFO", got)
	}
}

func TestBuilderInvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		builder *xlog.Builder
	}{
		{"非法格式", xlog.New().SetFormat("xml")},
		{"非法级别", xlog.New().SetLevelString("loud")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, _, err := tt.builder.Build(); err == nil {
				t.Error("Build() 应返回配置错误")
			}
		})
	}
}

func TestBuilderJSONWithEnrich(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().
		SetOutput(&buf).
		SetFormat("json").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer cleanup() //nolint:errcheck

	ctx, store := xctx.EnsureStore(context.Background())
	store.Replace(xctx.Fields{"tenant": "acme"})
	logger.Info(ctx, "hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("输出不是合法 JSON: %v (%q)", err, buf.String())
	}
	if line["tenant"] != "acme" {
		t.Errorf("tenant = %v, want acme", line["tenant"])
	}
	if line["msg"] != "hello" {
		t.Errorf("msg = %v", line["msg"])
	}
}

func TestBuilderEnrichDisabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().
		SetOutput(&buf).
		SetEnrich(false).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer cleanup() //nolint:errcheck

	ctx, store := xctx.EnsureStore(context.Background())
	store.Replace(xctx.Fields{"tenant": "acme"})
	logger.Info(ctx, "hello")

	if strings.Contains(buf.String(), "tenant") {
		t.Errorf("关闭 enrich 后仍注入了上下文字段: %q", buf.String())
	}
}

func TestBuilderDynamicLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer cleanup() //nolint:errcheck

	ctx := context.Background()
	logger.Debug(ctx, "invisible")
	if buf.Len() != 0 {
		t.Fatalf("Info 级别下 Debug 被输出: %q", buf.String())
	}

	logger.SetLevel(xlog.LevelDebug)
	logger.Debug(ctx, "visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("调级后 Debug 未输出: %q", buf.String())
	}
}

func TestBuilderReplaceAttrCoversContextFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().
		SetOutput(&buf).
		SetFormat("json").
		SetReplaceAttr(func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "password" {
				a.Value = slog.StringValue("***")
			}
			return a
		}).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer cleanup() //nolint:errcheck

	ctx, store := xctx.EnsureStore(context.Background())
	store.Replace(xctx.Fields{"password": "hunter2"})
	logger.Info(ctx, "login")

	if strings.Contains(buf.String(), "hunter2") {
		t.Errorf("脱敏未覆盖上下文字段: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "***") {
		t.Errorf("脱敏值缺失: %q", buf.String())
	}
}

func TestBuilderRotation(t *testing.T) {
	t.Parallel()

	logfile := filepath.Join(t.TempDir(), "app.log")
	logger, cleanup, err := xlog.New().
		SetRotation(logfile).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	logger.Info(context.Background(), "rotated output")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup() error = %v", err)
	}
	// cleanup 幂等
	if err := cleanup(); err != nil {
		t.Errorf("二次 cleanup() error = %v", err)
	}
}
