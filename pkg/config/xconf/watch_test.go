package xconf

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Watch 单元测试
// =============================================================================

func TestWatch_Success(t *testing.T) {
	// 创建临时配置文件
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "logging.yaml")
	err := os.WriteFile(configPath, []byte("level: info\n"), 0600)
	require.NoError(t, err)

	// 创建监视器
	var mu sync.Mutex
	var reloads []*Config
	var lastErr error

	w, err := Watch(configPath, func(cfg *Config, err error) {
		mu.Lock()
		defer mu.Unlock()
		reloads = append(reloads, cfg)
		lastErr = err
	})
	require.NoError(t, err)

	// 异步启动监视
	w.StartAsync()
	defer func() { _ = w.Stop() }()

	// 等待监视器启动
	time.Sleep(50 * time.Millisecond)

	// 修改配置文件
	err = os.WriteFile(configPath, []byte("level: debug\n"), 0600)
	require.NoError(t, err)

	// 等待重载（防抖 100ms + 一些延迟）
	time.Sleep(300 * time.Millisecond)

	// 验证回调收到新配置
	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, reloads, "callback should be called at least once")
	assert.NoError(t, lastErr, "reload should not error")
	last := reloads[len(reloads)-1]
	require.NotNil(t, last)
	assert.Equal(t, "debug", last.Level)
}

func TestWatch_ReloadError(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "logging.yaml")
	err := os.WriteFile(configPath, []byte("level: info\n"), 0600)
	require.NoError(t, err)

	var mu sync.Mutex
	var lastErr error

	w, err := Watch(configPath, func(cfg *Config, err error) {
		mu.Lock()
		defer mu.Unlock()
		lastErr = err
	})
	require.NoError(t, err)

	w.StartAsync()
	defer func() { _ = w.Stop() }()
	time.Sleep(50 * time.Millisecond)

	// 写入非法内容触发重载失败
	err = os.WriteFile(configPath, []byte("level: [unclosed\n"), 0600)
	require.NoError(t, err)

	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.ErrorIs(t, lastErr, ErrParseFailed)
}

func TestWatch_InvalidArgs(t *testing.T) {
	callback := func(cfg *Config, err error) {}

	_, err := Watch("", callback)
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Watch("/etc/app/logging.yaml", nil)
	assert.ErrorIs(t, err, ErrNilCallback)

	_, err = Watch("/etc/app/logging.toml", callback)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWatch_Stop(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "logging.yaml")
	err := os.WriteFile(configPath, []byte("level: info\n"), 0600)
	require.NoError(t, err)

	w, err := Watch(configPath, func(cfg *Config, err error) {})
	require.NoError(t, err)

	w.StartAsync()

	// 停止监视
	err = w.Stop()
	assert.NoError(t, err)

	// 再次停止应该也是成功的（幂等）
	err = w.Stop()
	assert.NoError(t, err)
}

func TestWatch_StartIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "logging.yaml")
	err := os.WriteFile(configPath, []byte("level: info\n"), 0600)
	require.NoError(t, err)

	w, err := Watch(configPath, func(cfg *Config, err error) {})
	require.NoError(t, err)

	w.StartAsync()
	w.StartAsync() // 重复启动不应再起新的监视循环

	assert.NoError(t, w.Stop())
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "logging.yaml")
	err := os.WriteFile(configPath, []byte("level: info\n"), 0600)
	require.NoError(t, err)

	var mu sync.Mutex
	var called bool

	w, err := Watch(configPath, func(cfg *Config, err error) {
		mu.Lock()
		defer mu.Unlock()
		called = true
	})
	require.NoError(t, err)

	w.StartAsync()
	defer func() { _ = w.Stop() }()
	time.Sleep(50 * time.Millisecond)

	// 同目录下的无关文件变更不应触发回调
	err = os.WriteFile(filepath.Join(tmpDir, "other.yaml"), []byte("x: 1\n"), 0600)
	require.NoError(t, err)

	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, called, "unrelated file should not trigger reload")
}
