// Package xconf 提供日志装配的配置加载。
//
// 用 koanf 从 YAML/JSON 文件或字节数据解析出 [Config]，再通过
// Config.Builder 桥接到 xlog 的构建器；Watch 基于 fsnotify 监控
// 配置文件变更，重载后把新配置交给回调（典型用途：运行时调整日志级别）。
//
// # 配置示例（YAML）
//
//	level: debug
//	format: json
//	add_source: true
//	rotation:
//	  filename: /var/log/app/app.log
//	  max_size_mb: 100
//	  max_backups: 7
//
// # 快速开始
//
//	cfg, err := xconf.Load("/etc/app/logging.yaml")
//	if err != nil { ... }
//	logger, cleanup, err := cfg.Builder().Build()
package xconf
