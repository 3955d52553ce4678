package xconf

import (
	"github.com/open-things/loggingex/pkg/observability/xlog"
	"github.com/open-things/loggingex/pkg/observability/xrotate"
)

// Format 定义配置文件格式。
type Format string

// 支持的配置格式。
const (
	// FormatYAML YAML 格式（推荐用于 K8s ConfigMap）。
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// Config 是日志装配的声明式配置。
// 零值可用：全部字段为空时 Builder 返回 xlog 的默认配置。
type Config struct {
	// Level 日志级别（debug/info/warn/error），空串表示使用默认级别。
	Level string `koanf:"level"`

	// Format 输出格式（text/json），空串表示使用默认格式。
	Format string `koanf:"format"`

	// AddSource 是否在日志中记录调用位置。
	AddSource bool `koanf:"add_source"`

	// Enrich 是否把执行流上下文字段注入日志记录。
	// nil 表示沿用 xlog 默认值（开启）。
	Enrich *bool `koanf:"enrich"`

	// ReservedKeys 追加的保留字段名，注入时跳过这些名字。
	ReservedKeys []string `koanf:"reserved_keys"`

	// Rotation 文件轮转配置，nil 表示不启用轮转。
	Rotation *Rotation `koanf:"rotation"`
}

// Rotation 是日志文件轮转配置。
type Rotation struct {
	// Filename 日志文件路径，必填。
	Filename string `koanf:"filename"`

	// MaxSizeMB 单文件上限（MB），0 表示使用默认值。
	MaxSizeMB int `koanf:"max_size_mb"`

	// MaxBackups 保留的旧文件数量，0 表示使用默认值。
	MaxBackups int `koanf:"max_backups"`

	// MaxAgeDays 旧文件保留天数，0 表示使用默认值。
	MaxAgeDays int `koanf:"max_age_days"`

	// Compress 是否压缩旧文件。
	Compress bool `koanf:"compress"`

	// LocalTime 轮转文件名是否使用本地时间。
	LocalTime bool `koanf:"local_time"`
}

// Builder 把配置翻译成 xlog 构建器。
// 配置中的非法取值（未知级别、未知格式等）由构建器暂存，在 Build 时返回。
func (c *Config) Builder() *xlog.Builder {
	b := xlog.New()
	if c.Level != "" {
		b.SetLevelString(c.Level)
	}
	if c.Format != "" {
		b.SetFormat(c.Format)
	}
	b.SetAddSource(c.AddSource)
	if c.Enrich != nil {
		b.SetEnrich(*c.Enrich)
	}
	if len(c.ReservedKeys) > 0 {
		b.SetReservedKeys(c.ReservedKeys...)
	}
	if c.Rotation != nil {
		b.SetRotation(c.Rotation.Filename, c.Rotation.options()...)
	}
	return b
}

// options 把轮转配置展开为 xrotate 选项，零值字段不覆盖默认值。
func (r *Rotation) options() []xrotate.Option {
	var opts []xrotate.Option
	if r.MaxSizeMB > 0 {
		opts = append(opts, xrotate.WithMaxSize(r.MaxSizeMB))
	}
	if r.MaxBackups > 0 {
		opts = append(opts, xrotate.WithMaxBackups(r.MaxBackups))
	}
	if r.MaxAgeDays > 0 {
		opts = append(opts, xrotate.WithMaxAge(r.MaxAgeDays))
	}
	if r.Compress {
		opts = append(opts, xrotate.WithCompress(true))
	}
	if r.LocalTime {
		opts = append(opts, xrotate.WithLocalTime(true))
	}
	return opts
}
