// xctxdemo 演示执行流日志上下文的端到端用法。
//
// 逐行处理命令行给出的文件：外层作用域携带 current_file，内层作用域
// 携带 current_line，所有日志经过上下文注入后输出，空行记为 error。
//
// 用法:
//
//	xctxdemo [全局选项] <文件>...
//
// 全局选项:
//
//	-l, --level    日志级别 (debug/info/warn/error, 默认: debug)
//	-f, --format   输出格式 (text/json, 默认: text)
//	-c, --config   日志配置文件路径 (yaml/json)，设置后覆盖 level/format
//
// 退出码:
//
//	0: 全部文件处理成功
//	1: 处理失败（文件不可读等）
//	2: 参数错误
//
// 示例:
//
//	xctxdemo input.txt
//	xctxdemo --format json --level info a.txt b.txt
//	xctxdemo --config /etc/app/logging.yaml input.txt
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/open-things/loggingex/pkg/config/xconf"
	"github.com/open-things/loggingex/pkg/context/xctx"
	"github.com/open-things/loggingex/pkg/observability/xlog"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version = "0.1.0-dev"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:      "xctxdemo",
		Usage:     "逐行处理文件并演示作用域日志上下文",
		Version:   Version,
		ArgsUsage: "<文件>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "level",
				Aliases: []string{"l"},
				Usage:   "日志级别 (debug/info/warn/error)",
				Value:   "debug",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "输出格式 (text/json)",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "日志配置文件路径 (yaml/json)，设置后覆盖 level/format",
			},
		},
		Action: runDemo,
	}
}

func run() int {
	app := createApp()

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}

func runDemo(ctx context.Context, cmd *cli.Command) error {
	logger, cleanup, err := buildLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	xlog.SetDefault(logger)

	// 外层默认值，保证没有进入文件/行作用域时字段也存在
	defaults := xctx.Fields{"current_file": "-", "current_line": "-"}
	return xctx.Set(defaults).Scope(ctx, func(ctx context.Context) error {
		return processFiles(ctx, cmd.Args().Slice())
	})
}

// buildLogger 按 --config 或 --level/--format 装配 logger，输出到 stdout。
func buildLogger(cmd *cli.Command) (xlog.LoggerWithLevel, func() error, error) {
	if path := cmd.String("config"); path != "" {
		cfg, err := xconf.Load(path)
		if err != nil {
			return nil, nil, err
		}
		return cfg.Builder().SetOutput(os.Stdout).Build()
	}

	return xlog.New().
		SetOutput(os.Stdout).
		SetLevelString(cmd.String("level")).
		SetFormat(cmd.String("format")).
		Build()
}

func processFiles(ctx context.Context, filenames []string) error {
	xlog.Debug(ctx, "starting")
	for _, filename := range filenames {
		scoped := xctx.Set(xctx.Fields{"current_file": filename})
		err := scoped.Scope(ctx, func(ctx context.Context) error {
			xlog.Info(ctx, "processing file")

			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open %s: %w", filename, err)
			}
			defer func() { _ = f.Close() }()

			if err := processLines(ctx, f); err != nil {
				return fmt.Errorf("process %s: %w", filename, err)
			}
			xlog.Info(ctx, "processed file")
			return nil
		})
		if err != nil {
			return err
		}
	}
	xlog.Debug(ctx, "work is complete")
	return nil
}

func processLines(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	index := 0
	for scanner.Scan() {
		index++
		line := strings.TrimSpace(scanner.Text())

		scoped := xctx.Set(xctx.Fields{"current_line": index})
		err := scoped.Scope(ctx, func(ctx context.Context) error {
			xlog.Debug(ctx, "processing line", slog.String("text", line))
			if line == "" {
				xlog.Error(ctx, "empty line")
				return nil
			}
			xlog.Info(ctx, "processed line", slog.String("text", line))
			return nil
		})
		if err != nil {
			return err
		}
	}
	return scanner.Err()
}
