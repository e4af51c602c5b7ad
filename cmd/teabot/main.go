// Command teabot 是 Tea Sepolia 测试网的交互式自动化工具
//
// 运行参数全部来自环境变量和 .env 文件，没有命令行标志：
//
//	PRIVATE_KEY1..N     钱包私钥（编号连续）
//	TEABOT_PROXY_FILE   代理列表文件，默认 proxies.txt
//	TEABOT_RPC_URL      覆盖默认 RPC 地址
//	TEABOT_LOG_LEVEL    日志级别，默认 info
//	TEABOT_LOG_FILE     日志文件，默认 ./logs/teabot.log
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/dig"
	"go.uber.org/fx"

	"github.com/weisyn/teabot/internal/cli"
	"github.com/weisyn/teabot/internal/cli/interactive"
	corelog "github.com/weisyn/teabot/internal/core/infrastructure/log"
	"github.com/weisyn/teabot/internal/core/infrastructure/metrics"
)

// stopTimeout fx 停止钩子的最长等待时间
const stopTimeout = 5 * time.Second

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:           "teabot",
	Short:         "Tea Sepolia 测试网交互式自动化工具",
	Long:          "teabot 加载多个钱包，通过菜单执行质押、赎回、领取奖励、随机转账和每日任务。",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", userError(err))
		os.Exit(1)
	}
}

// userError 去掉 fx/dig 的依赖链，只保留出错的根因
func userError(err error) error {
	return dig.RootCause(err)
}

// run 组装并运行 CLI
func run(ctx context.Context) error {
	var app cli.CLIApp
	fxApp := fx.New(
		corelog.Module(),
		metrics.Module(),
		cli.Module(),
		fx.NopLogger,
		fx.Populate(&app),
	)
	if err := fxApp.Err(); err != nil {
		return err
	}

	if err := fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	stopApp := func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		_ = fxApp.Stop(stopCtx)
	}
	defer stopApp()

	// 菜单阻塞在标准输入上，收到信号时直接告别并退出
	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			pterm.Println()
			pterm.Success.Println(interactive.Farewell)
			corelog.Infof("收到退出信号")
			stopApp()
			os.Exit(0)
		case <-finished:
		}
	}()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
