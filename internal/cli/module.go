// Package cli 提供 teabot 的命令行交互界面
//
// 📋 **CLI交互模块 (Command Line Interface Module)**
//
// 本包通过 fx 组装交互式 CLI 的全部组件：
// - 运行参数、网络描述与日志配置
// - 终端组件与输入会话
// - 钱包注册表（启动时构建一次）
// - 交易操作、批量转账、仪表盘与主菜单
//
// 🏗️ **构建顺序**：配置 → 钱包 → 业务流程 → 交互界面 → 控制器
//
// 配置错误（没有私钥、没有有效钱包）在 fx.New 阶段即返回，菜单不会显示。
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/fx"
	"golang.org/x/term"

	"github.com/weisyn/teabot/internal/cli/flows"
	"github.com/weisyn/teabot/internal/cli/interactive"
	"github.com/weisyn/teabot/internal/cli/manager"
	"github.com/weisyn/teabot/internal/cli/ui"
	"github.com/weisyn/teabot/internal/config/env"
	logconfig "github.com/weisyn/teabot/internal/config/log"
	"github.com/weisyn/teabot/internal/config/network"
	"github.com/weisyn/teabot/internal/wallet"
	"github.com/weisyn/teabot/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/teabot/pkg/interfaces/infrastructure/metrics"
)

// ErrConfig 启动配置错误，进程以退出码 1 结束
var ErrConfig = errors.New("configuration error")

// CLIApp CLI应用接口，供外部应用层使用
type CLIApp interface {
	// Run 运行CLI应用
	Run(ctx context.Context) error
}

// cliAppImpl CLIApp接口的内部实现
type cliAppImpl struct {
	controller *manager.Controller
}

// Run 实现CLIApp接口
func (c *cliAppImpl) Run(ctx context.Context) error {
	return c.controller.Run(ctx)
}

// Module 创建并配置CLI模块
//
// 🔧 **使用方式**：
//
//	app := fx.New(
//	    corelog.Module(),
//	    metrics.Module(),
//	    cli.Module(),
//	    fx.Populate(&cliApp),
//	)
//
// ⚠️ **依赖要求**：需要同时加载日志模块（消费本模块提供的 *logconfig.Config）
// 和 metrics 模块（提供 metrics.OutcomeRecorder）
func Module() fx.Option {
	return fx.Module("cli",
		// 配置
		fx.Provide(
			provideSettings,
			provideLogConfig,
			provideNetwork,
		),

		// 终端
		fx.Provide(
			provideComponents,
			provideSession,
			fx.Annotate(ui.NewGate, fx.As(new(flows.Confirmer))),
		),

		// 钱包注册表
		fx.Provide(provideRegistry),

		// 业务流程
		fx.Provide(
			provideOperations,
			provideBatchFlow,
		),

		// 交互界面
		fx.Provide(
			provideDashboard,
			provideMenu,
			provideController,
		),

		// CLIApp接口实现
		fx.Provide(
			fx.Annotate(
				func(controller *manager.Controller) *cliAppImpl { return &cliAppImpl{controller: controller} },
				fx.As(new(CLIApp)),
			),
		),
	)
}

func provideSettings() (*env.Settings, error) {
	settings, err := env.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return settings, nil
}

func provideLogConfig(settings *env.Settings) *logconfig.Config {
	return logconfig.New(&logconfig.UserLogConfig{
		Level:    &settings.LogLevel,
		FilePath: &settings.LogFile,
	})
}

func provideNetwork(settings *env.Settings) *network.Network {
	return network.New(network.WithRPCURL(settings.RPCURL))
}

// provideComponents 输出不是终端时关闭清屏和动画
func provideComponents() ui.Components {
	return ui.NewComponents(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
}

func provideSession() *ui.Session {
	return ui.NewSession(os.Stdin, os.Stdout)
}

// registryParams 钱包注册表依赖
type registryParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Settings  *env.Settings
	Network   *network.Network
	UI        ui.Components
	Logger    log.Logger
}

// provideRegistry 读取私钥和代理并构建钱包注册表
func provideRegistry(p registryParams) (*wallet.Registry, error) {
	keys, err := env.LoadPrivateKeys(os.LookupEnv)
	if err != nil {
		p.UI.ShowError("Error: No private keys found in environment (PRIVATE_KEY1, PRIVATE_KEY2, ...)")
		p.Logger.Errorf("加载私钥失败: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	proxies, err := env.LoadProxies(p.Settings.ProxyFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		p.Logger.Warnf("读取代理文件失败: %v", err)
	}
	if len(proxies) == 0 {
		p.UI.ShowWarning(fmt.Sprintf("No proxies found in %s. Running without proxy.", p.Settings.ProxyFile))
	} else {
		p.UI.ShowInfo(fmt.Sprintf("Loaded %d proxies from %s", len(proxies), p.Settings.ProxyFile))
	}

	registry, err := wallet.Build(context.Background(), keys, proxies, p.Network, wallet.DialRPC, p.Logger)
	for _, s := range registry.Skipped() {
		if errors.Is(s.Reason, wallet.ErrInvalidPrivateKey) {
			p.UI.ShowError(fmt.Sprintf("Invalid private key for %s%d", env.PrivateKeyPrefix, s.Index))
		} else {
			p.UI.ShowError(fmt.Sprintf("Connection error for %s%d: %v", env.PrivateKeyPrefix, s.Index, s.Reason))
		}
	}
	if err != nil {
		p.UI.ShowError("Error: No valid wallets found")
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	p.Lifecycle.Append(fx.StopHook(registry.Close))
	return registry, nil
}

func provideOperations(
	net *network.Network,
	uiComponents ui.Components,
	gate flows.Confirmer,
	logger log.Logger,
	recorder metrics.OutcomeRecorder,
) (*flows.Operations, error) {
	ops, err := flows.NewOperations(net, uiComponents, gate, logger)
	if err != nil {
		return nil, err
	}
	return ops.WithRecorder(recorder), nil
}

func provideBatchFlow(
	ops *flows.Operations,
	gate flows.Confirmer,
	uiComponents ui.Components,
	net *network.Network,
	logger log.Logger,
	recorder metrics.OutcomeRecorder,
) *flows.BatchFlow {
	return flows.NewBatchFlow(ops, gate, uiComponents, net, logger).WithRecorder(recorder)
}

func provideDashboard(logger log.Logger, uiComponents ui.Components, net *network.Network, ops *flows.Operations, registry *wallet.Registry) *interactive.Dashboard {
	return interactive.NewDashboard(logger, uiComponents, net, ops.Staking(), registry)
}

func provideMenu(
	logger log.Logger,
	uiComponents ui.Components,
	session *ui.Session,
	registry *wallet.Registry,
	ops *flows.Operations,
	batch *flows.BatchFlow,
	dashboard *interactive.Dashboard,
) *interactive.Menu {
	return interactive.NewMenu(logger, uiComponents, session, registry, ops, batch, dashboard)
}

func provideController(
	logger log.Logger,
	uiComponents ui.Components,
	registry *wallet.Registry,
	dashboard *interactive.Dashboard,
	menu *interactive.Menu,
) *manager.Controller {
	return manager.NewController(logger, uiComponents, registry, dashboard, menu)
}
