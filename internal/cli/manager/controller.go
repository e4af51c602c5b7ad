package manager

import (
	"context"

	"github.com/weisyn/teabot/internal/cli/interactive"
	"github.com/weisyn/teabot/internal/cli/ui"
	"github.com/weisyn/teabot/internal/wallet"
	"github.com/weisyn/teabot/pkg/interfaces/infrastructure/log"
)

// MenuRunner 菜单循环
type MenuRunner interface {
	Run(ctx context.Context) error
}

// Controller CLI控制器，协调仪表盘与主菜单
type Controller struct {
	logger    log.Logger
	ui        ui.Components
	registry  *wallet.Registry
	dashboard interactive.Renderer
	menu      MenuRunner
}

// NewController 创建CLI控制器实例
func NewController(
	logger log.Logger,
	uiComponents ui.Components,
	registry *wallet.Registry,
	dashboard interactive.Renderer,
	menu MenuRunner,
) *Controller {
	return &Controller{
		logger:    logger,
		ui:        uiComponents,
		registry:  registry,
		dashboard: dashboard,
		menu:      menu,
	}
}

// Run 启动CLI应用：清屏、显示仪表盘，然后进入菜单循环
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Infof("🚀 启动 teabot，钱包数量=%d，跳过=%d", c.registry.Len(), len(c.registry.Skipped()))

	c.ui.Clear()
	c.dashboard.Render(ctx)

	if err := c.menu.Run(ctx); err != nil {
		c.logger.Errorf("菜单异常结束: %v", err)
		return err
	}

	c.logger.Info("CLI应用正常结束")
	return nil
}
