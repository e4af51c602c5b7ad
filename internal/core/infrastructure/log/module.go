package log

import (
	"fmt"

	"github.com/google/uuid"
	logconfig "github.com/weisyn/teabot/internal/config/log"
	logInterface "github.com/weisyn/teabot/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// ModuleParams 定义日志模块的依赖参数
type ModuleParams struct {
	fx.In

	Config *logconfig.Config
}

// Module 返回日志模块
func Module() fx.Option {
	return fx.Module("log",
		fx.Provide(ProvideLogger),
	)
}

// ProvideLogger 按配置创建会话日志记录器并设为全局记录器
// 每次进程运行分配一个 session 字段，便于在轮转文件中按运行区分
func ProvideLogger(lc fx.Lifecycle, params ModuleParams) (logInterface.Logger, error) {
	base, err := New(params.Config)
	if err != nil {
		return nil, fmt.Errorf("创建日志记录器失败: %w", err)
	}

	logger := base.With("session", uuid.NewString())
	SetLogger(logger)

	lc.Append(fx.StopHook(func() {
		// 文件同步失败不影响退出
		_ = logger.Sync()
	}))
	return logger, nil
}
