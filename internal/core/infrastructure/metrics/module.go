// Package metrics 提供进程内的运行统计
//
// 📋 **运行统计基础设施模块 (Run Statistics Infrastructure Module)**
//
// 本模块提供：
// - Recorder：按操作类型和结果计数，批量转账按成功/失败计数
// - 退出时把统计快照写入日志
package metrics

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/weisyn/teabot/pkg/interfaces/infrastructure/log"
	metricsintf "github.com/weisyn/teabot/pkg/interfaces/infrastructure/metrics"
)

// Module 返回 metrics 模块的 fx.Option
//
// 提供：
// - *Recorder 以及 metricsintf.OutcomeRecorder
//
// 依赖：
// - log.Logger：退出时输出统计快照
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(
			NewRecorder,
			func(r *Recorder) metricsintf.OutcomeRecorder { return r },
		),
		fx.Invoke(LogSnapshotOnStop),
	)
}

// LogSnapshotOnStop 在应用停止时记录统计快照
func LogSnapshotOnStop(lifecycle fx.Lifecycle, recorder *Recorder, logger log.Logger) {
	lifecycle.Append(fx.StopHook(func() {
		snapshot, err := recorder.Snapshot()
		if err != nil {
			logger.Warnf("采集运行统计失败: %v", err)
			return
		}
		logger.GetZapLogger().Info("运行统计", zap.Any("counters", snapshot))
	}))
}
