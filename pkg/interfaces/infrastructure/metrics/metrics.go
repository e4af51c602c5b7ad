// Package metrics 定义运行统计接口
//
// 📋 **运行统计接口层 (Run Statistics Interface Layer)**
//
// 交易流程只依赖本接口上报结果，实现位于 internal/core/infrastructure/metrics。
// 统计只保存在进程内，退出时写入日志，不对外暴露端点。
package metrics

// OutcomeRecorder 交易结果统计
type OutcomeRecorder interface {
	// ObserveOutcome 记录一次单笔操作的结果
	ObserveOutcome(kind, status string)

	// ObserveBatch 记录一次批量转账的成功与失败笔数
	ObserveBatch(label string, succeeded, failed int)
}
