package flows

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/weisyn/teabot/internal/chain"
	"github.com/weisyn/teabot/internal/cli/ui"
	"github.com/weisyn/teabot/internal/config/network"
	"github.com/weisyn/teabot/internal/wallet"
	"github.com/weisyn/teabot/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/teabot/pkg/interfaces/infrastructure/metrics"
)

// 每日任务固定参数
const (
	DailyTaskCount = 100
	dailyTaskWei   = 100_000_000_000_000 // 0.0001 TEA
)

// DefaultTransferPause 相邻两笔转账之间的固定间隔
const DefaultTransferPause = 2 * time.Second

// DailyTaskAmount 每日任务单笔金额
func DailyTaskAmount() *chain.Amount {
	return chain.NewAmountFromWei(big.NewInt(dailyTaskWei))
}

// RandomTransferer 单笔随机转账
type RandomTransferer interface {
	TransferRandom(ctx context.Context, e *wallet.Entry, amount *chain.Amount, skipConfirm bool) *Outcome
}

// Sleeper 可替换的等待函数
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext 等待 d 或 ctx 取消
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// BatchReport 批量转账汇总
type BatchReport struct {
	Label     string
	Requested int
	Succeeded int
	Failed    int
	Status    Status
	Reason    error
	Outcomes  []*Outcome
}

// Aborted 是否因输入流关闭而中止
func (r *BatchReport) Aborted() bool {
	return (&Outcome{Reason: r.Reason}).Aborted()
}

// 批量转账与每日任务的横幅和预览文案
const (
	batchTitle  = "BATCH TRANSFER"
	batchAction = "Batch Transfer"
	dailyTitle  = "DAILY TASK"
	dailyAction = "Daily Task"
)

// BatchFlow 批量随机转账编排
type BatchFlow struct {
	transfers RandomTransferer
	gate      Confirmer
	ui        ui.Components
	logger    log.Logger
	recorder  metrics.OutcomeRecorder
	symbol    string
	pause     time.Duration
	sleep     Sleeper
}

// NewBatchFlow 创建批量转账流程
func NewBatchFlow(transfers RandomTransferer, gate Confirmer, uiComponents ui.Components, net *network.Network, logger log.Logger) *BatchFlow {
	return &BatchFlow{
		transfers: transfers,
		gate:      gate,
		ui:        uiComponents,
		logger:    logger,
		recorder:  nopRecorder{},
		symbol:    net.Symbol,
		pause:     DefaultTransferPause,
		sleep:     SleepContext,
	}
}

// WithRecorder 设置结果统计
func (b *BatchFlow) WithRecorder(r metrics.OutcomeRecorder) *BatchFlow {
	if r != nil {
		b.recorder = r
	}
	return b
}

// WithSleeper 替换等待函数
func (b *BatchFlow) WithSleeper(pause time.Duration, sleep Sleeper) *BatchFlow {
	b.pause = pause
	if sleep != nil {
		b.sleep = sleep
	}
	return b
}

// Run 对单个钱包执行 count 笔随机转账，整批只确认一次
func (b *BatchFlow) Run(ctx context.Context, e *wallet.Entry, amount *chain.Amount, count int) *BatchReport {
	report := &BatchReport{Label: batchAction, Requested: count}
	logger := b.logger.With("op", "batch", "wallet", e.Address.Hex(), "count", count)
	defer func() {
		b.recorder.ObserveBatch(report.Label, report.Succeeded, report.Failed)
	}()

	b.ui.ShowBanner(batchTitle)
	b.ui.ShowInfo(fmt.Sprintf("Preparing %d random transfers of %s %s each...", count, amount, b.symbol))

	// 1. 整体估算与确认
	if status, err := b.confirmTotals(ctx, e, batchTitle, batchAction, amount, count, logger); err != nil {
		report.Status, report.Reason = status, err
		return report
	}

	// 2. 逐笔执行，单笔失败不影响后续
	b.ui.ShowInfo(fmt.Sprintf("Starting %d transfers...", count))
	for i := 0; i < count; i++ {
		b.ui.ShowText(fmt.Sprintf("\nTransfer %d/%d", i+1, count))
		outcome := b.transfers.TransferRandom(ctx, e, amount, true)
		report.Outcomes = append(report.Outcomes, outcome)
		if outcome.OK() {
			report.Succeeded++
		} else {
			report.Failed++
		}

		if i < count-1 {
			if err := b.sleep(ctx, b.pause); err != nil {
				logger.Warnf("批量转账在第 %d 笔后中断: %v", i+1, err)
				report.Reason = err
				break
			}
		}
	}

	if report.Reason != nil {
		report.Status = StatusCancelled
		b.ui.ShowWarning(fmt.Sprintf("Interrupted after %d/%d transfers (%d succeeded).", len(report.Outcomes), count, report.Succeeded))
		b.ui.ShowBanner(batchTitle + " INTERRUPTED")
		return report
	}

	report.Status = StatusSuccess
	b.ui.ShowSuccess(fmt.Sprintf("Completed %d/%d transfers successfully.", report.Succeeded, count))
	b.ui.ShowBanner(batchTitle + " COMPLETED")
	logger.Infof("批量转账完成 succeeded=%d failed=%d", report.Succeeded, report.Failed)
	return report
}

// DailyTask 每日任务：先确认每日任务本身，再执行 DailyTaskCount 笔 0.0001 TEA 的批量转账
// 批量转账内部还会再确认一次
func (b *BatchFlow) DailyTask(ctx context.Context, e *wallet.Entry) *BatchReport {
	amount := DailyTaskAmount()
	logger := b.logger.With("op", "daily", "wallet", e.Address.Hex())

	b.ui.ShowBanner(dailyTitle)
	b.ui.ShowInfo(fmt.Sprintf("Preparing daily task: %d transfers of %s %s each", DailyTaskCount, amount, b.symbol))

	if status, err := b.confirmTotals(ctx, e, dailyTitle, dailyAction, amount, DailyTaskCount, logger); err != nil {
		return &BatchReport{Label: dailyAction, Requested: DailyTaskCount, Status: status, Reason: err}
	}

	report := b.Run(ctx, e, amount, DailyTaskCount)
	if report.Status == StatusSuccess {
		b.ui.ShowBanner(dailyTitle + " COMPLETED")
	}
	return report
}

// confirmTotals 估算整批费用并走一次确认
// 确认通过返回 nil；否则已打印对应横幅，返回最终状态和原因
func (b *BatchFlow) confirmTotals(ctx context.Context, e *wallet.Entry, title, action string, amount *chain.Amount, count int, logger log.Logger) (Status, error) {
	fee, err := chain.EstimateFee(ctx, e.Client, network.GasLimitTransfer)
	if err != nil {
		logger.Errorf("[batch] 查询 gas 价格失败: %v", err)
		b.ui.ShowError(fmt.Sprintf("Error estimating batch fee: %v", err))
		b.ui.ShowBanner(title + " FAILED")
		return StatusFailed, err
	}

	confirmed, err := b.gate.Confirm([]ui.Field{
		{Key: "Action", Value: action},
		{Key: "Total Amount", Value: fmt.Sprintf("%s %s", amount.Mul(int64(count)).Fixed(4), b.symbol)},
		{Key: "Transfers", Value: fmt.Sprintf("%d", count)},
		{Key: "Est. Gas", Value: fmt.Sprintf("%s %s", fee.Mul(int64(count)).Ether(), b.symbol)},
	})
	if err != nil {
		return StatusCancelled, err
	}
	if !confirmed {
		b.ui.ShowError("Transaction canceled.")
		b.ui.ShowBanner(title + " CANCELED")
		logger.Info("已取消")
		return StatusCancelled, ErrDeclined
	}
	return StatusSuccess, nil
}
