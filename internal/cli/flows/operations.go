// Package flows 提供交易操作与批量转账的交互流程
//
// 📋 **交易流程 (Transaction Flows)**
//
// 每个操作遵循相同的步骤：
//  1. 构造调用参数
//  2. 查询 gas 价格并按固定 gas 上限估算费用（仅用于预览）
//  3. 经确认闸门确认；拒绝则返回 cancelled，不发生任何链上写操作
//  4. 以相同的 gas 上限和提交时的实时 gas 价格签名并广播
//  5. 立即打印交易哈希和浏览器链接
//  6. 等待打包并打印区块号
//
// 任何一步出错都会被记录并转换为 failed 结果，不会向上抛出。
package flows

import (
	"context"
	"fmt"

	"github.com/weisyn/teabot/internal/chain"
	"github.com/weisyn/teabot/internal/cli/ui"
	"github.com/weisyn/teabot/internal/config/network"
	"github.com/weisyn/teabot/internal/wallet"
	"github.com/weisyn/teabot/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/teabot/pkg/interfaces/infrastructure/metrics"
)

// Confirmer 确认闸门
type Confirmer interface {
	Confirm(fields []ui.Field) (bool, error)
}

// opInfo 单类操作的固定展示信息
type opInfo struct {
	kind         Kind
	gasLimit     uint64
	errPrefix    string // 失败提示前缀
	startBanner  string
	success      string
	doneBanner   string
	cancelBanner string
	failBanner   string
}

// Operations 交易操作集合
type Operations struct {
	network  *network.Network
	staking  *chain.StakingContract
	ui       ui.Components
	gate     Confirmer
	logger   log.Logger
	recorder metrics.OutcomeRecorder
}

// NewOperations 创建交易操作集合
func NewOperations(net *network.Network, uiComponents ui.Components, gate Confirmer, logger log.Logger) (*Operations, error) {
	staking, err := chain.NewStakingContract(net.StakingContract)
	if err != nil {
		return nil, err
	}
	return &Operations{
		network:  net,
		staking:  staking,
		ui:       uiComponents,
		gate:     gate,
		logger:   logger,
		recorder: nopRecorder{},
	}, nil
}

// WithRecorder 设置结果统计
func (o *Operations) WithRecorder(r metrics.OutcomeRecorder) *Operations {
	if r != nil {
		o.recorder = r
	}
	return o
}

// Staking 返回 stTEA 合约封装
func (o *Operations) Staking() *chain.StakingContract {
	return o.staking
}

// Stake 质押原生 TEA 换取 stTEA
func (o *Operations) Stake(ctx context.Context, e *wallet.Entry, amount *chain.Amount) *Outcome {
	info := opInfo{
		kind:         KindStake,
		gasLimit:     network.GasLimitStake,
		errPrefix:    "Error staking TEA",
		startBanner:  "STAKING TEA",
		success:      fmt.Sprintf("Successfully staked %s %s!", amount, o.network.Symbol),
		doneBanner:   "STAKING COMPLETED",
		cancelBanner: "STAKING CANCELED",
		failBanner:   "STAKING FAILED",
	}

	data, err := o.staking.PackStake()
	if err != nil {
		return o.fail(e, info, err)
	}

	return o.execute(ctx, e, info, chain.CallRequest{
		To:       o.staking.Address(),
		Value:    amount.Wei(),
		Data:     data,
		GasLimit: info.gasLimit,
	}, fmt.Sprintf("Staking %s %s...", amount, o.network.Symbol), false, func(fee *chain.Amount) []ui.Field {
		return []ui.Field{
			{Key: "Action", Value: "Stake"},
			{Key: "Amount", Value: fmt.Sprintf("%s %s", amount, o.network.Symbol)},
			{Key: "Est. Gas", Value: o.feeText(fee)},
		}
	})
}

// Withdraw 赎回 stTEA
func (o *Operations) Withdraw(ctx context.Context, e *wallet.Entry, amount *chain.Amount) *Outcome {
	info := opInfo{
		kind:         KindWithdraw,
		gasLimit:     network.GasLimitWithdraw,
		errPrefix:    "Error withdrawing TEA",
		startBanner:  "WITHDRAWING TEA",
		success:      fmt.Sprintf("Successfully withdrawn %s %s!", amount, network.StakedSymbol),
		doneBanner:   "WITHDRAW COMPLETED",
		cancelBanner: "WITHDRAW CANCELED",
		failBanner:   "WITHDRAW FAILED",
	}

	data, err := o.staking.PackWithdraw(amount.Wei())
	if err != nil {
		return o.fail(e, info, err)
	}

	return o.execute(ctx, e, info, chain.CallRequest{
		To:       o.staking.Address(),
		Data:     data,
		GasLimit: info.gasLimit,
	}, fmt.Sprintf("Withdrawing %s %s...", amount, network.StakedSymbol), false, func(fee *chain.Amount) []ui.Field {
		return []ui.Field{
			{Key: "Action", Value: "Withdraw"},
			{Key: "Amount", Value: fmt.Sprintf("%s %s", amount, network.StakedSymbol)},
			{Key: "Est. Gas", Value: o.feeText(fee)},
		}
	})
}

// ClaimRewards 领取质押奖励，成功后打印最新余额
// 领取入口没有参数，直接发送固定的函数选择器
func (o *Operations) ClaimRewards(ctx context.Context, e *wallet.Entry) *Outcome {
	info := opInfo{
		kind:         KindClaim,
		gasLimit:     network.GasLimitClaim,
		errPrefix:    "Error claiming rewards",
		success:      "Successfully claimed rewards!",
		doneBanner:   "CLAIMING COMPLETED",
		cancelBanner: "CLAIM CANCELED",
		failBanner:   "CLAIMING FAILED",
	}

	o.ui.ShowBanner("CLAIMING REWARDS")
	outcome := o.execute(ctx, e, info, chain.CallRequest{
		To:       o.staking.Address(),
		Data:     network.ClaimRewardsSelector,
		GasLimit: info.gasLimit,
	}, "Claiming stTEA rewards...", false, func(fee *chain.Amount) []ui.Field {
		return []ui.Field{
			{Key: "Action", Value: "Claim Rewards"},
			{Key: "Est. Gas", Value: o.feeText(fee)},
		}
	})
	if !outcome.OK() {
		return outcome
	}

	balance, err := e.Client.BalanceAt(ctx, e.Address, nil)
	if err != nil {
		o.logger.Warnf("[claim] 查询余额失败 wallet=%s: %v", e.Address.Hex(), err)
		o.ui.ShowWarning(fmt.Sprintf("Could not fetch updated balance: %v", err))
		return outcome
	}
	o.ui.ShowText(fmt.Sprintf("Updated %s Balance: %s %s", o.network.Symbol, chain.NewAmountFromWei(balance).Ether(), o.network.Symbol))
	return outcome
}

// TransferRandom 向新生成的随机地址转账
// skipConfirm 仅供批量转账使用，批量流程已整体确认过
func (o *Operations) TransferRandom(ctx context.Context, e *wallet.Entry, amount *chain.Amount, skipConfirm bool) *Outcome {
	info := opInfo{
		kind:         KindTransfer,
		gasLimit:     network.GasLimitTransfer,
		errPrefix:    "Error sending TEA",
		cancelBanner: "TRANSFER CANCELED",
		failBanner:   "TRANSFER FAILED",
	}

	to, err := chain.RandomAddress()
	if err != nil {
		return o.fail(e, info, err)
	}

	outcome := o.execute(ctx, e, info, chain.CallRequest{
		To:       to,
		Value:    amount.Wei(),
		GasLimit: info.gasLimit,
	}, fmt.Sprintf("Sending %s %s to random address: %s", amount, o.network.Symbol, to.Hex()), skipConfirm, func(fee *chain.Amount) []ui.Field {
		return []ui.Field{
			{Key: "Action", Value: "Transfer"},
			{Key: "Amount", Value: fmt.Sprintf("%s %s", amount, o.network.Symbol)},
			{Key: "To", Value: ui.TruncateAddress(to.Hex())},
			{Key: "Est. Gas", Value: o.feeText(fee)},
		}
	})
	outcome.To = to
	return outcome
}

func (o *Operations) feeText(fee *chain.Amount) string {
	return fmt.Sprintf("%s %s", fee.Ether(), o.network.Symbol)
}

// execute 估算 → 确认 → 提交 → 等待
func (o *Operations) execute(
	ctx context.Context,
	e *wallet.Entry,
	info opInfo,
	req chain.CallRequest,
	progress string,
	skipConfirm bool,
	preview func(fee *chain.Amount) []ui.Field,
) (outcome *Outcome) {
	logger := o.logger.With("op", string(info.kind), "wallet", e.Address.Hex())
	defer func() {
		o.recorder.ObserveOutcome(string(info.kind), outcome.Status.String())
	}()

	// 1. 估算费用
	if !skipConfirm {
		fee, err := chain.EstimateFee(ctx, e.Client, info.gasLimit)
		if err != nil {
			return o.fail(e, info, fmt.Errorf("fee query: %w", err))
		}

		// 2. 确认
		confirmed, err := o.gate.Confirm(preview(fee))
		if err != nil {
			logger.Infof("确认中止: %v", err)
			return cancelled(info.kind, err)
		}
		if !confirmed {
			o.ui.ShowError("Transaction canceled.")
			if info.cancelBanner != "" {
				o.ui.ShowBanner(info.cancelBanner)
			}
			logger.Info("操作员取消")
			return cancelled(info.kind, ErrDeclined)
		}
	}

	if info.startBanner != "" {
		o.ui.ShowBanner(info.startBanner)
	}
	o.ui.ShowInfo(progress)

	// 3. 提交
	tx, err := e.Transactor.Send(ctx, e.Client, req)
	if err != nil {
		return o.fail(e, info, err)
	}
	hash := tx.Hash()
	o.ui.ShowText(fmt.Sprintf("Transaction sent! Hash: %s", hash.Hex()))
	o.ui.ShowMuted(fmt.Sprintf("View on explorer: %s", o.network.TxURL(hash)))
	logger.Infof("交易已广播 tx=%s", hash.Hex())

	// 4. 等待打包
	spinner := o.ui.ShowSpinner("Waiting for confirmation...")
	_ = spinner.Start()
	receipt, err := e.Transactor.WaitMined(ctx, e.Client, hash)
	if err != nil {
		_ = spinner.Stop()
		out := o.fail(e, info, err)
		out.TxHash = hash
		if receipt != nil && receipt.BlockNumber != nil {
			out.BlockNumber = receipt.BlockNumber.Uint64()
		}
		return out
	}

	block := receipt.BlockNumber.Uint64()
	_ = spinner.Success(fmt.Sprintf("Transaction confirmed in block %d", block))
	if info.success != "" {
		o.ui.ShowSuccess(info.success)
	}
	if info.doneBanner != "" {
		o.ui.ShowBanner(info.doneBanner)
	}
	logger.Infof("交易已确认 tx=%s block=%d", hash.Hex(), block)

	return &Outcome{
		Kind:        info.kind,
		Status:      StatusSuccess,
		TxHash:      hash,
		BlockNumber: block,
	}
}

// fail 记录错误并输出失败横幅
func (o *Operations) fail(e *wallet.Entry, info opInfo, err error) *Outcome {
	o.logger.Errorf("[%s] wallet=%s: %v", info.kind, e.Address.Hex(), err)
	o.ui.ShowError(fmt.Sprintf("%s: %v", info.errPrefix, err))
	if info.failBanner != "" {
		o.ui.ShowBanner(info.failBanner)
	}
	return failed(info.kind, err)
}
