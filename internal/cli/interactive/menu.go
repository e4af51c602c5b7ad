// Package interactive 提供主菜单循环和状态仪表盘
//
// 📋 **交互菜单 (Interactive Menu)**
//
// 菜单状态流转：
//
//	等待选项 → 执行处理器 → 等待回车 → 清屏并重绘仪表盘 → 等待选项
//
// 选项 6 或输入流关闭时结束循环。无效选项只重绘菜单，不访问网络。
package interactive

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/weisyn/teabot/internal/chain"
	"github.com/weisyn/teabot/internal/cli/flows"
	"github.com/weisyn/teabot/internal/cli/ui"
	"github.com/weisyn/teabot/internal/wallet"
	"github.com/weisyn/teabot/pkg/interfaces/infrastructure/log"
)

// 菜单文案
const (
	MenuTitle      = "MAIN MENU"
	OptionPrompt   = "Choose an option (1-6): "
	ContinuePrompt = "\nPress Enter to return to the main menu..."
	InvalidOption  = "Invalid option. Please try again."
	InvalidAmount  = "Invalid amount. Please enter a positive number."
	InvalidCount   = "Invalid count. Please enter a positive integer."
	Farewell       = "Thank you for using TEA BOT!"
)

// MenuOptions 主菜单选项，编号由位置决定
var MenuOptions = []string{
	"Send TEA to random addresses",
	"Stake TEA",
	"Claim rewards",
	"Withdraw stTEA",
	"Daily task (100 transfers of 0.0001 TEA)",
	"Exit",
}

// Operations 单笔交易操作
type Operations interface {
	Stake(ctx context.Context, e *wallet.Entry, amount *chain.Amount) *flows.Outcome
	Withdraw(ctx context.Context, e *wallet.Entry, amount *chain.Amount) *flows.Outcome
	ClaimRewards(ctx context.Context, e *wallet.Entry) *flows.Outcome
}

// Batch 批量转账
type Batch interface {
	Run(ctx context.Context, e *wallet.Entry, amount *chain.Amount, count int) *flows.BatchReport
	DailyTask(ctx context.Context, e *wallet.Entry) *flows.BatchReport
}

// Renderer 仪表盘
type Renderer interface {
	Render(ctx context.Context)
}

// WalletSource 钱包列表
type WalletSource interface {
	Entries() []*wallet.Entry
}

// errExit 选择了退出选项
var errExit = errors.New("exit requested")

// Menu 主菜单
type Menu struct {
	logger    log.Logger
	ui        ui.Components
	session   *ui.Session
	wallets   WalletSource
	ops       Operations
	batch     Batch
	dashboard Renderer
}

// NewMenu 创建主菜单
func NewMenu(
	logger log.Logger,
	uiComponents ui.Components,
	session *ui.Session,
	wallets WalletSource,
	ops Operations,
	batch Batch,
	dashboard Renderer,
) *Menu {
	return &Menu{
		logger:    logger,
		ui:        uiComponents,
		session:   session,
		wallets:   wallets,
		ops:       ops,
		batch:     batch,
		dashboard: dashboard,
	}
}

// Run 运行菜单循环
// 选择退出、输入流关闭或读取失败时打印告别语并返回 nil；ctx 取消时返回 ctx.Err()
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			m.logger.Info("收到退出信号，正在停止菜单...")
			return err
		}

		m.ui.ShowMenu(MenuTitle, MenuOptions)
		choice, err := m.session.ReadLine("\n" + OptionPrompt)
		if err != nil {
			return m.finish(err)
		}

		handler := m.handlerFor(strings.TrimSpace(choice))
		if handler == nil {
			m.ui.ShowError(InvalidOption)
			continue
		}

		err = handler(ctx)
		switch {
		case errors.Is(err, errExit):
			m.ui.ShowBanner("EXITING")
			return m.finish(nil)
		case errors.Is(err, ui.ErrTooManyAttempts):
			m.logger.Warnf("处理器放弃: %v", err)
			m.ui.ShowWarning("Too many invalid attempts. Returning to main menu.")
			continue
		case err != nil:
			return m.finish(err)
		}

		if err := m.session.WaitEnter(ContinuePrompt); err != nil {
			return m.finish(err)
		}
		m.ui.Clear()
		m.dashboard.Render(ctx)
	}
}

// finish 结束菜单循环
// 输入流关闭和读取失败都视为正常退出，只有 ctx 取消原样返回
func (m *Menu) finish(err error) error {
	switch {
	case err == nil, errors.Is(err, ui.ErrInputClosed):
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		m.logger.Errorf("读取输入失败，按输入关闭处理: %v", err)
	}
	m.ui.ShowSuccess(Farewell)
	m.logger.Info("菜单结束")
	return nil
}

func (m *Menu) handlerFor(choice string) func(context.Context) error {
	switch choice {
	case "1":
		return m.handleRandomTransfers
	case "2":
		return m.handleStake
	case "3":
		return m.handleClaim
	case "4":
		return m.handleWithdraw
	case "5":
		return m.handleDailyTask
	case "6":
		return func(context.Context) error { return errExit }
	default:
		return nil
	}
}

// handleRandomTransfers 选项 1
func (m *Menu) handleRandomTransfers(ctx context.Context) error {
	m.ui.ShowBanner("RANDOM TRANSFERS")
	amount, err := m.promptAmount("Enter amount of TEA to send in each transfer: ")
	if err != nil {
		return err
	}
	count, err := ui.Prompt(m.session, m.ui, "Enter number of transfers to make per wallet: ", InvalidCount, ParseCount)
	if err != nil {
		return err
	}

	return m.eachWallet(ctx, "Processing transfers for", func(e *wallet.Entry) error {
		report := m.batch.Run(ctx, e, amount, count)
		return abortReason(report.Aborted(), report.Reason)
	})
}

// handleStake 选项 2
func (m *Menu) handleStake(ctx context.Context) error {
	m.ui.ShowBanner("STAKING")
	amount, err := m.promptAmount("Enter amount of TEA to stake: ")
	if err != nil {
		return err
	}
	return m.eachWallet(ctx, "Staking for", func(e *wallet.Entry) error {
		out := m.ops.Stake(ctx, e, amount)
		return abortReason(out.Aborted(), out.Reason)
	})
}

// handleClaim 选项 3
func (m *Menu) handleClaim(ctx context.Context) error {
	m.ui.ShowBanner("CLAIMING")
	return m.eachWallet(ctx, "Claiming for", func(e *wallet.Entry) error {
		out := m.ops.ClaimRewards(ctx, e)
		return abortReason(out.Aborted(), out.Reason)
	})
}

// handleWithdraw 选项 4
func (m *Menu) handleWithdraw(ctx context.Context) error {
	m.ui.ShowBanner("WITHDRAWING")
	amount, err := m.promptAmount("Enter amount of stTEA to withdraw: ")
	if err != nil {
		return err
	}
	return m.eachWallet(ctx, "Withdrawing for", func(e *wallet.Entry) error {
		out := m.ops.Withdraw(ctx, e, amount)
		return abortReason(out.Aborted(), out.Reason)
	})
}

// handleDailyTask 选项 5
func (m *Menu) handleDailyTask(ctx context.Context) error {
	return m.eachWallet(ctx, "Executing daily task for", func(e *wallet.Entry) error {
		report := m.batch.DailyTask(ctx, e)
		return abortReason(report.Aborted(), report.Reason)
	})
}

// eachWallet 按顺序对每个钱包执行 fn，输入流关闭时立即停止
func (m *Menu) eachWallet(ctx context.Context, verb string, fn func(e *wallet.Entry) error) error {
	entries := m.wallets.Entries()
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.ui.ShowText(fmt.Sprintf("\n%s Wallet %d/%d (%s)", verb, i+1, len(entries), e.Address.Hex()))
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func (m *Menu) promptAmount(prompt string) (*chain.Amount, error) {
	return ui.Prompt(m.session, m.ui, prompt, InvalidAmount, ParsePositiveAmount)
}

func abortReason(aborted bool, reason error) error {
	if aborted {
		return reason
	}
	return nil
}

// ParsePositiveAmount 解析正的十进制金额
func ParsePositiveAmount(s string) (*chain.Amount, error) {
	amount, err := chain.ParseAmount(s)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: must be positive", chain.ErrInvalidAmount)
	}
	return amount, nil
}

// ParseCount 解析正整数
func ParseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("count must be positive: %d", n)
	}
	return n, nil
}
