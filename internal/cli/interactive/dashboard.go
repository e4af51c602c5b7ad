package interactive

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/weisyn/teabot/internal/chain"
	"github.com/weisyn/teabot/internal/cli/ui"
	"github.com/weisyn/teabot/internal/config/network"
	"github.com/weisyn/teabot/internal/wallet"
	"github.com/weisyn/teabot/pkg/interfaces/infrastructure/log"
)

// DashboardTitle 仪表盘标题
const DashboardTitle = "TEA SEPOLIA AUTO BOT"

// NetworkUnavailable 网络状态查询失败时的占位文本
const NetworkUnavailable = "Network status unavailable"

// Dashboard 启动和每次处理器结束后显示的状态面板
type Dashboard struct {
	logger  log.Logger
	ui      ui.Components
	network *network.Network
	staking *chain.StakingContract
	wallets WalletSource
}

// NewDashboard 创建仪表盘
func NewDashboard(logger log.Logger, uiComponents ui.Components, net *network.Network, staking *chain.StakingContract, wallets WalletSource) *Dashboard {
	return &Dashboard{
		logger:  logger,
		ui:      uiComponents,
		network: net,
		staking: staking,
		wallets: wallets,
	}
}

// Render 显示网络横幅和所有钱包信息
func (d *Dashboard) Render(ctx context.Context) {
	entries := d.wallets.Entries()
	if len(entries) == 0 {
		return
	}

	d.ui.ShowHeader(DashboardTitle)
	d.ui.ShowPanel(d.network.Name, d.networkStatus(ctx, entries[0].Client))

	for i, e := range entries {
		d.showWallet(ctx, i+1, e)
	}
}

// networkStatus 使用第一个钱包的连接查询区块高度和 gas 价格
func (d *Dashboard) networkStatus(ctx context.Context, c chain.Client) string {
	block, err := c.BlockNumber(ctx)
	if err != nil {
		d.logger.Warnf("查询区块高度失败: %v", err)
		return NetworkUnavailable
	}
	gasPrice, err := c.SuggestGasPrice(ctx)
	if err != nil {
		d.logger.Warnf("查询 gas 价格失败: %v", err)
		return NetworkUnavailable
	}
	return fmt.Sprintf("Block: %d | Gas: %s Gwei", block, chain.FormatFixed(gasPrice, chain.GweiDecimals, 2))
}

func (d *Dashboard) showWallet(ctx context.Context, index int, e *wallet.Entry) {
	var balanceText string
	balance, err := e.Client.BalanceAt(ctx, e.Address, nil)
	if err != nil {
		d.logger.Warnf("查询 %s 余额失败: %v", d.network.Symbol, err)
		balanceText = "unavailable"
	} else {
		balanceText = chain.NewAmountFromWei(balance).Ether()
	}

	// stTEA 查询失败按 0 显示
	staked, err := d.staking.BalanceOf(ctx, e.Client, e.Address)
	if err != nil {
		d.logger.Warnf("查询 %s 余额失败: %v", network.StakedSymbol, err)
		staked = big.NewInt(0)
	}

	lines := []string{
		"Your address: " + e.Address.Hex(),
		fmt.Sprintf("%s Balance: %s %s", d.network.Symbol, balanceText, d.network.Symbol),
		fmt.Sprintf("%s Balance: %s %s", network.StakedSymbol, chain.NewAmountFromWei(staked).Ether(), network.StakedSymbol),
		"Using proxy: " + e.ProxyLabel(),
	}
	d.ui.ShowPanel(fmt.Sprintf("WALLET %d INFORMATION", index), strings.Join(lines, "\n"))
}
