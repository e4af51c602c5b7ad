package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// stakingABIJSON stTEA 合约中用到的三个方法
const stakingABIJSON = `[
	{"type":"function","name":"stake","stateMutability":"payable","inputs":[],"outputs":[]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[{"name":"_amount","type":"uint256"}],"outputs":[]}
]`

// StakingContract stTEA 合约编解码
type StakingContract struct {
	address common.Address
	abi     abi.ABI
}

// NewStakingContract 创建 stTEA 合约封装
func NewStakingContract(address common.Address) (*StakingContract, error) {
	parsed, err := abi.JSON(strings.NewReader(stakingABIJSON))
	if err != nil {
		return nil, fmt.Errorf("解析 stTEA ABI 失败: %w", err)
	}
	return &StakingContract{address: address, abi: parsed}, nil
}

// Address 返回合约地址
func (s *StakingContract) Address() common.Address {
	return s.address
}

// PackStake 编码 stake()
func (s *StakingContract) PackStake() ([]byte, error) {
	return s.abi.Pack("stake")
}

// PackWithdraw 编码 withdraw(uint256)
func (s *StakingContract) PackWithdraw(amount *big.Int) ([]byte, error) {
	return s.abi.Pack("withdraw", amount)
}

// BalanceOf 查询 stTEA 余额
func (s *StakingContract) BalanceOf(ctx context.Context, c Client, account common.Address) (*big.Int, error) {
	data, err := s.abi.Pack("balanceOf", account)
	if err != nil {
		return nil, err
	}

	out, err := c.CallContract(ctx, ethereum.CallMsg{To: &s.address, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("调用 balanceOf 失败: %w", err)
	}

	values, err := s.abi.Unpack("balanceOf", out)
	if err != nil {
		return nil, fmt.Errorf("解码 balanceOf 失败: %w", err)
	}
	balance, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("balanceOf 返回类型异常: %T", values[0])
	}
	return balance, nil
}
