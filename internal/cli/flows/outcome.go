package flows

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/weisyn/teabot/internal/cli/ui"
)

// Kind 操作类型
type Kind string

const (
	KindStake    Kind = "stake"
	KindWithdraw Kind = "withdraw"
	KindClaim    Kind = "claim"
	KindTransfer Kind = "transfer"
)

// Status 操作结果状态
type Status int

const (
	StatusSuccess Status = iota + 1
	StatusCancelled
	StatusFailed
)

// String 返回状态名称
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrDeclined 操作员在确认环节拒绝
var ErrDeclined = errors.New("declined by operator")

// Outcome 单笔操作的结果，只用于展示和测试，不持久化
type Outcome struct {
	Kind        Kind
	Status      Status
	Reason      error
	TxHash      common.Hash
	BlockNumber uint64
	To          common.Address // 仅随机转账
}

// OK 是否成功上链
func (o *Outcome) OK() bool {
	return o != nil && o.Status == StatusSuccess
}

// Aborted 是否因输入流关闭而中止
func (o *Outcome) Aborted() bool {
	return o != nil && errors.Is(o.Reason, ui.ErrInputClosed)
}

func cancelled(kind Kind, reason error) *Outcome {
	return &Outcome{Kind: kind, Status: StatusCancelled, Reason: reason}
}

func failed(kind Kind, reason error) *Outcome {
	return &Outcome{Kind: kind, Status: StatusFailed, Reason: reason}
}

type nopRecorder struct{}

func (nopRecorder) ObserveOutcome(string, string) {}
func (nopRecorder) ObserveBatch(string, int, int) {}
