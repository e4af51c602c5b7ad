package interactive

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/teabot/internal/chain"
	"github.com/weisyn/teabot/internal/chain/testutil"
	"github.com/weisyn/teabot/internal/cli/flows"
	"github.com/weisyn/teabot/internal/cli/ui"
	corelog "github.com/weisyn/teabot/internal/core/infrastructure/log"
	"github.com/weisyn/teabot/internal/wallet"
)

type staticWallets []*wallet.Entry

func (s staticWallets) Entries() []*wallet.Entry { return s }

type opCall struct {
	kind   flows.Kind
	wallet int
	amount string
}

// fakeOps 记录调用；abortAt 指定第几次调用返回输入流关闭
type fakeOps struct {
	calls   []opCall
	abortAt int
}

func (f *fakeOps) record(kind flows.Kind, e *wallet.Entry, amount *chain.Amount) *flows.Outcome {
	call := opCall{kind: kind, wallet: e.Index}
	if amount != nil {
		call.amount = amount.String()
	}
	f.calls = append(f.calls, call)
	if f.abortAt > 0 && len(f.calls) == f.abortAt {
		return &flows.Outcome{Kind: kind, Status: flows.StatusCancelled, Reason: ui.ErrInputClosed}
	}
	return &flows.Outcome{Kind: kind, Status: flows.StatusSuccess}
}

func (f *fakeOps) Stake(_ context.Context, e *wallet.Entry, amount *chain.Amount) *flows.Outcome {
	return f.record(flows.KindStake, e, amount)
}

func (f *fakeOps) Withdraw(_ context.Context, e *wallet.Entry, amount *chain.Amount) *flows.Outcome {
	return f.record(flows.KindWithdraw, e, amount)
}

func (f *fakeOps) ClaimRewards(_ context.Context, e *wallet.Entry) *flows.Outcome {
	return f.record(flows.KindClaim, e, nil)
}

type batchCall struct {
	daily  bool
	wallet int
	amount string
	count  int
}

type fakeBatch struct {
	calls []batchCall
}

func (f *fakeBatch) Run(_ context.Context, e *wallet.Entry, amount *chain.Amount, count int) *flows.BatchReport {
	f.calls = append(f.calls, batchCall{wallet: e.Index, amount: amount.String(), count: count})
	return &flows.BatchReport{Requested: count, Succeeded: count, Status: flows.StatusSuccess}
}

func (f *fakeBatch) DailyTask(_ context.Context, e *wallet.Entry) *flows.BatchReport {
	f.calls = append(f.calls, batchCall{daily: true, wallet: e.Index, count: flows.DailyTaskCount})
	return &flows.BatchReport{Requested: flows.DailyTaskCount, Status: flows.StatusSuccess}
}

type countingRenderer struct {
	renders int
}

func (c *countingRenderer) Render(context.Context) { c.renders++ }

type menuFixture struct {
	menu      *Menu
	ops       *fakeOps
	batch     *fakeBatch
	dashboard *countingRenderer
	out       *bytes.Buffer
}

func newMenuFixture(input string) *menuFixture {
	return newMenuFixtureFrom(strings.NewReader(input))
}

func newMenuFixtureFrom(in io.Reader) *menuFixture {
	f := &menuFixture{
		ops:       &fakeOps{},
		batch:     &fakeBatch{},
		dashboard: &countingRenderer{},
		out:       &bytes.Buffer{},
	}
	wallets := staticWallets{
		{Index: 1, Address: common.HexToAddress(testutil.TestAddressHex)},
		{Index: 2, Address: common.HexToAddress(testutil.TestAddressHex2)},
	}
	f.menu = NewMenu(
		corelog.NewNop(),
		ui.NewComponents(f.out, false),
		ui.NewSession(in, f.out),
		wallets,
		f.ops,
		f.batch,
		f.dashboard,
	)
	return f
}

func TestMenuExitOption(t *testing.T) {
	f := newMenuFixture("6\n")

	require.NoError(t, f.menu.Run(context.Background()))

	text := f.out.String()
	assert.Contains(t, text, MenuTitle)
	assert.Contains(t, text, "Daily task (100 transfers of 0.0001 TEA)")
	assert.Contains(t, text, OptionPrompt)
	assert.Contains(t, text, "===== EXITING =====")
	assert.Contains(t, text, Farewell)
}

func TestMenuInputClosed(t *testing.T) {
	f := newMenuFixture("")

	require.NoError(t, f.menu.Run(context.Background()))
	assert.Contains(t, f.out.String(), Farewell)
	assert.Zero(t, f.dashboard.renders)
}

func TestMenuInvalidOption(t *testing.T) {
	tests := []string{"7", "0", "", "abc", "1.5", "66"}

	for _, choice := range tests {
		t.Run(choice, func(t *testing.T) {
			f := newMenuFixture(choice + "\n6\n")

			require.NoError(t, f.menu.Run(context.Background()))

			text := f.out.String()
			assert.Contains(t, text, InvalidOption)
			assert.Equal(t, 2, strings.Count(text, MenuTitle))
			assert.Empty(t, f.ops.calls)
			assert.Empty(t, f.batch.calls)
			assert.Zero(t, f.dashboard.renders, "invalid option must not touch the network")
		})
	}
}

func TestMenuTrimsChoice(t *testing.T) {
	f := newMenuFixture(" 3 \n\n6\n")

	require.NoError(t, f.menu.Run(context.Background()))
	assert.Len(t, f.ops.calls, 2)
}

func TestMenuStakeRepromptsAndLoopsWallets(t *testing.T) {
	f := newMenuFixture("2\nabc\n-1\n0\n1.5\n\n6\n")

	require.NoError(t, f.menu.Run(context.Background()))

	assert.Equal(t, []opCall{
		{kind: flows.KindStake, wallet: 1, amount: "1.5"},
		{kind: flows.KindStake, wallet: 2, amount: "1.5"},
	}, f.ops.calls)

	text := f.out.String()
	assert.Equal(t, 3, strings.Count(text, InvalidAmount))
	assert.Equal(t, 4, strings.Count(text, "Enter amount of TEA to stake: "))
	assert.Contains(t, text, "Staking for Wallet 1/2 ("+testutil.TestAddressHex+")")
	assert.Contains(t, text, "Staking for Wallet 2/2 ("+testutil.TestAddressHex2+")")
	assert.Contains(t, text, ContinuePrompt)
	assert.Equal(t, 1, f.dashboard.renders)
}

func TestMenuTooManyInvalidAttempts(t *testing.T) {
	f := newMenuFixture("4\nx\nx\nx\nx\nx\n6\n")

	require.NoError(t, f.menu.Run(context.Background()))

	assert.Empty(t, f.ops.calls)
	assert.Equal(t, 5, strings.Count(f.out.String(), InvalidAmount))
	assert.Contains(t, f.out.String(), "Too many invalid attempts")
	assert.Zero(t, f.dashboard.renders)
}

func TestMenuRandomTransfers(t *testing.T) {
	f := newMenuFixture("1\n0.01\nfive\n3\n\n6\n")

	require.NoError(t, f.menu.Run(context.Background()))

	assert.Equal(t, []batchCall{
		{wallet: 1, amount: "0.01", count: 3},
		{wallet: 2, amount: "0.01", count: 3},
	}, f.batch.calls)
	text := f.out.String()
	assert.Equal(t, 1, strings.Count(text, InvalidCount))
	assert.Equal(t, 1, strings.Count(text, "Enter amount of TEA to send in each transfer: "))
	assert.Contains(t, text, "Processing transfers for Wallet 2/2")
}

func TestMenuHandlers(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantOps    []opCall
		wantBatch  []batchCall
		wantHeader string
	}{
		{
			name:  "claim",
			input: "3\n\n6\n",
			wantOps: []opCall{
				{kind: flows.KindClaim, wallet: 1},
				{kind: flows.KindClaim, wallet: 2},
			},
			wantHeader: "Claiming for Wallet 1/2",
		},
		{
			name:  "withdraw",
			input: "4\n2\n\n6\n",
			wantOps: []opCall{
				{kind: flows.KindWithdraw, wallet: 1, amount: "2"},
				{kind: flows.KindWithdraw, wallet: 2, amount: "2"},
			},
			wantHeader: "Withdrawing for Wallet 2/2",
		},
		{
			name:  "daily task",
			input: "5\n\n6\n",
			wantBatch: []batchCall{
				{daily: true, wallet: 1, count: 100},
				{daily: true, wallet: 2, count: 100},
			},
			wantHeader: "Executing daily task for Wallet 1/2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMenuFixture(tt.input)

			require.NoError(t, f.menu.Run(context.Background()))

			assert.Equal(t, tt.wantOps, f.ops.calls)
			assert.Equal(t, tt.wantBatch, f.batch.calls)
			assert.Contains(t, f.out.String(), tt.wantHeader)
			assert.Equal(t, 1, f.dashboard.renders)
		})
	}
}

func TestMenuAbortStopsRemainingWallets(t *testing.T) {
	f := newMenuFixture("3\n")
	f.ops.abortAt = 1

	require.NoError(t, f.menu.Run(context.Background()))

	assert.Len(t, f.ops.calls, 1)
	assert.Contains(t, f.out.String(), Farewell)
	assert.Zero(t, f.dashboard.renders)
}

func TestMenuInputClosedAtContinuePrompt(t *testing.T) {
	f := newMenuFixture("3\n")

	require.NoError(t, f.menu.Run(context.Background()))
	assert.Len(t, f.ops.calls, 2)
	assert.Contains(t, f.out.String(), Farewell)
}

func TestMenuReadFailureEndsLikeInputClosed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"at option prompt", "7\n"},
		{"at amount prompt", "2\n"},
		{"at continue prompt", "3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := io.MultiReader(strings.NewReader(tt.input), iotest.ErrReader(errors.New("device gone")))
			f := newMenuFixtureFrom(in)

			require.NoError(t, f.menu.Run(context.Background()))
			assert.Contains(t, f.out.String(), Farewell)
		})
	}
}

func TestMenuContextCancelled(t *testing.T) {
	f := newMenuFixture("6\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, f.menu.Run(ctx), context.Canceled)
	assert.NotContains(t, f.out.String(), MenuTitle)
}

func TestParsePositiveAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"1", "1", false},
		{"0.0001", "0.0001", false},
		{"1.5", "1.5", false},
		{"0", "", true},
		{"0.0", "", true},
		{"-1", "", true},
		{"abc", "", true},
		{"", "", true},
		{"1e3", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePositiveAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"100", 100, false},
		{" 7 ", 7, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"2.5", 0, true},
		{"ten", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
