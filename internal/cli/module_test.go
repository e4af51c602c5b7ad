package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/weisyn/teabot/internal/chain/testutil"
	"github.com/weisyn/teabot/internal/cli/interactive"
	"github.com/weisyn/teabot/internal/cli/ui"
	"github.com/weisyn/teabot/internal/config/env"
	corelog "github.com/weisyn/teabot/internal/core/infrastructure/log"
	"github.com/weisyn/teabot/internal/core/infrastructure/metrics"
	"github.com/weisyn/teabot/internal/wallet"
)

// setupEnv 把配置文件和日志都指向临时目录，RPC 指向本地不可达地址
func setupEnv(t *testing.T, keys ...string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TEABOT_ENV_FILE", filepath.Join(dir, "none.env"))
	t.Setenv("TEABOT_PROXY_FILE", filepath.Join(dir, "proxies.txt"))
	t.Setenv("TEABOT_LOG_FILE", filepath.Join(dir, "logs", "teabot.log"))
	t.Setenv("TEABOT_RPC_URL", "http://127.0.0.1:1")

	for i := 0; i < 3; i++ {
		value := ""
		if i < len(keys) {
			value = keys[i]
		}
		t.Setenv(env.PrivateKeyPrefix+strconv.Itoa(i+1), value)
	}
}

// newTestApp 组装与 main 相同的模块，终端输出写入 out
func newTestApp(out *bytes.Buffer) (*fx.App, *CLIApp) {
	pterm.DisableColor()
	var app CLIApp
	fxApp := fx.New(
		corelog.Module(),
		metrics.Module(),
		Module(),
		fx.Decorate(func(ui.Components) ui.Components { return ui.NewComponents(out, false) }),
		fx.NopLogger,
		fx.Populate(&app),
	)
	return fxApp, &app
}

func TestModuleConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		cause    error
		messages []string
	}{
		{
			name:     "no private keys",
			cause:    env.ErrNoPrivateKeys,
			messages: []string{"Error: No private keys found in environment (PRIVATE_KEY1, PRIVATE_KEY2, ...)"},
		},
		{
			name:  "no valid wallets",
			keys:  []string{"not-a-key", "0x1234"},
			cause: wallet.ErrNoValidWallets,
			messages: []string{
				"Invalid private key for PRIVATE_KEY1",
				"Invalid private key for PRIVATE_KEY2",
				"Error: No valid wallets found",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t, tt.keys...)
			var out bytes.Buffer

			fxApp, app := newTestApp(&out)

			err := fxApp.Err()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfig))
			assert.ErrorIs(t, err, tt.cause)
			assert.Nil(t, *app, "controller must not be built")

			text := out.String()
			for _, msg := range tt.messages {
				assert.Contains(t, text, msg)
			}
			assert.NotContains(t, text, interactive.MenuTitle)
			assert.NotContains(t, text, interactive.DashboardTitle)
		})
	}
}

func TestModuleBuildsWithValidKey(t *testing.T) {
	setupEnv(t, testutil.TestKeyHex, "bad")
	var out bytes.Buffer

	fxApp, app := newTestApp(&out)

	require.NoError(t, fxApp.Err())
	require.NotNil(t, *app)

	text := out.String()
	assert.Contains(t, text, "No proxies found in")
	assert.Contains(t, text, "Invalid private key for PRIVATE_KEY2")
	assert.NotContains(t, text, interactive.MenuTitle)

	ctx := context.Background()
	require.NoError(t, fxApp.Start(ctx))
	require.NoError(t, fxApp.Stop(ctx))
}
