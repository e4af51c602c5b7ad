package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentsOutput(t *testing.T) {
	var out bytes.Buffer
	c := NewComponents(&out, false)

	c.ShowHeader("TEA BOT")
	c.ShowBanner("STAKING COMPLETED")
	c.ShowSuccess("done")
	c.ShowError("broken")
	c.ShowWarning("careful")
	c.ShowInfo("fyi")
	c.ShowMuted("View on explorer")
	c.ShowMenu("Main Menu", []string{"Stake TEA", "Exit"})

	text := out.String()
	for _, want := range []string{
		"TEA BOT",
		"===== STAKING COMPLETED =====",
		"SUCCESS", "done",
		"ERROR", "broken",
		"WARNING", "careful",
		"INFO", "fyi",
		"View on explorer",
		"Main Menu", "1. Stake TEA", "2. Exit",
	} {
		assert.Contains(t, text, want)
	}
}

func TestClearOnlyWhenInteractive(t *testing.T) {
	var out bytes.Buffer
	NewComponents(&out, false).Clear()
	assert.Empty(t, out.String())

	NewComponents(&out, true).Clear()
	assert.Equal(t, "\x1Bc", out.String())
}

func TestSpinnerFallback(t *testing.T) {
	var out bytes.Buffer
	c := NewComponents(&out, false)

	sp := c.ShowSpinner("Waiting for confirmation...")
	require.NoError(t, sp.Start())
	require.NoError(t, sp.Success("mined"))
	require.NoError(t, sp.Stop())

	sp = c.ShowSpinner("again")
	require.NoError(t, sp.Start())
	require.NoError(t, sp.Stop())

	text := out.String()
	assert.Contains(t, text, "Waiting for confirmation...")
	assert.Contains(t, text, "mined")
	assert.Contains(t, text, "again")
}
