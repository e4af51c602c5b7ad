package interactive

import (
	"os"
	"testing"

	"github.com/pterm/pterm"
)

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}
