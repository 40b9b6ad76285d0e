package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestWarnfPrefix(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	Warnf(&buf, "alias %s is taken", "3.12.7")

	if got := buf.String(); got != "warning: alias 3.12.7 is taken\n" {
		t.Errorf("Warnf output = %q", got)
	}
}

func TestNotefPrefix(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	Notef(&buf, "using manual override")

	if !strings.HasPrefix(buf.String(), "note: ") {
		t.Errorf("Notef output = %q", buf.String())
	}
}
