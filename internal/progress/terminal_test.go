package progress

import "testing"

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps          TerminalCapabilities
		wantCheckmark string
		wantFailure   string
	}{
		"unicode terminal": {
			caps:          TerminalCapabilities{SupportsUnicode: true},
			wantCheckmark: "✓",
			wantFailure:   "✗",
		},
		"ascii fallback": {
			caps:          TerminalCapabilities{SupportsUnicode: false},
			wantCheckmark: "[OK]",
			wantFailure:   "[FAIL]",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			symbols := SelectSymbols(tt.caps)
			if symbols.Checkmark != tt.wantCheckmark {
				t.Errorf("Checkmark = %q, want %q", symbols.Checkmark, tt.wantCheckmark)
			}
			if symbols.Failure != tt.wantFailure {
				t.Errorf("Failure = %q, want %q", symbols.Failure, tt.wantFailure)
			}
		})
	}
}

func TestDetectTerminalCapabilities(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("WAFCTL_ASCII", "1")

	caps := DetectTerminalCapabilities()
	if caps.SupportsColor {
		t.Error("SupportsColor = true with NO_COLOR set")
	}
	if caps.SupportsUnicode {
		t.Error("SupportsUnicode = true with WAFCTL_ASCII=1")
	}
	if caps.Width < 0 {
		t.Errorf("Width = %d, want >= 0", caps.Width)
	}
}

func TestDisplay_NonInteractive(t *testing.T) {
	t.Parallel()

	// Off-TTY the display degrades to plain prints and keeps no spinner.
	d := NewDisplay(TerminalCapabilities{IsTTY: false})
	d.Start("working")
	if d.spinner != nil {
		t.Error("spinner should not start without a TTY")
	}
	d.Complete("done")
	d.Fail("task", nil)
	d.Stop()
}
