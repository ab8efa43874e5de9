package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Display shows a spinner for one in-flight task at a time. On non-interactive
// terminals it degrades to plain printed messages.
type Display struct {
	capabilities TerminalCapabilities
	spinner      *spinner.Spinner
	symbols      Symbols
}

// NewDisplay creates a display for the given terminal capabilities.
func NewDisplay(caps TerminalCapabilities) *Display {
	return &Display{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
	}
}

// Start begins showing progress for a task described by msg.
func (d *Display) Start(msg string) {
	if d.capabilities.IsTTY {
		d.spinner = spinner.New(
			spinner.CharSets[d.symbols.SpinnerSet],
			100*time.Millisecond,
		)
		// Stderr keeps the spinner out of redirected report output.
		d.spinner.Writer = os.Stderr
		d.spinner.Suffix = " " + msg
		d.spinner.Start()
		return
	}
	fmt.Println(msg)
}

// Complete stops the spinner and prints a completion message.
func (d *Display) Complete(msg string) {
	d.stopSpinner()
	fmt.Printf("%s %s\n", d.symbols.Checkmark, msg)
}

// Fail stops the spinner and prints a failure message.
func (d *Display) Fail(msg string, err error) {
	d.stopSpinner()
	fmt.Printf("%s %s: %v\n", d.symbols.Failure, msg, err)
}

// Stop stops the spinner without printing anything.
func (d *Display) Stop() {
	d.stopSpinner()
}

func (d *Display) stopSpinner() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}
