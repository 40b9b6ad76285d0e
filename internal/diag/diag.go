package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	warnColor = color.New(color.FgYellow)
	noteColor = color.New(color.FgCyan)
	okColor   = color.New(color.FgGreen)
)

// Warnf writes a yellow "warning:" line to w.
func Warnf(w io.Writer, format string, args ...interface{}) {
	warnColor.Fprint(w, "warning: ")
	fmt.Fprintf(w, format+"\n", args...)
}

// Notef writes a cyan "note:" line to w.
func Notef(w io.Writer, format string, args ...interface{}) {
	noteColor.Fprint(w, "note: ")
	fmt.Fprintf(w, format+"\n", args...)
}

// Okf writes a green confirmation line to w.
func Okf(w io.Writer, format string, args ...interface{}) {
	okColor.Fprintf(w, format+"\n", args...)
}
