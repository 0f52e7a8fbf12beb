package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/renato0307/clawusage/internal/domain"
)

var (
	errorColor      = color.New(color.FgRed, color.Bold)
	suggestionColor = color.New(color.FgCyan)
)

// PrintError writes err to w as "Error: <message>", followed by a hint when the error carries one
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}

	_, _ = errorColor.Fprint(w, "Error:")
	fmt.Fprintf(w, " %v\n", err)

	if suggestion := domain.SuggestionOf(err); suggestion != "" {
		for i, line := range strings.Split(suggestion, "\n") {
			if i == 0 {
				_, _ = suggestionColor.Fprint(w, "Try: ")
			} else {
				fmt.Fprint(w, "     ")
			}
			fmt.Fprintln(w, line)
		}
	}
}
