package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`     _         _               `, "#34d399"},
	{`    / \   _ __| |__   ___  _ __`, "#10b981"},
	{`   / _ \ | '__| '_ \ / _ \| '__|`, "#059669"},
	{`  / ___ \| |  | |_) | (_) | |   `, "#047857"},
	{` /_/   \_\_|  |_.__/ \___/|_|   `, "#065f46"},
}

// PrintBanner writes the ASCII banner to w, coloured when the terminal supports it.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, out.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}
