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
	{" _                                       _       ", "#2dd4bf"},
	{"(_)_ __   ___ ___  _ __ _ __   ___  _ __| |_ ___ ", "#22d3ee"},
	{"| | '_ \\ / __/ _ \\| '__| '_ \\ / _ \\| '__| __/ _ \\", "#38bdf8"},
	{"| | | | | (_| (_) | |  | |_) | (_) | |  | ||  __/", "#60a5fa"},
	{"|_|_| |_|\\___\\___/|_|  | .__/ \\___/|_|   \\__\\___|", "#818cf8"},
	{"                       |_|                       ", "#a78bfa"},
}

// PrintBanner writes the colored banner and version line to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(out.Color(line.color)))
	}
	fmt.Fprintln(w, out.String(" company setup assistant "+version).Faint())
	fmt.Fprintln(w)
}
