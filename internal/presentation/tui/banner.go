package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	ace "github.com/acelabs/ace"
)

// PrintBanner writes the ACE ASCII art banner with the running version.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Cyan to blue gradient
	s1 := termenv.String("      ___           ___           ___      ").Foreground(p.Color("#67e8f9"))
	s2 := termenv.String("     /\\  \\         /\\  \\         /\\  \\     ").Foreground(p.Color("#22d3ee"))
	s3 := termenv.String("    /::\\  \\       /::\\  \\       /::\\  \\    ").Foreground(p.Color("#38bdf8"))
	s4 := termenv.String("   /::\\:\\__\\     /:/\\:\\__\\     /::\\:\\__\\   ").Foreground(p.Color("#60a5fa"))
	s5 := termenv.String("   \\/\\::/  /     \\:\\ \\/__/     \\:\\:\\/  /   ").Foreground(p.Color("#818cf8"))
	s6 := termenv.String("     /:/  /       \\:\\__\\        \\:\\/  /    ").Foreground(p.Color("#a78bfa"))
	s7 := termenv.String("     \\/__/         \\/__/         \\/__/     ").Foreground(p.Color("#c084fc"))
	tag := termenv.String(fmt.Sprintf("  Artificial Consciousness Engine  v%s", ace.Version)).Faint()

	fmt.Fprintln(w)
	fmt.Fprintln(w, s1)
	fmt.Fprintln(w, s2)
	fmt.Fprintln(w, s3)
	fmt.Fprintln(w, s4)
	fmt.Fprintln(w, s5)
	fmt.Fprintln(w, s6)
	fmt.Fprintln(w, s7)
	fmt.Fprintln(w, tag)
	fmt.Fprintln(w)
}
