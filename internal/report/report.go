// Package report renders task results and benchmark trials for the
// terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/Iron-Ham/threadlab/internal/bench"
	"github.com/Iron-Ham/threadlab/internal/counter"
)

// Color modes accepted by New.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	accentColor  = lipgloss.Color("#A78BFA") // Purple
	okColor      = lipgloss.Color("#10B981") // Green
	warningColor = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#F87171") // Red
	mutedColor   = lipgloss.Color("#9CA3AF") // Gray
)

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	muted   lipgloss.Style
	ok      lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
}

// Renderer writes human-readable output to a writer.
type Renderer struct {
	w  io.Writer
	st styles
}

// New creates a Renderer for w. In auto mode color is used only when w is
// a terminal.
func New(w io.Writer, mode string) *Renderer {
	color := UseColor(w, mode)

	lr := lipgloss.NewRenderer(w)
	if color {
		lr.SetColorProfile(termenv.ANSI256)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		w: w,
		st: styles{
			title:   lr.NewStyle().Bold(true).Foreground(accentColor),
			header:  lr.NewStyle().Bold(true),
			muted:   lr.NewStyle().Foreground(mutedColor),
			ok:      lr.NewStyle().Foreground(okColor),
			warning: lr.NewStyle().Foreground(warningColor),
			err:     lr.NewStyle().Bold(true).Foreground(errorColor),
		},
	}
}

// UseColor resolves a color mode against the writer.
func UseColor(w io.Writer, mode string) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// TotalTime prints the pool's wall-clock time in seconds.
func (r *Renderer) TotalTime(d time.Duration) {
	fmt.Fprintf(r.w, "Total time: %s seconds\n", FormatSeconds(d))
}

// FormatSeconds renders d in seconds with six significant digits.
func FormatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'g', 6, 64)
}

// Title prints a bold heading line.
func (r *Renderer) Title(s string) {
	fmt.Fprintln(r.w, r.st.title.Render(s))
}

// Note prints a muted informational line.
func (r *Renderer) Note(format string, args ...any) {
	fmt.Fprintln(r.w, r.st.muted.Render(fmt.Sprintf(format, args...)))
}

// column widths for the trial table
const (
	colStrategy = 16
	colThreads  = 8
	colElapsed  = 14
	colValue    = 12
)

// Trials prints a table with one row per trial and a blank line between
// thread-count groups.
func (r *Renderer) Trials(trials []bench.Trial) {
	header := pad("STRATEGY", colStrategy) + pad("THREADS", colThreads) +
		pad("ELAPSED", colElapsed) + pad("FINAL", colValue) + pad("EXPECTED", colValue) + "RESULT"
	fmt.Fprintln(r.w, r.st.header.Render(header))

	lastThreads := -1
	for _, t := range trials {
		if lastThreads != -1 && t.Threads != lastThreads {
			fmt.Fprintln(r.w)
		}
		lastThreads = t.Threads

		row := pad(t.Strategy, colStrategy) +
			pad(strconv.Itoa(t.Threads), colThreads) +
			pad(t.Elapsed.Round(time.Microsecond).String(), colElapsed) +
			pad(strconv.FormatInt(t.Final, 10), colValue) +
			pad(strconv.FormatInt(t.Expected, 10), colValue)
		fmt.Fprintln(r.w, row+r.verdict(t))
	}
}

// verdict labels a trial. A drift on a synchronized strategy is a bug and
// is highlighted as an error; on the unsynchronized one it is the expected
// race and only a warning.
func (r *Renderer) verdict(t bench.Trial) string {
	if t.Consistent() {
		return r.st.ok.Render("exact")
	}
	label := fmt.Sprintf("drift %+d", t.Drift())
	if counter.Synchronized(t.Strategy) {
		return r.st.err.Render(label)
	}
	return r.st.warning.Render(label)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
