package board

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/verte-zerg/runtally/internal/model"
	"github.com/verte-zerg/runtally/internal/score"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
)

// RenderSummary prints aggregate figures for the filtered run history.
func RenderSummary(w io.Writer, sum Summary) error {
	if sum.Runs == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Runs: %d\n", sum.Runs); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Victories: %d\n", sum.Victories); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Deaths: %d\n", sum.Deaths); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best score: %s\n", FormatScore(sum.BestScore)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg score: %s\n", FormatScore(sum.AvgScore)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best depth: %.0fm\n", sum.BestDepth); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTop prints the ranked leaderboard table.
func RenderTop(w io.Writer, runs []model.RunStats) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs on the board yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Leaderboard"); err != nil {
		return err
	}
	headers := []string{"Rank", "Score", "Time", "Depth", "Deaths", "Mult", "Result", "Date"}
	rows := make([][]string, 0, len(runs))
	for i, r := range runs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			FormatScore(r.ScoreTotal),
			FormatDuration(r.Time),
			fmt.Sprintf("%.0fm", r.DepthReached),
			fmt.Sprintf("%d", r.Deaths),
			fmt.Sprintf("x%.2f", r.ScoreMult),
			ResultLabel(r),
			r.RecordedAt.Format("2006-01-02"),
		})
	}
	rightAlign := map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderHistory prints a sparkline of score totals in recording order,
// capped to the terminal width.
func RenderHistory(w io.Writer, runs []model.RunStats) error {
	if len(runs) < 2 {
		return nil
	}
	totals := make([]float64, len(runs))
	for i, r := range runs {
		totals[i] = r.ScoreTotal
	}
	width := renderWidth(w) - 8
	if len(totals) > width && width > 0 {
		totals = totals[len(totals)-width:]
	}
	if _, err := fmt.Fprintln(w, "Score history"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, Sparkline(totals)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderBreakdown prints the score components of a single run.
func RenderBreakdown(w io.Writer, r model.RunStats) error {
	lines := BreakdownLines(r)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// BreakdownLines formats the score components of a run. Shared between
// the text report and the interactive board's detail view.
func BreakdownLines(r model.RunStats) []string {
	lines := []string{
		fmt.Sprintf("Result: %s", ResultLabel(r)),
		fmt.Sprintf("Survived: %s", FormatDuration(r.Time)),
		fmt.Sprintf("Depth: %.0fm", r.DepthReached),
		fmt.Sprintf("Deaths: %d (x%.2f penalty)", r.Deaths, score.DeathMultiplier(r.Deaths)),
	}
	if names := r.Achievements.Names(); len(names) > 0 {
		lines = append(lines, fmt.Sprintf("Milestones: %s", strings.Join(names, ", ")))
	}
	if r.IsLegacy {
		lines = append(lines, fmt.Sprintf("Imported run (%d hard settings)", r.LegacySettingsCount))
	}
	lines = append(lines,
		fmt.Sprintf("Base: %s", FormatScore(r.ScoreBase)),
		fmt.Sprintf("Multiplier: x%.2f", r.ScoreMult),
		fmt.Sprintf("Bonus: %s", FormatScore(r.ScoreBonus)),
		fmt.Sprintf("Total: %s", FormatScore(r.ScoreTotal)),
	)
	return lines
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// FormatScore renders a score total without decimals.
func FormatScore(v float64) string {
	return fmt.Sprintf("%.0f", math.Round(v))
}

// FormatDuration renders survived seconds as hours and minutes.
func FormatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}

// ResultLabel names the outcome of a run.
func ResultLabel(r model.RunStats) string {
	label := "death"
	if r.Victory {
		label = "victory"
	}
	if r.GameMode.Has(model.ModeHardcore) {
		label += " (hardcore)"
	}
	return label
}

func renderWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return terminalWidthBackup
}
