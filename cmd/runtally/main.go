// Package main provides the CLI entrypoint for runtally.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/runtally/internal/board"
	"github.com/verte-zerg/runtally/internal/boardui"
	"github.com/verte-zerg/runtally/internal/config"
	"github.com/verte-zerg/runtally/internal/legacy"
	"github.com/verte-zerg/runtally/internal/model"
	"github.com/verte-zerg/runtally/internal/runfile"
	"github.com/verte-zerg/runtally/internal/score"
	"github.com/verte-zerg/runtally/internal/simulate"
	"github.com/verte-zerg/runtally/internal/store"
)

const (
	defaultTop  = 25
	defaultSeed = 1
	defaultRuns = 20
)

var (
	boardTop         int
	boardLast        int
	boardVictoryOnly bool
	boardSince       string

	scoreFile  string
	recordFile string

	importGameDir string

	seedRuns  int
	seedValue int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "runtally",
		Short:         "Score tracker for deathrun-style survival playthroughs",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runBoardTUICmd,
	}

	rootCmd.Flags().IntVar(&boardTop, "top", defaultTop, "number of runs on the board")
	rootCmd.Flags().BoolVar(&boardVictoryOnly, "victory-only", false, "show victorious runs only")

	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newRecordCmd())
	rootCmd.AddCommand(newBoardCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runBoardTUICmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "top", &boardTop, fileCfg.Board.Top)
	applyBoolConfig(cmd, "victory-only", &boardVictoryOnly, fileCfg.Board.VictoryOnly)
	if boardTop <= 0 {
		return fmt.Errorf("--top must be > 0")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ui := boardui.NewModel(st, model.BoardConfig{
		Top:         boardTop,
		VictoryOnly: boardVictoryOnly,
	})
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a run file without recording it",
		Args:  cobra.NoArgs,
		RunE:  runScoreCmd,
	}
	cmd.Flags().StringVar(&scoreFile, "file", "", "path to a run JSON file (required)")
	return cmd
}

func runScoreCmd(cmd *cobra.Command, _ []string) error {
	stats, err := loadAndScore(scoreFile)
	if err != nil {
		return err
	}
	return board.RenderBreakdown(cmd.OutOrStdout(), *stats)
}

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Score a run file and add it to the board",
		Args:  cobra.NoArgs,
		RunE:  runRecordCmd,
	}
	cmd.Flags().StringVar(&recordFile, "file", "", "path to a run JSON file (required)")
	return cmd
}

func runRecordCmd(cmd *cobra.Command, _ []string) error {
	stats, err := loadAndScore(recordFile)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	id, err := st.InsertRun(context.Background(), *stats)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	if err := board.RenderBreakdown(cmd.OutOrStdout(), *stats); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Recorded as run #%d\n", id)
	return err
}

func loadAndScore(path string) (*model.RunStats, error) {
	if path == "" {
		return nil, fmt.Errorf("--file is required")
	}
	stats, err := runfile.Load(path)
	if err != nil {
		return nil, err
	}
	score.UpdateScore(stats)
	return stats, nil
}

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print the leaderboard",
		Args:  cobra.NoArgs,
		RunE:  runBoardCmd,
	}
	cmd.Flags().IntVar(&boardTop, "top", defaultTop, "number of runs on the board")
	cmd.Flags().IntVar(&boardLast, "last", 0, "limit history to last N runs")
	cmd.Flags().BoolVar(&boardVictoryOnly, "victory-only", false, "show victorious runs only")
	cmd.Flags().StringVar(&boardSince, "since", "", "start date (YYYY-MM-DD)")
	return cmd
}

func runBoardCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "top", &boardTop, fileCfg.Board.Top)
	applyIntConfig(cmd, "last", &boardLast, fileCfg.Board.Last)
	applyBoolConfig(cmd, "victory-only", &boardVictoryOnly, fileCfg.Board.VictoryOnly)

	var sinceTime *time.Time
	if boardSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", boardSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	report, err := board.BuildReport(context.Background(), st, model.BoardConfig{
		VictoryOnly: boardVictoryOnly,
		Since:       sinceTime,
		Last:        boardLast,
		Top:         boardTop,
	})
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := board.RenderSummary(out, report.Summary); err != nil {
		return err
	}
	if err := board.RenderTop(out, report.Top); err != nil {
		return err
	}
	return board.RenderHistory(out, report.Runs)
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import scores from a predecessor DeathRun install",
		Args:  cobra.NoArgs,
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importGameDir, "game-dir", "", "game install directory to probe")
	return cmd
}

func runImportCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "game-dir", &importGameDir, fileCfg.Import.GameDir)

	candidates := legacy.CandidatePaths(importGameDir, config.DefaultDataDir())
	stats, err := legacy.LoadLegacyStats(candidates)
	if errors.Is(err, legacy.ErrNoLegacyFile) {
		_, werr := fmt.Fprintln(cmd.OutOrStdout(), "No legacy score file found.")
		return werr
	}
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	imported := 0
	for _, entry := range stats.HighScores {
		run := legacy.ToRunStats(entry)
		if run.RecordedAt.IsZero() {
			run.RecordedAt = time.Now()
		}
		score.UpdateScore(&run)
		if _, err := st.InsertRun(ctx, run); err != nil {
			return fmt.Errorf("failed to import run %d: %w", entry.ID, err)
		}
		imported++
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d legacy runs.\n", imported)
	return err
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the board with generated sample runs",
		Args:  cobra.NoArgs,
		RunE:  runSeedCmd,
	}
	cmd.Flags().IntVar(&seedRuns, "runs", defaultRuns, "number of runs to generate")
	cmd.Flags().Int64Var(&seedValue, "seed", defaultSeed, "random seed")
	return cmd
}

func runSeedCmd(cmd *cobra.Command, _ []string) error {
	if seedRuns <= 0 {
		return fmt.Errorf("--runs must be > 0")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	for _, run := range simulate.New(seedValue).Runs(seedRuns, time.Now()) {
		if _, err := st.InsertRun(ctx, run); err != nil {
			return fmt.Errorf("failed to insert sample run: %w", err)
		}
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d sample runs.\n", seedRuns)
	return err
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# runtally configuration
# Uncomment a value to enable it. CLI flags override config values.

[board]
# top = %d              # Number of runs on the board
# last = 0              # Limit history to last N runs
# victory-only = false  # Show victorious runs only

[import]
# game-dir = ""         # Game install directory probed for legacy scores
`,
		defaultTop,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
