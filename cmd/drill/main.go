// Package main provides the CLI entrypoint for drill.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/drill/internal/card"
	"github.com/verte-zerg/drill/internal/config"
	"github.com/verte-zerg/drill/internal/deck"
	"github.com/verte-zerg/drill/internal/history"
	"github.com/verte-zerg/drill/internal/logger"
	"github.com/verte-zerg/drill/internal/model"
	"github.com/verte-zerg/drill/internal/quiz"
	"github.com/verte-zerg/drill/internal/stats"
	"github.com/verte-zerg/drill/internal/store"
	"github.com/verte-zerg/drill/internal/tui"
)

const (
	defaultDelim       = ";"
	defaultLogLevel    = "info"
	defaultCurveWindow = 5
)

var (
	quizDelim     string
	quizMode      string
	quizSwap      bool
	quizAskBoth   bool
	quizNoShuffle bool
	quizFresh     bool
	quizLogLevel  string
	quizSeed      int64

	convertDelim string

	statsDeck        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		var te *quiz.TerminateError
		if errors.As(err, &te) {
			os.Exit(te.Code)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "drill <deck>",
		Short:         "Vocabulary drilling in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.ExactArgs(1),
		RunE:          runQuizCmd,
	}

	rootCmd.Flags().StringVarP(&quizDelim, "delim", "d", defaultDelim, "field delimiter of the deck file")
	rootCmd.Flags().StringVarP(&quizMode, "mode", "m", string(model.ModeCards), "cards or verbs2cards")
	rootCmd.Flags().BoolVar(&quizSwap, "swap", false, "ask definitions and expect terms")
	rootCmd.Flags().BoolVar(&quizAskBoth, "ask-both", false, "randomly ask either side of each card")
	rootCmd.Flags().BoolVar(&quizNoShuffle, "no-shuffle", false, "keep deck order between passes")
	rootCmd.Flags().BoolVar(&quizFresh, "fresh", false, "ignore saved progress for this deck")
	rootCmd.Flags().StringVar(&quizLogLevel, "log-level", defaultLogLevel, "debug, info, warn or error")
	rootCmd.Flags().Int64Var(&quizSeed, "seed", 0, "random seed (0 uses the clock)")

	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newProgressCmd())

	return rootCmd
}

func runQuizCmd(cmd *cobra.Command, args []string) error {
	deckPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve deck path: %w", err)
	}

	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings := fileCfg.Quiz
	if !deck.IsSpreadsheet(deckPath) {
		header, err := config.LoadDeckHeader(deckPath)
		if err != nil {
			return fmt.Errorf("failed to read deck header: %w", err)
		}
		settings = config.Merge(settings, header)
	}
	applyStringConfig(cmd, "delim", &quizDelim, settings.Delim)
	applyStringConfig(cmd, "mode", &quizMode, settings.Mode)
	applyBoolConfig(cmd, "swap", &quizSwap, settings.Swap)
	applyBoolConfig(cmd, "ask-both", &quizAskBoth, settings.AskBoth)
	applyBoolConfig(cmd, "no-shuffle", &quizNoShuffle, settings.NoShuffle)
	applyStringConfig(cmd, "log-level", &quizLogLevel, settings.LogLevel)

	mode, ok := model.ParseMode(quizMode)
	if !ok {
		mode = model.Mode(quizMode)
	}
	cfg := model.Config{
		DeckPath:  deckPath,
		Delim:     normalizeDelim(quizDelim),
		Mode:      mode,
		Swap:      quizSwap,
		AskBoth:   quizAskBoth,
		NoShuffle: quizNoShuffle,
		Fresh:     quizFresh,
		LogLevel:  quizLogLevel,
		Seed:      quizSeed,
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	log := logger.Setup(cfg.LogLevel, os.Stderr)

	if cfg.Mode == model.ModeVerbsToCards {
		return convertDeck(cmd.OutOrStdout(), cfg.DeckPath, cfg.DelimRune())
	}
	return runQuiz(context.Background(), cfg, log)
}

func runQuiz(ctx context.Context, cfg model.Config, log *slog.Logger) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Error("failed to close db", "error", cerr)
		}
	}()

	rnd := newRand(cfg.Seed)
	cards, err := loadCards(ctx, st, cfg, rnd, log)
	if err != nil {
		return err
	}

	run, err := st.StartRun(ctx, cfg.DeckPath)
	if err != nil {
		return fmt.Errorf("failed to start run: %w", err)
	}
	log.Debug("run started", "run_id", run.ID(), "deck", cfg.DeckPath)

	hist := history.New()
	controller := quiz.NewController(quiz.Options{
		Reader:    tui.NewReader(os.Stdin, os.Stdout, hist),
		Out:       os.Stdout,
		Rand:      rnd,
		NoShuffle: cfg.NoShuffle,
		Persister: st.Progress(cfg.DeckPath, cfg.Delim),
		Recorder:  run,
		Logger:    log,
		History:   hist,
	})

	err = controller.Run(ctx, cards)
	var te *quiz.TerminateError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &te) && te.Code == 0:
		return nil
	case errors.Is(err, io.EOF):
		logOutln("Exiting.")
		return nil
	default:
		return err
	}
}

// loadCards resumes saved progress unless a fresh start is requested.
func loadCards(ctx context.Context, st *store.Store, cfg model.Config, rnd *rand.Rand, log *slog.Logger) ([]card.Card, error) {
	if !cfg.Fresh {
		saved, err := st.LoadProgress(ctx, cfg.DeckPath)
		switch {
		case err == nil && len(saved) > 0:
			log.Info("resuming saved progress", "deck", cfg.DeckPath, "cards", len(saved), "done", card.CountDone(saved))
			return saved, nil
		case err != nil && !errors.Is(err, store.ErrNoProgress):
			return nil, fmt.Errorf("failed to load progress: %w", err)
		}
	}

	cards, err := deck.Load(cfg.DeckPath, cfg.DelimRune())
	if err != nil {
		return nil, fmt.Errorf("failed to load deck: %w", err)
	}
	log.Info("deck loaded", "deck", cfg.DeckPath, "cards", len(cards))
	if cfg.Swap {
		card.SwapAll(cards)
	}
	if cfg.AskBoth {
		card.RandomlySwap(rnd, cards)
	}
	return cards, nil
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// normalizeDelim turns escaped or named tabs into a real tab.
func normalizeDelim(delim string) string {
	switch strings.ToLower(delim) {
	case `\t`, "tab":
		return "\t"
	default:
		return delim
	}
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <verbs-file>",
		Short: "Convert a verb deck into a card deck",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvertCmd,
	}
	cmd.Flags().StringVarP(&convertDelim, "delim", "d", defaultDelim, "field delimiter of the verb file")
	return cmd
}

func runConvertCmd(cmd *cobra.Command, args []string) error {
	delim := normalizeDelim(convertDelim)
	if len([]rune(delim)) != 1 {
		return fmt.Errorf("--delim must be exactly one character")
	}
	return convertDeck(cmd.OutOrStdout(), args[0], []rune(delim)[0])
}

func convertDeck(w io.Writer, path string, delim rune) error {
	verbs, err := deck.LoadVerbs(path, delim)
	if err != nil {
		return fmt.Errorf("failed to load verbs: %w", err)
	}
	outPath, err := deck.WriteConverted(path, verbs, delim)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Converted %d verbs into %s\n", len(verbs), outPath); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
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

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show run statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsDeck, "deck", "", "deck file filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N runs")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	cfg := model.StatsConfig{
		Since:  sinceTime,
		Last:   statsLast,
		Window: statsCurveWindow,
	}
	if statsDeck != "" {
		abs, err := filepath.Abs(statsDeck)
		if err != nil {
			return fmt.Errorf("failed to resolve deck path: %w", err)
		}
		cfg.DeckPath = abs
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(cmd.Context(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	return report.Render(cmd.OutOrStdout())
}

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "List saved progress",
		Args:  cobra.NoArgs,
		RunE:  runProgressListCmd,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <deck>",
		Short: "Delete saved progress for a deck",
		Args:  cobra.ExactArgs(1),
		RunE:  runProgressRemoveCmd,
	})
	return cmd
}

func runProgressListCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	list, err := st.ListProgress(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list progress: %w", err)
	}
	return renderProgress(cmd.OutOrStdout(), list)
}

func renderProgress(w io.Writer, list []model.ProgressSummary) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No saved progress.")
		return err
	}
	for _, p := range list {
		if _, err := fmt.Fprintf(w, "%s  %d/%d learned  saved %s\n",
			p.DeckPath, p.Done, p.Cards, p.SavedAt.Local().Format("2006-01-02 15:04")); err != nil {
			return err
		}
	}
	return nil
}

func runProgressRemoveCmd(cmd *cobra.Command, args []string) error {
	deckPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve deck path: %w", err)
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if _, err := st.LoadProgress(cmd.Context(), deckPath); err != nil {
		if errors.Is(err, store.ErrNoProgress) {
			return fmt.Errorf("no saved progress for %s", deckPath)
		}
		return fmt.Errorf("failed to load progress: %w", err)
	}
	if err := st.RemoveProgress(cmd.Context(), deckPath); err != nil {
		return fmt.Errorf("failed to remove progress: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed saved progress for %s\n", deckPath)
	return err
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
	return fmt.Sprintf(`# drill configuration
# Uncomment a value to enable it. CLI flags and deck headers override config values.

[quiz]
# delim = %q             # Field delimiter of deck files ("\t" for tab)
# mode = %q          # cards or verbs2cards
# swap = false            # Ask definitions and expect terms
# ask-both = false        # Randomly ask either side of each card
# no-shuffle = false      # Keep deck order between passes
# log-level = %q       # debug, info, warn or error
`,
		defaultDelim,
		model.ModeCards,
		defaultLogLevel,
	)
}

func logOutln(args ...any) {
	if _, err := fmt.Fprintln(os.Stdout, args...); err != nil {
		// Best-effort output.
		_ = err
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
