package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/nao1215/lyricscan/internal/config"
	"github.com/nao1215/lyricscan/internal/database"
	lslog "github.com/nao1215/lyricscan/internal/log"
	"github.com/nao1215/lyricscan/internal/model"
	"github.com/nao1215/lyricscan/internal/pipeline"
	"github.com/nao1215/lyricscan/internal/report"
	"github.com/nao1215/lyricscan/internal/source"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file|-]...",
		Short: "Analyze the prosody of lyric files",
		Long: `Analyze reads lyric documents and reports their prosody:
- Syllable and stressed syllable counts per line
- Stable and unstable line endings, per section and overall
- Rhyme scheme and rhyme connections per section
- Clichéd phrases with fresher suggestions

Sections are opened by tag lines such as [Verse 1] or [Chorus].
Plain text (.txt, .lyrics, no extension) and saved web pages (.html, .htm)
are accepted. Use - to read from standard input.

Every analysis is recorded in the history database unless --no-save is
given. Text identical to the latest stored run of the same song is not
stored again.

Examples:
  # Analyze a single song
  lyricscan analyze night-drive.txt

  # Analyze several songs, two at a time
  lyricscan analyze -b 2 songs/*.txt

  # Read from stdin and file it under a title
  cat draft.txt | lyricscan analyze -t "Night Drive" -

  # Write a Markdown report to a file
  lyricscan analyze -m -o reports/night-drive.md night-drive.txt

  # Output JSON without touching the history
  lyricscan analyze --json --no-save night-drive.txt

Configuration file (.lyricscan) example:
  cliches:
    - phrase: "heart of gold"
      suggestion: "show one kind act"
  ignoreCliches:
    - "all night long"
  songs:
    night-drive.txt:
      title: "Night Drive"`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Batch flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of files analysed concurrently")

	// Song flags
	cmd.Flags().StringP("title", "t", "",
		"Song name to file a single input under (default: config file or file name)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .lyricscan in current or home directory)")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not record the analysis in the history database")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := lslog.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	streams := ioStreams{
		in:  cmd.InOrStdin(),
		out: cmd.OutOrStdout(),
		err: cmd.ErrOrStderr(),
	}
	return runAnalyze(ctx, cfg, streams, logger)
}

// ioStreams bundles the standard streams of a command so tests can capture them.
type ioStreams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, environment overrides and
// cobra command flags, in that order of precedence.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	var err error

	// An explicit --batch wins over LYRICSCAN_BATCH.
	if cmd.Flags().Changed("batch") {
		cfg.BatchSize, err = cmd.Flags().GetInt("batch")
		if err != nil {
			return nil, err
		}
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	if noSave {
		cfg.SaveToDB = false
	}

	cfg.Title, err = cmd.Flags().GetString("title")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently run without one.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.File, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Inputs = args

	return cfg, nil
}

// runAnalyze runs the pipeline over every input, writes the reports and
// records them in the history database.
// It returns an error if any input failed, after all inputs were processed.
func runAnalyze(ctx context.Context, cfg *config.Config, streams ioStreams, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"inputs", len(cfg.Inputs),
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "path", db.Path())
	}

	writer, closeOutput, err := newReportWriter(cfg, streams.out)
	if err != nil {
		return err
	}
	defer closeOutput()

	run := &analysisRun{
		cfg:         cfg,
		db:          db,
		writer:      writer,
		streams:     streams,
		logger:      logger,
		newPipeline: newPipelineFactory(cfg, streams.in, logger),
	}

	if len(cfg.Inputs) > 1 && cfg.BatchSize > 1 {
		err = run.batch(ctx)
	} else {
		err = run.sequential(ctx)
	}
	if err != nil {
		return err
	}

	if run.failed > 0 {
		return fmt.Errorf("%d of %d input(s) could not be analysed", run.failed, len(cfg.Inputs))
	}
	return nil
}

// newPipelineFactory returns a constructor for the default pipeline with
// the configured cliché table and song titles.
func newPipelineFactory(cfg *config.Config, stdin io.Reader, logger *slog.Logger) func() *pipeline.Pipeline {
	loader := source.NewLoader(
		source.WithMaxSize(cfg.MaxInputSize),
		source.WithStdin(stdin),
	)
	table := cfg.File.ClicheTable()

	return func() *pipeline.Pipeline {
		return pipeline.DefaultPipeline(
			loader,
			[]pipeline.Option{pipeline.WithLogger(logger)},
			pipeline.WithPipelineClicheTable(table),
			pipeline.WithPipelineTitles(cfg.SongTitle),
		)
	}
}

// analysisRun holds the shared state of one analyze invocation.
type analysisRun struct {
	cfg         *config.Config
	db          *database.HistoryDB
	writer      report.Writer
	streams     ioStreams
	logger      *slog.Logger
	newPipeline func() *pipeline.Pipeline

	// mu serializes report output and history writes in batch mode.
	mu     sync.Mutex
	failed int
}

// sequential analyses inputs one at a time.
func (r *analysisRun) sequential(ctx context.Context) error {
	for _, input := range r.cfg.Inputs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		songReport := model.NewSongReport("", input, "")
		startTime := time.Now()

		if err := r.newPipeline().Execute(ctx, songReport); err != nil {
			r.logger.Error("analysis failed", "source", input, "error", err)
			fmt.Fprintf(r.streams.err, "Analysis error for %s: %v\n", input, err)
			r.failed++
			continue
		}

		r.logger.Debug("analysis completed",
			"source", input,
			"elapsed", time.Since(startTime).Round(time.Microsecond),
		)
		r.finish(ctx, songReport)
	}

	return nil
}

// batch analyses inputs concurrently using BatchProcessor.
func (r *analysisRun) batch(ctx context.Context) error {
	fmt.Fprintf(r.streams.err, "Analysing %d inputs (concurrency: %d)...\n",
		len(r.cfg.Inputs), r.cfg.BatchSize)

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(
		r.newPipeline,
		pipeline.WithConcurrency(r.cfg.BatchSize),
		pipeline.WithBatchLogger(r.logger),
	)

	done := 0
	err := bp.ProcessBatchWithCallback(ctx, r.cfg.Inputs, func(songReport *model.SongReport, _ int) {
		r.mu.Lock()
		defer r.mu.Unlock()

		done++
		if songReport.Failed() {
			fmt.Fprintf(r.streams.err, "[%d/%d] Analysis error for %s: %s\n",
				done, len(r.cfg.Inputs), songReport.Source, songReport.ErrorMessage)
			r.failed++
			return
		}

		fmt.Fprintf(r.streams.err, "[%d/%d] Analysed: %s\n", done, len(r.cfg.Inputs), songReport.Song)
		r.finish(ctx, songReport)
	})

	fmt.Fprintf(r.streams.err, "Batch completed in %s\n", time.Since(startTime).Round(time.Millisecond))

	return err
}

// finish writes one successful report and records it in history.
func (r *analysisRun) finish(ctx context.Context, songReport *model.SongReport) {
	if _, err := r.writer.Write(songReport); err != nil {
		r.logger.Error("report failed", "song", songReport.Song, "error", err)
	}

	saved, err := saveSongReport(ctx, r.db, songReport, r.logger)
	if err != nil {
		r.logger.Error("failed to save report", "song", songReport.Song, "error", err)
		return
	}
	if r.db != nil && !saved {
		fmt.Fprintf(r.streams.err, "%s is unchanged since its last analysis; history not updated\n", songReport.Song)
	}
}

// newReportWriter builds the writer for the requested format.
// With --output the full report goes to the file and a summary to out.
// The returned close function must be called once all reports are written.
func newReportWriter(cfg *config.Config, out io.Writer) (report.Writer, func(), error) {
	if cfg.ReportFile == "" {
		return formatWriter(cfg, out), func() {}, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Unpublished lyrics stay readable by the owner only.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}

	writer := report.NewMultiWriter(
		formatWriter(cfg, f),
		report.NewSimpleWriter(out, report.WithSummaryOnly(true)),
	)
	return writer, func() { _ = f.Close() }, nil
}

// formatWriter returns the report writer for the configured format.
func formatWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}

// saveSongReport records the report in the history database.
// It reports false without error when db is nil or when the latest stored
// run of the song was made from the same text with the same cliché table.
func saveSongReport(ctx context.Context, db *database.HistoryDB, songReport *model.SongReport, logger *slog.Logger) (bool, error) {
	if db == nil {
		return false, nil
	}

	unchanged, err := db.IsUnchanged(ctx, songReport)
	if err != nil {
		return false, err
	}
	if unchanged {
		logger.Info("skipping unchanged song", "song", songReport.Song)
		return false, nil
	}

	id, err := db.SaveReport(ctx, songReport)
	if err != nil {
		return false, err
	}

	logger.Info("report saved to database", "song", songReport.Song, "id", id)
	return true, nil
}
