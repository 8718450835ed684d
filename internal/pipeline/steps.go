package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/nao1215/lyricscan/internal/model"
	"github.com/nao1215/lyricscan/internal/prosody"
	"github.com/nao1215/lyricscan/internal/source"
	"golang.org/x/text/unicode/norm"
)

// ErrNoAnalysis is returned by steps that need an analysis when none was produced.
var ErrNoAnalysis = errors.New("no analysis on report")

// byteOrderMark is the UTF-8 encoding of U+FEFF.
const byteOrderMark = "\ufeff"

// LoadStep reads the report's source into its text and fills in the song name.
type LoadStep struct {
	loader *source.Loader

	// title returns a configured song name for a source, or "".
	title func(source string) string

	logger *slog.Logger
}

// LoadStepOption configures a LoadStep.
type LoadStepOption func(*LoadStep)

// WithTitles sets the function that looks up configured song names.
func WithTitles(title func(source string) string) LoadStepOption {
	return func(s *LoadStep) {
		if title != nil {
			s.title = title
		}
	}
}

// WithLoadLogger sets a custom logger for the load step.
func WithLoadLogger(logger *slog.Logger) LoadStepOption {
	return func(s *LoadStep) {
		s.logger = logger
	}
}

// NewLoadStep creates a load step reading through loader.
func NewLoadStep(loader *source.Loader, opts ...LoadStepOption) *LoadStep {
	s := &LoadStep{
		loader: loader,
		title:  func(string) string { return "" },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do loads the document. A song name already on the report is kept.
func (s *LoadStep) Do(_ context.Context, report *model.SongReport) error {
	doc, err := s.loader.Load(report.Source)
	if err != nil {
		return err
	}

	report.Text = doc.Text
	if report.Song == "" {
		report.Song = s.title(report.Source)
	}
	if report.Song == "" {
		report.Song = doc.Name
	}

	s.logger.Debug("loaded input",
		"source", report.Source,
		"song", report.Song,
		"format", string(doc.Format),
		"text", doc.Text,
	)
	return nil
}

// NormalizeStep rewrites the text into the form the engine and the digest
// expect: no byte order mark, LF line endings and Unicode NFC.
//
// Design decision: NFC is applied so that "é" typed as one code point and as
// "e" plus a combining accent produce the same words, rhyme keys and digest.
type NormalizeStep struct{}

// NewNormalizeStep creates a normalize step.
func NewNormalizeStep() *NormalizeStep {
	return &NormalizeStep{}
}

// Name returns the step name.
func (s *NormalizeStep) Name() string {
	return "normalize"
}

// Do normalizes the report text in place.
func (s *NormalizeStep) Do(_ context.Context, report *model.SongReport) error {
	report.Text = Normalize(report.Text)
	return nil
}

// Normalize strips a leading byte order mark, converts CRLF and lone CR
// line endings to LF and applies Unicode NFC.
func Normalize(text string) string {
	text = strings.TrimPrefix(text, byteOrderMark)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFC.String(text)
}

// DigestStep fingerprints the text so history can recognise unchanged lyrics.
type DigestStep struct{}

// NewDigestStep creates a digest step.
func NewDigestStep() *DigestStep {
	return &DigestStep{}
}

// Name returns the step name.
func (s *DigestStep) Name() string {
	return "digest"
}

// Do sets the report digest.
func (s *DigestStep) Do(_ context.Context, report *model.SongReport) error {
	report.Digest = source.Digest(report.Text)
	return nil
}

// AnalyzeStep runs the prosody engine over the report text.
type AnalyzeStep struct {
	analyzer     *prosody.Analyzer
	clicheDigest string
	logger       *slog.Logger
}

// AnalyzeStepOption configures an AnalyzeStep.
type AnalyzeStepOption func(*AnalyzeStep)

// WithAnalyzeLogger sets a custom logger for the analyze step.
func WithAnalyzeLogger(logger *slog.Logger) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		s.logger = logger
	}
}

// NewAnalyzeStep creates an analyze step. A nil analyzer uses the built-in tables.
func NewAnalyzeStep(analyzer *prosody.Analyzer, opts ...AnalyzeStepOption) *AnalyzeStep {
	if analyzer == nil {
		analyzer = prosody.New()
	}
	s := &AnalyzeStep{
		analyzer:     analyzer,
		clicheDigest: clicheTableDigest(analyzer.ClicheTable()),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do analyses the text. The engine cannot fail; an empty text gives an empty analysis.
func (s *AnalyzeStep) Do(_ context.Context, report *model.SongReport) error {
	report.Analysis = s.analyzer.Analyze(report.Text)
	report.ClicheDigest = s.clicheDigest

	s.logger.Debug("analysed song",
		"song", report.Song,
		"lines", len(report.Analysis.Lines),
		"sections", len(report.Analysis.Sections),
		"cliches", len(report.Analysis.ClicheDetections),
	)
	return nil
}

// clicheTableDigest fingerprints a cliché table in order, since table order
// decides the order of detections on a line.
func clicheTableDigest(table []prosody.ClicheEntry) string {
	var sb strings.Builder
	for _, entry := range table {
		sb.WriteString(entry.Phrase)
		sb.WriteByte('\t')
		sb.WriteString(entry.Suggestion)
		sb.WriteByte('\n')
	}
	return source.Digest(sb.String())
}

// SummaryStep condenses the analysis for output and history.
type SummaryStep struct{}

// NewSummaryStep creates a summary step.
func NewSummaryStep() *SummaryStep {
	return &SummaryStep{}
}

// Name returns the step name.
func (s *SummaryStep) Name() string {
	return "summary"
}

// Do sets the report summary. It fails if no analysis ran.
func (s *SummaryStep) Do(_ context.Context, report *model.SongReport) error {
	if report.Analysis == nil {
		return ErrNoAnalysis
	}
	report.Summary = model.NewSummary(report.Analysis)
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// ClicheTable replaces the built-in cliché table when non-nil.
	ClicheTable []prosody.ClicheEntry

	// Titles looks up configured song names by source.
	Titles func(source string) string
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineClicheTable sets the cliché table used by the analyze step.
func WithPipelineClicheTable(table []prosody.ClicheEntry) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.ClicheTable = table
	}
}

// WithPipelineTitles sets the song name lookup used by the load step.
func WithPipelineTitles(titles func(source string) string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Titles = titles
	}
}

// DefaultPipeline creates the standard lyric pipeline:
// load, normalize, digest, analyze, summary.
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts pipeline config options (WithPipelineClicheTable, etc).
func DefaultPipeline(loader *source.Loader, pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{}
	for _, opt := range configOpts {
		opt(cfg)
	}

	var analyzerOpts []prosody.Option
	if cfg.ClicheTable != nil {
		analyzerOpts = append(analyzerOpts, prosody.WithClicheTable(cfg.ClicheTable))
	}

	p.AddSteps(
		NewLoadStep(loader, WithTitles(cfg.Titles), WithLoadLogger(p.logger)),
		NewNormalizeStep(),
		NewDigestStep(),
		NewAnalyzeStep(prosody.New(analyzerOpts...), WithAnalyzeLogger(p.logger)),
		NewSummaryStep(),
	)

	return p
}
