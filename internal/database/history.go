package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/lyricscan/internal/model"
	"github.com/nao1215/lyricscan/internal/prosody"
)

// DBFileName is the name of the history database inside the data directory.
const DBFileName = "lyricscan.db"

// HistoryDB provides SQLite-based storage for past song analyses.
//
// Design decision: We store the whole SongReport as JSON next to a few
// indexed columns. Listings and duplicate checks only touch the columns;
// comparisons decode the stored report.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite: mode=rw refuses to create a missing file, mode=rwc creates it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per stored analysis run
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		song TEXT NOT NULL,
		source TEXT,
		digest TEXT NOT NULL,
		cliche_digest TEXT NOT NULL DEFAULT '',
		table_version INTEGER NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		report_json TEXT NOT NULL,
		summary_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_song ON analyses(song);
	CREATE INDEX IF NOT EXISTS idx_analyses_digest ON analyses(digest);
	CREATE INDEX IF NOT EXISTS idx_analyses_timestamp ON analyses(timestamp);
	`

	if _, err := hdb.db.ExecContext(context.Background(), schema); err != nil {
		return err
	}
	return hdb.addMissingColumns()
}

// addMissingColumns upgrades databases created before the cliche_digest column.
// Old rows keep an empty digest, so the next run of each song is stored again.
func (hdb *HistoryDB) addMissingColumns() error {
	found, err := hdb.hasColumn("analyses", "cliche_digest")
	if err != nil || found {
		return err
	}
	_, err = hdb.db.ExecContext(context.Background(),
		"ALTER TABLE analyses ADD COLUMN cliche_digest TEXT NOT NULL DEFAULT ''")
	return err
}

// hasColumn reports whether table has a column named column.
func (hdb *HistoryDB) hasColumn(table, column string) (bool, error) {
	rows, err := hdb.db.QueryContext(context.Background(), "PRAGMA table_info("+table+")")
	if err != nil {
		return false, err
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return false, err
		}
		if name == column {
			found = true
		}
	}
	return found, rows.Err()
}

// SaveReport stores a report and returns its row ID.
// A report without a RunID gets a new random UUID first.
func (hdb *HistoryDB) SaveReport(ctx context.Context, report *model.SongReport) (int64, error) {
	if report.RunID == "" {
		report.RunID = uuid.NewString()
	}
	if report.Summary == nil {
		report.Summary = model.NewSummary(report.Analysis)
	}

	reportJSON, err := json.Marshal(withoutLineText(report))
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}
	summaryJSON, err := json.Marshal(report.Summary)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize summary: %w", err)
	}

	query := `
	INSERT INTO analyses (run_id, song, source, digest, cliche_digest, table_version, report_json, summary_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		report.RunID,
		report.Song,
		report.Source,
		report.Digest,
		report.ClicheDigest,
		prosody.TableVersion,
		string(reportJSON),
		string(summaryJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save report: %w", err)
	}

	return result.LastInsertId()
}

// IsUnchanged reports whether the latest stored analysis of the report's song
// has the same text digest and cliché table digest and was produced by the
// current lookup tables. Such a run would store an identical analysis.
func (hdb *HistoryDB) IsUnchanged(ctx context.Context, report *model.SongReport) (bool, error) {
	query := `
	SELECT digest, cliche_digest, table_version FROM analyses
	WHERE song = ?
	ORDER BY id DESC
	LIMIT 1
	`

	var storedDigest, storedClicheDigest string
	var tableVersion int
	err := hdb.db.QueryRowContext(ctx, query, report.Song).Scan(&storedDigest, &storedClicheDigest, &tableVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check latest digest: %w", err)
	}

	return storedDigest == report.Digest &&
		storedClicheDigest == report.ClicheDigest &&
		tableVersion == prosody.TableVersion, nil
}

// withoutLineText returns a shallow copy of report whose analysis has every
// line's text blanked. Metrics, ending words and cliché spans are kept.
func withoutLineText(report *model.SongReport) *model.SongReport {
	if report.Analysis == nil {
		return report
	}
	stored := *report
	analysis := *report.Analysis
	analysis.Lines = blankLineText(analysis.Lines)
	analysis.Sections = make([]model.SectionAnalysis, len(report.Analysis.Sections))
	for i, section := range report.Analysis.Sections {
		section.Lines = blankLineText(section.Lines)
		analysis.Sections[i] = section
	}
	stored.Analysis = &analysis
	return &stored
}

func blankLineText(lines []model.LineAnalysis) []model.LineAnalysis {
	if lines == nil {
		return nil
	}
	out := make([]model.LineAnalysis, len(lines))
	for i, l := range lines {
		l.Text = ""
		out[i] = l
	}
	return out
}

// GetLatestReport retrieves the most recent report for a song.
// It returns nil without error when the song has no history.
func (hdb *HistoryDB) GetLatestReport(ctx context.Context, song string) (*model.SongReport, error) {
	query := `
	SELECT report_json FROM analyses
	WHERE song = ?
	ORDER BY id DESC
	LIMIT 1
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, song).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return decodeReport(reportJSON)
}

// ListSongs returns every song with stored analyses, sorted by name.
func (hdb *HistoryDB) ListSongs(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT song FROM analyses
	ORDER BY song
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	defer rows.Close()

	var songs []string
	for rows.Next() {
		var song string
		if err := rows.Scan(&song); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, song)
	}

	return songs, rows.Err()
}

// GetHistory retrieves all reports for a song, newest first.
// Rows whose JSON cannot be decoded are skipped.
func (hdb *HistoryDB) GetHistory(ctx context.Context, song string) ([]*model.SongReport, error) {
	query := `
	SELECT report_json FROM analyses
	WHERE song = ?
	ORDER BY id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, song)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var reports []*model.SongReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		report, err := decodeReport(reportJSON)
		if err != nil {
			continue
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// AnalysisMetadata describes a stored analysis without the full report.
type AnalysisMetadata struct {
	// ID is the row ID used by `history --with-id`.
	ID int64

	// RunID is the UUID assigned when the analysis was saved.
	RunID string

	// Song is the song name.
	Song string

	// Digest is the sha3-256 digest of the analysed text.
	Digest string

	// TableVersion is the lookup table revision that produced the analysis.
	TableVersion int

	// Timestamp is when the analysis was stored.
	Timestamp time.Time

	// Summary is the stored summary. It is empty if the row has none.
	Summary model.Summary
}

// GetHistoryWithMetadata retrieves analysis metadata for a song, newest first.
// This is cheaper than GetHistory when only listings are needed.
func (hdb *HistoryDB) GetHistoryWithMetadata(ctx context.Context, song string) ([]AnalysisMetadata, error) {
	query := `
	SELECT id, run_id, song, digest, table_version, timestamp, summary_json
	FROM analyses
	WHERE song = ?
	ORDER BY id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, song)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var results []AnalysisMetadata
	for rows.Next() {
		var meta AnalysisMetadata
		var timestamp string
		var summaryJSON sql.NullString

		if err := rows.Scan(
			&meta.ID,
			&meta.RunID,
			&meta.Song,
			&meta.Digest,
			&meta.TableVersion,
			&timestamp,
			&summaryJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)

		if summaryJSON.Valid && summaryJSON.String != "" {
			if err := json.Unmarshal([]byte(summaryJSON.String), &meta.Summary); err != nil {
				meta.Summary = model.Summary{}
			}
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetReportByID retrieves a report by its row ID.
// It returns nil without error when no such row exists.
func (hdb *HistoryDB) GetReportByID(ctx context.Context, id int64) (*model.SongReport, error) {
	query := `
	SELECT report_json FROM analyses
	WHERE id = ?
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return decodeReport(reportJSON)
}

// decodeReport parses a stored report.
func decodeReport(reportJSON string) (*model.SongReport, error) {
	var report model.SongReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// More specific formats come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp tries every format in timestampFormats and
// returns the zero time if none matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
