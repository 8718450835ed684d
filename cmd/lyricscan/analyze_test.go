package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nao1215/lyricscan/internal/config"
	"github.com/nao1215/lyricscan/internal/database"
	"github.com/nao1215/lyricscan/internal/prosody"
	"github.com/nao1215/lyricscan/internal/report"
)

const nightLyrics = "[Verse]\nMy heart on fire tonight\nI walked into the light\n"

// executeCommand runs the root command with args and returns stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFile creates a file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// TestNewAnalyzeCmd tests the analyze command creation.
func TestNewAnalyzeCmd(t *testing.T) {
	t.Parallel()

	cmd := NewAnalyzeCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "analyze [file|-]..." {
			t.Errorf("expected use 'analyze [file|-]...', got %q", cmd.Use)
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has flags with shorthands", func(t *testing.T) {
		t.Parallel()

		flagsWithShort := map[string]string{
			"batch":    "b",
			"title":    "t",
			"config":   "c",
			"json":     "j",
			"markdown": "m",
			"output":   "o",
			"no-save":  "",
		}
		for name, shorthand := range flagsWithShort {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				t.Errorf("expected flag %q to exist", name)
				continue
			}
			if flag.Shorthand != shorthand {
				t.Errorf("flag %q: expected shorthand %q, got %q", name, shorthand, flag.Shorthand)
			}
		}
	})

	t.Run("batch default", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("batch")
		if flag.DefValue != "4" {
			t.Errorf("expected default '4', got %q", flag.DefValue)
		}
	})
}

// TestRunAnalyzeCmd tests analysis without the history database.
func TestRunAnalyzeCmd(t *testing.T) {
	t.Parallel()

	t.Run("writes simple report", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "night.txt", nightLyrics)

		out, _, err := executeCommand(t, "", "analyze", "--no-save", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, want := range []string{
			"LYRICSCAN REPORT",
			"Song:           night",
			"Lines:         2 in 1 section(s)",
			"Clichés:       1",
			`"heart on fire"`,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("writes JSON report with versions", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "night.txt", nightLyrics)

		out, _, err := executeCommand(t, "", "analyze", "--json", "--no-save", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got report.JSONReport
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out)
		}
		if got.TableVersion != prosody.TableVersion {
			t.Errorf("expected table version %d, got %d", prosody.TableVersion, got.TableVersion)
		}
		if got.Version == "" {
			t.Error("expected non-empty version")
		}
		if got.Report == nil || got.Report.Song != "night" {
			t.Fatalf("expected report for night, got %+v", got.Report)
		}
		if got.Report.Analysis == nil || len(got.Report.Analysis.Lines) != 2 {
			t.Errorf("expected 2 analysed lines, got %+v", got.Report.Analysis)
		}
		if got.Report.Digest == "" {
			t.Error("expected digest")
		}
	})

	t.Run("writes markdown report", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "night.txt", nightLyrics)

		out, _, err := executeCommand(t, "", "analyze", "-m", "--no-save", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "# Lyric Report: night") {
			t.Errorf("expected markdown title, got:\n%s", out)
		}
	})

	t.Run("reads stdin with title", func(t *testing.T) {
		t.Parallel()

		out, _, err := executeCommand(t, nightLyrics, "analyze", "--no-save", "-t", "Night Drive", "-")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Song:           Night Drive") {
			t.Errorf("expected titled song, got:\n%s", out)
		}
		if !strings.Contains(out, "Source:         -") {
			t.Errorf("expected stdin source, got:\n%s", out)
		}
	})

	t.Run("writes report file and summary", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "night.txt", nightLyrics)
		reportPath := filepath.Join(dir, "reports", "nested", "night.json")

		out, _, err := executeCommand(t, "", "analyze", "-j", "--no-save", "-o", reportPath, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(out, "SUMMARY") {
			t.Errorf("expected summary on stdout, got:\n%s", out)
		}
		if strings.Contains(out, "SECTIONS") {
			t.Errorf("expected summary only on stdout, got:\n%s", out)
		}

		data, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report file: %v", err)
		}
		var got report.JSONReport
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("invalid JSON in report file: %v", err)
		}

		if runtime.GOOS != "windows" {
			info, err := os.Stat(reportPath)
			if err != nil {
				t.Fatalf("failed to stat report file: %v", err)
			}
			if perm := info.Mode().Perm(); perm != 0600 {
				t.Errorf("expected permissions 0600, got %o", perm)
			}
		}
	})

	t.Run("applies config file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "night.txt", "My heart on fire\nUnder the silver moon\n")
		configPath := writeFile(t, dir, "lyricscan.yaml", `cliches:
  - phrase: "silver moon"
    suggestion: "name the light"
ignoreCliches:
  - "Heart on Fire"
songs:
  night.txt:
    title: "Night Drive"
`)

		out, _, err := executeCommand(t, "", "analyze", "--no-save", "-c", configPath, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"Song:           Night Drive",
			"Clichés:       1",
			`"silver moon"`,
			"Try: name the light",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
		if strings.Contains(out, `"heart on fire"`) {
			t.Errorf("expected ignored cliché to be absent, got:\n%s", out)
		}
	})

	t.Run("analyses batch", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		paths := []string{
			writeFile(t, dir, "one.txt", "I keep falling\n"),
			writeFile(t, dir, "two.txt", "Walking down the street\n"),
			writeFile(t, dir, "three.txt", nightLyrics),
		}

		args := append([]string{"analyze", "--no-save", "-b", "2"}, paths...)
		out, errOut, err := executeCommand(t, "", args...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, song := range []string{"one", "two", "three"} {
			if !strings.Contains(out, "Song:           "+song) {
				t.Errorf("expected report for %s", song)
			}
		}
		if !strings.Contains(errOut, "[3/3]") {
			t.Errorf("expected progress on stderr, got:\n%s", errOut)
		}
	})

	t.Run("reports failed input after the rest", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "night.txt", nightLyrics)
		missing := filepath.Join(dir, "missing.txt")

		out, errOut, err := executeCommand(t, "", "analyze", "--no-save", "-b", "1", missing, path)
		if err == nil {
			t.Fatal("expected error for missing input")
		}
		if !strings.Contains(err.Error(), "1 of 2") {
			t.Errorf("expected failure count in error, got %v", err)
		}
		if !strings.Contains(errOut, "Analysis error for "+missing) {
			t.Errorf("expected analysis error on stderr, got:\n%s", errOut)
		}
		if !strings.Contains(out, "Song:           night") {
			t.Errorf("expected remaining input to be analysed, got:\n%s", out)
		}
	})
}

// TestRunAnalyzeCmdValidation tests configuration errors.
func TestRunAnalyzeCmdValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name:    "no input",
			args:    []string{"analyze", "--no-save"},
			wantErr: config.ErrNoInput,
		},
		{
			name:    "json and markdown",
			args:    []string{"analyze", "--no-save", "-j", "-m", "song.txt"},
			wantErr: config.ErrConflictingReportFormats,
		},
		{
			name:    "title with several inputs",
			args:    []string{"analyze", "--no-save", "-t", "Song", "a.txt", "b.txt"},
			wantErr: config.ErrTitleWithMultipleInputs,
		},
		{
			name:    "stdin twice",
			args:    []string{"analyze", "--no-save", "-", "-"},
			wantErr: config.ErrStdinRepeated,
		},
		{
			name:    "zero batch",
			args:    []string{"analyze", "--no-save", "-b", "0", "song.txt"},
			wantErr: config.ErrInvalidBatchSize,
		},
		{
			name:    "missing explicit config",
			args:    []string{"analyze", "--no-save", "-c", filepath.Join(os.TempDir(), "no-such-lyricscan.yaml"), "song.txt"},
			wantErr: config.ErrConfigNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := executeCommand(t, "", tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestRunAnalyzeCmdHistory tests history recording. It sets environment
// variables, so it cannot run in parallel.
func TestRunAnalyzeCmdHistory(t *testing.T) {
	dbDir := t.TempDir()
	t.Setenv(config.EnvDBDir, dbDir)
	t.Setenv(config.EnvNoSave, "")

	path := writeFile(t, t.TempDir(), "night.txt", nightLyrics)

	if _, _, err := executeCommand(t, "", "analyze", path); err != nil {
		t.Fatalf("first analysis failed: %v", err)
	}

	_, errOut, err := executeCommand(t, "", "analyze", path)
	if err != nil {
		t.Fatalf("second analysis failed: %v", err)
	}
	if !strings.Contains(errOut, "night is unchanged since its last analysis") {
		t.Errorf("expected unchanged notice, got:\n%s", errOut)
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	history, err := db.GetHistory(context.Background(), "night")
	if err != nil {
		t.Fatalf("failed to get history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 stored analysis, got %d", len(history))
	}
	if history[0].RunID == "" {
		t.Error("expected run ID on stored analysis")
	}
	if history[0].Summary == nil || history[0].Summary.ClicheCount != 1 {
		t.Errorf("expected stored summary with 1 cliché, got %+v", history[0].Summary)
	}
}

// TestRunAnalyzeCmdHistoryConfigChange tests that editing the cliché lists
// records a new analysis even when the lyrics are unchanged.
func TestRunAnalyzeCmdHistoryConfigChange(t *testing.T) {
	dbDir := t.TempDir()
	t.Setenv(config.EnvDBDir, dbDir)
	t.Setenv(config.EnvNoSave, "")

	dir := t.TempDir()
	path := writeFile(t, dir, "song.txt", nightLyrics)
	configPath := writeFile(t, dir, "lyricscan.yaml", `ignoreCliches:
  - "heart on fire"
`)

	if _, _, err := executeCommand(t, "", "analyze", path); err != nil {
		t.Fatalf("first analysis failed: %v", err)
	}

	_, errOut, err := executeCommand(t, "", "analyze", "-c", configPath, path)
	if err != nil {
		t.Fatalf("second analysis failed: %v", err)
	}
	if strings.Contains(errOut, "unchanged since its last analysis") {
		t.Errorf("config change should not count as unchanged, got:\n%s", errOut)
	}

	_, errOut, err = executeCommand(t, "", "analyze", "-c", configPath, path)
	if err != nil {
		t.Fatalf("third analysis failed: %v", err)
	}
	if !strings.Contains(errOut, "song is unchanged since its last analysis") {
		t.Errorf("expected unchanged notice on repeat, got:\n%s", errOut)
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	history, err := db.GetHistory(context.Background(), "song")
	if err != nil {
		t.Fatalf("failed to get history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 stored analyses, got %d", len(history))
	}
	if history[0].Summary == nil || history[0].Summary.ClicheCount != 0 {
		t.Errorf("expected latest run without clichés, got %+v", history[0].Summary)
	}
	if history[0].ClicheDigest == history[1].ClicheDigest {
		t.Error("expected different cliché table digests")
	}
}

// TestRunAnalyzeCmdNoSaveEnv tests that LYRICSCAN_NO_SAVE skips the database.
func TestRunAnalyzeCmdNoSaveEnv(t *testing.T) {
	dbDir := filepath.Join(t.TempDir(), "db")
	t.Setenv(config.EnvDBDir, dbDir)
	t.Setenv(config.EnvNoSave, "true")

	path := writeFile(t, t.TempDir(), "night.txt", nightLyrics)
	if _, _, err := executeCommand(t, "", "analyze", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(dbDir); !os.IsNotExist(err) {
		t.Errorf("expected no database directory, got err=%v", err)
	}
}

func TestSaveSongReportNilDB(t *testing.T) {
	t.Parallel()

	saved, err := saveSongReport(context.Background(), nil, nil, nil)
	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if saved {
		t.Error("expected nothing saved without a database")
	}
}

func TestFormatWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  *config.Config
		want string
	}{
		{name: "json", cfg: &config.Config{JSONReport: true}, want: "*report.FullJSONWriter"},
		{name: "markdown", cfg: &config.Config{MarkdownReport: true}, want: "*report.MarkdownWriter"},
		{name: "simple", cfg: &config.Config{}, want: "*report.SimpleWriter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := formatWriter(tt.cfg, &bytes.Buffer{})
			var got string
			switch w.(type) {
			case *report.FullJSONWriter:
				got = "*report.FullJSONWriter"
			case *report.MarkdownWriter:
				got = "*report.MarkdownWriter"
			case *report.SimpleWriter:
				got = "*report.SimpleWriter"
			}
			if got != tt.want {
				t.Errorf("expected %s, got %T", tt.want, w)
			}
		})
	}
}
