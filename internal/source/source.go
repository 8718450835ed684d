package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/lyricscan/internal/config"
)

// Format identifies how a document's bytes are turned into lyric text.
type Format string

const (
	// FormatText is plain text, one lyric line per line.
	FormatText Format = "text"

	// FormatHTML is a saved lyric web page; visible text is extracted.
	FormatHTML Format = "html"
)

// stdinName is the song name used for stdin input without a title.
const stdinName = "stdin"

// formatByExt maps lower-case file extensions to formats.
// Files without an extension are plain text.
var formatByExt = map[string]Format{
	"":        FormatText,
	".txt":    FormatText,
	".lyrics": FormatText,
	".lyric":  FormatText,
	".html":   FormatHTML,
	".htm":    FormatHTML,
}

// Document is one loaded lyric document.
type Document struct {
	// Path is the input as given on the command line, or "-" for stdin.
	Path string

	// Name is the default song name derived from Path.
	Name string

	// Format is how the bytes were interpreted.
	Format Format

	// Text is the lyric text. It is not normalized.
	Text string
}

// Loader reads lyric documents from files and stdin.
type Loader struct {
	maxSize int64
	stdin   io.Reader
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithMaxSize sets the largest accepted document in bytes.
// Non-positive values keep the default.
func WithMaxSize(n int64) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.maxSize = n
		}
	}
}

// WithStdin sets the reader used for the "-" input.
func WithStdin(r io.Reader) LoaderOption {
	return func(l *Loader) {
		l.stdin = r
	}
}

// NewLoader creates a Loader reading stdin from os.Stdin with the default size cap.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		maxSize: config.DefaultMaxInputSize,
		stdin:   os.Stdin,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the document at path. "-" reads stdin.
func (l *Loader) Load(path string) (*Document, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}

	if path == config.StdinSource {
		data, err := l.readLimited(l.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		format := FormatText
		if looksLikeHTML(data) {
			format = FormatHTML
		}
		return l.decode(path, format, data)
	}

	format, ok := formatByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupportedFormat, path)
	}
	if info.Size() > l.maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrInputTooLarge, path, info.Size(), l.maxSize)
	}

	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	data, err := l.readLimited(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return l.decode(path, format, data)
}

// readLimited reads at most maxSize bytes and fails if more are available.
// The stat check alone is not enough for stdin, pipes and growing files.
func (l *Loader) readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.maxSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrInputTooLarge, l.maxSize)
	}
	return data, nil
}

func (l *Loader) decode(path string, format Format, data []byte) (*Document, error) {
	doc := &Document{
		Path:   path,
		Name:   SongName(path),
		Format: format,
	}

	switch format {
	case FormatHTML:
		text, err := ExtractHTMLText(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse HTML in %s: %w", path, err)
		}
		doc.Text = text
	default:
		doc.Text = string(data)
	}
	return doc, nil
}

// SongName derives a song name from an input path: the base name without
// extension, "stdin" for "-".
func SongName(path string) string {
	if path == config.StdinSource {
		return stdinName
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." {
		return base
	}
	return name
}

// looksLikeHTML sniffs stdin content that has no file extension to go by.
func looksLikeHTML(data []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(data))
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) ||
		bytes.HasPrefix(head, []byte("<html"))
}
