// Package database provides SQLite-based history storage for lyricscan.
//
// HistoryDB keeps one row per analysis run with the song name, the
// sha3-256 digests of the analysed text and of the cliché table, the lookup
// table revision and the report as JSON. Line text is blanked before the
// report is stored. The analyze command uses it to skip unchanged lyrics;
// the history command lists and compares runs.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because the
// history is a single local file and the driver is CGO-free, which keeps
// cross-compilation simple.
package database
