// Package model defines the data structures shared by lyricscan packages.
//
// This package contains the following main types:
//   - ProsodyAnalysis: The engine result for one lyric document
//   - LineAnalysis, SectionAnalysis, RhymeConnection, ClicheDetection: its parts
//   - WordAnalysis: Per-word breakdown used by the stress command
//   - SongReport: A pipeline run over one document, with provenance
//   - Summary: A condensed view of an analysis for listings and comparisons
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The engine, pipeline, report writers and history database all
// use these types, so centralizing them prevents import cycles.
//
// Engine types use camelCase JSON names; SongReport and Summary use
// snake_case like the rest of the CLI output and the database rows.
package model
