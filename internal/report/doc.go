// Package report writes song reports for people and tools.
//
// This package contains writers for different output formats:
//   - SimpleWriter: human-readable text for terminal display
//   - JSONWriter and FullJSONWriter: structured JSON for tool integration
//   - MarkdownWriter: Markdown with tables and an ending-type chart
//
// Writers implement the Writer interface, so they can be used
// interchangeably and combined with MultiWriter.
package report
