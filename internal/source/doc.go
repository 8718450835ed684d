// Package source loads lyric documents for analysis.
//
// Supported inputs:
//   - plain text files (.txt, .lyrics, .lyric or no extension)
//   - saved lyric web pages (.html, .htm), reduced to their visible text
//   - "-" for standard input, sniffed for HTML
//
// Every input is read through a size cap so a mistyped path cannot pull a
// large file into memory. The package also provides the content digest that
// the history database keys re-runs on.
//
// Design decision: HTML is parsed with golang.org/x/net/html rather than
// stripped with regular expressions, because lyric pages are often malformed
// and line breaks come from <br> and block structure, not from the source text.
package source
