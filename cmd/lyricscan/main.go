// Package main provides the entry point for the lyricscan CLI.
//
// lyricscan analyses song lyrics for prosody: syllable and stress counts,
// line ending stability, rhyme schemes per section and clichéd phrases.
//
// Usage:
//
//	lyricscan analyze <lyrics.txt>
//	lyricscan history <song>
//	lyricscan stress "<line>"
//
// See --help for all available options.
package main

// main is the entry point for lyricscan.
func main() {
	Execute()
}
