// Package token defines the lexical vocabulary of Klar source files as
// seen by the analyzer. Comments are first-class tokens here (not
// trivia) because several rules inspect them: doc-coverage pairs doc
// comments with declarations and the unsafe audit looks for SAFETY
// comments next to unsafe blocks.
package token
