// Package cssmin implements the stylesheet minifier.
//
// The minifier is a fixed sequence of regular-expression rewrites, not a CSS
// parser. It does not know about strings, so a "/*" or a structural character
// inside a quoted value is rewritten like any other text. The passes and their
// order are fixed; changing either changes the output for existing stylesheets.
package cssmin

import (
	"regexp"
	"strings"
)

var (
	// blockComment matches /* ... */ up to the first closing marker.
	blockComment = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	// whitespace matches runs of ECMAScript white space and line terminators,
	// which includes \v, NBSP, the BOM and the Unicode space separators.
	whitespace = regexp.MustCompile(`[\s\v\x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]+`)
	// punctuation matches a structural character with at most one adjacent
	// space on each side. Runs are already collapsed, so one is enough.
	punctuation = regexp.MustCompile(` ?([;:{},>]) ?`)
)

// Minify returns the minified form of a stylesheet source.
func Minify(source string) string {
	out := StripComments(source)
	out = CollapseWhitespace(out)
	out = TightenPunctuation(out)
	return strings.Trim(out, " ")
}

// StripComments removes every block comment. Comments do not nest.
func StripComments(source string) string {
	return blockComment.ReplaceAllString(source, "")
}

// CollapseWhitespace replaces each maximal run of whitespace with one space.
// Whitespace is the ECMAScript set, not Go's \s.
func CollapseWhitespace(source string) string {
	return whitespace.ReplaceAllString(source, " ")
}

// TightenPunctuation drops the space before and after ; : { } , and >.
func TightenPunctuation(source string) string {
	return punctuation.ReplaceAllString(source, "$1")
}
