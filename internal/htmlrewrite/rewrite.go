// Package htmlrewrite rewrites asset references in an HTML page.
//
// All steps are literal text replacements on the document. Most of them only
// touch the first occurrence of their target, and a target that is missing
// leaves the document as it was. Rules run in declaration order: the prefix
// rules look for the minified names that the rename rules produce.
package htmlrewrite

import (
	"fmt"
	"strings"
	"time"
)

// All replaces every occurrence when used as a Rule limit.
const All = -1

// BuildStampLayout formats build stamps as ISO-8601 UTC with milliseconds.
const BuildStampLayout = "2006-01-02T15:04:05.000Z07:00"

// Rule replaces Match with Replace. Limit is the maximum number of replacements
// (1 for first occurrence, All for every occurrence).
type Rule struct {
	Match   string
	Replace string
	Limit   int
}

// Apply runs the rule against doc.
func (r Rule) Apply(doc string) string {
	if r.Match == "" {
		return doc
	}
	return strings.Replace(doc, r.Match, r.Replace, r.Limit)
}

// Matches reports whether the rule would change doc.
func (r Rule) Matches(doc string) bool {
	return r.Match != "" && strings.Contains(doc, r.Match)
}

// Rules is an ordered rule list.
type Rules []Rule

// Apply runs every rule in order.
func (rs Rules) Apply(doc string) string {
	for _, r := range rs {
		doc = r.Apply(doc)
	}
	return doc
}

// Asset names one source file and the minified file that replaces it.
type Asset struct {
	Source   string
	Minified string
}

// NewRules returns the rename and prefix rules for a stylesheet and a script.
// Rename rules come first; the prefix rules match the renamed attribute values.
func NewRules(stylesheet, script Asset, staticPrefix string) Rules {
	return Rules{
		{Match: stylesheet.Source, Replace: stylesheet.Minified, Limit: 1},
		{Match: script.Source, Replace: script.Minified, Limit: 1},
		{
			Match:   fmt.Sprintf(`href="%s"`, stylesheet.Minified),
			Replace: fmt.Sprintf(`href="%s%s"`, staticPrefix, stylesheet.Minified),
			Limit:   1,
		},
		{
			Match:   fmt.Sprintf(`src="%s"`, script.Minified),
			Replace: fmt.Sprintf(`src="%s%s"`, staticPrefix, script.Minified),
			Limit:   1,
		},
	}
}

// InjectBuildMeta inserts a build meta element before the first </head>.
// Documents without </head> are returned unchanged.
func InjectBuildMeta(doc, buildStamp string) string {
	meta := fmt.Sprintf("  <meta name=\"build\" content=\"%s\" />\n", buildStamp)
	return strings.Replace(doc, "</head>", meta+"</head>", 1)
}

// Rewrite applies rules in order and then injects the build stamp.
func Rewrite(source string, rules Rules, buildStamp string) string {
	return InjectBuildMeta(rules.Apply(source), buildStamp)
}

// Stamp formats t as a build stamp.
func Stamp(t time.Time) string {
	return t.UTC().Format(BuildStampLayout)
}
