// Package pipeline runs the asset build: it prepares the output directory,
// compiles the script, minifies the stylesheet and rewrites the page, in that
// order, stopping at the first failure.
//
// A build walks the states Init, DirReady, ScriptBuilt, StyleBuilt, HtmlBuilt
// and Done; the move to Done lists the output directory for the report. Any
// failing stage moves it to Failed; artifacts written by
// earlier stages stay on disk.
package pipeline
