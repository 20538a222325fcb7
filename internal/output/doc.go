// Package output manages the flat directory that receives build artifacts.
//
// Ensure creates the directory (and any missing parents) when absent and is a
// no-op otherwise. Write stores one artifact through a temporary file and a
// rename, so a failed write never leaves a truncated artifact behind. Prior
// artifacts with the same name are replaced; nothing else is removed.
package output
