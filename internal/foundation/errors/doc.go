// Package errors provides the classified error primitives used across assetbuild.
//
// Every failure that can end a build is a ClassifiedError carrying a category
// (directory, compile, read, write, config, validation, internal), a severity
// and structured context. The CLIErrorAdapter turns one of these into a log
// record, a stderr message and a process exit code.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryRead, "failed to read source asset").
//		WithContext("path", path).
//		Build()
package errors
