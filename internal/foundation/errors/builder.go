package errors

// ErrorBuilder provides a fluent API for creating ClassifiedError instances.
type ErrorBuilder struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

// NewError creates a new ErrorBuilder with the specified category and message.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{
		category: category,
		severity: SeverityError,
		message:  message,
		context:  make(ErrorContext),
	}
}

// WrapError creates a new ErrorBuilder that wraps an existing error.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	b := NewError(category, message)
	b.cause = err
	return b
}

// WithSeverity sets the error severity.
func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.severity = severity
	return b
}

// WithContext adds a context key-value pair.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.context = b.context.Set(key, value)
	return b
}

// Fatal sets the severity to fatal.
func (b *ErrorBuilder) Fatal() *ErrorBuilder {
	return b.WithSeverity(SeverityFatal)
}

// Build creates the final ClassifiedError.
func (b *ErrorBuilder) Build() *ClassifiedError {
	return &ClassifiedError{
		category: b.category,
		severity: b.severity,
		message:  b.message,
		cause:    b.cause,
		context:  b.context,
	}
}

// Convenience constructors for the build failure taxonomy. All of them are fatal:
// a build either fully succeeds or aborts with one of these.

// ConfigError creates a configuration error.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}

// ValidationError creates a validation error.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal()
}

// DirectoryError wraps a failure to create or access the output directory.
func DirectoryError(path string, cause error) *ErrorBuilder {
	return WrapError(cause, CategoryDirectory, "output directory unavailable").Fatal().
		WithContext("path", path)
}

// CompileError wraps a script compiler failure. The cause carries the compiler
// diagnostics unmodified.
func CompileError(entry string, cause error) *ErrorBuilder {
	return WrapError(cause, CategoryCompile, "script compilation failed").Fatal().
		WithContext("entry", entry)
}

// ReadError wraps a failure to read a source asset.
func ReadError(path string, cause error) *ErrorBuilder {
	return WrapError(cause, CategoryRead, "failed to read source asset").Fatal().
		WithContext("path", path)
}

// WriteError wraps a failure to write an artifact.
func WriteError(path string, cause error) *ErrorBuilder {
	return WrapError(cause, CategoryWrite, "failed to write artifact").Fatal().
		WithContext("path", path)
}

// InternalError creates an internal error.
func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).Fatal()
}
