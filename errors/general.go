package errors

const (
	UnknownErrorCode = 100_001
)

// UnknownError never carries the underlying cause, which is logged instead
var UnknownError = new(UnknownErrorCode, "UnknownError", "An unexpected error occurred")
