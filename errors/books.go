package errors

const (
	BookNotFoundErrorCode       = 200_001
	InvalidFilterErrorCode      = 200_002
	StorageUnavailableErrorCode = 200_003
	ValidationErrorCode         = 200_004
)

// BookNotFoundError indicates no book has the given ID
var BookNotFoundError = new(BookNotFoundErrorCode, "BookNotFound", "Book with ID %s does not exist")

// InvalidFilterError indicates a query parameter cannot be used to filter books
var InvalidFilterError = new(InvalidFilterErrorCode, "InvalidFilter", "Filter on %q is invalid: %s")

// StorageUnavailableError indicates the database could not be reached or failed internally
var StorageUnavailableError = new(StorageUnavailableErrorCode, "StorageUnavailable", "Book storage is unavailable")

// ValidationError indicates a book field has a value that cannot be stored
var ValidationError = new(ValidationErrorCode, "ValidationError", "Field %q is invalid: %s")
