package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {

	t.Run("Should format message without touching the template", func(t *testing.T) {

		first := BookNotFoundError.New("abc")
		second := BookNotFoundError.New("def")

		require.Equal(t, "Book with ID abc does not exist", first.Error())
		require.Equal(t, "Book with ID def does not exist", second.Error())
		require.Equal(t, BookNotFoundErrorCode, first.Code)
		require.Equal(t, "BookNotFound", first.Name)
	})

	t.Run("Should keep message of templates without arguments", func(t *testing.T) {

		require.Equal(t, "Book storage is unavailable", StorageUnavailableError.New().Message)
		require.Equal(t, "An unexpected error occurred", UnknownError.Error())
	})
}

func TestTryAssertError(t *testing.T) {

	t.Run("Should assert wrapped BaseError", func(t *testing.T) {

		wrapped := fmt.Errorf("while updating: %w", ValidationError.New("title", "must be text"))

		asserted, ok := TryAssertError(wrapped)
		require.True(t, ok)
		require.Equal(t, ValidationErrorCode, asserted.Code)
		require.True(t, IsError(wrapped, ValidationError.New("title", "must be text")))
		require.True(t, HasCode(wrapped, ValidationErrorCode))
	})

	t.Run("Should not assert foreign errors", func(t *testing.T) {

		_, ok := TryAssertError(fmt.Errorf("boom"))
		require.False(t, ok)
		require.False(t, IsError(fmt.Errorf("boom"), UnknownError.New()))
		require.False(t, HasCode(nil, UnknownErrorCode))
	})

	t.Run("Should compare message as well as code", func(t *testing.T) {

		require.False(t, IsError(BookNotFoundError.New("a"), BookNotFoundError.New("b")))
	})
}
