package models

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	serverError "github.com/supakorn-kn/books-lib/errors"
	"github.com/supakorn-kn/books-lib/objects"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTranslateError(t *testing.T) {

	t.Run("Should translate bad query values into invalid filter", func(t *testing.T) {

		err := TranslateReadError(mongo.CommandError{Code: badValueCode, Message: "unknown operator"})
		require.True(t, serverError.HasCode(err, serverError.InvalidFilterErrorCode))
	})

	t.Run("Should translate validator rejections into validation error", func(t *testing.T) {

		err := TranslateWriteError(mongo.WriteException{
			WriteErrors: mongo.WriteErrors{{Code: documentValidationFailureCode, Message: "Document failed validation"}},
		})
		require.True(t, serverError.IsError(err, serverError.ValidationError.New("document", "rejected by collection validator")))
	})

	t.Run("Should translate network failures into storage unavailable", func(t *testing.T) {

		cause := mongo.CommandError{Code: 6, Labels: []string{"NetworkError"}}

		for _, err := range []error{TranslateReadError(cause), TranslateWriteError(cause), TranslateReadError(mongo.ErrClientDisconnected)} {
			require.True(t, serverError.HasCode(err, serverError.StorageUnavailableErrorCode))
		}
	})

	t.Run("Should keep other errors untouched", func(t *testing.T) {

		cause := errors.New("boom")
		require.Same(t, cause, TranslateReadError(cause))
		require.NoError(t, TranslateWriteError(nil))

		notFound := serverError.BookNotFoundError.New("abc")
		require.Equal(t, notFound, TranslateReadError(notFound))
	})
}

func TestMalformedItemID(t *testing.T) {

	// Malformed IDs are rejected before the collection is used
	var model BaseModel[objects.Book]
	itemID := "non-exist_id"
	expected := serverError.BookNotFoundError.New(itemID)

	t.Run("Should report not found on get", func(t *testing.T) {

		item, err := model.GetByID(context.Background(), itemID)
		require.Equal(t, expected, err)
		require.Empty(t, item)
	})

	t.Run("Should report not found on update", func(t *testing.T) {

		matched, err := model.UpdateByID(context.Background(), itemID, bson.D{{Key: "$set", Value: bson.D{{Key: "title", Value: "Ghost"}}}})
		require.Equal(t, expected, err)
		require.Zero(t, matched)
	})

	t.Run("Should report not found on delete", func(t *testing.T) {

		deleted, err := model.DeleteByID(context.Background(), itemID)
		require.Equal(t, expected, err)
		require.Zero(t, deleted)
	})
}
