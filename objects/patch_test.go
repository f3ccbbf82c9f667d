package objects

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/supakorn-kn/books-lib/errors"
	"go.mongodb.org/mongo-driver/bson"
)

func text(value string) *string {
	return &value
}

func TestParseBookPatch(t *testing.T) {

	t.Run("Should parse every known field", func(t *testing.T) {

		patch, err := ParseBookPatch(map[string]any{
			"title":        "Dune",
			"author":       "Herbert",
			"genre":        "Science Fiction",
			"ISBN":         "9780441013593",
			"availability": true,
		})
		require.NoError(t, err)

		book := patch.Apply(Book{})
		require.Equal(t, text("Dune"), book.Title)
		require.Equal(t, text("Herbert"), book.Author)
		require.Equal(t, text("Science Fiction"), book.Genre)
		require.Equal(t, text("9780441013593"), book.ISBN)
		require.NotNil(t, book.Availability)
		require.True(t, *book.Availability)
	})

	t.Run("Should drop unknown and store-managed fields", func(t *testing.T) {

		patch, err := ParseBookPatch(map[string]any{
			"_id":       "65f1c0ffee0000000000abcd",
			"createdAt": "2024-01-01T00:00:00Z",
			"updatedAt": "2024-01-01T00:00:00Z",
			"__v":       3,
			"publisher": "Chilton",
		})
		require.NoError(t, err)
		require.True(t, patch.IsEmpty())
	})

	t.Run("Should mark null fields for removal", func(t *testing.T) {

		patch, err := ParseBookPatch(map[string]any{"genre": nil, "availability": nil})
		require.NoError(t, err)
		require.Equal(t, []string{"availability", "genre"}, patch.Unset)
		require.Empty(t, patch.Fields())
	})

	t.Run("Should cast scalar values the way the store does", func(t *testing.T) {

		var testCases = map[string]struct {
			Raw      map[string]any
			Expected map[string]any
		}{
			"number as ISBN":       {Raw: map[string]any{"ISBN": float64(9780441013593)}, Expected: map[string]any{"ISBN": "9780441013593"}},
			"bool as title":        {Raw: map[string]any{"title": false}, Expected: map[string]any{"title": "false"}},
			"yes as availability":  {Raw: map[string]any{"availability": "yes"}, Expected: map[string]any{"availability": true}},
			"zero as availability": {Raw: map[string]any{"availability": float64(0)}, Expected: map[string]any{"availability": false}},
		}

		for name, testCase := range testCases {

			t.Run(name, func(t *testing.T) {

				patch, err := ParseBookPatch(testCase.Raw)
				require.NoError(t, err)
				require.Equal(t, testCase.Expected, patch.Fields())
			})
		}
	})

	t.Run("Should reject values that cannot be cast", func(t *testing.T) {

		var testCases = map[string]map[string]any{
			"object as title":        {"title": map[string]any{"$gt": ""}},
			"array as author":        {"author": []any{"a", "b"}},
			"word as availability":   {"availability": "maybe"},
			"number as availability": {"availability": float64(2)},
		}

		for name, raw := range testCases {

			t.Run(name, func(t *testing.T) {

				patch, err := ParseBookPatch(raw)
				require.True(t, errors.HasCode(err, errors.ValidationErrorCode), "Should have returned validation error")
				require.True(t, patch.IsEmpty())
			})
		}
	})
}

func TestBookPatchApply(t *testing.T) {

	available := true
	book := Book{Title: text("Dune"), Author: text("Herbert"), Genre: text("Science Fiction"), Availability: &available}

	title := "Dune Messiah"
	patch := BookPatch{Title: &title, Unset: []string{AvailabilityField}}

	updated := patch.Apply(book)
	require.Equal(t, text("Dune Messiah"), updated.Title)
	require.Equal(t, text("Herbert"), updated.Author)
	require.Equal(t, text("Science Fiction"), updated.Genre)
	require.Nil(t, updated.Availability)

	require.Equal(t, text("Dune"), book.Title, "Apply should not modify its argument")
	require.NotNil(t, book.Availability)

	title = "Changed after apply"
	require.Equal(t, text("Dune Messiah"), updated.Title, "Applied book should not share the patch values")
}

func TestBookBson(t *testing.T) {

	t.Run("Should store empty text and omit absent fields", func(t *testing.T) {

		patch, err := ParseBookPatch(map[string]any{"title": "", "author": "Herbert"})
		require.NoError(t, err)

		raw, err := bson.Marshal(patch.Apply(Book{}))
		require.NoError(t, err)

		title, ok := bson.Raw(raw).Lookup(TitleField).StringValueOK()
		require.True(t, ok, "Empty title should have been stored")
		require.Empty(t, title)

		author, ok := bson.Raw(raw).Lookup(AuthorField).StringValueOK()
		require.True(t, ok)
		require.Equal(t, "Herbert", author)

		for _, absent := range []string{GenreField, ISBNField, AvailabilityField, IDField} {
			_, err := bson.Raw(raw).LookupErr(absent)
			require.Error(t, err, "%s should not have been stored", absent)
		}
	})

	t.Run("Should decode stored empty text back as empty", func(t *testing.T) {

		raw, err := bson.Marshal(bson.D{{Key: TitleField, Value: ""}})
		require.NoError(t, err)

		var book Book
		require.NoError(t, bson.Unmarshal(raw, &book))
		require.Equal(t, text(""), book.Title)
		require.Nil(t, book.Author)
	})
}
