package objects

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/supakorn-kn/books-lib/errors"
)

// BookPatch is a typed partial book. Nil fields are left untouched, Unset lists fields to remove.
type BookPatch struct {
	Title        *string
	Author       *string
	Genre        *string
	ISBN         *string
	Availability *bool

	Unset []string
}

// storeManaged fields are assigned by the store and silently ignored in request bodies
var storeManaged = map[string]bool{
	IDField:        true,
	CreatedAtField: true,
	UpdatedAtField: true,
	VersionField:   true,
}

// ParseBookPatch converts a decoded JSON object into a BookPatch.
// Unknown keys are dropped. A null value marks the field for removal.
func ParseBookPatch(raw map[string]any) (BookPatch, error) {

	var patch BookPatch

	for key, value := range raw {

		kind, known := BookFields[key]
		if !known || storeManaged[key] {
			continue
		}

		if value == nil {
			patch.Unset = append(patch.Unset, key)
			continue
		}

		switch kind {

		case TextKind:
			text, err := CastText(value)
			if err != nil {
				return BookPatch{}, errors.ValidationError.New(key, err.Error())
			}

			patch.setText(key, text)

		case BoolKind:
			flag, err := CastBool(value)
			if err != nil {
				return BookPatch{}, errors.ValidationError.New(key, err.Error())
			}

			patch.Availability = &flag
		}
	}

	slices.Sort(patch.Unset)

	return patch, nil
}

func (p *BookPatch) setText(key, text string) {

	switch key {
	case TitleField:
		p.Title = &text
	case AuthorField:
		p.Author = &text
	case GenreField:
		p.Genre = &text
	case ISBNField:
		p.ISBN = &text
	}
}

// IsEmpty reports whether the patch neither sets nor removes anything
func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Genre == nil && p.ISBN == nil && p.Availability == nil && len(p.Unset) == 0
}

// Apply returns a copy of book with the patch merged in
func (p BookPatch) Apply(book Book) Book {

	if p.Title != nil {
		book.Title = copyText(p.Title)
	}
	if p.Author != nil {
		book.Author = copyText(p.Author)
	}
	if p.Genre != nil {
		book.Genre = copyText(p.Genre)
	}
	if p.ISBN != nil {
		book.ISBN = copyText(p.ISBN)
	}
	if p.Availability != nil {
		availability := *p.Availability
		book.Availability = &availability
	}

	for _, key := range p.Unset {

		switch key {
		case TitleField:
			book.Title = nil
		case AuthorField:
			book.Author = nil
		case GenreField:
			book.Genre = nil
		case ISBNField:
			book.ISBN = nil
		case AvailabilityField:
			book.Availability = nil
		}
	}

	return book
}

func copyText(text *string) *string {
	copied := *text
	return &copied
}

// Fields returns the values the patch sets, keyed by stored field name
func (p BookPatch) Fields() map[string]any {

	fields := map[string]any{}

	if p.Title != nil {
		fields[TitleField] = *p.Title
	}
	if p.Author != nil {
		fields[AuthorField] = *p.Author
	}
	if p.Genre != nil {
		fields[GenreField] = *p.Genre
	}
	if p.ISBN != nil {
		fields[ISBNField] = *p.ISBN
	}
	if p.Availability != nil {
		fields[AvailabilityField] = *p.Availability
	}

	return fields
}

// CastText accepts strings and stringifies JSON numbers and booleans
func CastText(value any) (string, error) {

	switch v := value.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("expected text but got %T", value)
	}
}

// CastBool accepts booleans, 0/1 and the strings true/false/1/0/yes/no
func CastBool(value any) (bool, error) {

	switch v := value.(type) {
	case bool:
		return v, nil

	case float64:
		if v == 1 {
			return true, nil
		}
		if v == 0 {
			return false, nil
		}

	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
	}

	return false, fmt.Errorf("expected boolean but got %v", value)
}
