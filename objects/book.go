package objects

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book is a stored book record. Every descriptive field is optional: nil is absent, "" is stored as is.
type Book struct {
	BookID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title        *string            `json:"title,omitempty" bson:"title,omitempty"`
	Author       *string            `json:"author,omitempty" bson:"author,omitempty"`
	Genre        *string            `json:"genre,omitempty" bson:"genre,omitempty"`
	ISBN         *string            `json:"ISBN,omitempty" bson:"ISBN,omitempty"`
	Availability *bool              `json:"availability,omitempty" bson:"availability,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func (b Book) GetID() string {
	return b.BookID.Hex()
}

// Field names as stored in the collection
const (
	IDField           = "_id"
	TitleField        = "title"
	AuthorField       = "author"
	GenreField        = "genre"
	ISBNField         = "ISBN"
	AvailabilityField = "availability"
	CreatedAtField    = "createdAt"
	UpdatedAtField    = "updatedAt"
	VersionField      = "__v"
)

type FieldKind uint8

const (
	TextKind FieldKind = iota
	BoolKind
	ObjectIDKind
	TimeKind
)

// BookFields maps every known field to the kind its values are cast to
var BookFields = map[string]FieldKind{
	IDField:           ObjectIDKind,
	TitleField:        TextKind,
	AuthorField:       TextKind,
	GenreField:        TextKind,
	ISBNField:         TextKind,
	AvailabilityField: BoolKind,
	CreatedAtField:    TimeKind,
	UpdatedAtField:    TimeKind,
}
