package books

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/supakorn-kn/books-lib/models"
	"github.com/supakorn-kn/books-lib/mongodb"
	"github.com/supakorn-kn/books-lib/objects"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	titleAndAuthorIndexName = "title_1_author_1"
	unauthorizedCode        = 13
)

type BooksModel struct {
	models.BaseModel[objects.Book]

	now func() time.Time
}

func NewBooksModel(ctx context.Context, conn *mongodb.MongoDBConn) (*BooksModel, error) {

	booksModel := BooksModel{now: time.Now}

	err := booksModel.init(ctx, conn)
	if err != nil {
		return nil, err
	}

	return &booksModel, nil
}

func (m BooksModel) GetCollectionName() string {
	return "bookdatabases"
}

func (m *BooksModel) init(ctx context.Context, conn *mongodb.MongoDBConn) error {

	var se mongo.ServerError

	err := m.initCollection(ctx, conn)
	if errors.As(err, &se) && se.HasErrorCode(unauthorizedCode) {
		slog.Warn("Skip books collection validator, user may not modify collections", "collection", m.GetCollectionName(), "error", err)
	} else if err != nil {
		return err
	}

	err = m.initIndexes(ctx, conn)
	if err != nil {
		return err
	}

	return m.Inject(conn.GetCollection(m.GetCollectionName()), objects.IDField)
}

func (m BooksModel) initCollection(ctx context.Context, conn *mongodb.MongoDBConn) error {

	bookDB := conn.GetDatabase()
	collectionName := m.GetCollectionName()

	filter := bson.D{}
	option := options.ListCollections()
	collectionNameList, err := bookDB.ListCollectionNames(ctx, filter, option)
	if err != nil {
		return err
	}

	// Nothing is required, only the type of each present field is enforced
	validator := bson.D{
		{
			Key: "$jsonSchema", Value: bson.M{
				"bsonType": "object",
				"properties": bson.M{
					objects.TitleField:        bson.M{"bsonType": "string", "description": "Title must be text"},
					objects.AuthorField:       bson.M{"bsonType": "string", "description": "Author must be text"},
					objects.GenreField:        bson.M{"bsonType": "string", "description": "Genre must be text"},
					objects.ISBNField:         bson.M{"bsonType": "string", "description": "ISBN must be text"},
					objects.AvailabilityField: bson.M{"bsonType": "bool", "description": "Availability must be a boolean"},
					objects.CreatedAtField:    bson.M{"bsonType": "date"},
					objects.UpdatedAtField:    bson.M{"bsonType": "date"},
				},
			},
		},
	}

	if slices.Contains(collectionNameList, collectionName) {

		cmd := bson.D{
			{Key: "collMod", Value: collectionName},
			{Key: "validator", Value: validator},
			{Key: "validationLevel", Value: "moderate"},
		}

		option := options.RunCmd()
		result := bookDB.RunCommand(ctx, cmd, option)
		if err := result.Err(); err != nil {
			return err
		}

		return nil
	}

	collectionOption := options.CreateCollection()
	collectionOption.SetValidator(validator)
	collectionOption.SetValidationLevel("moderate")

	return bookDB.CreateCollection(ctx, collectionName, collectionOption)
}

func (m BooksModel) initIndexes(ctx context.Context, conn *mongodb.MongoDBConn) error {

	coll := conn.GetCollection(m.GetCollectionName())
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return err
	}

	var indexes []bson.M
	err = cur.All(ctx, &indexes)
	if err != nil {
		return err
	}

	contains := slices.ContainsFunc(indexes, func(m primitive.M) bool {
		return m["name"] == titleAndAuthorIndexName
	})

	if contains {
		return nil
	}

	indexModelOption := options.Index()
	indexModelOption.SetName(titleAndAuthorIndexName)

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: objects.TitleField, Value: 1},
			{Key: objects.AuthorField, Value: 1},
		},
		Options: indexModelOption,
	}

	option := options.CreateIndexes()
	_, err = coll.Indexes().CreateOne(ctx, indexModel, option)

	return err
}

// Insert stores a new book built from fields and returns it with the assigned ID and timestamps
func (m BooksModel) Insert(ctx context.Context, fields objects.BookPatch) (objects.Book, error) {

	now := m.timestamp()

	book := fields.Apply(objects.Book{})
	book.CreatedAt = now
	book.UpdatedAt = now

	bookID, err := m.BaseModel.Insert(ctx, book)
	if err != nil {
		return objects.Book{}, err
	}

	book.BookID = bookID

	return book, nil
}

// Find returns the books whose fields equal every entry of filter
func (m BooksModel) Find(ctx context.Context, filter bson.D) ([]objects.Book, error) {

	sortByCreation := bson.D{{Key: objects.CreatedAtField, Value: 1}, {Key: objects.IDField, Value: 1}}

	return m.BaseModel.Find(ctx, filter, options.Find().SetSort(sortByCreation))
}

// UpdateByID merges patch into the book with bookID and returns how many books matched
func (m BooksModel) UpdateByID(ctx context.Context, bookID string, patch objects.BookPatch) (int64, error) {

	return m.BaseModel.UpdateByID(ctx, bookID, UpdateBson(patch, m.timestamp()))
}

// UpdateBson creates the update document of patch. updatedAt is always refreshed, so it is never empty.
func UpdateBson(patch objects.BookPatch, updatedAt time.Time) bson.D {

	set := bson.D{}

	fields := patch.Fields()
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		set = append(set, bson.E{Key: key, Value: fields[key]})
	}

	set = append(set, bson.E{Key: objects.UpdatedAtField, Value: updatedAt})

	update := bson.D{{Key: "$set", Value: set}}

	if len(patch.Unset) > 0 {

		unset := bson.D{}
		for _, key := range patch.Unset {
			unset = append(unset, bson.E{Key: key, Value: ""})
		}

		update = append(update, bson.E{Key: "$unset", Value: unset})
	}

	return update
}

// timestamp is truncated to what the store keeps, so returned books equal their stored copy
func (m BooksModel) timestamp() time.Time {
	return m.now().UTC().Truncate(time.Millisecond)
}
