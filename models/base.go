package models

import (
	"context"
	"errors"
	"fmt"

	serverError "github.com/supakorn-kn/books-lib/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Server error codes the models translate
const (
	badValueCode                  = 2
	failedToParseCode             = 9
	typeMismatchCode              = 14
	documentValidationFailureCode = 121
)

type Item interface {
	GetID() string
}

// BaseModel implements CRUD by ObjectID over a single collection
type BaseModel[T Item] struct {
	Coll      *mongo.Collection
	ItemIDKey string
}

func (m *BaseModel[T]) Inject(coll *mongo.Collection, itemIDKey string) error {

	if coll == nil {
		return errors.New("collection must not be nil")
	}

	m.Coll = coll
	m.ItemIDKey = itemIDKey

	return nil
}

// Insert stores item and returns the ObjectID the store assigned to it
func (m BaseModel[T]) Insert(ctx context.Context, item T) (primitive.ObjectID, error) {

	result, err := m.Coll.InsertOne(ctx, item)
	if err != nil {
		return primitive.NilObjectID, TranslateWriteError(err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted ID type %T", result.InsertedID)
	}

	return insertedID, nil
}

func (m BaseModel[T]) GetByID(ctx context.Context, itemID string) (item T, err error) {

	objectID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		err = serverError.BookNotFoundError.New(itemID)
		return
	}

	result := m.Coll.FindOne(ctx, EqualMatchBson(m.ItemIDKey, objectID))

	err = result.Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = serverError.BookNotFoundError.New(itemID)
		return
	}

	err = TranslateReadError(err)
	return
}

// Find returns every item matching filter, never a nil slice
func (m BaseModel[T]) Find(ctx context.Context, filter bson.D, opts ...*options.FindOptions) ([]T, error) {

	cur, err := m.Coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, TranslateReadError(err)
	}

	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, TranslateReadError(err)
	}

	return items, nil
}

// UpdateByID applies update to the item with itemID and returns how many items matched.
// An itemID that is not an ObjectID is reported as not found, like GetByID does.
func (m BaseModel[T]) UpdateByID(ctx context.Context, itemID string, update bson.D) (int64, error) {

	objectID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return 0, serverError.BookNotFoundError.New(itemID)
	}

	result, err := m.Coll.UpdateOne(ctx, EqualMatchBson(m.ItemIDKey, objectID), update)
	if err != nil {
		return 0, TranslateWriteError(err)
	}

	return result.MatchedCount, nil
}

// DeleteByID removes the item with itemID and returns how many items were deleted
func (m BaseModel[T]) DeleteByID(ctx context.Context, itemID string) (int64, error) {

	objectID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return 0, serverError.BookNotFoundError.New(itemID)
	}

	result, err := m.Coll.DeleteOne(ctx, EqualMatchBson(m.ItemIDKey, objectID))
	if err != nil {
		return 0, TranslateWriteError(err)
	}

	return result.DeletedCount, nil
}

// TranslateReadError maps driver errors raised while querying to server errors
func TranslateReadError(err error) error {

	if err == nil {
		return nil
	}

	var se mongo.ServerError
	if errors.As(err, &se) && (se.HasErrorCode(badValueCode) || se.HasErrorCode(failedToParseCode) || se.HasErrorCode(typeMismatchCode)) {
		return serverError.InvalidFilterError.New("query", se.Error())
	}

	return translateCommonError(err)
}

// TranslateWriteError maps driver errors raised while writing to server errors
func TranslateWriteError(err error) error {

	if err == nil {
		return nil
	}

	var se mongo.ServerError
	if errors.As(err, &se) && se.HasErrorCode(documentValidationFailureCode) {
		return serverError.ValidationError.New("document", "rejected by collection validator")
	}

	return translateCommonError(err)
}

func translateCommonError(err error) error {

	if _, ok := serverError.TryAssertError(err); ok {
		return err
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %v", serverError.StorageUnavailableError.New(), err)
	}

	return err
}
