package books

import (
	"bytes"
	"context"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/supakorn-kn/books-lib/errors"
	"github.com/supakorn-kn/books-lib/models"
	"github.com/supakorn-kn/books-lib/objects"
	"go.mongodb.org/mongo-driver/bson"
)

// BooksStore is the storage the books API needs, implemented by models/books.BooksModel
type BooksStore interface {
	Insert(ctx context.Context, fields objects.BookPatch) (objects.Book, error)
	Find(ctx context.Context, filter bson.D) ([]objects.Book, error)
	GetByID(ctx context.Context, bookID string) (objects.Book, error)
	UpdateByID(ctx context.Context, bookID string, patch objects.BookPatch) (int64, error)
	DeleteByID(ctx context.Context, bookID string) (int64, error)
}

type BooksCrudAPI struct {
	model BooksStore
}

func NewBooksAPI(model BooksStore) *BooksCrudAPI {

	api := new(BooksCrudAPI)
	api.model = model

	return api
}

func (api BooksCrudAPI) Insert(ctx *gin.Context) (*objects.Book, error) {

	fields, err := bindBookPatch(ctx)
	if err != nil {
		return nil, err
	}

	book, err := api.model.Insert(ctx.Request.Context(), fields)
	if err != nil {
		return nil, err
	}

	return &book, nil
}

func (api BooksCrudAPI) ReadOne(itemID string, ctx *gin.Context) (*objects.Book, error) {

	book, err := api.model.GetByID(ctx.Request.Context(), itemID)
	if err != nil {
		return nil, err
	}

	return &book, nil
}

// Read finds books whose fields equal the query parameters
func (api BooksCrudAPI) Read(ctx *gin.Context) ([]objects.Book, error) {

	filter, err := models.EqualityFilter(ctx.Request.URL.Query(), objects.BookFields)
	if err != nil {
		return nil, err
	}

	return api.model.Find(ctx.Request.Context(), filter)
}

// Update merges the body into the book and returns it as stored afterwards
func (api BooksCrudAPI) Update(itemID string, ctx *gin.Context) (*objects.Book, error) {

	patch, err := bindBookPatch(ctx)
	if err != nil {
		return nil, err
	}

	matched, err := api.model.UpdateByID(ctx.Request.Context(), itemID, patch)
	if err != nil {
		return nil, err
	}

	if matched == 0 {
		return nil, errors.BookNotFoundError.New(itemID)
	}

	book, err := api.model.GetByID(ctx.Request.Context(), itemID)
	if err != nil {
		return nil, err
	}

	return &book, nil
}

func (api BooksCrudAPI) Delete(itemID string, ctx *gin.Context) error {

	deleted, err := api.model.DeleteByID(ctx.Request.Context(), itemID)
	if err != nil {
		return err
	}

	if deleted == 0 {
		return errors.BookNotFoundError.New(itemID)
	}

	return nil
}

// bindBookPatch reads the body as a JSON object. An empty body is an empty patch.
func bindBookPatch(ctx *gin.Context) (objects.BookPatch, error) {

	body, err := ctx.GetRawData()
	if err != nil {
		return objects.BookPatch{}, err
	}

	raw := map[string]any{}
	if len(bytes.TrimSpace(body)) > 0 {

		if err := binding.JSON.BindBody(body, &raw); err != nil {
			return objects.BookPatch{}, errors.ValidationError.New("body", "must be a JSON object")
		}
	}

	return objects.ParseBookPatch(raw)
}
