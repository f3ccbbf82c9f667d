package apis

import (
	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/books-lib/errors"
)

// Every response carries the HTTP status and a message next to its payload

type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Error   *errors.BaseError `json:"error,omitempty"`
}

type CreatedResponse[Item any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Msg     Item   `json:"msg"`
}

type SearchResponse[Item any] struct {
	Status   int    `json:"status"`
	AlertMsg string `json:"alertMsg"`
	Message  []Item `json:"message,omitempty"`
}

type ItemResponse[Item any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Result  Item   `json:"result"`
}

type UpdatedResponse[Item any] struct {
	Status       int    `json:"status"`
	Message      string `json:"message"`
	UpdatedQuery Item   `json:"updatedQuery"`
}

type CrudAPI[Item any] interface {
	Insert(ctx *gin.Context) (*Item, error)
	ReadOne(itemID string, ctx *gin.Context) (*Item, error)
	Read(ctx *gin.Context) ([]Item, error)
	Update(itemID string, ctx *gin.Context) (*Item, error)
	Delete(itemID string, ctx *gin.Context) error
}
