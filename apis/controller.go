package apis

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/books-lib/errors"
)

// RegisterCrudAPI mounts the CRUD routes of api on group. itemName is the capitalized singular
// used in response messages, e.g. "Book".
func RegisterCrudAPI[Item any](api CrudAPI[Item], group *gin.RouterGroup, itemName string) {

	plural := strings.ToLower(itemName) + "s"

	group.POST("add", func(ctx *gin.Context) {

		item, err := api.Insert(ctx)
		if err != nil {
			writeErrorJSON(ctx, err, itemName)
			return
		}

		ctx.JSON(http.StatusCreated, CreatedResponse[Item]{
			Status:  http.StatusCreated,
			Message: fmt.Sprintf("%s added successfully", itemName),
			Msg:     *item,
		})
	})

	group.GET("", func(ctx *gin.Context) {

		items, err := api.Read(ctx)
		if err != nil {
			writeErrorJSON(ctx, err, itemName)
			return
		}

		if len(items) == 0 {
			ctx.JSON(http.StatusOK, SearchResponse[Item]{
				Status:   http.StatusOK,
				AlertMsg: fmt.Sprintf("No %s found according to the search criteria", plural),
			})
			return
		}

		ctx.JSON(http.StatusOK, SearchResponse[Item]{
			Status:   http.StatusOK,
			AlertMsg: fmt.Sprintf("Array of %s matching the search criteria", plural),
			Message:  items,
		})
	})

	group.GET(":id", func(ctx *gin.Context) {

		item, err := api.ReadOne(ctx.Param("id"), ctx)
		if err != nil {
			writeErrorJSON(ctx, err, itemName)
			return
		}

		ctx.JSON(http.StatusOK, ItemResponse[Item]{
			Status:  http.StatusOK,
			Message: fmt.Sprintf("%s Found", itemName),
			Result:  *item,
		})
	})

	group.PUT("update/:id", func(ctx *gin.Context) {

		item, err := api.Update(ctx.Param("id"), ctx)
		if err != nil {
			writeErrorJSON(ctx, err, itemName)
			return
		}

		ctx.JSON(http.StatusOK, UpdatedResponse[Item]{
			Status:       http.StatusOK,
			Message:      fmt.Sprintf("%s Updated Successfully", itemName),
			UpdatedQuery: *item,
		})
	})

	group.DELETE("delete/:id", func(ctx *gin.Context) {

		err := api.Delete(ctx.Param("id"), ctx)
		if err != nil {
			writeErrorJSON(ctx, err, itemName)
			return
		}

		ctx.JSON(http.StatusOK, Response{
			Status:  http.StatusOK,
			Message: fmt.Sprintf("%s Deleted Successfully", itemName),
		})
	})
}

func writeErrorJSON(ctx *gin.Context, err error, itemName string) {

	assertedError, ok := errors.TryAssertError(err)
	if !ok {
		slog.Error("Unexpected error", "method", ctx.Request.Method, "path", ctx.Request.URL.Path, "request_id", RequestIDFrom(ctx), "error", err)

		unknownError := errors.UnknownError.New()
		writeError(ctx, http.StatusInternalServerError, unknownError.Message, unknownError)
		return
	}

	switch assertedError.Code {

	case errors.BookNotFoundErrorCode:
		writeError(ctx, http.StatusNotFound, fmt.Sprintf("%s Not Found", itemName), assertedError)

	case errors.StorageUnavailableErrorCode, errors.UnknownErrorCode:
		slog.Error("Request failed", "method", ctx.Request.Method, "path", ctx.Request.URL.Path, "request_id", RequestIDFrom(ctx), "error", err)
		writeError(ctx, http.StatusInternalServerError, assertedError.Message, assertedError)

	default:
		writeError(ctx, http.StatusBadRequest, assertedError.Message, assertedError)
	}
}

func writeError(ctx *gin.Context, statusCode int, message string, baseError errors.BaseError) {

	ctx.AbortWithStatusJSON(statusCode, ErrorResponse{
		Status:  statusCode,
		Message: message,
		Error:   &baseError,
	})
}
