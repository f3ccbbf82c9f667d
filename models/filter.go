package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	serverError "github.com/supakorn-kn/books-lib/errors"
	"github.com/supakorn-kn/books-lib/objects"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EqualMatchBson creates BSON for equal search (Case-sensitive)
func EqualMatchBson(key string, value any) bson.D {
	return bson.D{{Key: key, Value: value}}
}

// InMatchBson creates BSON matching any of values (Case-sensitive)
func InMatchBson(key string, values []any) bson.D {
	return bson.D{{Key: key, Value: bson.M{"$in": values}}}
}

// EqualityFilter turns query parameters into an equality filter.
// Values of known fields are cast to their kind, unknown fields are matched as text.
// A key given more than once matches any of its values.
func EqualityFilter(query map[string][]string, fields map[string]objects.FieldKind) (bson.D, error) {

	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	filter := bson.D{}
	for _, key := range keys {

		if key == "" || strings.HasPrefix(key, "$") {
			return nil, serverError.InvalidFilterError.New(key, "field name is not allowed")
		}

		values := query[key]
		if len(values) == 0 {
			continue
		}

		kind, known := fields[key]
		if !known {
			kind = objects.TextKind
		}

		casted := make([]any, 0, len(values))
		for _, value := range values {

			v, err := castQueryValue(value, kind)
			if err != nil {
				return nil, serverError.InvalidFilterError.New(key, err.Error())
			}

			casted = append(casted, v)
		}

		if len(casted) == 1 {
			filter = append(filter, EqualMatchBson(key, casted[0])...)
		} else {
			filter = append(filter, InMatchBson(key, casted)...)
		}
	}

	return filter, nil
}

func castQueryValue(value string, kind objects.FieldKind) (any, error) {

	switch kind {

	case objects.ObjectIDKind:
		objectID, err := primitive.ObjectIDFromHex(value)
		if err != nil {
			return nil, fmt.Errorf("%q is not an ObjectID", value)
		}

		return objectID, nil

	case objects.BoolKind:
		return objects.CastBool(value)

	case objects.TimeKind:
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, fmt.Errorf("%q is not an RFC 3339 time", value)
		}

		return parsed, nil

	default:
		return value, nil
	}
}
