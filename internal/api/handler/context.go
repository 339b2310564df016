package handler

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/panaderia/bread-orders/internal/core/domain"
)

// bindJSON binds the JSON body into dst and validates it. Bodies that are
// missing or not JSON fail with domain.ErrInvalidJSON; well-formed JSON with a
// wrongly typed field is a validation error.
func bindJSON(c echo.Context, dst any) error {
	// echo's binder accepts an empty body as a zero value.
	if c.Request().ContentLength == 0 {
		return domain.ErrInvalidJSON
	}
	if err := c.Bind(dst); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Internal != nil {
			err = he.Internal
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.NewValidationError(typeErr.Field + " " + typeMismatch(typeErr.Type))
		}
		return domain.ErrInvalidJSON
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(dst)
}

func typeMismatch(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "must be a whole number"
	case reflect.String:
		return "must be a string"
	case reflect.Bool:
		return "must be true or false"
	default:
		return "has the wrong type"
	}
}

// indexParam parses the positional :i path parameter. Anything that is not a
// non-negative integer is reported as notFound.
func indexParam(c echo.Context, notFound error) (int, error) {
	i, err := strconv.Atoi(c.Param("i"))
	if err != nil || i < 0 {
		return 0, notFound
	}
	return i, nil
}

type okResponse struct {
	OK bool `json:"ok"`
}
