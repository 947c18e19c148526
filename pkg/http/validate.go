package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = newValidator()

// newValidator reports fields by their query parameter name so error
// payloads match what the client actually sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ReadAndValidateRequest binds query parameters into req, fills defaults for
// parameters the client omitted and validates the result. It returns nil on
// success or a []ValidationError for BadRequestResponse.
func ReadAndValidateRequest(c echo.Context, req interface{}) interface{} {
	if err := c.Bind(req); err != nil {
		return []ValidationError{bindError(err)}
	}
	if err := defaults.Set(req); err != nil {
		return []ValidationError{{Code: "ERR_DEFAULTS", Message: err.Error()}}
	}
	err := validate.StructCtx(c.Request().Context(), req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Code: "ERR_UNKNOWN", Message: err.Error()}}
	}
	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fieldError(fe))
	}
	return out
}

// bindError covers malformed parameters, e.g. days=abc.
func bindError(err error) ValidationError {
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg = fmt.Sprint(he.Message)
	}
	return ValidationError{Code: "ERR_BIND", Message: msg}
}

// ruleText renders the constraint half of a message for a validator tag.
var ruleText = map[string]func(fe validator.FieldError) string{
	"required": func(validator.FieldError) string { return "is required" },
	"max": func(fe validator.FieldError) string {
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	},
	"min": func(fe validator.FieldError) string {
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	},
	"gte": func(fe validator.FieldError) string { return "must be " + fe.Param() + " or more" },
	"lte": func(fe validator.FieldError) string { return "must be " + fe.Param() + " or less" },
	"oneof": func(fe validator.FieldError) string {
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	},
}

func fieldError(fe validator.FieldError) ValidationError {
	ve := ValidationError{
		Code:  "ERR_" + strings.ToUpper(fe.Tag()),
		Field: fe.Field(),
	}
	if render, ok := ruleText[fe.Tag()]; ok {
		ve.Message = fe.Field() + " " + render(fe)
	} else {
		ve.Message = fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}

	switch fe.Tag() {
	case "min", "gte":
		ve.Params = map[string]interface{}{"min": fe.Param()}
	case "max", "lte":
		ve.Params = map[string]interface{}{"max": fe.Param()}
	case "oneof":
		ve.Params = map[string]interface{}{"options": strings.Fields(fe.Param())}
	}
	return ve
}
