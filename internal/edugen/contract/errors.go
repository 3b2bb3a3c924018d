package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Detail is one field-level problem, shaped like FastAPI's 422 entries.
type Detail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError reports why a request body was rejected.
type ValidationError struct {
	Details []Detail
	Err     error
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Details) == 0 {
		return "request validation failed"
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(d.Loc, "."), d.Msg))
	}
	return "request validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError converts a decode or validation failure into field
// details. An existing *ValidationError is returned as is.
func NewValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return &ValidationError{Details: detailsFor(err), Err: err}
}

func detailsFor(err error) []Detail {
	var (
		fieldErrs validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &fieldErrs):
		out := make([]Detail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, fieldDetail(fe))
		}
		return out
	case errors.As(err, &typeErr):
		return []Detail{{
			Loc:  bodyLoc(typeErr.Field),
			Msg:  typeMessage(typeErr.Type),
			Type: typeName(typeErr.Type),
		}}
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return []Detail{{Loc: []string{"body"}, Msg: "JSON decode error", Type: "json_invalid"}}
	default:
		msg := "invalid request body"
		if err != nil {
			msg = err.Error()
		}
		return []Detail{{Loc: []string{"body"}, Msg: msg, Type: "value_error"}}
	}
}

func fieldDetail(fe validator.FieldError) Detail {
	d := Detail{Loc: bodyLoc(namespaceWithoutRoot(fe.Namespace()))}
	numeric := isNumeric(fe.Kind())
	switch fe.Tag() {
	case "required":
		d.Type, d.Msg = "missing", "Field required"
	case "min", "gte":
		if numeric {
			d.Type, d.Msg = "greater_than_equal", "Input should be greater than or equal to "+fe.Param()
		} else {
			d.Type, d.Msg = "too_short", "Input should have at least "+fe.Param()+" items"
		}
	case "max", "lte":
		if numeric {
			d.Type, d.Msg = "less_than_equal", "Input should be less than or equal to "+fe.Param()
		} else {
			d.Type, d.Msg = "too_long", "Input should have at most "+fe.Param()+" items"
		}
	default:
		d.Type, d.Msg = "value_error", fmt.Sprintf("Value failed the %q rule", fe.Tag())
	}
	return d
}

// namespaceWithoutRoot turns "MCQRequest.numberOfQuestions" into
// "numberOfQuestions".
func namespaceWithoutRoot(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func bodyLoc(field string) []string {
	loc := []string{"body"}
	if field == "" {
		return loc
	}
	return append(loc, strings.Split(field, ".")...)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "type_error"
	}
	switch {
	case t.Kind() == reflect.String:
		return "string_type"
	case t.Kind() == reflect.Bool:
		return "bool_type"
	case isNumeric(t.Kind()) && t.Kind() != reflect.Float32 && t.Kind() != reflect.Float64:
		return "int_type"
	case isNumeric(t.Kind()):
		return "float_type"
	case t.Kind() == reflect.Ptr:
		return typeName(t.Elem())
	default:
		return "type_error"
	}
}

func typeMessage(t reflect.Type) string {
	switch typeName(t) {
	case "string_type":
		return "Input should be a valid string"
	case "bool_type":
		return "Input should be a valid boolean"
	case "int_type":
		return "Input should be a valid integer"
	case "float_type":
		return "Input should be a valid number"
	default:
		return "Input has the wrong type"
	}
}
