// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package rsvp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/quixsi/core/internal/model"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeStrict decodes exactly one JSON object into dst. Unknown fields,
// trailing data and type mismatches all reject the request.
func decodeStrict(body []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return model.NewValidationError(model.ErrInvalidInput, decodeFieldError(err))
	}
	if _, err := dec.Token(); err != io.EOF {
		return model.NewValidationError(model.ErrInvalidInput, model.FieldError{
			Field:   "body",
			Message: "unexpected data after JSON object",
		})
	}

	// Optional fields may be left out but never set to null.
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return model.NewValidationError(model.ErrInvalidInput, decodeFieldError(err))
	}
	if path, ok := findNull(raw, ""); ok {
		if path == "" {
			path = "body"
		}
		return model.NewValidationError(model.ErrInvalidInput, model.FieldError{Field: path, Message: "must not be null"})
	}
	return nil
}

// findNull returns the path of the first JSON null in v. Object keys are
// visited in sorted order.
func findNull(v any, path string) (string, bool) {
	switch v := v.(type) {
	case nil:
		return path, true
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			p := k
			if path != "" {
				p = path + "." + k
			}
			if found, ok := findNull(v[k], p); ok {
				return found, true
			}
		}
	case []any:
		for i, item := range v {
			if found, ok := findNull(item, fmt.Sprintf("%s[%d]", path, i)); ok {
				return found, true
			}
		}
	}
	return "", false
}

func decodeFieldError(err error) model.FieldError {
	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.Is(err, io.EOF):
		return model.FieldError{Field: "body", Message: "request body is empty"}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return model.FieldError{Field: field, Message: "expected " + jsonKind(typeErr.Type)}
	case errors.As(err, &syntaxErr):
		return model.FieldError{Field: "body", Message: fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return model.FieldError{Field: field, Message: "unknown field"}
	default:
		return model.FieldError{Field: "body", Message: err.Error()}
	}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return "number"
	}
}

// validationError turns validator output into field errors keyed by the
// JSON path of the offending value, e.g. "responses[1].name".
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return model.NewValidationError(model.ErrInvalidInput, model.FieldError{Field: "body", Message: err.Error()})
	}
	fields := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		path := fe.Namespace()
		if _, rest, ok := strings.Cut(path, "."); ok {
			path = rest
		}
		fields = append(fields, model.FieldError{Field: path, Message: fieldMessage(fe)})
	}
	return model.NewValidationError(model.ErrInvalidInput, fields...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s character(s)", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at most %s character(s)", fe.Param())
	default:
		return "failed " + fe.Tag() + " check"
	}
}
