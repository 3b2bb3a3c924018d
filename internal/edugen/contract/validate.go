package contract

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// StructValidator validates request structs using their `binding` tags and
// reports fields by JSON name. It satisfies gin's binding.StructValidator.
type StructValidator struct {
	once     sync.Once
	validate *validator.Validate
}

var defaultValidator = &StructValidator{}

// Validator returns the shared validator instance.
func Validator() *StructValidator { return defaultValidator }

func (s *StructValidator) lazyinit() {
	s.once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.SetTagName("binding")
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			switch name {
			case "-":
				return ""
			case "":
				return fld.Name
			}
			return name
		})
		s.validate = v
	})
}

func (s *StructValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			return nil
		}
		return s.ValidateStruct(value.Elem().Interface())
	case reflect.Struct:
		s.lazyinit()
		return s.validate.Struct(obj)
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len(); i++ {
			if err := s.ValidateStruct(value.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

func (s *StructValidator) Engine() any {
	s.lazyinit()
	return s.validate
}

// Validate checks a request value outside of HTTP binding (e.g. from the CLI).
// A failure is returned as *ValidationError.
func Validate(obj any) error {
	if err := defaultValidator.ValidateStruct(obj); err != nil {
		return NewValidationError(err)
	}
	return nil
}
