package validation

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Register installs the custom rules on v and names fields by their JSON tag
// so messages match the request payload.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("application_status", applicationStatus); err != nil {
		return err
	}
	return v.RegisterValidation("uuid_list", uuidList)
}

// RegisterWithGin installs the rules on gin's binding validator.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not go-playground/validator")
	}
	return Register(v)
}

func applicationStatus(fl validator.FieldLevel) bool {
	return slices.Contains(constants.ApplicationStatuses, fl.Field().String())
}

func uuidList(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		item := field.Index(i)
		if item.Kind() != reflect.String {
			return false
		}
		if _, err := uuid.Parse(item.String()); err != nil {
			return false
		}
	}
	return true
}

// Translate turns validator errors into one message per failing field. Other
// errors, typically JSON decoding failures, yield their own text.
func Translate(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		if fieldMessages := CustomMessage(e.Field()); fieldMessages != nil {
			if msg, exists := fieldMessages[e.Tag()]; exists {
				messages = append(messages, msg)
				continue
			}
		}
		messages = append(messages, DefaultMessage(e.Field(), e.Tag(), e.Param()))
	}
	return messages
}
