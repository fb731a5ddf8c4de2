package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/fhuszti/event-medias-go/internal/model"
	"github.com/fhuszti/event-medias-go/internal/uuid"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Tell the validator to use the JSON tag as the “field name”
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// validate our UUID wrapper as its canonical string
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if id, ok := v.Interface().(uuid.UUID); ok {
			return id.String()
		}
		return nil
	}, uuid.UUID{})

	_ = validate.RegisterValidation("assetkind", func(fl validator.FieldLevel) bool {
		return model.AssetKind(fl.Field().String()).Valid()
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ErrorsToJson renders validation failures as {"<field>": "<tag>"}.
func ErrorsToJson(validationErrs error) (string, error) {
	var vErrs validator.ValidationErrors
	if !errors.As(validationErrs, &vErrs) {
		return "", validationErrs
	}

	errsMap := make(map[string]string, len(vErrs))
	for _, fieldErr := range vErrs {
		errsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	errsJson, err := json.Marshal(errsMap)
	if err != nil {
		return "", err
	}
	return string(errsJson), nil
}
