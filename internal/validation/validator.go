package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"tailorshop/internal/model"
	"tailorshop/internal/roster"

	"github.com/go-playground/validator/v10"
)

// Errors maps form field names to messages; empty means valid
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator checks worker forms before they are submitted
type Validator struct {
	v *validator.Validate
}

// New creates a Validator that reports JSON field names
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// ValidateCreate validates a new-worker form
func (val *Validator) ValidateCreate(req *model.CreateWorkerRequest) Errors {
	errs := val.validateStruct(req)
	if err := roster.ValidateGarmentRates(req.GarmentRates); err != nil {
		errs["garmentRates"] = garmentMessage(err)
	}
	return errs
}

// ValidatePatch validates an edit form
func (val *Validator) ValidatePatch(patch *model.WorkerPatch) Errors {
	errs := val.validateStruct(patch)
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		errs["name"] = "is required"
	}
	if patch.GarmentRates != nil {
		if err := roster.ValidateGarmentRates(*patch.GarmentRates); err != nil {
			errs["garmentRates"] = garmentMessage(err)
		}
	}
	return errs
}

func (val *Validator) validateStruct(s interface{}) Errors {
	errs := Errors{}
	err := val.v.Struct(s)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["_"] = err.Error()
		return errs
	}
	for _, fe := range fieldErrs {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = message(fe)
		}
	}
	return errs
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}

func garmentMessage(err error) string {
	switch {
	case errors.Is(err, roster.ErrDuplicateType):
		return "garment types must be unique"
	case errors.Is(err, roster.ErrInvalidRate):
		return "every rate must be a positive number"
	case errors.Is(err, roster.ErrEmptyType):
		return "every rate needs a garment type"
	default:
		return err.Error()
	}
}
