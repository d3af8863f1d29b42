package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Input structs share their "binding" tags with gin, so the same rules hold whether
// a request arrives over HTTP or from the seeder.
var validate = NewValidator()

func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(FieldName)
	return v
}

// FieldName reports a struct field by its JSON (or query) name.
func FieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func checkInput(msg string, in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return FromValidator(msg, verrs)
	}
	return err
}

// FromValidator converts validator failures into a ValidationError.
func FromValidator(msg string, verrs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{Msg: msg}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fieldPath(fe), Message: describe(fe)})
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace: "CreateUserInput.skills[0]" -> "skills[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "uuid":
		return "must be a UUID"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

var (
	five = decimal.NewFromInt(5)
	ten  = decimal.NewFromInt(10)

	// Money columns are numeric(10,4).
	maxMoney = decimal.New(1, 6)
)

func checkPositive(fe *fieldErrors, field string, d *decimal.Decimal) {
	switch {
	case d == nil:
	case !d.IsPositive():
		fe.add(field, "must be greater than 0")
	case d.Round(4).GreaterThanOrEqual(maxMoney):
		fe.add(field, "must be less than "+maxMoney.String())
	}
}

func checkRange(fe *fieldErrors, field string, d *decimal.Decimal, lo, hi decimal.Decimal) {
	if d != nil && (d.LessThan(lo) || d.GreaterThan(hi)) {
		fe.add(field, "must be between "+lo.String()+" and "+hi.String())
	}
}
