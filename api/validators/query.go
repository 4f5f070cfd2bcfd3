package validators

import (
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/angelmondragon/plu-backend/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// LookupQuery is the query string of GET /item. The code is matched verbatim.
type LookupQuery struct {
	Code string `query:"code" validate:"required,max=20"`
}

// ParseLookupQuery reads and validates the lookup parameters.
func ParseLookupQuery(r *http.Request) (LookupQuery, error) {
	q := LookupQuery{Code: r.URL.Query().Get("code")}
	if err := validate.Struct(q); err != nil {
		return LookupQuery{}, formatValidationErrors(err)
	}
	return q, nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
	}

	details := map[string]string{}
	parts := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		msg := validationMessage(fieldErr)
		details[fieldErr.Field()] = msg
		parts = append(parts, fieldErr.Field()+" "+msg)
	}
	sort.Strings(parts)
	return pkgerrors.New(pkgerrors.CodeValidation, strings.Join(parts, "; ")).WithDetails(details)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return "is invalid"
}
