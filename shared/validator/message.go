package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"gt":          "{field} must be greater than {param}",
	"min":         "{field} must be at least {param}",
	"max":         "{field} must be at most {param}",
	"oneof":       "{field} must be one of {param}",
	"email":       "{field} must be a valid email address",
	"url":         "{field} must be a valid URL",
	"uuid":        "{field} must be a valid UUID",
	"alphanum":    "{field} must contain only letters and digits",
	"nefield":     "{field} must differ from {param}",
	"enum":        "{field} has an unsupported value",
	"empty":       "{field} must not be set",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must be at most {param} MB",
}

// message renders every failed field, in struct order, as one sentence per
// field joined by "; ".
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	parts := make([]string, 0, len(valErrors))

	for _, valErr := range valErrors {
		tmpl, ok := messages[valErr.Tag()]
		if !ok {
			parts = append(parts, valErr.Field()+" is invalid")

			continue
		}

		parts = append(parts, strings.NewReplacer("{field}", valErr.Field(), "{param}", valErr.Param()).Replace(tmpl))
	}

	return strings.Join(parts, "; ")
}
