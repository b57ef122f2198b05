// Package validation instancia compartida de validator para los DTOs de entrada.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var instance = validator.New(validator.WithRequiredStructEnabled())

// mensajes por tag; el resto usa el texto por defecto de validator.
var hints = map[string]func(fe validator.FieldError) string{
	"required": func(fe validator.FieldError) string {
		return fmt.Sprintf("%s es requerido", fe.Field())
	},
	"email": func(fe validator.FieldError) string {
		return fmt.Sprintf("%s no es un email válido", fe.Field())
	},
	"min": func(fe validator.FieldError) string {
		return fmt.Sprintf("%s debe ser al menos %s", fe.Field(), fe.Param())
	},
	"max": func(fe validator.FieldError) string {
		return fmt.Sprintf("%s debe ser como máximo %s", fe.Field(), fe.Param())
	},
}

// Struct valida v y devuelve el mensaje y false si no es válido.
func Struct(v any) (string, bool) {
	err := instance.Struct(v)
	if err == nil {
		return "", true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error(), false
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fn, ok := hints[fe.Tag()]; ok {
			msgs = append(msgs, fn(fe))
			continue
		}
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; "), false
}

// Instance devuelve el validador compartido para registrar reglas propias.
func Instance() *validator.Validate {
	return instance
}
