package usecase

import (
	"errors"
	"strings"
)

// ValidationError é um campo do formulário que não passou na validação.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors agrupa todos os problemas de um envio; vira 400 no handler.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the offending field names in order.
func (e ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for _, v := range e {
		fields = append(fields, v.Field)
	}
	return fields
}

// AsValidationErrors extracts the validation failures wrapped in err, if any.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var verr ValidationErrors
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
