package entity

import (
	"strings"
	"time"
)

// TimestampLayout é ISO-8601 em UTC com milissegundos (mesmo formato do Date.toISOString).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Lead é o que chega do formulário da landing page.
type Lead struct {
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Birthdate string `json:"birthdate,omitempty"`
	Whatsapp  string `json:"whatsapp,omitempty"`
	Email     string `json:"email"`
}

// Normalize trims every field in place.
func (l *Lead) Normalize() {
	l.Name = strings.TrimSpace(l.Name)
	l.Surname = strings.TrimSpace(l.Surname)
	l.Birthdate = strings.TrimSpace(l.Birthdate)
	l.Whatsapp = strings.TrimSpace(l.Whatsapp)
	l.Email = strings.TrimSpace(l.Email)
}

// Row monta a linha da planilha: [timestamp, nome, sobrenome, nascimento, whatsapp, email].
// Campos opcionais vazios viram "" (nunca null).
func (l Lead) Row(at time.Time) []string {
	return []string{
		at.UTC().Format(TimestampLayout),
		l.Name,
		l.Surname,
		l.Birthdate,
		l.Whatsapp,
		l.Email,
	}
}
