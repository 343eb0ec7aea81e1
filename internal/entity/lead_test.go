package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeadRow_OptionalFieldsAreEmptyStrings(t *testing.T) {
	lead := Lead{Name: "Ana", Surname: "Silva", Email: "a@x.com"}
	at := time.Date(2025, 3, 10, 12, 30, 45, 123_000_000, time.UTC)

	assert.Equal(t,
		[]string{"2025-03-10T12:30:45.123Z", "Ana", "Silva", "", "", "a@x.com"},
		lead.Row(at),
	)
}

func TestLeadRow_TimestampIsUTC(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	at := time.Date(2025, 3, 10, 21, 0, 0, 0, saoPaulo)

	row := Lead{Name: "Ana", Surname: "Silva", Birthdate: "1990-05-15", Whatsapp: "11999999999", Email: "a@x.com"}.Row(at)

	assert.Equal(t, "2025-03-11T00:00:00.000Z", row[0])
	assert.Equal(t, "1990-05-15", row[3])
	assert.Equal(t, "11999999999", row[4])
}

func TestLeadNormalize(t *testing.T) {
	lead := Lead{Name: "  Ana ", Surname: "\tSilva", Email: " a@x.com\n", Whatsapp: " "}
	lead.Normalize()

	assert.Equal(t, Lead{Name: "Ana", Surname: "Silva", Email: "a@x.com"}, lead)
}
