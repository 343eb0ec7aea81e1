package mail

import "gopkg.in/gomail.v2"

type LeadEmailData struct {
	Name        string
	Surname     string
	Email       string
	Whatsapp    string
	Birthdate   string
	SubmittedAt string
}

// sender é o que o gomail.Dialer faz; trocado por um fake nos testes.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From string
	To   string

	dialer sender
}
