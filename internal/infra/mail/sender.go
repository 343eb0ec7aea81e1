package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-landing/internal/entity"
)

var leadTemplate = template.Must(template.New("lead").Parse(`<h2>Novo lead na landing page</h2>
<p><strong>Nome:</strong> {{.Name}} {{.Surname}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{if .Whatsapp}}<p><strong>WhatsApp:</strong> {{.Whatsapp}}</p>{{end}}
{{if .Birthdate}}<p><strong>Nascimento:</strong> {{.Birthdate}}</p>{{end}}
<p><small>Recebido em {{.SubmittedAt}}</small></p>
`))

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		From:   from,
		To:     to,
		dialer: gomail.NewDialer(host, port, user, password),
	}
}

// NotifyLead manda para o comercial um email com os dados do lead.
func (s *EmailSender) NotifyLead(lead entity.Lead, submittedAt time.Time) error {
	data := LeadEmailData{
		Name:        lead.Name,
		Surname:     lead.Surname,
		Email:       lead.Email,
		Whatsapp:    lead.Whatsapp,
		Birthdate:   lead.Birthdate,
		SubmittedAt: submittedAt.UTC().Format(entity.TimestampLayout),
	}

	var body bytes.Buffer
	if err := leadTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Reply-To", lead.Email)
	m.SetHeader("Subject", fmt.Sprintf("Novo lead: %s %s", lead.Name, lead.Surname))
	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
