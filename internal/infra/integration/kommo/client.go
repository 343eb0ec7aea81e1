package kommo

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/xavierca1/ligue-landing/internal/entity"
)

const (
	DefaultBaseURL = "https://liguemedicina.kommo.com/api/v4"
	leadTag        = "landing_page"
)

var errNotFound = errors.New("kommo: contato não encontrado")

// Client cria o contato e o lead no funil do Kommo para cada lead capturado.
type Client struct {
	http     *resty.Client
	statusID int
}

func NewClient(baseURL, apiToken string, statusID int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetAuthToken(apiToken).
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout),
		statusID: statusID,
	}
}

// NotifyLead reaproveita o contato quando o telefone (ou email) já existe.
func (c *Client) NotifyLead(lead entity.Lead, _ time.Time) error {
	_, err := c.CreateLead(lead)
	return err
}

func (c *Client) CreateLead(lead entity.Lead) (int, error) {
	contactID, err := c.findOrCreateContact(lead)
	if err != nil {
		return 0, fmt.Errorf("erro ao criar/buscar contato: %w", err)
	}

	payload := []leadRequest{{
		Name:     fmt.Sprintf("%s %s - Landing page", lead.Name, lead.Surname),
		StatusID: c.statusID,
		Embedded: leadEmbedded{
			Tags:     []tag{{Name: leadTag}},
			Contacts: []contactRef{{ID: contactID}},
		},
	}}

	var result embeddedIDs
	resp, err := c.http.R().SetBody(payload).SetResult(&result).Post("/leads")
	if err != nil {
		return 0, fmt.Errorf("kommo: %w", err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("erro ao criar lead: %d - %s", resp.StatusCode(), resp.String())
	}
	if len(result.Embedded.Leads) == 0 {
		return 0, errors.New("kommo: lead não criado")
	}

	return result.Embedded.Leads[0].ID, nil
}

func (c *Client) findOrCreateContact(lead entity.Lead) (int, error) {
	query := lead.Whatsapp
	if query == "" {
		query = lead.Email
	}

	id, err := c.findContact(query)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, errNotFound) {
		return 0, err
	}

	return c.createContact(lead)
}

func (c *Client) findContact(query string) (int, error) {
	var result embeddedIDs
	resp, err := c.http.R().
		SetQueryParam("query", query).
		SetResult(&result).
		Get("/contacts")
	if err != nil {
		return 0, fmt.Errorf("kommo: %w", err)
	}

	// Kommo responde 204 sem corpo quando a busca não encontra nada
	if resp.StatusCode() == http.StatusNoContent {
		return 0, errNotFound
	}
	if resp.IsError() {
		return 0, fmt.Errorf("erro ao buscar contato: %d", resp.StatusCode())
	}
	if len(result.Embedded.Contacts) == 0 {
		return 0, errNotFound
	}

	return result.Embedded.Contacts[0].ID, nil
}

func (c *Client) createContact(lead entity.Lead) (int, error) {
	contact := contactRequest{FirstName: lead.Name, LastName: lead.Surname}
	if lead.Whatsapp != "" {
		contact.CustomFieldsValues = append(contact.CustomFieldsValues, customField{
			FieldCode: "PHONE",
			Values:    []customFieldValue{{Value: lead.Whatsapp, EnumCode: "MOB"}},
		})
	}
	contact.CustomFieldsValues = append(contact.CustomFieldsValues, customField{
		FieldCode: "EMAIL",
		Values:    []customFieldValue{{Value: lead.Email, EnumCode: "WORK"}},
	})

	var result embeddedIDs
	resp, err := c.http.R().SetBody([]contactRequest{contact}).SetResult(&result).Post("/contacts")
	if err != nil {
		return 0, fmt.Errorf("kommo: %w", err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("erro ao criar contato: %d - %s", resp.StatusCode(), resp.String())
	}
	if len(result.Embedded.Contacts) == 0 {
		return 0, errors.New("kommo: erro ao obter ID do contato criado")
	}

	return result.Embedded.Contacts[0].ID, nil
}
