package usecase

import (
	"context"
	"errors"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/xavierca1/ligue-landing/internal/entity"
)

// RowAppender é a planilha de destino (google.SheetAppender em produção).
type RowAppender interface {
	AppendRow(ctx context.Context, values []string) (*sheets.AppendValuesResponse, error)
}

// LeadNotifier avisa o time comercial de um lead novo. Best effort.
type LeadNotifier interface {
	NotifyLead(lead entity.Lead, submittedAt time.Time) error
}

// Notifiers dispara todos os notifiers em sequência; um erro não impede os demais.
type Notifiers []LeadNotifier

func (n Notifiers) NotifyLead(lead entity.Lead, submittedAt time.Time) error {
	var errs []error
	for _, notifier := range n {
		if err := notifier.NotifyLead(lead, submittedAt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
