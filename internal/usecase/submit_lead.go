package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xavierca1/ligue-landing/internal/entity"
	"github.com/xavierca1/ligue-landing/internal/logger"
)

type SubmitLeadUseCase struct {
	Sheet    RowAppender
	Notifier LeadNotifier
	Now      func() time.Time

	pending sync.WaitGroup
}

// NewSubmitLeadUseCase wires the sheet and an optional notifier (nil disables it).
func NewSubmitLeadUseCase(sheet RowAppender, notifier LeadNotifier) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		Sheet:    sheet,
		Notifier: notifier,
		Now:      time.Now,
	}
}

// Execute valida o lead, grava uma linha na planilha e só então avisa o comercial.
// Nada é gravado se a validação falhar; sem retry se a planilha falhar.
func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput) (*SubmitLeadOutput, error) {
	input.Normalize()

	if errs := ValidateSubmitLeadInput(input); len(errs) > 0 {
		return nil, errs
	}

	submittedAt := uc.Now().UTC()

	resp, err := uc.Sheet.AppendRow(ctx, input.Row(submittedAt))
	if err != nil {
		return nil, fmt.Errorf("falha ao gravar lead na planilha: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Info().Str("email", input.Email).Msg("lead gravado na planilha")

	if uc.Notifier != nil {
		uc.pending.Add(1)
		go uc.notify(log, input, submittedAt)
	}

	out := &SubmitLeadOutput{SubmittedAt: submittedAt.Format(entity.TimestampLayout)}
	if resp != nil && resp.Updates != nil {
		out.UpdatedRange = resp.Updates.UpdatedRange
	}

	return out, nil
}

// Wait bloqueia até as notificações em andamento terminarem ou ctx expirar.
func (uc *SubmitLeadUseCase) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		uc.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (uc *SubmitLeadUseCase) notify(log *logger.Logger, lead entity.Lead, submittedAt time.Time) {
	defer uc.pending.Done()

	if err := uc.Notifier.NotifyLead(lead, submittedAt); err != nil {
		// o lead já está na planilha, então só registra
		log.Warn().Err(err).Str("email", lead.Email).Msg("falha ao notificar lead")
	}
}
