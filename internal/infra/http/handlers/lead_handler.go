package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/xavierca1/ligue-landing/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-landing/internal/infra/integration/google"
	"github.com/xavierca1/ligue-landing/internal/logger"
	"github.com/xavierca1/ligue-landing/internal/usecase"
)

const (
	maxSubmitBodyBytes = 64 << 10

	msgLeadCaptured  = "Dados enviados com sucesso!"
	msgMissingFields = "Campos obrigatórios ausentes: "
	msgInternalError = "Erro ao enviar os dados. Tente novamente mais tarde."
	msgOnlyPost      = "Método não permitido. Use POST."
)

type LeadHandler struct {
	SubmitLeadUC *usecase.SubmitLeadUseCase
}

func NewLeadHandler(uc *usecase.SubmitLeadUseCase) *LeadHandler {
	return &LeadHandler{SubmitLeadUC: uc}
}

type CaptureLeadResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CaptureLead (POST /submit). O corpo é lido inteiro antes do parse.
// 400 só para campo obrigatório faltando; qualquer outra falha vira 500 genérico.
func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSubmitBodyBytes))
	if err != nil {
		log.Error().Err(err).Msg("falha ao ler corpo do /submit")
		h.fail(w)
		return
	}

	var input usecase.SubmitLeadInput
	if err := json.Unmarshal(body, &input); err != nil {
		log.Error().Err(err).Msg("JSON inválido no /submit")
		h.fail(w)
		return
	}

	out, err := h.SubmitLeadUC.Execute(r.Context(), input)
	if err != nil {
		if verr, ok := usecase.AsValidationErrors(err); ok {
			middleware.RecordLeadSubmission(middleware.LeadResultInvalid)
			writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
				Error: msgMissingFields + strings.Join(verr.Fields(), ", "),
			})
			return
		}

		switch {
		case google.IsAuthError(err):
			log.Error().Err(err).Msg("falha de autenticação com o Google")
		case google.IsSheetWriteError(err):
			middleware.RecordIntegrationError("google_sheets")
			log.Error().Err(err).Msg("falha ao gravar na planilha")
		default:
			log.Error().Err(err).Msg("falha ao processar lead")
		}
		h.fail(w)
		return
	}

	log.Info().
		Str("submitted_at", out.SubmittedAt).
		Str("updated_range", out.UpdatedRange).
		Msg("lead capturado")

	middleware.RecordLeadSubmission(middleware.LeadResultSuccess)
	writeJSON(w, http.StatusOK, CaptureLeadResponse{Message: msgLeadCaptured})
}

// MethodNotAllowed responde /submit com qualquer método que não seja POST.
func (h *LeadHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "POST, OPTIONS")
	writeJSON(w, http.StatusMethodNotAllowed, CaptureLeadResponse{Error: msgOnlyPost})
}

func (h *LeadHandler) fail(w http.ResponseWriter) {
	middleware.RecordLeadSubmission(middleware.LeadResultError)
	writeJSON(w, http.StatusInternalServerError, CaptureLeadResponse{Error: msgInternalError})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
