package usecase

import "github.com/xavierca1/ligue-landing/internal/entity"

type SubmitLeadInput = entity.Lead

type SubmitLeadOutput struct {
	SubmittedAt  string `json:"submitted_at"`
	UpdatedRange string `json:"updated_range,omitempty"`
}
