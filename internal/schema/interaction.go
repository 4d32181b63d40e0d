package schema

import (
	"crm-service/internal/model"
)

// InteractionCreateRequest defines the structure for interaction creation requests
type InteractionCreateRequest struct {
	LeadID          uint    `json:"lead_id"`
	InteractionType string  `json:"interaction_type"`
	Notes           *string `json:"notes"`
}

// Validate checks the request fields and returns one error per invalid field
func (r *InteractionCreateRequest) Validate() []FieldError {
	var errs []FieldError

	if r.LeadID == 0 {
		errs = append(errs, FieldError{Field: "lead_id", Message: "is required"})
	}

	if r.InteractionType == "" {
		errs = append(errs, FieldError{Field: "interaction_type", Message: "is required"})
	} else if !model.IsValidInteractionType(r.InteractionType) {
		errs = append(errs, FieldError{Field: "interaction_type", Message: interactionTypeMessage()})
	}

	return errs
}
