package schema

import (
	"crm-service/internal/model"
)

// LeadCreateRequest defines the structure for lead creation requests
type LeadCreateRequest struct {
	Name    string  `json:"name"`
	Company string  `json:"company"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Status  string  `json:"status"`
}

// Validate checks the request fields and returns one error per invalid field.
// An empty status is allowed and defaults to New at creation time.
func (r *LeadCreateRequest) Validate() []FieldError {
	var errs []FieldError

	errs = validName("name", r.Name, errs)
	errs = validName("company", r.Company, errs)

	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "is required"})
	} else if !validEmail(r.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "must be a valid email address"})
	}

	if r.Status != "" && !model.IsValidLeadStatus(r.Status) {
		errs = append(errs, FieldError{Field: "status", Message: statusMessage()})
	}

	return errs
}

// LeadUpdateRequest defines the structure for partial lead updates.
// Nil fields were not supplied and keep their stored value. A JSON null is
// indistinguishable from an absent field here, so a stored phone can only
// be replaced, never cleared back to null.
type LeadUpdateRequest struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Status  *string `json:"status"`
}

// Validate checks only the supplied fields
func (r *LeadUpdateRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Name != nil {
		errs = validName("name", *r.Name, errs)
	}
	if r.Company != nil {
		errs = validName("company", *r.Company, errs)
	}
	if r.Email != nil && !validEmail(*r.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if r.Status != nil && !model.IsValidLeadStatus(*r.Status) {
		errs = append(errs, FieldError{Field: "status", Message: statusMessage()})
	}

	return errs
}

// LeadWithInteractions is the detail response shape for a single lead
type LeadWithInteractions struct {
	model.Lead
	Interactions []model.Interaction `json:"interactions"`
}
