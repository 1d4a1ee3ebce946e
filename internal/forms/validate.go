package forms

import (
	"fmt"
	"time"

	"github.com/mianvisuals/studio-api/internal/domain/model"
)

// FieldErrors is the full list of violated rules for one submission, in
// schema declaration order. It implements error so the dispatch coordinator
// can return it through the usual error path.
type FieldErrors []model.FieldError

func (e FieldErrors) Error() string {
	return fmt.Sprintf("validation failed: %d field error(s)", len(e))
}

// Validator applies the per-kind schema to a normalized inquiry. It is the
// single source of truth for "is this submission well-formed"; nothing else
// in the pipeline re-checks fields.
type Validator struct {
	now func() time.Time
}

// NewValidator creates a Validator that judges date rules against wall-clock
// time.
func NewValidator() *Validator {
	return &Validator{now: time.Now}
}

// Validate runs every rule of the inquiry's schema and collects all
// violations rather than stopping at the first. On success it returns the
// inquiry wrapped as validated; on failure the FieldErrors list.
func (v *Validator) Validate(inq model.Inquiry) (model.ValidatedInquiry, error) {
	sch, ok := schemas[inq.Kind]
	if !ok {
		return model.ValidatedInquiry{}, fmt.Errorf("unknown schema kind: %s", inq.Kind)
	}

	var errs FieldErrors
	for _, fr := range sch.fields {
		for _, r := range fr.rules {
			if msg := r(v, inq); msg != "" {
				errs = append(errs, model.FieldError{Field: fr.field, Message: msg})
			}
		}
	}

	if len(errs) > 0 {
		return model.ValidatedInquiry{}, errs
	}
	return model.ValidatedInquiry{Inquiry: inq}, nil
}
