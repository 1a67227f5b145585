// Package session owns the per-visitor form state: the live input, the
// field errors, the last generated QR code and a dismissible notice.
package session

import (
	"context"
	"errors"
	"fmt"

	"ncfqr/internal/models"
	apperrors "ncfqr/pkg/errors"
)

const NoticeGenerationFailed = "Failed to generate QR code. Please try again."

// Generator renders a validated form. It is satisfied by *encoder.Encoder.
type Generator interface {
	Generate(ctx context.Context, in models.FormInput) (*models.Artifact, error)
}

// Validator computes field errors. It is satisfied by *validator.Validator.
type Validator interface {
	Validate(in models.FormInput) (models.ValidationErrors, bool)
}

type Session struct {
	ID       string                  `json:"id"`
	Form     models.FormInput        `json:"form"`
	Errors   models.ValidationErrors `json:"errors"`
	Artifact *models.Artifact        `json:"artifact,omitempty"`
	Notice   string                  `json:"notice,omitempty"`
	// Success is set by a successful generation and cleared by the next
	// edit, failed attempt or reset.
	Success bool `json:"success,omitempty"`
}

func New(id string) *Session {
	return &Session{ID: id, Errors: models.ValidationErrors{}}
}

// Edit stores a new value and drops that field's error only. Other errors
// stay until the next generation attempt.
func (s *Session) Edit(field models.Field, value string) error {
	if !s.Form.Set(field, value) {
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownField, field)
	}
	s.Success = false
	if s.Errors != nil {
		s.Errors.Clear(field)
	}
	return nil
}

// Generate re-validates the whole form and, when it is clean, replaces the
// artifact. A failed encode leaves any previous artifact in place and sets
// the notice.
func (s *Session) Generate(ctx context.Context, v Validator, g Generator) error {
	errs, ok := v.Validate(s.Form)
	s.Errors = errs
	s.Success = false
	if !ok {
		return apperrors.ErrInvalidForm
	}

	art, err := g.Generate(ctx, s.Form)
	if err != nil {
		s.Notice = NoticeGenerationFailed
		return errors.Join(apperrors.ErrGenerationFailed, err)
	}

	s.Artifact = art
	s.Notice = ""
	s.Success = true
	return nil
}

// Reset returns the session to its initial empty state.
func (s *Session) Reset() {
	s.Form = models.FormInput{}
	s.Errors = models.ValidationErrors{}
	s.Artifact = nil
	s.Notice = ""
	s.Success = false
}

func (s *Session) DismissNotice() {
	s.Notice = ""
}

func (s *Session) Download() (string, []byte, error) {
	if s.Artifact == nil {
		return "", nil, apperrors.ErrNoArtifact
	}
	return s.Artifact.Filename, s.Artifact.PNG, nil
}

func (s *Session) HasArtifact() bool {
	return s.Artifact != nil
}
