package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/rs/zerolog"

	"ncfqr/internal/encoder"
	"ncfqr/internal/logger"
	"ncfqr/internal/middleware"
	"ncfqr/internal/models"
	"ncfqr/internal/presentation"
	"ncfqr/internal/session"
	"ncfqr/internal/validator"
	apperrors "ncfqr/pkg/errors"
)

type Handler struct {
	sessions  *session.Manager
	validator *validator.Validator
	encoder   *encoder.Encoder
	log       zerolog.Logger
}

func NewHandler(sessions *session.Manager, v *validator.Validator, enc *encoder.Encoder) *Handler {
	return &Handler{
		sessions:  sessions,
		validator: v,
		encoder:   enc,
		log:       logger.Get(),
	}
}

// GET /api/v1/catalog
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSONResp(w, http.StatusOK, map[string]any{"course_year_sections": models.Catalog})
}

// POST /api/v1/qrcode
// Body is a FormInput. Nothing is kept after the response.
func (h *Handler) GenerateQRCode(w http.ResponseWriter, r *http.Request) {
	var in models.FormInput
	if !decodeBody(w, r, &in) {
		return
	}

	if errs, ok := h.validator.Validate(in); !ok {
		for _, err := range validator.FieldErrors(in, errs) {
			h.log.Debug().Err(err).Msg("Rejected field")
		}
		writeJSONResp(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return
	}

	art, err := h.encoder.Generate(r.Context(), in)
	if err != nil {
		h.log.Error().Err(err).Msg("QR generation failed")
		writeJSONResp(w, http.StatusBadGateway, map[string]any{"error": apperrors.ErrGenerationFailed.Error()})
		return
	}
	writeJSONResp(w, http.StatusOK, newArtifactResp(art))
}

type sessionResp struct {
	Form        models.FormInput        `json:"form"`
	Errors      models.ValidationErrors `json:"errors"`
	HasArtifact bool                    `json:"has_artifact"`
	Artifact    *artifactResp           `json:"artifact,omitempty"`
	Notice      string                  `json:"notice,omitempty"`
	Success     bool                    `json:"success"`
	Completed   []models.Field          `json:"completed"`
	Layout      presentation.Layout     `json:"layout"`
}

func (h *Handler) writeSession(w http.ResponseWriter, r *http.Request, status int, s *session.Session) {
	writeJSONResp(w, status, sessionResp{
		Form:        s.Form,
		Errors:      s.Errors,
		HasArtifact: s.HasArtifact(),
		Artifact:    newArtifactResp(s.Artifact),
		Notice:      s.Notice,
		Success:     s.Success,
		Completed:   s.Form.Filled(),
		Layout:      presentation.LayoutFor(presentation.ViewportWidth(r)),
	})
}

func (h *Handler) storeFailure(w http.ResponseWriter, err error) {
	h.log.Error().Err(err).Msg("Session store failure")
	writeJSONResp(w, http.StatusInternalServerError, map[string]any{"error": "session unavailable"})
}

// GET /api/v1/session
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		h.storeFailure(w, err)
		return
	}
	h.writeSession(w, r, http.StatusOK, s)
}

type editFieldReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// PATCH /api/v1/session/fields
func (h *Handler) EditField(w http.ResponseWriter, r *http.Request) {
	var req editFieldReq
	if !decodeBody(w, r, &req) {
		return
	}
	field, ok := models.ParseField(req.Field)
	if !ok {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{
			"error":    fmt.Sprintf("%s: %q", apperrors.ErrUnknownField, req.Field),
			"expected": models.Fields,
		})
		return
	}

	s, err := h.sessions.Edit(r.Context(), middleware.SessionID(r.Context()), field, req.Value)
	if err != nil {
		h.storeFailure(w, err)
		return
	}
	h.writeSession(w, r, http.StatusOK, s)
}

// POST /api/v1/session/generate
func (h *Handler) GenerateSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Generate(r.Context(), middleware.SessionID(r.Context()))
	switch {
	case err == nil:
		h.writeSession(w, r, http.StatusOK, s)
	case errors.Is(err, apperrors.ErrInvalidForm):
		h.writeSession(w, r, http.StatusUnprocessableEntity, s)
	case errors.Is(err, apperrors.ErrGenerationFailed):
		h.writeSession(w, r, http.StatusBadGateway, s)
	default:
		h.storeFailure(w, err)
	}
}

// POST /api/v1/session/reset
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Reset(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		h.storeFailure(w, err)
		return
	}
	h.writeSession(w, r, http.StatusOK, s)
}

// DELETE /api/v1/session/notice
func (h *Handler) DismissNotice(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.DismissNotice(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		h.storeFailure(w, err)
		return
	}
	h.writeSession(w, r, http.StatusOK, s)
}

// GET /api/v1/session/qrcode
func (h *Handler) DownloadQRCode(w http.ResponseWriter, r *http.Request) {
	name, png, err := h.sessions.Download(r.Context(), middleware.SessionID(r.Context()))
	if errors.Is(err, apperrors.ErrNoArtifact) {
		writeJSONResp(w, http.StatusNotFound, map[string]any{"error": err.Error()})
		return
	}
	if err != nil {
		h.storeFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
