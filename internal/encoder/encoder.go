// Package encoder builds the student record carried by a QR code and
// renders it into an image.
package encoder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"ncfqr/internal/logger"
	"ncfqr/internal/models"
	apperrors "ncfqr/pkg/errors"
)

// TimestampLayout matches ISO-8601 with millisecond precision in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type Encoder struct {
	qr   QREncoder
	opts Options
	now  func() time.Time
	log  zerolog.Logger
}

type Option func(*Encoder)

func WithOptions(opts Options) Option {
	return func(e *Encoder) { e.opts = opts }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Encoder) { e.now = now }
}

func NewEncoder(qr QREncoder, options ...Option) *Encoder {
	e := &Encoder{
		qr:   qr,
		opts: DefaultOptions(),
		now:  time.Now,
		log:  logger.Get(),
	}
	for _, o := range options {
		o(e)
	}
	return e
}

// BuildRecord trims the input and stamps the fixed institution fields.
// The input is expected to have passed validation.
func BuildRecord(in models.FormInput, at time.Time) models.StudentRecord {
	in = in.Trimmed()
	return models.StudentRecord{
		Institution:       models.Institution,
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		CourseYearSection: in.CourseSection,
		StudentID:         in.StudentID,
		GeneratedAt:       at.UTC().Format(TimestampLayout),
		AcademicYear:      models.AcademicYear,
	}
}

func Serialize(rec models.StudentRecord) ([]byte, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize record: %w", err)
	}
	return data, nil
}

// Parse reads a serialized record back. Unknown keys are rejected.
func Parse(data []byte) (models.StudentRecord, error) {
	var rec models.StudentRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return models.StudentRecord{}, fmt.Errorf("failed to parse record: %w", err)
	}
	return rec, nil
}

// Generate builds the record for a validated form and renders it. Nothing
// is returned unless every step succeeds.
func (e *Encoder) Generate(ctx context.Context, in models.FormInput) (*models.Artifact, error) {
	rec := BuildRecord(in, e.now())

	payload, err := Serialize(rec)
	if err != nil {
		return nil, err
	}

	img, err := e.qr.Encode(ctx, string(payload), e.opts)
	if err != nil {
		e.log.Warn().Err(err).Str("student_id", rec.StudentID).Int("payload_bytes", len(payload)).Msg("QR encoding failed")
		return nil, err
	}
	if len(img) == 0 {
		return nil, apperrors.NewEncodingError(errors.New("encoder returned an empty image"))
	}

	e.log.Debug().Str("student_id", rec.StudentID).Int("png_bytes", len(img)).Msg("QR code generated")
	return &models.Artifact{
		Record:   rec,
		PNG:      img,
		Filename: models.QRFilename(rec.FirstName, rec.LastName),
	}, nil
}
