// Package envelope writes the uniform JSON response wrapper used by every
// API endpoint:
//
//	{ "success": bool, "message"?: string, "data"?: any, "error"?: string }
//
// Error maps the apperr taxonomy onto status codes and keeps internal error
// text out of responses.
package envelope

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/edumanage/schoolsite/internal/app/system/apperr"
	"github.com/edumanage/schoolsite/internal/app/system/limits"
	"go.uber.org/zap"
)

// MaxBodyBytes bounds JSON request bodies.
const MaxBodyBytes = limits.MaxJSONBody

// GenericError is the only text a caller sees for unexpected failures.
const GenericError = "Internal server error"

// Envelope is the response wrapper.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// FieldProblem is the data payload of a validation failure.
type FieldProblem struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope with the given status.
func Fail(w http.ResponseWriter, status int, msg string, data any) {
	WriteJSON(w, status, Envelope{Success: false, Error: msg, Data: data})
}

// Error writes the failure envelope for err.
//
//	ValidationError -> 400 with {field, constraint}
//	NotFoundError   -> 404
//	anything else   -> 500, logged with op and fields
func Error(w http.ResponseWriter, log *zap.Logger, op string, err error, fields ...zap.Field) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		Fail(w, http.StatusBadRequest, ve.Error(), FieldProblem{Field: ve.Field, Constraint: ve.Constraint})
		return
	}
	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		Fail(w, http.StatusNotFound, notFoundMessage(nf), nil)
		return
	}

	if log != nil {
		log.Error(op+" failed", append(fields, zap.String("operation", op), zap.Error(err))...)
	}
	Fail(w, http.StatusInternalServerError, GenericError, nil)
}

func notFoundMessage(nf *apperr.NotFoundError) string {
	if nf.Entity == "" {
		return "Not found"
	}
	return strings.ToUpper(nf.Entity[:1]) + nf.Entity[1:] + " not found"
}

// DecodeJSON reads a JSON object from r.Body into dst. Unknown keys are
// rejected; malformed bodies become a validation error on field "body".
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("body", apperr.ConstraintRequired)
		}
		if name, ok := unknownField(err); ok {
			return apperr.Validation(name, apperr.ConstraintUnknownField)
		}
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) && te.Field != "" {
			return apperr.Validation(te.Field, apperr.ConstraintFormat)
		}
		return apperr.Validation("body", apperr.ConstraintFormat)
	}
	if dec.More() {
		return apperr.Validation("body", apperr.ConstraintFormat)
	}
	return nil
}

// unknownField extracts the key from encoding/json's
// `json: unknown field "x"` error.
func unknownField(err error) (string, bool) {
	const prefix = "json: unknown field "
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.Trim(strings.TrimPrefix(msg, prefix), `"`), true
}
