package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/Amaradona-max/football-serie-a/internal/usecase"
)

const (
	envelopeAPIVersion = "2.0"
	errorDomain        = "football-serie-a"
	internalMessage    = "internal server error"
)

// envelope follows the Google JSON style guide: data on success, error otherwise.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	ID         string     `json:"id,omitempty"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorMapping struct {
	target     error
	httpStatus int
	reason     string
	status     string
}

var errorMappings = []errorMapping{
	{target: usecase.ErrInvalidInput, httpStatus: http.StatusBadRequest, reason: "invalidInput", status: "INVALID_ARGUMENT"},
	{target: usecase.ErrNotFound, httpStatus: http.StatusNotFound, reason: "notFound", status: "NOT_FOUND"},
	{target: usecase.ErrUnauthorized, httpStatus: http.StatusUnauthorized, reason: "unauthorized", status: "UNAUTHENTICATED"},
	{target: usecase.ErrRateLimited, httpStatus: http.StatusTooManyRequests, reason: "rateLimitExceeded", status: "RESOURCE_EXHAUSTED"},
	{target: usecase.ErrDependencyUnavailable, httpStatus: http.StatusServiceUnavailable, reason: "dependencyUnavailable", status: "UNAVAILABLE"},
}

var internalMapping = errorMapping{httpStatus: http.StatusInternalServerError, reason: "internalError", status: "INTERNAL"}

func mapError(err error) errorMapping {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m
		}
	}
	return internalMapping
}

// writeJSON encodes into a pooled buffer first so an encoding failure can
// still produce a clean 500 instead of a truncated body.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_, _ = buf.WriteString(`{"apiVersion":"` + envelopeAPIVersion + `","error":{"code":500,"message":"` + internalMessage + `","status":"INTERNAL"}}` + "\n")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{
		APIVersion: envelopeAPIVersion,
		ID:         requestIDFromContext(ctx),
		Data:       data,
	})
}

// writeError maps err onto a status code. Unmapped errors are reported as a
// generic 500 so driver or upstream details never reach clients.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	message := internalMessage
	if mapped.httpStatus != http.StatusInternalServerError {
		message = err.Error()
	}

	writeJSON(w, mapped.httpStatus, envelope{
		APIVersion: envelopeAPIVersion,
		ID:         requestIDFromContext(ctx),
		Error: &errorBody{
			Code:    mapped.httpStatus,
			Message: message,
			Status:  mapped.status,
			Errors: []errorItem{{
				Domain:  errorDomain,
				Reason:  mapped.reason,
				Message: message,
			}},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New(internalMessage))
}
