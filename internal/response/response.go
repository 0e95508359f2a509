// Package response provides shared JSON response helpers for HTTP handlers.
package response

import (
	"net/http"

	"github.com/go-chi/render"
)

// Envelope status values.
const (
	StatusSuccess = "Success"
	StatusError   = "Error"
)

// Envelope is the standard API response envelope.
type Envelope struct {
	Message string `json:"message" example:"Files found"`
	Status  string `json:"status"  example:"Success"`
	Data    any    `json:"data"`
}

// JSON writes a JSON-encoded payload with the given HTTP status code.
func JSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	render.Status(r, status)
	render.JSON(w, r, payload)
}

// Success writes a 200 envelope carrying message and data.
func Success(w http.ResponseWriter, r *http.Request, message string, data any) {
	JSON(w, r, http.StatusOK, Envelope{Message: message, Status: StatusSuccess, Data: data})
}

// Error writes an error envelope with the given status and message.
func Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	JSON(w, r, status, Envelope{Message: message, Status: StatusError})
}

// BadRequest writes a 400 response.
func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	Error(w, r, http.StatusBadRequest, "Bad Request. "+message)
}

// Unauthorized writes a 401 response.
func Unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	Error(w, r, http.StatusUnauthorized, message)
}

// Forbidden writes a 403 response.
func Forbidden(w http.ResponseWriter, r *http.Request, message string) {
	Error(w, r, http.StatusForbidden, message)
}

// NotFound writes a 404 response.
func NotFound(w http.ResponseWriter, r *http.Request, message string) {
	Error(w, r, http.StatusNotFound, message)
}

// InternalError writes a 500 response.
func InternalError(w http.ResponseWriter, r *http.Request, message string) {
	Error(w, r, http.StatusInternalServerError, "Exception occurred. "+message)
}
