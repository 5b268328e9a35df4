package http

import (
	"encoding/json"
	"net/http"
)

// Envelope is the standard JSON response shape.
// 2xx responses carry status "success", 4xx "fail", 5xx "error".
type Envelope struct {
	Status  string         `json:"status"`
	Token   string         `json:"token,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
	Detail  string         `json:"error,omitempty"` // development mode only
}

func write(w http.ResponseWriter, statusCode int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	// Encoding errors are not recoverable at this point; never expose them.
	_ = json.NewEncoder(w).Encode(env)
}

// StatusWord maps an HTTP status code onto the envelope status field.
func StatusWord(statusCode int) string {
	switch {
	case statusCode < 400:
		return "success"
	case statusCode < 500:
		return "fail"
	default:
		return "error"
	}
}

// WriteData writes a success envelope carrying a data payload.
func WriteData(w http.ResponseWriter, statusCode int, data map[string]any) {
	write(w, statusCode, Envelope{Status: "success", Data: data})
}

// WriteToken writes a success envelope carrying a bearer token and a data payload.
func WriteToken(w http.ResponseWriter, statusCode int, token string, data map[string]any) {
	write(w, statusCode, Envelope{Status: "success", Token: token, Data: data})
}

// WriteMessage writes a success envelope carrying only a message.
func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	write(w, statusCode, Envelope{Status: "success", Message: message})
}

// WriteFail writes an operational failure with a client-safe message.
func WriteFail(w http.ResponseWriter, statusCode int, message string) {
	write(w, statusCode, Envelope{Status: StatusWord(statusCode), Message: message})
}

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteFail(w, http.StatusBadRequest, message)
}

func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteFail(w, http.StatusUnauthorized, message)
}

func WriteForbidden(w http.ResponseWriter, message string) {
	WriteFail(w, http.StatusForbidden, message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteFail(w, http.StatusNotFound, message)
}

// WriteUnexpected writes a 500 for a non-operational error. In development
// mode the underlying error text is included; in production only a generic
// message goes to the client and the detail stays in server logs.
func WriteUnexpected(w http.ResponseWriter, env string, err error) {
	resp := Envelope{Status: "error", Message: "Something went very wrong!"}
	if env == "development" && err != nil {
		resp.Detail = err.Error()
	}
	write(w, http.StatusInternalServerError, resp)
}
