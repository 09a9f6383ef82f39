package utils

import (
	"encoding/json"
	"net/http"
	"os"

	"staynest-bend/models"
)

// Response represents a generic response
type Response struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Fields  []string    `json:"fields,omitempty"`
}

// RespondWithError sends an error response
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, Response{
		Status: "error",
		Code:   code,
		Error:  msg,
	})
}

// RespondWithOk response
func RespondWithOk(w http.ResponseWriter, msg string) {
	RespondWithJSON(w, http.StatusOK, Response{
		Status:  "success",
		Code:    http.StatusOK,
		Message: msg,
	})
}

// RespondWithServiceError translates a service error: request errors map to
// their own status and surface the offending fields, everything else is an
// opaque 500. Error detail is only attached outside production.
func RespondWithServiceError(w http.ResponseWriter, err error) {
	if reqErr, ok := models.AsRequestError(err); ok {
		RespondWithJSON(w, reqErr.Status(), Response{
			Status: "error",
			Code:   reqErr.Status(),
			Error:  reqErr.Message,
			Fields: reqErr.Fields,
		})
		return
	}

	msg := "An Error occurred while processing request"
	if os.Getenv("ENV") == "dev" {
		msg = err.Error()
	}
	RespondWithError(w, http.StatusInternalServerError, msg)
}

// RespondWithJSON writes a payload with a status code
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
