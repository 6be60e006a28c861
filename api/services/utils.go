package services

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/EO-DataHub/eodhp-user-services/models"
)

// UserIDVar is the route variable holding the user ID.
const UserIDVar = "user-id"

func WriteResponse(w http.ResponseWriter, statusCode int, response interface{}, location ...string) {

	w.Header().Set("Content-Type", "application/json")

	// We don't want to cache API responses so the client receives most curent data
	w.Header().Set("Cache-Control", "max-age=0")

	// Conditionally set the Location header if provided
	if len(location) > 0 && location[0] != "" {
		w.Header().Set("Location", location[0])
	}

	w.WriteHeader(statusCode)

	if response != nil {
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
	}
}

// WriteNoContent sends an empty 204 response.
func WriteNoContent(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "max-age=0")
	w.WriteHeader(http.StatusNoContent)
}

// HandleErrResponse writes err as a JSON message body.
func HandleErrResponse(w http.ResponseWriter, statusCode int, err error) {
	WriteResponse(w, statusCode, models.Message{Message: err.Error()})
}

// decodeUserRequest reads the request body. An empty body is treated as an
// empty object so every field ends up null. Anything after the first JSON
// value is rejected.
func decodeUserRequest(r *http.Request) (models.UserRequest, error) {
	var payload models.UserRequest
	if r.Body == nil {
		return payload, nil
	}
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return payload, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, err
	}
	return payload, nil
}
