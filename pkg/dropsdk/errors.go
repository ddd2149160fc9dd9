package dropsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/oatfile/filedrop/pkg/httpx"
)

// Error codes returned by the API.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUnauthenticated    = "unauthenticated"
	ErrorCodeUserNotFound       = "user_not_found"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeStorageConflict    = "storage_conflict"
	ErrorCodeStorageError       = "storage_error"
	ErrorCodeServerError        = "server_error"
)

// APIError represents an error response from the service. It implements the
// error interface and is used both by the server (to write HTTP responses)
// and by the SDK client (to represent failures).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "invalid_credentials")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidRequest is returned when the request is missing a required
	// parameter or is otherwise malformed.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidCredentials is returned on login failure. Unknown username,
	// wrong password, and disabled account are deliberately indistinguishable.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid username or password",
	}

	// ErrUnauthenticated is returned when the bearer token is missing,
	// malformed, expired, or mis-signed.
	ErrUnauthenticated = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthenticated,
		Description: "the access token is missing, invalid or expired",
	}

	// ErrUserNotFound is returned when a valid token names a subject that no
	// longer resolves to a known user.
	ErrUserNotFound = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUserNotFound,
		Description: "token subject is not a known user",
	}

	// ErrFileNotFound is returned when the requested file id has no record.
	ErrFileNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "file not found",
	}

	// ErrMissingFilePart is returned when the multipart upload lacks a
	// "file" part.
	ErrMissingFilePart = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "multipart form must contain a 'file' part",
	}

	// ErrStorageConflict is returned when a generated file id collides with
	// an existing blob. Ids are random per upload, so hitting this in
	// practice means the content root or catalog is inconsistent.
	ErrStorageConflict = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeStorageConflict,
		Description: "file id already exists",
	}

	// ErrStorage is returned when persisting the uploaded bytes or their
	// metadata fails.
	ErrStorage = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeStorageError,
		Description: "failed to store file",
	}

	// ErrServerError is returned for unexpected internal failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse turns a non-2xx HTTP response into a typed error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
