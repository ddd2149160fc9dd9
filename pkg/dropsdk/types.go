package dropsdk

import "time"

// TokenResponse is the success body of POST /login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // always "bearer"
}

// UserResponse is the success body of GET /users/me. Password material is
// never included.
type UserResponse struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Disabled bool   `json:"disabled"`
}

// UploadResponse is the success body of POST /upload.
type UploadResponse struct {
	Message    string `json:"message"`
	FileID     string `json:"file_id"`
	Filename   string `json:"filename"`
	UploadedBy string `json:"uploaded_by"`
}

// FileSummary describes one uploaded file in GET /get_files.
type FileSummary struct {
	FileID     string    `json:"file_id"`
	Filename   string    `json:"filename"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
	Size       int64     `json:"size"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// HealthResponse is returned by the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
	Storage  string `json:"storage"`
}

// IndexResponse describes the API on GET /.
type IndexResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}
