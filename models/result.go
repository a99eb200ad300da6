package models

// ImportRequest is the payload for POST /api/v1/import.
// Credentials arrive decrypted from the Credential Store; this core
// never persists them.
type ImportRequest struct {
	// Service is the service profile id (e.g. "identityiq"). Required.
	Service string `json:"service" binding:"required"`

	// Username and Password are the member credentials for the
	// monitoring site. Required.
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`

	// SSNLast4 answers the security-question challenge some sites
	// present after submission. Optional unless the site challenges.
	SSNLast4 string `json:"ssn_last4,omitempty"`

	// ClientID and ClientName are used only for artifact naming.
	ClientID   string `json:"client_id,omitempty"`
	ClientName string `json:"client_name,omitempty"`
}

// ImportResult is the outcome of one import attempt. It is built
// append-only during the attempt and never mutated afterwards. The
// caller always receives a result with an explicit success flag; no
// error escapes the top-level call.
type ImportResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	Service    string `json:"service"`
	ClientID   string `json:"client_id,omitempty"`
	ClientName string `json:"client_name,omitempty"`

	Report

	// Artifact paths persisted per successful run.
	HTMLPath       string `json:"html_path,omitempty"`
	SidecarPath    string `json:"sidecar_path,omitempty"`
	NetworkPath    string `json:"network_path,omitempty"`
	ScreenshotPath string `json:"screenshot_path,omitempty"`

	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`
}

// ReparseRequest is the payload for POST /api/v1/reparse.
// Exactly one of HTMLPath or HTML must be set. When a sidecar JSON
// exists beside the snapshot (or SidecarPath points at one), it is
// merged with the parsed data.
type ReparseRequest struct {
	HTMLPath    string `json:"html_path,omitempty"`
	HTML        string `json:"html,omitempty"`
	SidecarPath string `json:"sidecar_path,omitempty"`
}

// ReparseResponse is the response for POST /api/v1/reparse.
type ReparseResponse struct {
	Success   bool         `json:"success"`
	Report    *Report      `json:"report,omitempty"`
	Analytics *Analytics   `json:"analytics,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
}

// BatchRequest is the payload for POST /api/v1/batch. Imports run
// sequentially with a fixed inter-request delay (batching policy, not
// a core constraint).
type BatchRequest struct {
	Imports []ImportRequest `json:"imports" binding:"required,min=1"`

	// WebhookURL, when set, receives a signed batch.completed event.
	WebhookURL    string `json:"webhook_url,omitempty" binding:"omitempty,url"`
	WebhookSecret string `json:"webhook_secret,omitempty"`
}

// BatchResponse acknowledges an accepted batch job.
type BatchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// BatchJob tracks one in-flight or completed batch of imports.
type BatchJob struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"` // "processing", "completed"
	Total     int             `json:"total"`
	Completed int             `json:"completed"`
	Results   []*ImportResult `json:"results"`
	CreatedAt int64           `json:"created_at"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status        string `json:"status"` // "healthy" or "degraded"
	Uptime        string `json:"uptime"`
	ActiveImports int    `json:"active_imports"`
	Services      int    `json:"services"`
	Version       string `json:"version"`
}
