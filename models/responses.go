package models

// Response is the JSON envelope returned by every API endpoint.
// Message is a stable, client-facing string; it never carries stack traces
// or driver-level detail.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`

	// User carries the sanitized user for auth and profile endpoints.
	User *User `json:"user,omitempty"`

	// Token carries the session JWT for register/login responses, in
	// addition to the HttpOnly cookie, so header-based clients work too.
	Token string `json:"token,omitempty"`

	// ResetToken is populated only in non-production mode when SMTP is not
	// configured, so the reset flow stays testable without a mail server.
	ResetToken string `json:"resetToken,omitempty"`
}

// ListUsersResponse is the envelope for the administrative user listing.
type ListUsersResponse struct {
	Success    bool   `json:"success"`
	Users      []User `json:"users"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
}

