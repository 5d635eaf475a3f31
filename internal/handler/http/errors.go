package http

import "errors"

var (
	ErrNotAuthenticated = errors.New("authentication required")
	ErrForbidden        = errors.New("admin access required")
	ErrBadRequest       = errors.New("invalid request body")
	ErrInternal         = errors.New("internal server error")
)
