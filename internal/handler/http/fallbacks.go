package http

import "net/http"

// notFound replaces chi's plain-text 404 so unmatched paths answer with the
// standard JSON envelope.
func notFound(w http.ResponseWriter, r *http.Request) {
	respondErrorStatus(w, "resource not found", http.StatusNotFound)
}

// methodNotAllowed replaces chi's plain-text 405 for matched routes hit with
// an unregistered method.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondErrorStatus(w, "method not allowed", http.StatusMethodNotAllowed)
}
