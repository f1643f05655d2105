package controller

import (
	"log/slog"
	"net/http"

	"climate-server/internal/utils"
)

// internalError logs err against the request and answers 500.
func internalError(w http.ResponseWriter, r *http.Request, what string, err error) {
	slog.ErrorContext(r.Context(), what+" failed",
		"path", r.URL.Path,
		"error", err,
	)
	utils.WriteError(w, http.StatusInternalServerError, err.Error())
}

// baseURL is the scheme and host the request arrived on, used for the
// welcome page example links.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
