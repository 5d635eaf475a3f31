package http

import "net/http"

// setSessionCookie attaches the session JWT to the response as an HttpOnly
// cookie. In production the cookie is additionally marked Secure and
// SameSite=Strict; in non-production it stays SameSite=Lax so the API can be
// exercised over plain HTTP from local tooling.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	sameSite := http.SameSiteLaxMode
	if h.cfg.Production {
		sameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.cfg.TokenDuration,
		HttpOnly: true,
		Secure:   h.cfg.Production,
		SameSite: sameSite,
	})
}

// clearSessionCookie expires the session cookie. Logout is idempotent: the
// cookie is cleared whether or not the request carried a valid session.
func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	sameSite := http.SameSiteLaxMode
	if h.cfg.Production {
		sameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Production,
		SameSite: sameSite,
	})
}
