package misc

import (
	"net/http"
	"time"
)

func SetCookie(w http.ResponseWriter, domain, name, value string, secure bool, dur time.Duration) {
	cookie := &http.Cookie{
		Path:     "/",
		Domain:   domain,
		Name:     name,
		Value:    value,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if dur > 0 {
		cookie.Expires = time.Now().Add(dur)
	} else {
		cookie.MaxAge = -1
	}

	http.SetCookie(w, cookie)
}

func RefreshCookie(w http.ResponseWriter, r *http.Request, domain, name string, secure bool, dur time.Duration) {
	c, err := r.Cookie(name)
	if err != nil {
		return
	}
	SetCookie(w, domain, name, c.Value, secure, dur)
}

func GetCookie(r *http.Request, name string) string {
	if c, err := r.Cookie(name); err != nil {
		return ""
	} else {
		return c.Value
	}
}
