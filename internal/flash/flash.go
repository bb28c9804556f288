// Package flash carries one-shot user notices between handlers and templates.
package flash

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

// Action names what a handler attempted.
type Action string

const (
	ActionCreate Action = "listed"
	ActionUpdate Action = "updated"
	ActionDelete Action = "deleted"
)

const cookieName = "fyyur_flash"

// Outcome records the result of a mutation. It becomes text only when rendered.
type Outcome struct {
	Entity string
	Action Action
	Name   string
	Err    error
}

// Failed reports whether the outcome describes an error.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

func (o Outcome) String() string {
	subject := o.Entity
	if o.Name != "" {
		subject += " " + o.Name
	}
	if o.Err != nil {
		return "An error occurred. " + subject + " could not be " + string(o.Action) + "."
	}
	return subject + " was successfully " + string(o.Action) + "!"
}

// Set stores the outcome text in a short-lived cookie so it survives a redirect.
func Set(w http.ResponseWriter, o Outcome) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(o.String())),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Take returns any pending messages and clears the cookie.
func Take(w http.ResponseWriter, r *http.Request) []string {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	msg := strings.TrimSpace(string(decoded))
	if msg == "" {
		return nil
	}
	return []string{msg}
}
