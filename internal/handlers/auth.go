package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/lilybakes/ovenbook/internal/middleware"
	"github.com/lilybakes/ovenbook/internal/services/auth"
)

// Home redirects to the dashboard or login page
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.redirect(w, r, "/dashboard")
}

// LoginPage renders the login page
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r); user != nil {
		h.redirect(w, r, "/dashboard")
		return
	}

	data := map[string]interface{}{
		"Title": "Login - Ovenbook",
		"Error": r.URL.Query().Get("error"),
	}
	h.render(w, "login.html", data)
}

// Login handles login form submission
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirect(w, r, "/login?error=Invalid+request")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.redirect(w, r, "/login?error=Email+and+password+required")
		return
	}

	result, err := h.authService.Login(auth.LoginInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		h.redirect(w, r, "/login?error=Invalid+credentials")
		return
	}

	h.setSessionCookie(w, result.Token, result.Expires)
	h.redirect(w, r, "/dashboard")
}

// RegisterPage renders the registration page
func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r); user != nil {
		h.redirect(w, r, "/dashboard")
		return
	}

	data := map[string]interface{}{
		"Title": "Register - Ovenbook",
		"Error": r.URL.Query().Get("error"),
	}
	h.render(w, "register.html", data)
}

// Register handles registration form submission
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirect(w, r, "/register?error=Invalid+request")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	businessName := strings.TrimSpace(r.FormValue("business_name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	confirmPassword := r.FormValue("confirm_password")

	if name == "" || email == "" || password == "" {
		h.redirect(w, r, "/register?error=All+fields+required")
		return
	}

	if len(password) < 8 {
		h.redirect(w, r, "/register?error=Password+must+be+at+least+8+characters")
		return
	}

	if password != confirmPassword {
		h.redirect(w, r, "/register?error=Passwords+do+not+match")
		return
	}

	user, err := h.authService.Register(auth.RegisterInput{
		Email:        email,
		Password:     password,
		Name:         name,
		BusinessName: businessName,
	})
	if err != nil {
		if err == auth.ErrEmailExists {
			h.redirect(w, r, "/register?error=Email+already+registered")
			return
		}
		h.redirect(w, r, "/register?error=Registration+failed")
		return
	}

	// Auto-login after registration
	result, err := h.authService.Login(auth.LoginInput{
		Email:    user.Email,
		Password: password,
	})
	if err != nil {
		h.redirect(w, r, "/login?error=Registration+successful,+please+login")
		return
	}

	h.setSessionCookie(w, result.Token, result.Expires)
	h.redirect(w, r, "/dashboard")
}

// Logout handles user logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r); user != nil {
		h.authService.Logout(user.ID)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})

	h.redirect(w, r, "/login")
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}
