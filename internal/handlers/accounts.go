package handlers

import (
	"errors"
	"net/http"
	"strings"

	"expense-tracker/internal/auth"
	"expense-tracker/internal/session"
	"expense-tracker/internal/storage"
)

// RegisterForm renders the registration page.
func (h *Handlers) RegisterForm(_ *http.Request, _ *session.Session) Result {
	return Render("register.html", nil)
}

// Register creates an account from the registration form.
func (h *Handlers) Register(r *http.Request, _ *session.Session) Result {
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("password1")

	back := Redirect("/register")
	if email == "" || password == "" {
		return back.Flash(session.LevelError, "Email and password are required")
	}

	_, err := h.store.GetUserByEmail(r.Context(), email)
	switch {
	case err == nil:
		return back.Flash(session.LevelError, "Email already registered")
	case !errors.Is(err, storage.ErrNotFound):
		return h.internalError(r, "GetUserByEmail error", err)
	}

	if password != confirm {
		return back.Flash(session.LevelError, "Passwords do not match")
	}

	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return back.Flash(session.LevelError, "Password must be at most 72 bytes")
	}
	if err != nil {
		return h.internalError(r, "Failed to hash password", err)
	}
	if _, err := h.store.CreateUser(r.Context(), email, hash); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return back.Flash(session.LevelError, "Email already registered")
		}
		return h.internalError(r, "CreateUser error", err)
	}
	return Redirect("/login").Flash(session.LevelSuccess, "Account created successfully")
}

// LoginForm renders the login page, or goes home when already logged in.
func (h *Handlers) LoginForm(_ *http.Request, s *session.Session) Result {
	if _, ok := s.UserID(); ok {
		return Redirect("/")
	}
	return Render("login.html", nil)
}

// Login handles the login form submission.
func (h *Handlers) Login(r *http.Request, s *session.Session) Result {
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	user, err := h.store.GetUserByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return h.internalError(r, "GetUserByEmail error", err)
	}
	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		return Redirect("/login").Flash(session.LevelError, "Invalid email or password")
	}

	s.SetUserID(user.ID)
	return Redirect("/").Flash(session.LevelSuccess, "Logged in successfully")
}

// Logout clears the whole session.
func (h *Handlers) Logout(_ *http.Request, s *session.Session) Result {
	s.Clear()
	return Redirect("/login").Flash(session.LevelInfo, "Logged out")
}
