package handlers

import (
	"net/http"

	"expense-tracker/internal/session"
)

// Mount registers every page route on mux. Login, registration and logout
// are public; everything else goes through RequireLogin, including paths and
// methods no route knows, which end in NotFound once logged in.
func (h *Handlers) Mount(mux *http.ServeMux) {
	mux.Handle("GET /login", h.Public(h.LoginForm))
	mux.Handle("POST /login", h.Public(h.Login))
	mux.Handle("GET /register", h.Public(h.RegisterForm))
	mux.Handle("POST /register", h.Public(h.Register))
	mux.Handle("GET /logout", h.Public(h.Logout))

	mux.Handle("GET /{$}", h.Protected(h.Index))
	mux.Handle("POST /add", h.Protected(h.AddExpense))
	mux.Handle("GET /edit/{id}", h.Protected(h.EditForm))
	mux.Handle("POST /edit/{id}", h.Protected(h.UpdateExpense))
	mux.Handle("POST /delete/{id}", h.Protected(h.DeleteExpense))
	mux.Handle("GET /export.csv", h.Protected(h.Export))
	mux.Handle("/", h.Protected(h.NotFound))
}

// NotFound answers any request no other route matched.
func (h *Handlers) NotFound(_ *http.Request, _ *session.Session) Result {
	return Status(http.StatusNotFound)
}
