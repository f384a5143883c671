package handlers

import (
	"net/http"

	"expense-tracker/internal/session"
)

// File is a download returned by a handler.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Result describes the response a handler wants written. Exactly one of
// View, Location or File is set; otherwise Status alone is written.
type Result struct {
	Status   int
	View     string
	Data     any
	Location string
	File     *File
	Flashes  []session.Flash
}

// HandlerFunc handles one request against an explicit session.
type HandlerFunc func(r *http.Request, s *session.Session) Result

// Render renders view with data.
func Render(view string, data any) Result {
	return Result{Status: http.StatusOK, View: view, Data: data}
}

// Redirect sends a 302 to location.
func Redirect(location string) Result {
	return Result{Status: http.StatusFound, Location: location}
}

// Download sends f as an attachment.
func Download(f File) Result {
	return Result{Status: http.StatusOK, File: &f}
}

// Status writes a bare status page.
func Status(code int) Result {
	return Result{Status: code}
}

// Flash appends a flash message to the result.
func (res Result) Flash(level session.Level, message string) Result {
	res.Flashes = append(res.Flashes, session.Flash{Level: level, Message: message})
	return res
}

// RequireLogin short-circuits to the login page when the session has no
// user. next is not called in that case.
func RequireLogin(next HandlerFunc) HandlerFunc {
	return func(r *http.Request, s *session.Session) Result {
		if _, ok := s.UserID(); !ok {
			return Redirect("/login")
		}
		return next(r, s)
	}
}
