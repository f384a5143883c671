package handlers

import (
	"bytes"
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"expense-tracker/internal/dates"
	"expense-tracker/internal/logging"
	"expense-tracker/internal/models"
	"expense-tracker/internal/money"
	"expense-tracker/internal/session"

	"github.com/sirupsen/logrus"
)

// ExpenseStore is the expense persistence used by the handlers.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, e models.Expense) (*models.Expense, error)
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)
	UpdateExpense(ctx context.Context, e models.Expense) error
	DeleteExpense(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context, f models.Filter) ([]models.Expense, error)
	ListExpensesAscending(ctx context.Context, f models.Filter) ([]models.Expense, error)
	CategoryTotals(ctx context.Context, f models.Filter) ([]models.CategoryTotal, error)
	DailyTotals(ctx context.Context, f models.Filter) ([]models.DayTotal, error)
	SumTotal(ctx context.Context, f models.Filter) (float64, error)
}

// UserStore is the account persistence used by the handlers.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Store combines both stores; *storage.DB satisfies it.
type Store interface {
	ExpenseStore
	UserStore
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	store     Store
	sessions  *session.Manager
	templates fs.FS
	log       logrus.FieldLogger
	clock     dates.Clock
}

// NewHandlers creates a new Handlers instance. templates must contain
// base.html and one file per view.
func NewHandlers(store Store, sessions *session.Manager, templates fs.FS, logger logrus.FieldLogger) *Handlers {
	return &Handlers{
		store:     store,
		sessions:  sessions,
		templates: templates,
		log:       logger,
	}
}

// Public adapts fn to http.Handler without the login gate.
func (h *Handlers) Public(fn HandlerFunc) http.Handler {
	return h.serve(fn)
}

// Protected adapts fn to http.Handler behind RequireLogin.
func (h *Handlers) Protected(fn HandlerFunc) http.Handler {
	return h.serve(RequireLogin(fn))
}

// page is what every template receives.
type page struct {
	LoggedIn bool
	Flashes  []session.Flash
	Data     any
}

func (h *Handlers) serve(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(r.Context(), h.log)

		s, err := h.sessions.Load(r)
		if err != nil {
			log.WithError(err).Error("Failed to load session")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		res := fn(r, s)
		for _, f := range res.Flashes {
			s.AddFlash(f.Level, f.Message)
		}

		var body bytes.Buffer
		if res.View != "" {
			_, loggedIn := s.UserID()
			p := page{LoggedIn: loggedIn, Flashes: s.Flashes(), Data: res.Data}
			if err := h.render(&body, res.View, p); err != nil {
				log.WithError(err).WithField("view", res.View).Error("Template error")
				http.Error(w, "Template error", http.StatusInternalServerError)
				return
			}
			s.PopFlashes()
		}

		if err := h.sessions.Save(r.Context(), w, s); err != nil {
			log.WithError(err).Error("Failed to save session")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		switch {
		case res.Location != "":
			http.Redirect(w, r, res.Location, res.Status)
		case res.File != nil:
			w.Header().Set("Content-Type", res.File.ContentType)
			w.Header().Set("Content-Disposition", "attachment; filename="+res.File.Name)
			w.Header().Set("Content-Length", strconv.Itoa(len(res.File.Body)))
			w.WriteHeader(res.Status)
			_, _ = w.Write(res.File.Body)
		case res.View != "":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(res.Status)
			_, _ = body.WriteTo(w)
		default:
			http.Error(w, http.StatusText(res.Status), res.Status)
		}
	})
}

var funcs = template.FuncMap{
	"money": money.Format,
	"date":  dates.Format,
	"color": models.CategoryColor,
}

func (h *Handlers) render(buf *bytes.Buffer, viewName string, data any) error {
	tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(h.templates, "base.html", viewName)
	if err != nil {
		return err
	}
	return tmpl.ExecuteTemplate(buf, "base.html", data)
}

// internalError logs err and returns a 500 result.
func (h *Handlers) internalError(r *http.Request, msg string, err error) Result {
	logging.FromContext(r.Context(), h.log).WithError(err).Error(msg)
	return Status(http.StatusInternalServerError)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}
