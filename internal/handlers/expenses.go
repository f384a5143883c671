package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"expense-tracker/internal/dates"
	"expense-tracker/internal/models"
	"expense-tracker/internal/money"
	"expense-tracker/internal/session"
	"expense-tracker/internal/storage"
)

const (
	ViewTable = "table"
	ViewChart = "chart"
)

// IndexViewModel is the data passed to the home page template.
type IndexViewModel struct {
	Expenses   []models.Expense
	Total      float64
	Shares     []CategoryShare
	Chart      ChartData
	Categories []models.CategoryDef
	Category   string
	Start      string
	End        string
	Today      string
	View       string
}

// EditViewModel is the data passed to the edit form template.
type EditViewModel struct {
	Expense    *models.Expense
	Date       string
	Categories []models.CategoryDef
}

// Index renders the filtered expense list with its aggregates.
func (h *Handlers) Index(r *http.Request, _ *session.Session) Result {
	ctx := r.Context()
	fq := parseFilter(r)

	expenses, err := h.store.ListExpenses(ctx, fq.Filter)
	if err != nil {
		return h.internalError(r, "ListExpenses error", err)
	}
	total, err := h.store.SumTotal(ctx, fq.Filter)
	if err != nil {
		return h.internalError(r, "SumTotal error", err)
	}
	byCategory, err := h.store.CategoryTotals(ctx, fq.Filter)
	if err != nil {
		return h.internalError(r, "CategoryTotals error", err)
	}
	byDay, err := h.store.DailyTotals(ctx, fq.Filter)
	if err != nil {
		return h.internalError(r, "DailyTotals error", err)
	}

	view := strings.TrimSpace(r.URL.Query().Get("view"))
	if view != ViewChart {
		view = ViewTable
	}

	res := Render("index.html", IndexViewModel{
		Expenses:   expenses,
		Total:      total,
		Shares:     categoryShares(byCategory),
		Chart:      chartData(byCategory, byDay),
		Categories: models.Categories,
		Category:   fq.Category,
		Start:      fq.Start,
		End:        fq.End,
		Today:      dates.Format(h.clock.Today()),
		View:       view,
	})
	if fq.Inverted {
		res = res.Flash(session.LevelWarning, "End date cannot be before start date")
	}
	return res
}

// AddExpense creates an expense. Missing fields reject the submission; an
// unusable amount or date is replaced by 0 or today and reported, and the
// record is still inserted.
func (h *Handlers) AddExpense(r *http.Request, _ *session.Session) Result {
	description := strings.TrimSpace(r.PostFormValue("description"))
	amountStr := strings.TrimSpace(r.PostFormValue("amount"))
	category := strings.TrimSpace(r.PostFormValue("category"))
	dateStr := strings.TrimSpace(r.PostFormValue("date"))

	res := Redirect("/")
	if description == "" || amountStr == "" || category == "" || dateStr == "" {
		return res.Flash(session.LevelError, "Input valid data")
	}

	amount, err := money.Parse(amountStr)
	if err != nil || amount < 0 {
		res = res.Flash(session.LevelError, "Not valid amount used")
		amount = 0
	}

	date, ok := dates.Parse(dateStr)
	if !ok {
		res = res.Flash(session.LevelError, "Date error, input valid date")
		date = h.clock.Today()
	}

	if _, err := h.store.CreateExpense(r.Context(), models.Expense{
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
	}); err != nil {
		return h.internalError(r, "CreateExpense error", err)
	}
	return res.Flash(session.LevelSuccess, "Expense added")
}

// EditForm renders the form for one expense.
func (h *Handlers) EditForm(r *http.Request, _ *session.Session) Result {
	expense, res, ok := h.lookup(r)
	if !ok {
		return res
	}
	return Render("edit.html", EditViewModel{
		Expense:    expense,
		Date:       dates.Format(expense.Date),
		Categories: models.Categories,
	})
}

// UpdateExpense applies the edit form. Every field is required and the
// amount must be positive; failures go back to the form.
func (h *Handlers) UpdateExpense(r *http.Request, _ *session.Session) Result {
	expense, res, ok := h.lookup(r)
	if !ok {
		return res
	}
	back := Redirect("/edit/" + strconv.FormatInt(expense.ID, 10))

	description := strings.TrimSpace(r.PostFormValue("description"))
	amountStr := strings.TrimSpace(r.PostFormValue("amount"))
	category := strings.TrimSpace(r.PostFormValue("category"))
	dateStr := strings.TrimSpace(r.PostFormValue("date"))

	if description == "" || amountStr == "" || category == "" || dateStr == "" {
		return back.Flash(session.LevelError, "All fields are required")
	}

	amount, err := money.Parse(amountStr)
	if err != nil || amount <= 0 {
		return back.Flash(session.LevelError, "Invalid amount")
	}

	date, ok := dates.Parse(dateStr)
	if !ok {
		date = h.clock.Today()
	}

	expense.Description = description
	expense.Amount = amount
	expense.Category = category
	expense.Date = date
	if err := h.store.UpdateExpense(r.Context(), *expense); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Status(http.StatusNotFound)
		}
		return h.internalError(r, "UpdateExpense error", err)
	}
	return Redirect("/").Flash(session.LevelSuccess, "Expense updated")
}

// DeleteExpense removes one expense.
func (h *Handlers) DeleteExpense(r *http.Request, _ *session.Session) Result {
	id, ok := pathID(r)
	if !ok {
		return Status(http.StatusNotFound)
	}
	if err := h.store.DeleteExpense(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Status(http.StatusNotFound)
		}
		return h.internalError(r, "DeleteExpense error", err)
	}
	return Redirect("/").Flash(session.LevelSuccess, "Expense deleted")
}

// lookup loads the expense named by the path id. When ok is false, res is
// the response to return instead.
func (h *Handlers) lookup(r *http.Request) (expense *models.Expense, res Result, ok bool) {
	id, ok := pathID(r)
	if !ok {
		return nil, Status(http.StatusNotFound), false
	}
	expense, err := h.store.GetExpense(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, Status(http.StatusNotFound), false
	}
	if err != nil {
		return nil, h.internalError(r, "GetExpense error", err), false
	}
	return expense, Result{}, true
}
