package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"expense-tracker/internal/dates"
	"expense-tracker/internal/models"
	"expense-tracker/internal/money"
	"expense-tracker/internal/session"
)

const csvHeader = "date, description, category, amount"

// Export downloads the filtered expenses as CSV, oldest first.
func (h *Handlers) Export(r *http.Request, _ *session.Session) Result {
	fq := parseFilter(r)

	expenses, err := h.store.ListExpensesAscending(r.Context(), fq.Filter)
	if err != nil {
		return h.internalError(r, "ListExpensesAscending error", err)
	}

	return Download(File{
		Name:        exportFilename(fq.Filter),
		ContentType: "text/csv",
		Body:        []byte(encodeCSV(expenses)),
	})
}

// encodeCSV writes comma-space separated lines with the amount fixed to two
// decimals and followed by a space. No trailing newline.
func encodeCSV(expenses []models.Expense) string {
	lines := make([]string, 0, len(expenses)+1)
	lines = append(lines, csvHeader)
	for _, e := range expenses {
		lines = append(lines, fmt.Sprintf("%s, %s, %s, %s ",
			dates.Format(e.Date), e.Description, e.Category, money.Format(e.Amount)))
	}
	return strings.Join(lines, "\n")
}

func exportFilename(f models.Filter) string {
	return fmt.Sprintf("expenses_%s_to_%s.csv", boundName(f.Start), boundName(f.End))
}

func boundName(t *time.Time) string {
	if t == nil {
		return "all"
	}
	return dates.Format(*t)
}
