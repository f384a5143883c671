package handlers

import (
	"net/http"
	"strings"

	"expense-tracker/internal/dates"
	"expense-tracker/internal/models"
)

// filterQuery is the filter as typed by the user plus its parsed form.
type filterQuery struct {
	Start    string
	End      string
	Category string
	Filter   models.Filter
	// Inverted is set when both bounds parsed but start was after end.
	// Both bounds are then dropped from Filter.
	Inverted bool
}

func parseFilter(r *http.Request) filterQuery {
	q := r.URL.Query()
	fq := filterQuery{
		Start:    strings.TrimSpace(q.Get("start")),
		End:      strings.TrimSpace(q.Get("end")),
		Category: strings.TrimSpace(q.Get("category")),
	}
	fq.Filter = models.Filter{
		Start:    dates.ParsePtr(fq.Start),
		End:      dates.ParsePtr(fq.End),
		Category: fq.Category,
	}
	if fq.Filter.Start != nil && fq.Filter.End != nil && fq.Filter.Start.After(*fq.Filter.End) {
		fq.Filter.Start = nil
		fq.Filter.End = nil
		fq.Inverted = true
	}
	return fq
}
