package handlers

import (
	"expense-tracker/internal/dates"
	"expense-tracker/internal/models"
	"expense-tracker/internal/money"
)

// CategoryShare is a category with its spending statistics.
type CategoryShare struct {
	Category   string
	Total      float64
	Count      int
	Percentage float64
	Color      string
}

// ChartData feeds the pie and per-day charts.
type ChartData struct {
	CategoryLabels []string
	CategoryValues []float64
	CategoryColors []string
	DayLabels      []string
	DayValues      []float64
}

func categoryShares(totals []models.CategoryTotal) []CategoryShare {
	values := make([]float64, 0, len(totals))
	for _, ct := range totals {
		values = append(values, ct.Total)
	}
	total := money.Sum(values...)

	shares := make([]CategoryShare, 0, len(totals))
	for _, ct := range totals {
		percentage := 0.0
		if total > 0 {
			percentage = money.Round(ct.Total / total * 100)
		}
		shares = append(shares, CategoryShare{
			Category:   ct.Category,
			Total:      ct.Total,
			Count:      ct.Count,
			Percentage: percentage,
			Color:      models.CategoryColor(ct.Category),
		})
	}
	return shares
}

func chartData(byCategory []models.CategoryTotal, byDay []models.DayTotal) ChartData {
	c := ChartData{
		CategoryLabels: make([]string, 0, len(byCategory)),
		CategoryValues: make([]float64, 0, len(byCategory)),
		CategoryColors: make([]string, 0, len(byCategory)),
		DayLabels:      make([]string, 0, len(byDay)),
		DayValues:      make([]float64, 0, len(byDay)),
	}
	for _, ct := range byCategory {
		c.CategoryLabels = append(c.CategoryLabels, ct.Category)
		c.CategoryValues = append(c.CategoryValues, ct.Total)
		c.CategoryColors = append(c.CategoryColors, models.CategoryColor(ct.Category))
	}
	for _, dt := range byDay {
		c.DayLabels = append(c.DayLabels, dates.Format(dt.Date))
		c.DayValues = append(c.DayValues, dt.Total)
	}
	return c
}
