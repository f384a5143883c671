package models

import "time"

// Expense represents a single dated spending record.
type Expense struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"created_date"`
}

// User represents a user account.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Filter narrows expense queries. Every field is optional and the
// conditions that are set are combined with AND.
type Filter struct {
	Start    *time.Time
	End      *time.Time
	Category string
}

// IsZero reports whether the filter matches every expense.
func (f Filter) IsZero() bool {
	return f.Start == nil && f.End == nil && f.Category == ""
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// DayTotal is the summed amount of one calendar day.
type DayTotal struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
}

// Session is the persisted state of one browser session.
type Session struct {
	Token        string    `json:"token"`
	UserID       int64     `json:"user_id"` // 0 when nobody is logged in
	Data         string    `json:"-"`       // encoded flash queue
	ExpiresAt    time.Time `json:"expires_at"`
	LastActivity time.Time `json:"last_activity"`
}
