package entity

import "time"

// DateLayout is the calendar-date form accepted for publishedDate besides RFC 3339
const DateLayout = "2006-01-02"

// Book is a catalog entry
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	Rating        float64   `json:"rating"`
	PublishedDate time.Time `json:"publishedDate"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BookPatch is a partial update; nil fields are left untouched.
type BookPatch struct {
	Title         *string
	Author        *string
	Category      *string
	Price         *float64
	Rating        *float64
	PublishedDate *time.Time
}

// IsEmpty reports whether the patch changes nothing
func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Category == nil &&
		p.Price == nil && p.Rating == nil && p.PublishedDate == nil
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
// The result is midnight UTC of the (UTC) calendar day, as stored.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		if t, err = time.Parse(DateLayout, s); err != nil {
			return time.Time{}, err
		}
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
