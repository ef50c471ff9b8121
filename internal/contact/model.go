package contact

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date without a time-of-day component, serialized as
// YYYY-MM-DD. Birthdays compare on month/day only; the year is kept for
// display.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Contact is a single address-book record.
type Contact struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	Birthday       Date   `json:"birthday"`
	AdditionalInfo string `json:"additional_info"`
}

// CreateInput carries the fields required to create a contact.
type CreateInput struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	PhoneNumber    string `json:"phone_number" validate:"required"`
	Birthday       Date   `json:"birthday"`
	AdditionalInfo string `json:"additional_info"`
}

// Update is a partial mutation. A nil field is left untouched; a non-nil
// field overwrites, including overwriting with the zero value. This keeps
// "omitted" and "explicitly cleared" distinct through the JSON layer.
type Update struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Email          *string `json:"email"`
	PhoneNumber    *string `json:"phone_number"`
	Birthday       *Date   `json:"birthday"`
	AdditionalInfo *string `json:"additional_info"`
}

// IsEmpty reports whether the update touches no fields.
func (u Update) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil &&
		u.PhoneNumber == nil && u.Birthday == nil && u.AdditionalInfo == nil
}

// apply overlays the set fields onto an existing record.
func (u Update) apply(c Contact) Contact {
	if u.FirstName != nil {
		c.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		c.LastName = *u.LastName
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.PhoneNumber != nil {
		c.PhoneNumber = *u.PhoneNumber
	}
	if u.Birthday != nil {
		c.Birthday = *u.Birthday
	}
	if u.AdditionalInfo != nil {
		c.AdditionalInfo = *u.AdditionalInfo
	}
	return c
}

// birthdayWindow returns the (month, day) pairs for the 8-day inclusive
// window starting at today. Walking the calendar keeps year boundaries and
// Feb 29 correct where raw day-of-year arithmetic would not.
func birthdayWindow(today time.Time) [][2]int {
	pairs := make([][2]int, 0, 8)
	for i := 0; i < 8; i++ {
		d := today.AddDate(0, 0, i)
		pairs = append(pairs, [2]int{int(d.Month()), d.Day()})
	}
	return pairs
}
