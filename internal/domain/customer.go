package domain

import (
	"fmt"
	"regexp"
	"time"
)

var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

type Customer struct {
	ID        string
	UserID    string
	FirstName string
	LastName  string
	Phone     string
	Comment   string
	CreatedAt time.Time
}

// ValidatePhone checks the phone against the accepted +999999999 format
// (9 to 15 digits).
func (c *Customer) ValidatePhone() error {
	if c.Phone == "" {
		return nil
	}
	if !phonePattern.MatchString(c.Phone) {
		return fmt.Errorf("phone %q must match +999999999 (9-15 digits)", c.Phone)
	}
	return nil
}

// DisplayName returns "Last First" for lists.
func (c *Customer) DisplayName() string {
	switch {
	case c.LastName == "" && c.FirstName == "":
		return "(unnamed)"
	case c.LastName == "":
		return c.FirstName
	case c.FirstName == "":
		return c.LastName
	}
	return c.LastName + " " + c.FirstName
}
