package leads

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMissingContact is returned when a required contact field is blank
var ErrMissingContact = errors.New("missing contact details")

// timestampLayout is RFC 3339 in UTC with millisecond precision
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Lead is the payload posted to the webhook
type Lead struct {
	Name           string  `json:"name"`
	BusinessName   string  `json:"businessName"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	AvgJobValue    float64 `json:"avgJobValue"`
	LeadsPerWeek   float64 `json:"leadsPerWeek"`
	PercentMissed  float64 `json:"percentMissed"`
	CalculatedLoss float64 `json:"calculatedLoss"`
	Timestamp      string  `json:"timestamp"`
	Source         string  `json:"source"`
}

// Contact identifies the person submitting the calculator
type Contact struct {
	Name         string
	BusinessName string
	Email        string
	Phone        string
}

// Validate checks the fields the form requires before submission. Phone is
// optional.
func (c Contact) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(c.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(c.BusinessName) == "" {
		missing = append(missing, "business name")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingContact, strings.Join(missing, ", "))
	}
	return nil
}

// NewLead builds a payload from validated inputs. Contact fields are
// trimmed; the phone number is optional.
func NewLead(c Contact, in Inputs, source string, now time.Time) Lead {
	return Lead{
		Name:           strings.TrimSpace(c.Name),
		BusinessName:   strings.TrimSpace(c.BusinessName),
		Email:          strings.TrimSpace(c.Email),
		Phone:          strings.TrimSpace(c.Phone),
		AvgJobValue:    in.AvgJobValue,
		LeadsPerWeek:   in.LeadsPerWeek,
		PercentMissed:  in.PercentMissed,
		CalculatedLoss: in.MonthlyLoss(),
		Timestamp:      now.UTC().Format(timestampLayout),
		Source:         source,
	}
}
