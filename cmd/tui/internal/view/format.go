package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/roastery/internal/apiclient"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

const apiTimeout = 10 * time.Second

// APICtx returns a context with a standard timeout for API calls.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}

func FormatMoney(m schema.Money) string {
	return m.String() + " €"
}

func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f €", v)
}

// FormatDate renders a date or a dash when it is unset.
func FormatDate(d *schema.Date) string {
	if d == nil || d.IsZero() {
		return "-"
	}

	return d.String()
}

func optional(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// optionalInput turns a blank form field into nil so the API stores NULL.
func optionalInput(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", label)
		}

		return nil
	}
}

// describe renders an API failure for the status line.
func describe(err error) string {
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) || apiErr.Message == "" {
		return fmt.Sprintf("Error: %v", err)
	}

	switch {
	case apiclient.IsUnauthorized(err):
		return "Error: the API rejected the token, check ROASTERY_API_TOKEN"
	case apiclient.IsNotFound(err):
		return "Error: " + apiErr.Message + " (press r to refresh)"
	case apiclient.IsConflict(err):
		return "Cannot delete: " + apiErr.Message
	case apiclient.IsValidation(err) && apiErr.Field != "":
		return fmt.Sprintf("Error: %s (%s)", apiErr.Message, apiErr.Field)
	}

	return "Error: " + apiErr.Message
}
