package handlers

import (
	"fmt"
	"time"

	apperrors "crm-backend/internal/errors"
)

const (
	microsLayout  = "2006-01-02T15:04:05.000000Z"
	secondsLayout = "2006-01-02T15:04:05Z"
	dayLayout     = "2006-01-02"

	dateTimeDisplay = "Le 02/01/2006, à 15:04:05"
	dayDisplay      = "Le 02/01/2006"
)

// FormatDate renders an API date for display. The layout is chosen by the
// length of the value: 27 and 20 characters carry a time of day, 10 do not.
func FormatDate(value string) (string, error) {
	var layout, display string
	switch len(value) {
	case len(microsLayout):
		layout, display = microsLayout, dateTimeDisplay
	case len(secondsLayout):
		layout, display = secondsLayout, dateTimeDisplay
	case len(dayLayout):
		layout, display = dayLayout, dayDisplay
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnexpectedDateFormat, value)
	}

	t, err := time.Parse(layout, value)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUnexpectedDateFormat, err)
	}
	return t.Format(display), nil
}

// formatFields rewrites the named date fields of rec in place
func formatFields(rec map[string]interface{}, keys ...string) error {
	for _, key := range keys {
		raw, ok := rec[key].(string)
		if !ok {
			return fmt.Errorf("%w: missing %s", apperrors.ErrMalformedResponse, key)
		}
		formatted, err := FormatDate(raw)
		if err != nil {
			return err
		}
		rec[key] = formatted
	}
	return nil
}
