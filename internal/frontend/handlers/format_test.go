package handlers

import (
	"testing"

	apperrors "crm-backend/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "microseconds", input: "2024-03-01T12:00:00.123456Z", want: "Le 01/03/2024, à 12:00:00"},
		{name: "seconds", input: "2024-03-01T12:00:00Z", want: "Le 01/03/2024, à 12:00:00"},
		{name: "day", input: "2024-03-01", want: "Le 01/03/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDateRejectsOtherLengths(t *testing.T) {
	for _, input := range []string{"", "2024-03-01T12:00", "2024-03-01T12:00:00+01:00", "01/03/2024 12:00:00 UTC"} {
		_, err := FormatDate(input)
		assert.ErrorIs(t, err, apperrors.ErrUnexpectedDateFormat, input)
	}

	_, err := FormatDate("2024-13-45")
	assert.ErrorIs(t, err, apperrors.ErrUnexpectedDateFormat)
}

func TestFormatFields(t *testing.T) {
	rec := map[string]interface{}{
		"date_created": "2024-03-01T12:00:00.123456Z",
		"payment_due":  "2024-04-30",
	}
	require.NoError(t, formatFields(rec, "date_created", "payment_due"))
	assert.Equal(t, "Le 01/03/2024, à 12:00:00", rec["date_created"])
	assert.Equal(t, "Le 30/04/2024", rec["payment_due"])

	err := formatFields(map[string]interface{}{}, "event_date")
	assert.ErrorIs(t, err, apperrors.ErrMalformedResponse)
}

func TestToDateTimeLocal(t *testing.T) {
	assert.Equal(t, "2024-03-01T12:30", toDateTimeLocal("2024-03-01T12:30:00Z"))
	assert.Equal(t, "", toDateTimeLocal("yesterday"))
}
