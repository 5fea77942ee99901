package handlers

import (
	"net/url"
	"testing"

	apperrors "crm-backend/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchQuery(t *testing.T) {
	tests := []struct {
		selector, field string
		endpoint, kind  string
		query           url.Values
	}{
		{"customer", "email", "customers/", "customer", url.Values{"email": {"x"}}},
		{"customer", "date_created", "customers/", "customer", url.Values{"date_contains": {"x"}}},
		{"contract", "customer__company", "contracts/", "contract", url.Values{"customer_company": {"x"}}},
		{"contract", "amount", "contracts/", "contract", url.Values{"amount": {"x"}}},
		{"event", "event_date", "events/", "event", url.Values{"date_contains": {"x"}}},
		{"event", "customer__last_name", "events/", "event", url.Values{"customer_last_name": {"x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.selector+"/"+tt.field, func(t *testing.T) {
			endpoint, kind, query, err := SearchQuery(tt.selector, tt.field, "x")
			require.NoError(t, err)
			assert.Equal(t, tt.endpoint, endpoint)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.query, query)
		})
	}
}

func TestSearchQueryUnknown(t *testing.T) {
	_, _, _, err := SearchQuery("invoice", "email", "x")
	assert.ErrorIs(t, err, apperrors.ErrUnknownSearch)

	_, _, _, err = SearchQuery("event", "amount", "x")
	assert.ErrorIs(t, err, apperrors.ErrUnknownSearch)
}
