package handlers

import (
	"fmt"
	"net/url"

	apperrors "crm-backend/internal/errors"
)

// searchTarget is the list endpoint and result snippet of a search selector
type searchTarget struct {
	endpoint string
	kind     string
}

var searchTargets = map[string]searchTarget{
	"customer": {endpoint: "customers/", kind: "customer"},
	"contract": {endpoint: "contracts/", kind: "contract"},
	"event":    {endpoint: "events/", kind: "event"},
}

// searchParams maps each selector's search fields to the API filter parameter
var searchParams = map[string]map[string]string{
	"customer": {
		"email":        "email",
		"last_name":    "last_name",
		"company":      "company",
		"date_created": "date_contains",
	},
	"contract": {
		"customer__email":     "customer_email",
		"customer__last_name": "customer_last_name",
		"customer__company":   "customer_company",
		"date_created":        "date_contains",
		"amount":              "amount",
	},
	"event": {
		"customer__email":     "customer_email",
		"customer__last_name": "customer_last_name",
		"customer__company":   "customer_company",
		"event_date":          "date_contains",
	},
}

// SearchQuery resolves a selector and field to the endpoint and query to call.
// Unknown combinations are rejected with ErrUnknownSearch.
func SearchQuery(selector, field, input string) (endpoint, kind string, query url.Values, err error) {
	target, ok := searchTargets[selector]
	if !ok {
		return "", "", nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownSearch, selector)
	}
	param, ok := searchParams[selector][field]
	if !ok {
		return "", "", nil, fmt.Errorf("%w: %q for %s", apperrors.ErrUnknownSearch, field, selector)
	}
	return target.endpoint, target.kind, url.Values{param: {input}}, nil
}
