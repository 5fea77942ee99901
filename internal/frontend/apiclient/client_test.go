package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	apperrors "crm-backend/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	server   *httptest.Server
	client   *Client
	auth     []string
	requests int
}

// contractPages serves 12 contracts at page size 5, linking pages with absolute next URLs
func (suite *ClientTestSuite) contractPages(w http.ResponseWriter, r *http.Request) {
	const total, size = 12, 5
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, _ = strconv.Atoi(raw)
	}

	results := []map[string]interface{}{}
	for i := (page-1)*size + 1; i <= total && i <= page*size; i++ {
		results = append(results, map[string]interface{}{"id": fmt.Sprintf("contract-%02d", i), "amount": i * 100})
	}

	var next interface{}
	if page*size < total {
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(page+1))
		next = suite.server.URL + r.URL.Path + "?" + q.Encode()
	}

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"count": total, "next": next, "previous": nil, "results": results,
	})
}

func (suite *ClientTestSuite) SetupTest() {
	suite.auth = nil
	suite.requests = 0

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret-password" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access":"acc","refresh":"ref"}`))
	})
	mux.HandleFunc("/api/contracts/", func(w http.ResponseWriter, r *http.Request) {
		suite.requests++
		suite.auth = append(suite.auth, r.Header.Get("Authorization"))
		suite.contractPages(w, r)
	})
	mux.HandleFunc("/api/customers/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail":"Invalid input.","errors":{"email":["customer with this email already exists."]}}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			_, _ = w.Write([]byte(`{"id":"c-1","company":"Acme","sales_contact":{"id":"u-1","email":"sam@crm.test"}}`))
		}
	})
	mux.HandleFunc("/api/events/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count":0,"next":null}`))
	})

	suite.server = httptest.NewServer(mux)

	client, err := New(suite.server.URL+"/api", 5*time.Second)
	suite.Require().NoError(err)
	suite.client = client
}

func (suite *ClientTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *ClientTestSuite) TestListAllConcatenatesPages() {
	records, err := suite.client.As("acc").ListAll(context.Background(), "contracts/", nil)

	suite.Require().NoError(err)
	suite.Len(records, 12)
	suite.Equal("contract-01", records[0].String("id"))
	suite.Equal("contract-12", records[11].String("id"))
	suite.Equal(3, suite.requests)
	for _, header := range suite.auth {
		suite.Equal("Bearer acc", header)
	}
}

func (suite *ClientTestSuite) TestListAllKeepsQuery() {
	records, err := suite.client.As("acc").ListAll(context.Background(), "contracts/", url.Values{"sales_contact": {"u-1"}})

	suite.Require().NoError(err)
	suite.Len(records, 12)
}

func (suite *ClientTestSuite) TestListAllMissingResults() {
	_, err := suite.client.As("acc").ListAll(context.Background(), "events/", nil)

	suite.ErrorIs(err, apperrors.ErrMalformedResponse)
}

func (suite *ClientTestSuite) TestGetRecord() {
	rec, err := suite.client.As("acc").Get(context.Background(), "customers/c-1/")

	suite.Require().NoError(err)
	id, err := rec.ID()
	suite.Require().NoError(err)
	suite.Equal("c-1", id)
	suite.Equal("sam@crm.test", rec.Nested("sales_contact").String("email"))
	suite.Nil(rec.Nested("missing"))
}

func (suite *ClientTestSuite) TestPostValidationError() {
	_, err := suite.client.As("acc").Post(context.Background(), "customers/", map[string]string{"email": "dup@crm.test"})

	apiErr, ok := apperrors.AsAPIError(err)
	suite.Require().True(ok)
	suite.Equal(http.StatusBadRequest, apiErr.StatusCode)
	suite.Equal("Invalid input.", apiErr.Detail)
	suite.Equal([]string{"customer with this email already exists."}, apiErr.Fields["email"])
}

func (suite *ClientTestSuite) TestDeleteNoContent() {
	suite.NoError(suite.client.As("acc").Delete(context.Background(), "customers/c-1/"))
}

func (suite *ClientTestSuite) TestLogin() {
	tokens, err := suite.client.Login(context.Background(), "sam@crm.test", "secret-password")
	suite.Require().NoError(err)
	suite.Equal("acc", tokens.Access)
	suite.Equal("ref", tokens.Refresh)

	_, err = suite.client.Login(context.Background(), "sam@crm.test", "wrong")
	suite.True(IsUnauthorized(err))
	suite.Equal("No active account found with the given credentials", err.Error())
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestUnreachableAPI(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	client, err := New(base, time.Second)
	require.NoError(t, err)

	_, err = client.As("acc").Get(context.Background(), "customers/")
	assert.True(t, apperrors.IsUpstream(err))
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New("", time.Second)
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestRecordMissingID(t *testing.T) {
	_, err := Record{"company": "Acme"}.ID()
	assert.ErrorIs(t, err, apperrors.ErrMalformedResponse)
	assert.Equal(t, "", Record{"phone": nil}.String("phone"))
	assert.Equal(t, "12", Record{"attendees": float64(12)}.String("attendees"))
}
