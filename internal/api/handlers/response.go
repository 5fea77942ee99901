package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/logger"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	detailNotFound     = "Not found."
	detailInvalidPage  = "Invalid page."
	detailInvalidInput = "Invalid input."
	detailServerError  = "A server error occurred."
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Detail string              `json:"detail" example:"Not found."`
	Errors map[string][]string `json:"errors,omitempty"`
}

// PageResponse is the body of a list request
type PageResponse struct {
	Count    int64         `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []interface{} `json:"results"`
}

// respondError maps service errors to status codes. Every body carries `detail`.
func respondError(c *gin.Context, err error) {
	if ve, ok := apperrors.AsValidation(err); ok {
		detail := ve.Message
		if detail == "" {
			detail = detailInvalidInput
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: detail, Errors: ve.Fields})
		return
	}

	switch {
	case apperrors.IsAuthentication(err):
		c.Header("WWW-Authenticate", `Bearer realm="api"`)
		c.JSON(http.StatusUnauthorized, ErrorResponse{Detail: err.Error()})
	case apperrors.IsAuthorization(err):
		c.JSON(http.StatusForbidden, ErrorResponse{Detail: err.Error()})
	case errors.Is(err, service.ErrInvalidPage):
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: detailInvalidPage})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: detailNotFound})
	default:
		logger.WithContext(c).WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: detailServerError})
	}
}

// pathID parses the :id path parameter. An unparsable id cannot match a record.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: detailNotFound})
		return uuid.Nil, false
	}
	return id, true
}

// pageParam reads ?page=N, defaulting to the first page
func pageParam(c *gin.Context) (int, bool) {
	raw := c.Query("page")
	if raw == "" {
		return 1, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: detailInvalidPage})
		return 0, false
	}
	return page, true
}

// bindBody decodes the JSON body into in. An empty body decodes as {}.
func bindBody(c *gin.Context, in interface{}) bool {
	if err := c.ShouldBindJSON(in); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "JSON parse error - " + err.Error()})
		return false
	}
	return true
}

// respondPage writes a list result with absolute next and previous links
func respondPage(c *gin.Context, result *service.ListResult) {
	resp := PageResponse{Count: result.Count, Results: result.Results}
	if resp.Results == nil {
		resp.Results = []interface{}{}
	}
	if result.HasNext() {
		next := pageURL(c, result.Page+1)
		resp.Next = &next
	}
	if result.HasPrevious() {
		prev := pageURL(c, result.Page-1)
		resp.Previous = &prev
	}
	c.JSON(http.StatusOK, resp)
}

// pageURL rebuilds the request URL for another page. The first page has no page parameter.
func pageURL(c *gin.Context, page int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	query := c.Request.URL.Query()
	if page <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawQuery: query.Encode(),
	}
	return u.String()
}
