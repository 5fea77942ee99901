package handlers

import (
	"context"
	"errors"
	"net/http"

	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/frontend/apiclient"
	"crm-backend/internal/frontend/middleware"
	"crm-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// Handler serves the HTML views. Every view is a thin adapter over record API calls.
type Handler struct {
	api           *apiclient.Client
	secureCookies bool
}

// NewHandler creates the view handlers
func NewHandler(api *apiclient.Client, secureCookies bool) *Handler {
	return &Handler{api: api, secureCookies: secureCookies}
}

// render wraps c.HTML and passes the signed-in user to every template
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := middleware.GetCurrentUser(c); ok {
		data["CurrentUser"] = user
	}
	c.HTML(status, tmpl, data)
}

// session returns an API session bound to the browser's access cookie
func (h *Handler) session(c *gin.Context) *apiclient.Session {
	token, _ := c.Cookie(middleware.AccessCookie)
	return h.api.As(token)
}

// outbound detaches API calls from the browser connection so a started chain
// of calls runs to completion.
func outbound(c *gin.Context) context.Context {
	return context.WithoutCancel(c)
}

// fail renders the error page matching err
func (h *Handler) fail(c *gin.Context, err error) {
	log := logger.WithContext(c).WithField("path", c.Request.URL.Path)

	if apiErr, ok := apperrors.AsAPIError(err); ok {
		if apiErr.StatusCode == http.StatusUnauthorized {
			middleware.SignOut(c)
			c.Redirect(http.StatusFound, middleware.LoginPath)
			return
		}
		render(c, apiErr.StatusCode, "error.html", gin.H{"error": apiErr.Error()})
		return
	}

	switch {
	case apperrors.IsUpstream(err):
		log.WithError(err).Error("record API unavailable")
		render(c, http.StatusBadGateway, "error.html", gin.H{"error": "The record service is unavailable. Please try again later."})
	case errors.Is(err, apperrors.ErrUnknownSearch):
		render(c, http.StatusBadRequest, "error.html", gin.H{"error": "Unknown search."})
	default:
		log.WithError(err).Error("view failed")
		render(c, http.StatusInternalServerError, "error.html", gin.H{"error": "Something went wrong."})
	}
}

// formFailure redisplays tmpl with the field errors of a rejected API write.
// Other failures go to the error page.
func (h *Handler) formFailure(c *gin.Context, tmpl string, data gin.H, err error) {
	apiErr, ok := apperrors.AsAPIError(err)
	if !ok || apiErr.StatusCode != http.StatusBadRequest {
		h.fail(c, err)
		return
	}
	data["errors"] = apiErr.Fields
	data["detail"] = apiErr.Detail
	render(c, http.StatusBadRequest, tmpl, data)
}

func redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusFound, path)
}
