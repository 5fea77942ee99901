package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/frontend/apiclient"
	"crm-backend/internal/frontend/middleware"
	"crm-backend/internal/logger"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// ShowLogin renders the login page, or sends signed-in users home
func (h *Handler) ShowLogin(c *gin.Context) {
	if id, _ := sessions.Default(c).Get(middleware.UserIDKey).(string); id != "" {
		if _, err := c.Cookie(middleware.AccessCookie); err == nil {
			redirect(c, middleware.HomePath)
			return
		}
	}
	render(c, http.StatusOK, "login.html", gin.H{})
}

// Login forwards the credentials to the token endpoint and starts a session
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if errs := bindForm(c, &form); errs != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"form": form, "errors": errs})
		return
	}

	ctx := outbound(c)
	tokens, err := h.api.Login(ctx, form.Username, form.Password)
	if err != nil {
		if apiErr, ok := apperrors.AsAPIError(err); ok && apiErr.StatusCode < http.StatusInternalServerError {
			render(c, http.StatusBadRequest, "login.html", gin.H{"form": form, "error": apiErr.Error()})
			return
		}
		h.fail(c, err)
		return
	}

	me, err := h.api.As(tokens.Access).Get(ctx, "users/me/")
	if err != nil {
		h.fail(c, err)
		return
	}
	user, err := currentUserFrom(me)
	if errors.Is(err, errNoRole) {
		logger.WithContext(c).WithField("user", me.String("email")).Warn("sign in refused: no role")
		render(c, http.StatusForbidden, "login.html", gin.H{"form": form, "error": msgNoRole})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := middleware.SignIn(c, user, tokens.Access, tokens.Refresh, h.secureCookies); err != nil {
		h.fail(c, fmt.Errorf("failed to save session: %w", err))
		return
	}

	logger.WithContext(c).WithField("user", user.Email).Info("user signed in")
	redirect(c, middleware.HomePath)
}

// Logout ends the session
func (h *Handler) Logout(c *gin.Context) {
	middleware.SignOut(c)
	redirect(c, middleware.LoginPath)
}

const msgNoRole = "This account has no role assigned. Ask a manager to give it one."

var errNoRole = errors.New("user has no role")

// currentUserFrom reads the session identity from a users/me record. Accounts
// without a role group cannot use any view and yield errNoRole.
func currentUserFrom(me apiclient.Record) (middleware.CurrentUser, error) {
	id, err := me.ID()
	if err != nil {
		return middleware.CurrentUser{}, err
	}
	email := me.String("email")
	role := models.Role(me.String("role"))
	if email == "" {
		return middleware.CurrentUser{}, fmt.Errorf("%w: incomplete user", apperrors.ErrMalformedResponse)
	}
	if role == models.RoleNone {
		return middleware.CurrentUser{}, errNoRole
	}
	if !role.IsValid() {
		return middleware.CurrentUser{}, fmt.Errorf("%w: incomplete user", apperrors.ErrMalformedResponse)
	}
	return middleware.CurrentUser{ID: id, Email: email, Role: role}, nil
}
