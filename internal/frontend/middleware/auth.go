package middleware

import (
	"net/http"

	"crm-backend/internal/database/models"
	"crm-backend/internal/logger"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session and cookie names shared by the frontend handlers
const (
	SessionName = "crm_session"

	UserIDKey = "user_id"
	EmailKey  = logger.EmailKey
	RoleKey   = "role"

	AccessCookie  = "access"
	RefreshCookie = "refresh"
)

// LoginPath and HomePath are the redirect targets of the gates below
const (
	LoginPath = "/"
	HomePath  = "/home/"
)

// CurrentUser is the signed-in user as recorded in the session
type CurrentUser struct {
	ID    string
	Email string
	Role  models.Role
}

// Is reports whether the user holds role
func (u CurrentUser) Is(role models.Role) bool {
	return u.Role == role
}

// IsManager, IsSales and IsSupport are template helpers
func (u CurrentUser) IsManager() bool { return u.Is(models.RoleManager) }
func (u CurrentUser) IsSales() bool   { return u.Is(models.RoleSales) }
func (u CurrentUser) IsSupport() bool { return u.Is(models.RoleSupport) }

const currentUserKey = "CurrentUser"

// RequireLogin redirects anonymous browsers to the login page. A session
// without its access cookie counts as anonymous.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		userID, _ := sess.Get(UserIDKey).(string)
		if userID == "" {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		if token, err := c.Cookie(AccessCookie); err != nil || token == "" {
			sess.Clear()
			_ = sess.Save()
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		email, _ := sess.Get(EmailKey).(string)
		role, _ := sess.Get(RoleKey).(string)
		c.Set(EmailKey, email)
		c.Set(currentUserKey, CurrentUser{ID: userID, Email: email, Role: models.Role(role)})
		c.Next()
	}
}

// RequireRole sends users without one of roles back to the home page.
// The API enforces permissions; this only hides views a role cannot use.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	roleSet := map[models.Role]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		if _, ok := roleSet[user.Role]; !ok {
			c.Redirect(http.StatusFound, HomePath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetCurrentUser returns the user stored by RequireLogin
func GetCurrentUser(c *gin.Context) (CurrentUser, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return CurrentUser{}, false
	}
	user, ok := v.(CurrentUser)
	return user, ok
}

// SignIn records the user in the session and stores the token pair as
// HTTP-only cookies that expire with the browser session.
func SignIn(c *gin.Context, user CurrentUser, access, refresh string, secure bool) error {
	sess := sessions.Default(c)
	sess.Set(UserIDKey, user.ID)
	sess.Set(EmailKey, user.Email)
	sess.Set(RoleKey, string(user.Role))
	if err := sess.Save(); err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, access, 0, "/", "", secure, true)
	c.SetCookie(RefreshCookie, refresh, 0, "/", "", secure, true)
	return nil
}

// SignOut clears the session and expires the token cookies
func SignOut(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()

	c.SetCookie(AccessCookie, "", -1, "/", "", false, true)
	c.SetCookie(RefreshCookie, "", -1, "/", "", false, true)
}
