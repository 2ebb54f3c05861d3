package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"yatube/internal/config"
	"yatube/internal/core/user"
	"yatube/internal/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const viewerKey = "viewer"

// Authenticator turns a token into the identity it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*user.Viewer, error)
}

// JWTAuthMiddleware reads the token from the auth cookie or an
// "Authorization: Bearer" header. Requests without a valid token carry on
// as anonymous.
func JWTAuthMiddleware(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c, cookieName)
		if token == "" {
			c.Next()
			return
		}

		viewer, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(viewerKey, viewer)
		case errors.Is(err, errorx.ErrUnauthenticated):
			// stale or forged cookie
			c.SetCookie(cookieName, "", -1, "/", "", false, true)
		default:
			config.Logger.Error("authenticate request", zap.Error(err))
		}
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context, cookieName string) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return token
}

// CurrentViewer returns the authenticated viewer, or nil for anonymous requests.
func CurrentViewer(c *gin.Context) *user.Viewer {
	v, ok := c.Get(viewerKey)
	if !ok {
		return nil
	}
	viewer, _ := v.(*user.Viewer)
	return viewer
}

// LoginRequired sends anonymous visitors to loginURL, remembering where they were going.
func LoginRequired(loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentViewer(c).Authenticated() {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, LoginURL(loginURL, c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// LoginURL appends next to loginURL as a query parameter.
func LoginURL(loginURL, next string) string {
	return loginURL + "?" + url.Values{"next": {next}}.Encode()
}
