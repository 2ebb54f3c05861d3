package httpapi

import (
	"errors"
	"net/http"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/config"
	"yatube/internal/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// renderError answers with the page matching err.
func renderError(c *gin.Context, views *Views, err error) {
	switch {
	case errors.Is(err, errorx.ErrNotFound):
		views.Render(c, http.StatusNotFound, "404", gin.H{"path": c.Request.URL.Path})
	case errors.Is(err, errorx.ErrUnauthenticated):
		c.Redirect(http.StatusFound, middleware.LoginURL(loginPath, c.Request.URL.RequestURI()))
	default:
		_ = c.Error(err)
		config.Logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		views.Render(c, http.StatusInternalServerError, "500", nil)
	}
}
