package httpapi

import (
	"net/http"
	"net/url"

	"yatube/internal/adapters/httpapi/middleware"

	"github.com/gin-gonic/gin"
)

type FollowerController struct {
	uc    FollowerUseCase
	views *Views
}

func NewFollowerController(uc FollowerUseCase, views *Views) *FollowerController {
	return &FollowerController{uc: uc, views: views}
}

func (ctl *FollowerController) Follow(c *gin.Context) {
	username := c.Param("username")
	if err := ctl.uc.FollowUser(c.Request.Context(), middleware.CurrentViewer(c), username); err != nil {
		renderError(c, ctl.views, err)
		return
	}
	c.Redirect(http.StatusFound, profilePath(username))
}

func (ctl *FollowerController) Unfollow(c *gin.Context) {
	username := c.Param("username")
	if err := ctl.uc.UnfollowUser(c.Request.Context(), middleware.CurrentViewer(c), username); err != nil {
		renderError(c, ctl.views, err)
		return
	}
	c.Redirect(http.StatusFound, profilePath(username))
}

func profilePath(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}
