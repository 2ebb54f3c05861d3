package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AboutController serves the static pages about the project.
type AboutController struct {
	views *Views
}

func NewAboutController(views *Views) *AboutController {
	return &AboutController{views: views}
}

func (ctl *AboutController) Author(c *gin.Context) {
	ctl.views.Render(c, http.StatusOK, "about_author", nil)
}

func (ctl *AboutController) Tech(c *gin.Context) {
	ctl.views.Render(c, http.StatusOK, "about_tech", nil)
}
