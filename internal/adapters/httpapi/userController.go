package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"yatube/internal/errorx"
	userPort "yatube/internal/ports/user"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	uc         UserUseCase
	cookieName string
	views      *Views
}

func NewUserController(uc UserUseCase, cookieName string, views *Views) *UserController {
	return &UserController{uc: uc, cookieName: cookieName, views: views}
}

func (ctl *UserController) LoginForm(c *gin.Context) {
	ctl.views.Render(c, http.StatusOK, "login", gin.H{"next": c.Query("next")})
}

func (ctl *UserController) Login(c *gin.Context) {
	username := c.PostForm("username")
	next := c.PostForm("next")

	res, err := ctl.uc.LoginUser(c.Request.Context(), username, c.PostForm("password"))
	if err != nil {
		if errors.Is(err, errorx.ErrInvalidCredentials) {
			ctl.views.Render(c, http.StatusOK, "login", gin.H{
				"error":    "Please enter a correct username and password.",
				"username": username,
				"next":     next,
			})
			return
		}
		renderError(c, ctl.views, err)
		return
	}

	maxAge := int(time.Until(time.Unix(res.ExpiresAt, 0)).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ctl.cookieName, res.Token, maxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, safeNext(next))
}

func (ctl *UserController) Logout(c *gin.Context) {
	c.SetCookie(ctl.cookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (ctl *UserController) SignupForm(c *gin.Context) {
	ctl.views.Render(c, http.StatusOK, "signup", nil)
}

func (ctl *UserController) Signup(c *gin.Context) {
	form := userPort.SignupForm{
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password1"),
		Password2: c.PostForm("password2"),
	}

	if _, err := ctl.uc.RegisterUser(c.Request.Context(), form); err != nil {
		if ve, ok := errorx.AsValidation(err); ok {
			ctl.views.Render(c, http.StatusOK, "signup", gin.H{
				"errors": ve.Fields,
				"form": map[string]string{
					"first_name": form.FirstName,
					"last_name":  form.LastName,
					"username":   form.Username,
					"email":      form.Email,
				},
			})
			return
		}
		renderError(c, ctl.views, err)
		return
	}
	c.Redirect(http.StatusFound, loginPath)
}

// safeNext only allows redirects to paths on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
