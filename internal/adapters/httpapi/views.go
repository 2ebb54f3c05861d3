package httpapi

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/config"
	storagePort "yatube/internal/ports/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const htmlContentType = "text/html; charset=utf-8"

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"index", "group_list", "profile", "post_detail", "create_post",
	"follow", "login", "signup", "about_author", "about_tech", "404", "500",
}

// Views holds one parsed template set per page.
type Views struct {
	pages map[string]*template.Template
}

// NewViews parses the embedded templates. Image names are resolved through store.
func NewViews(store storagePort.Storage) (*Views, error) {
	funcs := template.FuncMap{
		"media": store.URL,
		"date": func(t time.Time) string {
			return t.Format("02 Jan 2006")
		},
	}

	v := &Views{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/includes.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// Bytes renders page with data.
func (v *Views) Bytes(page string, data gin.H) ([]byte, error) {
	t, ok := v.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", page, err)
	}
	return buf.Bytes(), nil
}

// Render writes page to the response with the request's viewer in scope.
func (v *Views) Render(c *gin.Context, status int, page string, data gin.H) {
	body, err := v.Bytes(page, pageData(c, data))
	if err != nil {
		config.Logger.Error("render page", zap.String("page", page), zap.Error(err))
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	c.Data(status, htmlContentType, body)
}

// pageData fills in the keys every template may read.
func pageData(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["viewer"] = middleware.CurrentViewer(c)
	if _, ok := data["errors"]; !ok {
		data["errors"] = map[string]string(nil)
	}
	if _, ok := data["form"]; !ok {
		data["form"] = map[string]string(nil)
	}
	return data
}
