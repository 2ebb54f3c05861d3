package httpapi

import (
	"errors"
	"io"
	"net/http"

	"yatube/internal/adapters/httpapi/middleware"
	postEntity "yatube/internal/core/post"
	"yatube/internal/errorx"
	postPort "yatube/internal/ports/post"
	storagePort "yatube/internal/ports/storage"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	uc     PostUseCase
	groups GroupUseCase
	views  *Views
}

func NewPostController(uc PostUseCase, groups GroupUseCase, views *Views) *PostController {
	return &PostController{uc: uc, groups: groups, views: views}
}

func postPath(id string) string {
	return "/posts/" + id + "/"
}

func (ctl *PostController) PostDetail(c *gin.Context) {
	detail, err := ctl.uc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, ctl.views, err)
		return
	}
	viewer := middleware.CurrentViewer(c)
	ctl.views.Render(c, http.StatusOK, "post_detail", gin.H{
		"detail":   detail,
		"can_edit": viewer.Authenticated() && viewer.ID == detail.Post.UserID,
	})
}

func (ctl *PostController) CreateForm(c *gin.Context) {
	ctl.renderForm(c, nil, map[string]string{}, nil)
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	form, closer, err := bindPostForm(c)
	if err != nil {
		renderError(c, ctl.views, err)
		return
	}
	defer closer.Close()

	viewer := middleware.CurrentViewer(c)
	if _, err := ctl.uc.CreatePost(c.Request.Context(), viewer, form); err != nil {
		if ve, ok := errorx.AsValidation(err); ok {
			ctl.renderForm(c, nil, formValues(form), ve.Fields)
			return
		}
		renderError(c, ctl.views, err)
		return
	}
	c.Redirect(http.StatusFound, profilePath(viewer.Username))
}

func (ctl *PostController) EditForm(c *gin.Context) {
	id := c.Param("id")
	p, err := ctl.uc.PostForEdit(c.Request.Context(), middleware.CurrentViewer(c), id)
	if err != nil {
		ctl.editFailed(c, id, err)
		return
	}

	values := map[string]string{"text": p.Text}
	if p.GroupID != nil {
		values["group"] = p.GroupID.String()
	}
	ctl.renderForm(c, p, values, nil)
}

func (ctl *PostController) EditPost(c *gin.Context) {
	id := c.Param("id")
	form, closer, err := bindPostForm(c)
	if err != nil {
		renderError(c, ctl.views, err)
		return
	}
	defer closer.Close()

	ctx := c.Request.Context()
	viewer := middleware.CurrentViewer(c)
	if _, err := ctl.uc.EditPost(ctx, viewer, id, form); err != nil {
		if ve, ok := errorx.AsValidation(err); ok {
			p, err := ctl.uc.PostForEdit(ctx, viewer, id)
			if err != nil {
				ctl.editFailed(c, id, err)
				return
			}
			ctl.renderForm(c, p, formValues(form), ve.Fields)
			return
		}
		ctl.editFailed(c, id, err)
		return
	}
	c.Redirect(http.StatusFound, postPath(id))
}

// editFailed sends non-authors back to the post; other errors get their usual page.
func (ctl *PostController) editFailed(c *gin.Context, id string, err error) {
	if errors.Is(err, errorx.ErrForbidden) {
		c.Redirect(http.StatusFound, postPath(id))
		return
	}
	renderError(c, ctl.views, err)
}

func (ctl *PostController) AddComment(c *gin.Context) {
	id := c.Param("id")
	form := postPort.CommentForm{Text: c.PostForm("text")}

	_, err := ctl.uc.AddComment(c.Request.Context(), middleware.CurrentViewer(c), id, form)
	if err != nil {
		if _, ok := errorx.AsValidation(err); !ok {
			renderError(c, ctl.views, err)
			return
		}
	}
	c.Redirect(http.StatusFound, postPath(id))
}

func (ctl *PostController) renderForm(c *gin.Context, p *postEntity.Post, values, fieldErrors map[string]string) {
	groups, err := ctl.groups.ListGroups(c.Request.Context())
	if err != nil {
		renderError(c, ctl.views, err)
		return
	}
	ctl.views.Render(c, http.StatusOK, "create_post", gin.H{
		"is_edit": p != nil,
		"post":    p,
		"groups":  groups,
		"form":    values,
		"errors":  fieldErrors,
	})
}

func formValues(form postPort.PostForm) map[string]string {
	return map[string]string{"text": form.Text, "group": form.GroupID}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// bindPostForm reads the post form, including the optional image upload.
// The returned closer releases the uploaded file.
func bindPostForm(c *gin.Context) (postPort.PostForm, io.Closer, error) {
	form := postPort.PostForm{
		Text:    c.PostForm("text"),
		GroupID: c.PostForm("group"),
	}

	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return form, nopCloser{}, nil
		}
		return form, nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return form, nil, err
	}
	form.Image = &storagePort.Object{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	}
	return form, f, nil
}
