package httpapi

import (
	"net/http"
	"time"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/config"
	"yatube/internal/core/pagination"
	userEntity "yatube/internal/core/user"
	cachePort "yatube/internal/ports/cache"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FeedController struct {
	uc    FeedUseCase
	cache cachePort.PageCache
	ttl   time.Duration
	views *Views
}

func NewFeedController(uc FeedUseCase, cache cachePort.PageCache, ttl time.Duration, views *Views) *FeedController {
	return &FeedController{uc: uc, cache: cache, ttl: ttl, views: views}
}

// indexCacheKey separates cached index pages per viewer and per URL.
func indexCacheKey(viewer *userEntity.Viewer, requestURI string) string {
	who := "anonymous"
	if viewer.Authenticated() {
		who = viewer.Username
	}
	return "index_page:" + who + ":" + requestURI
}

// Index serves the global feed, from the page cache while an entry is live.
func (ctl *FeedController) Index(c *gin.Context) {
	ctx := c.Request.Context()
	key := indexCacheKey(middleware.CurrentViewer(c), c.Request.URL.RequestURI())

	if ctl.cache != nil {
		body, ok, err := ctl.cache.Get(ctx, key)
		if err != nil {
			config.Logger.Warn("page cache get", zap.String("key", key), zap.Error(err))
		} else if ok {
			c.Data(http.StatusOK, htmlContentType, body)
			return
		}
	}

	page, err := ctl.uc.Index(ctx, pagination.ParseNumber(c.Query("page")))
	if err != nil {
		renderError(c, ctl.views, err)
		return
	}

	body, err := ctl.views.Bytes("index", pageData(c, gin.H{"page_obj": page}))
	if err != nil {
		renderError(c, ctl.views, err)
		return
	}

	if ctl.cache != nil {
		if err := ctl.cache.Set(ctx, key, body, ctl.ttl); err != nil {
			config.Logger.Warn("page cache set", zap.String("key", key), zap.Error(err))
		}
	}
	c.Data(http.StatusOK, htmlContentType, body)
}

func (ctl *FeedController) GroupPosts(c *gin.Context) {
	g, page, err := ctl.uc.GroupFeed(c.Request.Context(), c.Param("slug"), pagination.ParseNumber(c.Query("page")))
	if err != nil {
		renderError(c, ctl.views, err)
		return
	}
	ctl.views.Render(c, http.StatusOK, "group_list", gin.H{
		"group":    g,
		"page_obj": page,
	})
}

func (ctl *FeedController) Profile(c *gin.Context) {
	viewer := middleware.CurrentViewer(c)
	profile, err := ctl.uc.ProfileFeed(c.Request.Context(), viewer, c.Param("username"), pagination.ParseNumber(c.Query("page")))
	if err != nil {
		renderError(c, ctl.views, err)
		return
	}
	ctl.views.Render(c, http.StatusOK, "profile", gin.H{
		"profile":    profile,
		"can_follow": viewer.Authenticated() && viewer.ID != profile.Author.ID,
	})
}

func (ctl *FeedController) FollowIndex(c *gin.Context) {
	page, err := ctl.uc.FollowFeed(c.Request.Context(), middleware.CurrentViewer(c), pagination.ParseNumber(c.Query("page")))
	if err != nil {
		renderError(c, ctl.views, err)
		return
	}
	ctl.views.Render(c, http.StatusOK, "follow", gin.H{"page_obj": page})
}
