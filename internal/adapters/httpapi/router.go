package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"yatube/internal/adapters/httpapi/middleware"
	commentEntity "yatube/internal/core/comment"
	"yatube/internal/core/feed"
	groupEntity "yatube/internal/core/group"
	postEntity "yatube/internal/core/post"
	userEntity "yatube/internal/core/user"
	cachePort "yatube/internal/ports/cache"
	postPort "yatube/internal/ports/post"
	storagePort "yatube/internal/ports/storage"
	userPort "yatube/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const loginPath = "/auth/login/"

// Inbound ports used by the controllers.
type UserUseCase interface {
	RegisterUser(ctx context.Context, form userPort.SignupForm) (*userPort.UserDTO, error)
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	Authenticate(ctx context.Context, token string) (*userEntity.Viewer, error)
}

type FeedUseCase interface {
	Index(ctx context.Context, page int) (*feed.PostPage, error)
	GroupFeed(ctx context.Context, slug string, page int) (*groupEntity.Group, *feed.PostPage, error)
	ProfileFeed(ctx context.Context, viewer *userEntity.Viewer, username string, page int) (*feed.Profile, error)
	FollowFeed(ctx context.Context, viewer *userEntity.Viewer, page int) (*feed.PostPage, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, viewer *userEntity.Viewer, form postPort.PostForm) (*postEntity.Post, error)
	PostForEdit(ctx context.Context, viewer *userEntity.Viewer, id string) (*postEntity.Post, error)
	EditPost(ctx context.Context, viewer *userEntity.Viewer, id string, form postPort.PostForm) (*postEntity.Post, error)
	GetPost(ctx context.Context, id string) (*postPort.PostDetail, error)
	AddComment(ctx context.Context, viewer *userEntity.Viewer, postID string, form postPort.CommentForm) (*commentEntity.Comment, error)
}

type GroupUseCase interface {
	ListGroups(ctx context.Context) ([]*groupEntity.Group, error)
}

type FollowerUseCase interface {
	FollowUser(ctx context.Context, viewer *userEntity.Viewer, username string) error
	UnfollowUser(ctx context.Context, viewer *userEntity.Viewer, username string) error
}

// Deps is everything the HTTP adapter needs from the outside.
type Deps struct {
	Users     UserUseCase
	Feeds     FeedUseCase
	Posts     PostUseCase
	Groups    GroupUseCase
	Followers FollowerUseCase

	Cache    cachePort.PageCache
	CacheTTL time.Duration
	Storage  storagePort.Storage

	CookieName string

	// MediaRoot is served under MediaURL when media is stored locally.
	MediaRoot string
	MediaURL  string
	Logger    *zap.Logger
}

// SetupRoutes wires the controllers into a gin engine.
func SetupRoutes(d Deps) (*gin.Engine, error) {
	views, err := NewViews(d.Storage)
	if err != nil {
		return nil, err
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Logger))
	r.Use(middleware.JWTAuthMiddleware(d.Users, d.CookieName))

	fc := NewFeedController(d.Feeds, d.Cache, d.CacheTTL, views)
	pc := NewPostController(d.Posts, d.Groups, views)
	flc := NewFollowerController(d.Followers, views)
	uc := NewUserController(d.Users, d.CookieName, views)
	ac := NewAboutController(views)

	auth := middleware.LoginRequired(loginPath)

	r.GET("/", fc.Index)
	r.GET("/group/:slug/", fc.GroupPosts)
	r.GET("/profile/:username/", fc.Profile)
	r.GET("/posts/:id/", pc.PostDetail)

	r.GET("/create/", auth, pc.CreateForm)
	r.POST("/create/", auth, pc.CreatePost)
	r.GET("/posts/:id/edit/", auth, pc.EditForm)
	r.POST("/posts/:id/edit/", auth, pc.EditPost)
	r.POST("/posts/:id/comment/", auth, pc.AddComment)

	r.GET("/follow/", auth, fc.FollowIndex)
	r.GET("/profile/:username/follow/", auth, flc.Follow)
	r.GET("/profile/:username/unfollow/", auth, flc.Unfollow)

	r.GET("/auth/signup/", uc.SignupForm)
	r.POST("/auth/signup/", uc.Signup)
	r.GET(loginPath, uc.LoginForm)
	r.POST(loginPath, uc.Login)
	r.GET("/auth/logout/", uc.Logout)

	r.GET("/about/author/", ac.Author)
	r.GET("/about/tech/", ac.Tech)

	if d.MediaRoot != "" {
		r.Static(strings.TrimRight(d.MediaURL, "/"), d.MediaRoot)
	}

	r.NoRoute(func(c *gin.Context) {
		views.Render(c, http.StatusNotFound, "404", gin.H{"path": c.Request.URL.Path})
	})
	return r, nil
}
