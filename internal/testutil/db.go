package testutil

import (
	"fmt"
	"testing"
	"time"

	"yatube/internal/adapters/database"
	"yatube/internal/core/comment"
	"yatube/internal/core/follower"
	"yatube/internal/core/group"
	"yatube/internal/core/post"
	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Password is the plain-text password of every user made by CreateUser.
const Password = "secret-password"

// NewDB returns a migrated in-memory sqlite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.Must(uuid.NewV4()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the shared in-memory database alive and serialises writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

var passwordHash []byte

func hashedPassword(t *testing.T) string {
	if passwordHash == nil {
		h, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
		require.NoError(t, err)
		passwordHash = h
	}
	return string(passwordHash)
}

func CreateUser(t *testing.T, db *gorm.DB, username string) *user.User {
	t.Helper()
	u := &user.User{Username: username, Password: hashedPassword(t)}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateGroup(t *testing.T, db *gorm.DB, slug string) *group.Group {
	t.Helper()
	g := &group.Group{Title: "Group " + slug, Slug: slug, Description: "About " + slug}
	require.NoError(t, db.Create(g).Error)
	return g
}

// CreatePost stores a post with an explicit creation time so ordering is deterministic.
func CreatePost(t *testing.T, db *gorm.DB, author *user.User, g *group.Group, text string, at time.Time) *post.Post {
	t.Helper()
	p := &post.Post{Text: text, UserID: author.ID, CreatedAt: at}
	if g != nil {
		p.GroupID = &g.ID
	}
	require.NoError(t, db.Omit(clause.Associations).Create(p).Error)
	return p
}

// CreatePosts stores n posts by author, one minute apart, oldest first.
func CreatePosts(t *testing.T, db *gorm.DB, author *user.User, g *group.Group, n int) []*post.Post {
	t.Helper()
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	posts := make([]*post.Post, 0, n)
	for i := 0; i < n; i++ {
		at := start.Add(time.Duration(i) * time.Minute)
		posts = append(posts, CreatePost(t, db, author, g, fmt.Sprintf("Post %d by %s", i, author.Username), at))
	}
	return posts
}

func CreateComment(t *testing.T, db *gorm.DB, author *user.User, p *post.Post, text string) *comment.Comment {
	t.Helper()
	c := &comment.Comment{Text: text, UserID: author.ID, PostID: p.ID}
	require.NoError(t, db.Omit(clause.Associations).Create(c).Error)
	return c
}

func CreateFollow(t *testing.T, db *gorm.DB, u, author *user.User) *follower.Follow {
	t.Helper()
	f := &follower.Follow{UserID: u.ID, AuthorID: author.ID}
	require.NoError(t, db.Omit(clause.Associations).Create(f).Error)
	return f
}

func Count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

// Viewer returns the identity u would have after logging in.
func Viewer(u *user.User) *user.Viewer {
	return &user.Viewer{ID: u.ID, Username: u.Username}
}
