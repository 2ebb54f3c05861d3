package post

import (
	"context"

	"yatube/internal/core/comment"
	"yatube/internal/core/post"
	"yatube/internal/ports/storage"

	"github.com/gofrs/uuid"
)

// Filter narrows a post listing. Nil fields do not filter.
type Filter struct {
	GroupID  *uuid.UUID
	AuthorID *uuid.UUID
	// FollowerID keeps posts whose author is followed by this user.
	FollowerID *uuid.UUID
}

// PostRepository stores and loads posts. Listings are newest-first.
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	// Update writes text, group and image. CreatedAt is never touched.
	Update(ctx context.Context, post *post.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	List(ctx context.Context, filter Filter, offset, limit int) ([]*post.Post, error)
	// Delete removes the post and its comments.
	Delete(ctx context.Context, id uuid.UUID) error
}

// DTOs for the use cases
type PostForm struct {
	Text    string          `form:"text" validate:"required"`
	GroupID string          `form:"group" validate:"omitempty,uuid"`
	Image   *storage.Object `form:"-" validate:"-"`
}

type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

type PostDetail struct {
	Post            *post.Post
	Comments        []*comment.Comment
	AuthorPostCount int64
}
