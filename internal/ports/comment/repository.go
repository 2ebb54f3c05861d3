package comment

import (
	"context"

	"yatube/internal/core/comment"

	"github.com/gofrs/uuid"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *comment.Comment) (*comment.Comment, error)
	// ListByPostID returns the post's comments, newest first.
	ListByPostID(ctx context.Context, postID uuid.UUID) ([]*comment.Comment, error)
}
