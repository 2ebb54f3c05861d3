package follower

import (
	"context"

	"yatube/internal/core/follower"

	"github.com/gofrs/uuid"
)

// FollowerRepository stores follow edges.
type FollowerRepository interface {
	// FollowUser inserts the edge unless it already exists. created reports
	// whether a new row was written.
	FollowUser(ctx context.Context, follow *follower.Follow) (created bool, err error)
	// UnfollowUser deletes the edge, or returns errorx.ErrNotFound.
	UnfollowUser(ctx context.Context, userID, authorID uuid.UUID) error
	IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
	CountFollowers(ctx context.Context, authorID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
}
