package followerapp

import (
	"context"
	"fmt"

	"yatube/internal/config"
	followerEntity "yatube/internal/core/follower"
	userEntity "yatube/internal/core/user"
	"yatube/internal/errorx"
	followerPort "yatube/internal/ports/follower"
	userPort "yatube/internal/ports/user"

	"go.uber.org/zap"
)

type FollowerService struct {
	FollowerRepository followerPort.FollowerRepository
	UserRepository     userPort.UserRepository
}

func NewFollowerService(repo followerPort.FollowerRepository, userRepo userPort.UserRepository) *FollowerService {
	return &FollowerService{
		FollowerRepository: repo,
		UserRepository:     userRepo,
	}
}

// FollowUser subscribes viewer to the author. Repeating it, or following
// yourself, changes nothing.
func (s *FollowerService) FollowUser(ctx context.Context, viewer *userEntity.Viewer, username string) error {
	if !viewer.Authenticated() {
		return errorx.ErrUnauthenticated
	}

	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if author.ID == viewer.ID {
		config.Logger.Debug("ignoring self follow", zap.String("username", username))
		return nil
	}

	created, err := s.FollowerRepository.FollowUser(ctx, &followerEntity.Follow{
		UserID:   viewer.ID,
		AuthorID: author.ID,
	})
	if err != nil {
		return fmt.Errorf("follow %s: %w", username, err)
	}
	if created {
		config.Logger.Info("followed",
			zap.String("user", viewer.Username),
			zap.String("author", username),
		)
	}
	return nil
}

// UnfollowUser removes the edge; errorx.ErrNotFound if there was none.
func (s *FollowerService) UnfollowUser(ctx context.Context, viewer *userEntity.Viewer, username string) error {
	if !viewer.Authenticated() {
		return errorx.ErrUnauthenticated
	}

	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.FollowerRepository.UnfollowUser(ctx, viewer.ID, author.ID)
}

func (s *FollowerService) IsFollowing(ctx context.Context, viewer *userEntity.Viewer, author *userEntity.User) (bool, error) {
	if !viewer.Authenticated() || author.ID == viewer.ID {
		return false, nil
	}
	return s.FollowerRepository.IsFollowing(ctx, viewer.ID, author.ID)
}
