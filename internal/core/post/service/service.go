package postapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yatube/internal/config"
	commentEntity "yatube/internal/core/comment"
	postEntity "yatube/internal/core/post"
	userEntity "yatube/internal/core/user"
	"yatube/internal/core/validation"
	"yatube/internal/errorx"
	commentPort "yatube/internal/ports/comment"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	storagePort "yatube/internal/ports/storage"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// imagePrefix is where post images are stored.
const imagePrefix = "posts"

type PostService struct {
	PostRepository    postPort.PostRepository
	CommentRepository commentPort.CommentRepository
	GroupRepository   groupPort.GroupRepository
	Storage           storagePort.Storage
}

func NewPostService(
	postRepo postPort.PostRepository,
	commentRepo commentPort.CommentRepository,
	groupRepo groupPort.GroupRepository,
	storage storagePort.Storage,
) *PostService {
	return &PostService{
		PostRepository:    postRepo,
		CommentRepository: commentRepo,
		GroupRepository:   groupRepo,
		Storage:           storage,
	}
}

// CreatePost stores a new post by viewer.
func (s *PostService) CreatePost(ctx context.Context, viewer *userEntity.Viewer, form postPort.PostForm) (*postEntity.Post, error) {
	if !viewer.Authenticated() {
		return nil, errorx.ErrUnauthenticated
	}

	p := &postEntity.Post{UserID: viewer.ID}
	uploaded, err := s.apply(ctx, p, form)
	if err != nil {
		return nil, err
	}

	created, err := s.PostRepository.Create(ctx, p)
	if err != nil {
		s.discardImage(ctx, uploaded)
		return nil, fmt.Errorf("create post: %w", err)
	}
	config.Logger.Info("post created",
		zap.String("postID", created.ID.String()),
		zap.String("author", viewer.Username),
	)
	return created, nil
}

// PostForEdit loads a post the viewer is allowed to edit.
func (s *PostService) PostForEdit(ctx context.Context, viewer *userEntity.Viewer, id string) (*postEntity.Post, error) {
	if !viewer.Authenticated() {
		return nil, errorx.ErrUnauthenticated
	}

	p, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != viewer.ID {
		return nil, errorx.ErrForbidden
	}
	return p, nil
}

// EditPost rewrites text, group and image. The creation time is kept, and so
// is the old image when no new one is uploaded.
func (s *PostService) EditPost(ctx context.Context, viewer *userEntity.Viewer, id string, form postPort.PostForm) (*postEntity.Post, error) {
	p, err := s.PostForEdit(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.apply(ctx, p, form)
	if err != nil {
		return nil, err
	}
	if err := s.PostRepository.Update(ctx, p); err != nil {
		s.discardImage(ctx, uploaded)
		return nil, fmt.Errorf("update post: %w", err)
	}
	config.Logger.Info("post edited", zap.String("postID", p.ID.String()))
	return p, nil
}

// apply validates form and copies it onto p, uploading the image if any.
// It returns the name of the newly uploaded image, or "".
func (s *PostService) apply(ctx context.Context, p *postEntity.Post, form postPort.PostForm) (string, error) {
	form.Text = strings.TrimSpace(form.Text)
	form.GroupID = strings.TrimSpace(form.GroupID)

	verr := validation.Struct(form)
	var groupID *uuid.UUID
	if form.GroupID != "" {
		if _, bad := verr.Fields["group"]; !bad {
			id := uuid.FromStringOrNil(form.GroupID)
			_, err := s.GroupRepository.FindByID(ctx, id)
			switch {
			case errors.Is(err, errorx.ErrNotFound):
				verr.Add("group", "Select a valid choice.")
			case err != nil:
				return "", fmt.Errorf("find group: %w", err)
			default:
				groupID = &id
			}
		}
	}
	if err := verr.OrNil(); err != nil {
		return "", err
	}

	var uploaded string
	if form.Image != nil {
		name, err := s.Storage.Save(ctx, imagePrefix, form.Image)
		if err != nil {
			return "", fmt.Errorf("save image: %w", err)
		}
		uploaded = name
		p.Image = name
	}

	p.Text = form.Text
	p.GroupID = groupID
	p.Group = nil
	return uploaded, nil
}

// discardImage removes an upload whose post was never written.
func (s *PostService) discardImage(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if err := s.Storage.Delete(ctx, name); err != nil {
		config.Logger.Warn("orphaned post image", zap.String("image", name), zap.Error(err))
	}
}

// GetPost returns the post with its comments and the author's post count.
func (s *PostService) GetPost(ctx context.Context, id string) (*postPort.PostDetail, error) {
	p, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.CommentRepository.ListByPostID(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	authorID := p.UserID
	count, err := s.PostRepository.Count(ctx, postPort.Filter{AuthorID: &authorID})
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	return &postPort.PostDetail{
		Post:            p,
		Comments:        comments,
		AuthorPostCount: count,
	}, nil
}

// AddComment attaches a comment by viewer to the post.
func (s *PostService) AddComment(ctx context.Context, viewer *userEntity.Viewer, postID string, form postPort.CommentForm) (*commentEntity.Comment, error) {
	if !viewer.Authenticated() {
		return nil, errorx.ErrUnauthenticated
	}

	p, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	form.Text = strings.TrimSpace(form.Text)
	if err := validation.Struct(form).OrNil(); err != nil {
		return nil, err
	}

	c, err := s.CommentRepository.Create(ctx, &commentEntity.Comment{
		PostID: p.ID,
		UserID: viewer.ID,
		Text:   form.Text,
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

// DeletePost removes the post and its comments.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	p, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}
	if err := s.PostRepository.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	config.Logger.Info("post deleted", zap.String("postID", p.ID.String()))
	return nil
}

func (s *PostService) findPost(ctx context.Context, id string) (*postEntity.Post, error) {
	pid, err := uuid.FromString(id)
	if err != nil {
		return nil, errorx.ErrNotFound
	}
	return s.PostRepository.FindByID(ctx, pid)
}
