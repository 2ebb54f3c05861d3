package groupapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yatube/internal/config"
	groupEntity "yatube/internal/core/group"
	"yatube/internal/core/validation"
	"yatube/internal/errorx"
	groupPort "yatube/internal/ports/group"

	"go.uber.org/zap"
)

type GroupService struct {
	GroupRepository groupPort.GroupRepository
}

func NewGroupService(repo groupPort.GroupRepository) *GroupService {
	return &GroupService{GroupRepository: repo}
}

// CreateGroup stores a new community. A taken slug yields errorx.ErrAlreadyExists.
func (s *GroupService) CreateGroup(ctx context.Context, form groupPort.GroupForm) (*groupEntity.Group, error) {
	form.Title = strings.TrimSpace(form.Title)
	form.Slug = strings.TrimSpace(form.Slug)
	form.Description = strings.TrimSpace(form.Description)

	if err := validation.Struct(form).OrNil(); err != nil {
		return nil, err
	}

	_, err := s.GroupRepository.FindBySlug(ctx, form.Slug)
	switch {
	case err == nil:
		return nil, fmt.Errorf("group %q: %w", form.Slug, errorx.ErrAlreadyExists)
	case !errors.Is(err, errorx.ErrNotFound):
		return nil, fmt.Errorf("find group: %w", err)
	}

	g, err := s.GroupRepository.Create(ctx, &groupEntity.Group{
		Title:       form.Title,
		Slug:        form.Slug,
		Description: form.Description,
	})
	if errors.Is(err, errorx.ErrAlreadyExists) {
		return nil, fmt.Errorf("group %q: %w", form.Slug, errorx.ErrAlreadyExists)
	}
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	config.Logger.Info("group created", zap.String("slug", g.Slug))
	return g, nil
}

func (s *GroupService) ListGroups(ctx context.Context) ([]*groupEntity.Group, error) {
	return s.GroupRepository.List(ctx)
}

// DeleteGroup removes the group. Its posts stay, without a group.
func (s *GroupService) DeleteGroup(ctx context.Context, slug string) error {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.GroupRepository.Delete(ctx, g.ID); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	config.Logger.Info("group deleted", zap.String("slug", slug))
	return nil
}
