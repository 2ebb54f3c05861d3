package group

import (
	"context"

	"yatube/internal/core/group"

	"github.com/gofrs/uuid"
)

// GroupRepository stores and loads groups.
type GroupRepository interface {
	Create(ctx context.Context, group *group.Group) (*group.Group, error)
	FindByID(ctx context.Context, id uuid.UUID) (*group.Group, error)
	FindBySlug(ctx context.Context, slug string) (*group.Group, error)
	List(ctx context.Context) ([]*group.Group, error)
	// Delete removes the group and clears it from every post that used it.
	Delete(ctx context.Context, id uuid.UUID) error
}

type GroupForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"required,slug,max=100"`
	Description string `form:"description" validate:"required"`
}
