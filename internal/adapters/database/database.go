package database

import (
	"errors"

	"yatube/internal/core/comment"
	"yatube/internal/core/follower"
	"yatube/internal/core/group"
	"yatube/internal/core/post"
	"yatube/internal/core/user"
	"yatube/internal/errorx"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the application uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&group.Group{},
		&post.Post{},
		&comment.Comment{},
		&follower.Follow{},
	)
}

// notFound maps gorm's missing-record error onto errorx.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.ErrNotFound
	}
	return err
}

// duplicate maps a unique-index violation onto errorx.ErrAlreadyExists.
// It needs gorm.Config.TranslateError so drivers report gorm.ErrDuplicatedKey.
func duplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errorx.ErrAlreadyExists
	}
	return err
}
