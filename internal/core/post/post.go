package post

import (
	"time"

	"yatube/internal/core/group"
	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// previewLength is how many characters String shows.
const previewLength = 15

type Post struct {
	ID        uuid.UUID    `gorm:"primaryKey;type:char(36)"`
	Text      string       `gorm:"type:text;not null"`
	CreatedAt time.Time    `gorm:"autoCreateTime;index"`
	UserID    uuid.UUID    `gorm:"type:char(36);not null;index"`
	User      user.User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	GroupID   *uuid.UUID   `gorm:"type:char(36);index"`
	Group     *group.Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Image     string       `gorm:"type:varchar(255)"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

func (p *Post) String() string {
	return Preview(p.Text)
}

// Preview cuts text down to its first few characters.
func Preview(text string) string {
	r := []rune(text)
	if len(r) <= previewLength {
		return text
	}
	return string(r[:previewLength])
}
