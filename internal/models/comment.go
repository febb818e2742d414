package models

import "time"

// Comment is a user comment attached to a post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Post      *Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerID implements Owned.
func (c *Comment) OwnerID() uint { return c.UserID }

// Owned is implemented by every resource that belongs to a single user.
// Mutation of an owned resource is restricted to that user.
type Owned interface {
	OwnerID() uint
}
