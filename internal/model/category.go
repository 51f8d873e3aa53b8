package model

import "time"

// Category groups tasks by area (work, health, study, etc.).
// The name is unique per owning user, not globally.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;index:idx_user_category_name,unique" json:"user_id"`
	Name      string    `gorm:"index:idx_user_category_name,unique;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Tasks     []Task    `gorm:"foreignKey:CategoryID" json:"-"`
}
