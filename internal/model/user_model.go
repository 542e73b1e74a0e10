package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username    string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Role        string    `gorm:"type:user_role;not null;default:'customer'"`
	AvatarURL   *string   `gorm:"type:text"`
	ShopName    *string   `gorm:"type:varchar(150)"`
	ShopLogoURL *string   `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (User) TableName() string {
	return "users"
}
