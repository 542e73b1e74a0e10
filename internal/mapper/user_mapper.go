package mapper

import (
	"shopchat-be/internal/entity"
	"shopchat-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	return &entity.User{
		Id:          u.Id,
		Username:    u.Username,
		Role:        entity.UserRole(u.Role),
		AvatarURL:   u.AvatarURL,
		ShopName:    u.ShopName,
		ShopLogoURL: u.ShopLogoURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	return &model.User{
		Id:          u.Id,
		Username:    u.Username,
		Role:        string(u.Role),
		AvatarURL:   u.AvatarURL,
		ShopName:    u.ShopName,
		ShopLogoURL: u.ShopLogoURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
