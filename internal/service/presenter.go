package service

import (
	"shopchat-be/internal/dto"
	"shopchat-be/internal/entity"
)

// SenderPresentation is the display identity of a message sender or
// conversation counterpart.
type SenderPresentation struct {
	Name   string
	Avatar string
}

// PresentSender resolves display fields by role: a shop counterpart exposes
// shop name/logo in place of personal username/avatar when present. Pure
// function, shared by the listing and the gateway replay path.
func PresentSender(user *entity.User) SenderPresentation {
	if user == nil {
		return SenderPresentation{}
	}

	if user.IsShop() {
		p := SenderPresentation{Name: user.Username}
		if user.ShopName != nil && *user.ShopName != "" {
			p.Name = *user.ShopName
		}
		if user.ShopLogoURL != nil {
			p.Avatar = *user.ShopLogoURL
		} else if user.AvatarURL != nil {
			p.Avatar = *user.AvatarURL
		}
		return p
	}

	p := SenderPresentation{Name: user.Username}
	if user.AvatarURL != nil {
		p.Avatar = *user.AvatarURL
	}
	return p
}

// presentCounterpart builds the listing DTO profile for the other side of a
// conversation.
func presentCounterpart(user *entity.User) dto.CounterpartProfile {
	if user == nil {
		return dto.CounterpartProfile{}
	}
	p := PresentSender(user)
	return dto.CounterpartProfile{
		Id:     user.Id,
		Name:   p.Name,
		Avatar: p.Avatar,
		Role:   string(user.Role),
	}
}
