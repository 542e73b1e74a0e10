package service

import (
	"testing"

	"shopchat-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestPresentSender(t *testing.T) {
	tests := []struct {
		name       string
		user       *entity.User
		wantName   string
		wantAvatar string
	}{
		{
			name:     "nil user",
			user:     nil,
			wantName: "",
		},
		{
			name: "customer with avatar",
			user: &entity.User{
				Username:  "ani",
				Role:      entity.UserRoleCustomer,
				AvatarURL: strPtr("https://cdn.example.com/ani.png"),
			},
			wantName:   "ani",
			wantAvatar: "https://cdn.example.com/ani.png",
		},
		{
			name: "customer without avatar",
			user: &entity.User{
				Username: "ani",
				Role:     entity.UserRoleCustomer,
			},
			wantName: "ani",
		},
		{
			name: "shop with full branding",
			user: &entity.User{
				Username:    "owner-account",
				Role:        entity.UserRoleShop,
				AvatarURL:   strPtr("https://cdn.example.com/owner.png"),
				ShopName:    strPtr("Toko Berkah"),
				ShopLogoURL: strPtr("https://cdn.example.com/logo.png"),
			},
			wantName:   "Toko Berkah",
			wantAvatar: "https://cdn.example.com/logo.png",
		},
		{
			name: "shop without branding falls back to personal profile",
			user: &entity.User{
				Username:  "owner-account",
				Role:      entity.UserRoleShop,
				AvatarURL: strPtr("https://cdn.example.com/owner.png"),
			},
			wantName:   "owner-account",
			wantAvatar: "https://cdn.example.com/owner.png",
		},
		{
			name: "shop with empty shop name falls back to username",
			user: &entity.User{
				Username: "owner-account",
				Role:     entity.UserRoleShop,
				ShopName: strPtr(""),
			},
			wantName: "owner-account",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PresentSender(tt.user)
			assert.Equal(t, tt.wantName, p.Name)
			assert.Equal(t, tt.wantAvatar, p.Avatar)
		})
	}
}

func TestPresentCounterpart(t *testing.T) {
	user := &entity.User{
		Id:       uuid.New(),
		Username: "ani",
		Role:     entity.UserRoleCustomer,
	}

	profile := presentCounterpart(user)
	assert.Equal(t, user.Id, profile.Id)
	assert.Equal(t, "ani", profile.Name)
	assert.Equal(t, "customer", profile.Role)

	empty := presentCounterpart(nil)
	assert.Equal(t, uuid.Nil, empty.Id)
}
