package memory

import (
	"time"

	"shopchat-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ProfileCache keeps counterpart public profiles off the hot DB path during
// replay and broadcast presentation. Profiles change rarely, so a short TTL
// is enough to bound staleness.
type ProfileCache struct {
	cache *cache.Cache
}

func NewProfileCache() *ProfileCache {
	// 5 minute TTL, purge sweep every 10 minutes
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &ProfileCache{
		cache: c,
	}
}

func (r *ProfileCache) Save(user *entity.User) {
	if user == nil {
		return
	}
	r.cache.Set(user.Id.String(), user, cache.DefaultExpiration)
}

func (r *ProfileCache) Get(userId uuid.UUID) (*entity.User, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(*entity.User), true
	}
	return nil, false
}

func (r *ProfileCache) Delete(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
