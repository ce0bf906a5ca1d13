package memory

import (
	"time"

	"admission-assistant-be/pkg/kyc"

	"github.com/patrickmn/go-cache"
)

// KycProfileRepository keeps in-progress registration profiles in memory,
// keyed by chat session ID. Profiles expire with session inactivity; an
// expired profile simply restarts the registration flow.
type KycProfileRepository struct {
	cache *cache.Cache
}

func NewKycProfileRepository() *KycProfileRepository {
	// Default expiration 1 hour, purge sweep every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &KycProfileRepository{
		cache: c,
	}
}

func (r *KycProfileRepository) Get(sessionID string) (*kyc.Profile, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*kyc.Profile), true
	}
	return nil, false
}

func (r *KycProfileRepository) Save(sessionID string, profile *kyc.Profile) {
	r.cache.Set(sessionID, profile, cache.DefaultExpiration)
}

func (r *KycProfileRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
