package storage

import (
	"time"

	"asha-assistant-be/pkg/assistant"

	"github.com/patrickmn/go-cache"
)

const profileKey = "asha_user_profile"

// MemoryStore keeps the profile and transcript mirrors in an in-process
// cache. Transcript mirrors expire with the cache's TTL; the profile is
// pinned.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	// Mirrors live for an hour, purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &MemoryStore{cache: c}
}

func (s *MemoryStore) Load() (*assistant.UserProfile, bool, error) {
	x, found := s.cache.Get(profileKey)
	if !found {
		return nil, false, nil
	}
	profile := x.(assistant.UserProfile)
	return &profile, true, nil
}

func (s *MemoryStore) Save(profile *assistant.UserProfile) error {
	s.cache.Set(profileKey, *profile, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Clear() error {
	s.cache.Delete(profileKey)
	return nil
}

func (s *MemoryStore) SaveTranscript(sessionID string, messages []assistant.Message) error {
	s.cache.Set("chat_"+sessionID, messages, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) LoadTranscript(sessionID string) ([]assistant.Message, bool, error) {
	x, found := s.cache.Get("chat_" + sessionID)
	if !found {
		return nil, false, nil
	}
	return x.([]assistant.Message), true, nil
}
