package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"asha-assistant-be/pkg/assistant"
)

// FileStore persists the profile as a JSON file so it survives process
// restarts the way localStorage survives page reloads.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*assistant.UserProfile, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var profile assistant.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, false, err
	}
	return &profile, true, nil
}

func (s *FileStore) Save(profile *assistant.UserProfile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
