package profile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"vscch/internal/store"
)

// Store persists a single profile document.
type Store struct {
	Path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store { return &Store{Path: path} }

// Load reads the stored profile. found is false when no profile has been
// saved yet. Fields missing from the document keep their Default values.
func (s *Store) Load() (p Profile, found bool, err error) {
	p = Default()
	found, err = store.ReadJSON(s.Path, &p)
	if err != nil || !found {
		return Profile{}, found, err
	}
	if p.CustomOptions == nil {
		p.CustomOptions = []string{}
	}
	return p, true, nil
}

// Save replaces the stored profile atomically.
func (s *Store) Save(p Profile) error {
	if p.CustomOptions == nil {
		p.CustomOptions = []string{}
	}
	if err := store.WriteJSON(s.Path, p); err != nil {
		return fmt.Errorf("save profile %s: %w", s.Path, err)
	}
	return nil
}

// LoadYAML reads a profile from a YAML options file. Missing keys keep
// their Default values; unknown keys are rejected.
func LoadYAML(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, err
	}
	defer f.Close()
	p := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if p.CustomOptions == nil {
		p.CustomOptions = []string{}
	}
	return p, nil
}
