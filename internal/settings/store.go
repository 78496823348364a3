// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/chatguru/chatguru-tui/internal/model"
)

var bucketPreferences = []byte("preferences")

// Keys in the preferences bucket.
const (
	KeyOnboardingCompleted   = "onboarding_completed"
	KeyProfileSetupCompleted = "profile_setup_completed"
	KeyGender                = "gender"
	KeyAge                   = "age"
	KeyLanguage              = "language"
)

var (
	// ErrInvalidAge is returned by SaveProfile for ages outside 12-99.
	ErrInvalidAge = fmt.Errorf("age must be between %d and %d", model.MinAge, model.MaxAge)

	// ErrInvalidGender is returned by SaveProfile for unknown genders.
	ErrInvalidGender = errors.New("invalid gender")

	// ErrInvalidLanguage is returned for unknown languages.
	ErrInvalidLanguage = errors.New("invalid language")
)

// Preferences is a snapshot of everything in the store.
type Preferences struct {
	OnboardingCompleted   bool
	ProfileSetupCompleted bool
	Profile               model.UserProfile
}

// Store is the bbolt-backed settings store.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the settings file at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create settings directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open settings %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPreferences)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init settings: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// READS
// =============================================================================

// Snapshot reads all keys in one transaction.
func (s *Store) Snapshot() (Preferences, error) {
	var p Preferences
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPreferences)
		p.OnboardingCompleted = getBool(b, KeyOnboardingCompleted)
		p.ProfileSetupCompleted = getBool(b, KeyProfileSetupCompleted)
		p.Profile = readProfile(b)
		return nil
	})
	if err != nil {
		return Preferences{}, fmt.Errorf("read settings: %w", err)
	}
	return p, nil
}

// OnboardingCompleted reports whether the intro screens were finished.
func (s *Store) OnboardingCompleted() (bool, error) {
	p, err := s.Snapshot()
	return p.OnboardingCompleted, err
}

// ProfileSetupCompleted reports whether a profile was saved.
func (s *Store) ProfileSetupCompleted() (bool, error) {
	p, err := s.Snapshot()
	return p.ProfileSetupCompleted, err
}

// Profile returns the stored profile, defaulting each field on its own.
func (s *Store) Profile() (model.UserProfile, error) {
	p, err := s.Snapshot()
	if err != nil {
		return model.DefaultProfile(), err
	}
	return p.Profile, nil
}

func readProfile(b *bolt.Bucket) model.UserProfile {
	profile := model.DefaultProfile()

	if raw := b.Get([]byte(KeyGender)); raw != nil {
		d := model.ParseGender(string(raw))
		if d.Fallback {
			log.Printf("[settings] unknown gender %q, using %s", raw, d.Value)
		}
		profile.Gender = d.Value
	}
	if raw := b.Get([]byte(KeyAge)); raw != nil {
		d := model.ParseAge(string(raw))
		if d.Fallback {
			log.Printf("[settings] invalid age %q, using %d", raw, d.Value)
		}
		profile.Age = d.Value
	}
	if raw := b.Get([]byte(KeyLanguage)); raw != nil {
		d := model.ParseLanguage(string(raw))
		if d.Fallback {
			log.Printf("[settings] unknown language %q, using %s", raw, d.Value)
		}
		profile.PreferredLanguage = d.Value
	}
	return profile
}

func getBool(b *bolt.Bucket, key string) bool {
	raw := b.Get([]byte(key))
	if raw == nil {
		return false
	}
	v, err := strconv.ParseBool(string(raw))
	if err != nil {
		log.Printf("[settings] invalid %s %q, using false", key, raw)
		return false
	}
	return v
}

// =============================================================================
// WRITES
// =============================================================================

// SetOnboardingCompleted marks the intro screens as finished.
func (s *Store) SetOnboardingCompleted() error {
	return s.put(map[string]string{KeyOnboardingCompleted: "true"})
}

// SaveProfile validates and stores profile, and marks profile setup as
// completed.
func (s *Store) SaveProfile(profile model.UserProfile) error {
	if !model.ValidAge(profile.Age) {
		return fmt.Errorf("%w: got %d", ErrInvalidAge, profile.Age)
	}
	if !profile.Gender.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidGender, profile.Gender)
	}
	if !profile.PreferredLanguage.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, profile.PreferredLanguage)
	}
	return s.put(map[string]string{
		KeyProfileSetupCompleted: "true",
		KeyGender:                profile.Gender.String(),
		KeyAge:                   strconv.Itoa(profile.Age),
		KeyLanguage:              profile.PreferredLanguage.String(),
	})
}

// UpdateLanguage changes only the preferred language.
func (s *Store) UpdateLanguage(lang model.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}
	return s.put(map[string]string{KeyLanguage: lang.String()})
}

// ResetOnboarding clears both flags but keeps the profile fields.
func (s *Store) ResetOnboarding() error {
	return s.put(map[string]string{
		KeyOnboardingCompleted:   "false",
		KeyProfileSetupCompleted: "false",
	})
}

// ClearAll removes every key.
func (s *Store) ClearAll() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketPreferences); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(bucketPreferences)
		return err
	})
}

// put writes all pairs in one transaction.
func (s *Store) put(kv map[string]string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPreferences)
		for k, v := range kv {
			if err := b.Put([]byte(k), []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
