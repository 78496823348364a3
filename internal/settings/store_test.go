// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatguru/chatguru-tui/internal/model"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestDefaults(t *testing.T) {
	s, _ := openTestStore(t)

	p, err := s.Snapshot()
	require.NoError(t, err)
	assert.False(t, p.OnboardingCompleted)
	assert.False(t, p.ProfileSetupCompleted)
	assert.Equal(t, model.DefaultProfile(), p.Profile)
}

func TestSaveProfile(t *testing.T) {
	s, _ := openTestStore(t)
	want := model.UserProfile{Gender: model.GenderFemale, Age: 31, PreferredLanguage: model.LanguageBengali}

	require.NoError(t, s.SaveProfile(want))

	got, err := s.Profile()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	done, err := s.ProfileSetupCompleted()
	require.NoError(t, err)
	assert.True(t, done)
}

func TestSaveProfile_Validation(t *testing.T) {
	s, _ := openTestStore(t)

	err := s.SaveProfile(model.UserProfile{Gender: model.GenderMale, Age: 11, PreferredLanguage: model.LanguageEnglish})
	assert.ErrorIs(t, err, ErrInvalidAge)
	err = s.SaveProfile(model.UserProfile{Gender: model.GenderMale, Age: 100, PreferredLanguage: model.LanguageEnglish})
	assert.ErrorIs(t, err, ErrInvalidAge)
	err = s.SaveProfile(model.UserProfile{Gender: "ROBOT", Age: 20, PreferredLanguage: model.LanguageEnglish})
	assert.ErrorIs(t, err, ErrInvalidGender)
	err = s.SaveProfile(model.UserProfile{Gender: model.GenderMale, Age: 20, PreferredLanguage: "KLINGON"})
	assert.ErrorIs(t, err, ErrInvalidLanguage)

	done, err := s.ProfileSetupCompleted()
	require.NoError(t, err)
	assert.False(t, done)
}

func TestSaveProfile_AgeBounds(t *testing.T) {
	s, _ := openTestStore(t)

	for _, age := range []int{model.MinAge, model.MaxAge} {
		require.NoError(t, s.SaveProfile(model.UserProfile{Gender: model.GenderOther, Age: age, PreferredLanguage: model.LanguageHindi}))
		got, err := s.Profile()
		require.NoError(t, err)
		assert.Equal(t, age, got.Age)
	}
}

func TestCorruptValuesFallBackIndependently(t *testing.T) {
	s, _ := openTestStore(t)
	require.NoError(t, s.SaveProfile(model.UserProfile{Gender: model.GenderMale, Age: 40, PreferredLanguage: model.LanguageHinglish}))

	require.NoError(t, s.put(map[string]string{KeyLanguage: "ESPERANTO"}))
	got, err := s.Profile()
	require.NoError(t, err)
	assert.Equal(t, model.LanguageEnglish, got.PreferredLanguage)
	assert.Equal(t, model.GenderMale, got.Gender)
	assert.Equal(t, 40, got.Age)

	require.NoError(t, s.put(map[string]string{KeyGender: "??", KeyAge: "old"}))
	got, err = s.Profile()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultGender, got.Gender)
	assert.Equal(t, model.DefaultAge, got.Age)

	require.NoError(t, s.put(map[string]string{KeyOnboardingCompleted: "maybe"}))
	done, err := s.OnboardingCompleted()
	require.NoError(t, err)
	assert.False(t, done)
}

func TestUpdateLanguage(t *testing.T) {
	s, _ := openTestStore(t)
	require.NoError(t, s.SaveProfile(model.UserProfile{Gender: model.GenderFemale, Age: 22, PreferredLanguage: model.LanguageEnglish}))

	require.NoError(t, s.UpdateLanguage(model.LanguageHindi))

	got, err := s.Profile()
	require.NoError(t, err)
	assert.Equal(t, model.LanguageHindi, got.PreferredLanguage)
	assert.Equal(t, 22, got.Age)
	assert.ErrorIs(t, s.UpdateLanguage("NOPE"), ErrInvalidLanguage)
}

func TestResetOnboardingKeepsProfile(t *testing.T) {
	s, _ := openTestStore(t)
	profile := model.UserProfile{Gender: model.GenderOther, Age: 50, PreferredLanguage: model.LanguageBengali}
	require.NoError(t, s.SetOnboardingCompleted())
	require.NoError(t, s.SaveProfile(profile))

	require.NoError(t, s.ResetOnboarding())

	p, err := s.Snapshot()
	require.NoError(t, err)
	assert.False(t, p.OnboardingCompleted)
	assert.False(t, p.ProfileSetupCompleted)
	assert.Equal(t, profile, p.Profile)
}

func TestClearAll(t *testing.T) {
	s, _ := openTestStore(t)
	require.NoError(t, s.SetOnboardingCompleted())
	require.NoError(t, s.SaveProfile(model.UserProfile{Gender: model.GenderMale, Age: 30, PreferredLanguage: model.LanguageHindi}))

	require.NoError(t, s.ClearAll())

	p, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, Preferences{Profile: model.DefaultProfile()}, p)
}

func TestPersistsAcrossReopen(t *testing.T) {
	s, path := openTestStore(t)
	require.NoError(t, s.SetOnboardingCompleted())
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	done, err := reopened.OnboardingCompleted()
	require.NoError(t, err)
	assert.True(t, done)
}
