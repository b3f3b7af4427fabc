package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedStore() *Store {
	s := NewStore()
	s.nowFunc = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestLogin(t *testing.T) {
	s := fixedStore()

	_, ok := s.CurrentUser()
	assert.False(t, ok)

	assert.True(t, s.Login(Credentials{Email: "Demo@MedAR.com", Password: "demo123"}))
	u, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Sairam", u.Name)
	assert.Equal(t, RoleStudent, u.Role)
	assert.Equal(t, 2026, u.LastLogin.Year())
}

func TestLoginRejects(t *testing.T) {
	s := fixedStore()

	assert.False(t, s.Login(Credentials{Email: "demo@medar.com", Password: "wrong"}))
	assert.False(t, s.Login(Credentials{Email: "nobody@medar.com", Password: "password"}))
	_, ok := s.CurrentUser()
	assert.False(t, ok)
}

func TestLogout(t *testing.T) {
	s := fixedStore()
	require.True(t, s.Login(Credentials{Email: "admin@medar.com", Password: "password"}))

	s.Logout()
	_, ok := s.CurrentUser()
	assert.False(t, ok)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")

	s := fixedStore()
	require.True(t, s.Login(Credentials{Email: "instructor@medar.com", Password: "demo123"}))
	require.NoError(t, s.Save(path))

	restored := NewStore()
	require.NoError(t, restored.Load(path))
	u, ok := restored.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Dr. Smith", u.Name)
	assert.Equal(t, RoleInstructor, u.Role)

	restored.Logout()
	assert.ErrorIs(t, restored.Save(path), ErrNotSignedIn)
	assert.NoFileExists(t, path)
}

func TestLoadMissingFile(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(filepath.Join(t.TempDir(), "none.json")))
	_, ok := s.CurrentUser()
	assert.False(t, ok)
}
