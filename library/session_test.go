package library

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// SessionStoreSuite exercises the durable session store.
type SessionStoreSuite struct {
	suite.Suite
	path  string
	store *SessionStore
}

func (s *SessionStoreSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "state.db")
	store, err := OpenSessionStore(s.path)
	require.NoError(s.T(), err)
	s.store = store
}

func (s *SessionStoreSuite) TearDownTest() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *SessionStoreSuite) reopen() {
	require.NoError(s.T(), s.store.Close())
	store, err := OpenSessionStore(s.path)
	require.NoError(s.T(), err)
	s.store = store
}

func (s *SessionStoreSuite) TestStartsEmpty() {
	assert.Nil(s.T(), s.store.Current())
}

func (s *SessionStoreSuite) TestLoginPersistsAcrossReopen() {
	sess := Session{SubjectID: "u1", Name: "Alice", Role: RoleStudent, Token: "tok"}
	require.NoError(s.T(), s.store.Login(sess))
	require.NotNil(s.T(), s.store.Current())

	s.reopen()

	got := s.store.Current()
	require.NotNil(s.T(), got, "session should survive a restart")
	assert.Equal(s.T(), "Alice", got.Name)
	assert.Equal(s.T(), RoleStudent, got.Role)
	assert.Equal(s.T(), "tok", got.Token)
}

func (s *SessionStoreSuite) TestLogoutClears() {
	require.NoError(s.T(), s.store.Login(Session{SubjectID: "u1", Name: "Alice", Role: RoleStudent, Token: "tok"}))
	require.NoError(s.T(), s.store.Logout())
	assert.Nil(s.T(), s.store.Current())

	s.reopen()
	assert.Nil(s.T(), s.store.Current())
}

func (s *SessionStoreSuite) TestLoginReplacesPreviousSession() {
	require.NoError(s.T(), s.store.Login(Session{SubjectID: "u1", Name: "Alice", Role: RoleStudent, Token: "a"}))
	require.NoError(s.T(), s.store.Login(Session{SubjectID: "u2", Name: "Lara", Role: RoleLibrarian, Token: "b"}))

	s.reopen()
	got := s.store.Current()
	require.NotNil(s.T(), got)
	assert.Equal(s.T(), "u2", got.SubjectID)
	assert.Equal(s.T(), RoleLibrarian, got.Role)
}

func (s *SessionStoreSuite) TestRejectsUnknownRole() {
	err := s.store.Login(Session{SubjectID: "u1", Name: "X", Role: "admin", Token: "t"})
	assert.Error(s.T(), err)
}

func (s *SessionStoreSuite) TestExpiredJWTDiscardedOnLoad() {
	token := signedJWT(s.T(), time.Now().Add(-time.Hour))
	require.NoError(s.T(), s.store.Login(Session{SubjectID: "u1", Name: "Alice", Role: RoleStudent, Token: token}))

	s.reopen()
	assert.Nil(s.T(), s.store.Current(), "expired token should not be restored")
}

func (s *SessionStoreSuite) TestLiveJWTKeptOnLoad() {
	token := signedJWT(s.T(), time.Now().Add(time.Hour))
	require.NoError(s.T(), s.store.Login(Session{SubjectID: "u1", Name: "Alice", Role: RoleStudent, Token: token}))

	s.reopen()
	require.NotNil(s.T(), s.store.Current())
}

func (s *SessionStoreSuite) TestOpaqueTokenKeptOnLoad() {
	require.NoError(s.T(), s.store.Login(Session{SubjectID: "u1", Name: "Alice", Role: RoleStudent, Token: "not-a-jwt"}))

	s.reopen()
	require.NotNil(s.T(), s.store.Current(), "opaque tokens are the server's business")
}

func TestSessionStoreSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreSuite))
}

func signedJWT(t *testing.T, expiry time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(expiry),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	assert.True(t, tokenExpired(signedJWT(t, now.Add(-time.Minute)), now))
	assert.False(t, tokenExpired(signedJWT(t, now.Add(time.Minute)), now))
	assert.False(t, tokenExpired("opaque-token", now))
}
