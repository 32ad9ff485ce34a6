package auth

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginChecker_Session(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	loginChecker := NewLoginChecker(time.Hour, db)
	require.NotNil(t, loginChecker)

	ctx := context.Background()

	mock.ExpectGet(sessionKeyPrefix + "invalid token").SetErr(redis.Nil)
	session, err := loginChecker.Session(ctx, "invalid token")
	require.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Nil(t, session)

	testToken := "test-token"
	sessionKey := sessionKeyPrefix + testToken
	now := time.Now()

	mock.ExpectGet(sessionKey).SetVal(string(mustMarshalSession(t, Session{
		UserID:    "serj",
		CreatedAt: now,
	})))
	session, err = loginChecker.Session(ctx, testToken)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "serj", session.UserID)
	assert.False(t, session.IsAdmin)

	// expired sessions are as good as gone
	mock.ExpectGet(sessionKey).SetVal(string(mustMarshalSession(t, Session{
		UserID:    "serj",
		CreatedAt: now.Add(-2 * time.Hour),
	})))
	session, err = loginChecker.Session(ctx, testToken)
	require.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Nil(t, session)
}
