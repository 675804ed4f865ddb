//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"memoria/internal/auth"
	platformredis "memoria/internal/platform/redis"
	id "memoria/pkg/domain"
	"memoria/pkg/platform/sentinel"
	"memoria/pkg/testutil/containers"
)

type RedisSessionSuite struct {
	suite.Suite
	rc    *containers.RedisContainer
	store *RedisSessionStore
}

func TestRedisSessionSuite(t *testing.T) {
	suite.Run(t, new(RedisSessionSuite))
}

func (s *RedisSessionSuite) SetupSuite() {
	s.rc = containers.NewRedisContainer(s.T())
	s.store = NewRedisSessions(&platformredis.Client{Client: s.rc.Client})
}

func (s *RedisSessionSuite) SetupTest() {
	s.Require().NoError(s.rc.FlushAll(context.Background()))
}

func newSession(ttl time.Duration) *auth.Session {
	now := time.Now()
	return &auth.Session{
		ID:        id.NewSessionID(),
		UserID:    id.NewUserID(),
		ClientIP:  "203.0.113.7",
		Device:    "Firefox on Linux",
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (s *RedisSessionSuite) TestSaveAndGet() {
	ctx := context.Background()
	session := newSession(time.Minute)

	s.Require().NoError(s.store.SaveSession(ctx, session, time.Minute))

	got, err := s.store.GetSession(ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(session.UserID, got.UserID)
	s.Equal("Firefox on Linux", got.Device)
	s.Equal("203.0.113.7", got.ClientIP)
}

func (s *RedisSessionSuite) TestGetMissing() {
	_, err := s.store.GetSession(context.Background(), id.NewSessionID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisSessionSuite) TestTTLExpiry() {
	ctx := context.Background()
	session := newSession(100 * time.Millisecond)

	s.Require().NoError(s.store.SaveSession(ctx, session, 100*time.Millisecond))
	time.Sleep(200 * time.Millisecond)

	_, err := s.store.GetSession(ctx, session.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisSessionSuite) TestDelete() {
	ctx := context.Background()
	session := newSession(time.Minute)

	s.Require().NoError(s.store.SaveSession(ctx, session, time.Minute))
	s.Require().NoError(s.store.DeleteSession(ctx, session.ID))

	_, err := s.store.GetSession(ctx, session.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.DeleteSession(ctx, session.ID), sentinel.ErrNotFound)
}
