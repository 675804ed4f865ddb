//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"memoria/internal/audit"
	id "memoria/pkg/domain"
	"memoria/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = NewPostgres(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.pg.TruncateTables(context.Background(), "audit_events")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestAppendAndListByActor() {
	ctx := context.Background()
	actor := id.NewUserID()
	other := id.NewUserID()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	events := []audit.Event{
		{ID: uuid.New(), ActorID: actor, Action: "person.created", Subject: "person:1", OccurredAt: base},
		{ID: uuid.New(), ActorID: other, Action: "note.created", Subject: "note:9", OccurredAt: base},
		{ID: uuid.New(), ActorID: actor, Action: "note.created", Subject: "note:2", Detail: "title", OccurredAt: base.Add(time.Minute)},
	}
	for _, e := range events {
		s.Require().NoError(s.store.Append(ctx, e))
	}

	got, err := s.store.ListByActor(ctx, actor)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("note.created", got[0].Action)
	s.Equal("title", got[0].Detail)
	s.Equal("person.created", got[1].Action)
	s.Equal(actor, got[0].ActorID)
}

func (s *PostgresStoreSuite) TestAppendWithoutActorStoresNull() {
	ctx := context.Background()

	event := audit.Event{
		ID:         uuid.New(),
		Action:     "user.registered",
		Subject:    "user:new",
		OccurredAt: time.Now().UTC(),
	}
	s.Require().NoError(s.store.Append(ctx, event))

	var actorIsNull bool
	err := s.pg.DB.QueryRowContext(ctx,
		`SELECT actor_id IS NULL FROM audit_events WHERE id = $1`, event.ID).Scan(&actorIsNull)
	s.Require().NoError(err)
	s.True(actorIsNull)
}

func (s *PostgresStoreSuite) TestListByActorEmpty() {
	got, err := s.store.ListByActor(context.Background(), id.NewUserID())
	s.Require().NoError(err)
	s.Empty(got)
}
