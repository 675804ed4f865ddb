package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoria/internal/note"
	notestore "memoria/internal/note/store"
	"memoria/internal/person"
	personstore "memoria/internal/person/store"
	"memoria/internal/platform/middleware"
	"memoria/internal/preference"
	prefstore "memoria/internal/preference/store"
	"memoria/internal/visibility"
	id "memoria/pkg/domain"
	"memoria/pkg/testutil"
)

type nopAuditor struct{}

func (nopAuditor) Record(context.Context, string, string, string) {}

type stubValidator struct {
	claims *middleware.JWTClaims
}

func (v *stubValidator) ValidateToken(string) (*middleware.JWTClaims, error) {
	return v.claims, nil
}

// fixture wires the full read path with in-memory stores so handler tests
// exercise real resolution, not stubbed outcomes.
type fixture struct {
	router   http.Handler
	people   *person.Service
	prefs    *preference.Service
	authorID id.UserID
}

func newFixture(t *testing.T, admin bool) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	people := person.NewService(personstore.NewMemory(), nopAuditor{})
	prefs := preference.NewService(prefstore.NewMemory(), nopAuditor{})
	notes := note.NewService(notestore.NewMemory(), people, prefs, nopAuditor{}, logger, nil)

	authorID := id.NewUserID()
	validator := &stubValidator{claims: &middleware.JWTClaims{
		UserID:    authorID,
		SessionID: id.NewSessionID(),
		Admin:     admin,
	}}

	h := New(notes, logger, nil, validator)
	r := chi.NewRouter()
	h.Register(r)

	return &fixture{router: r, people: people, prefs: prefs, authorID: authorID}
}

func (f *fixture) addPerson(t *testing.T, base string, claimed bool) *person.Person {
	t.Helper()
	p, err := f.people.Create(context.Background(), "Miriam Adler", base)
	require.NoError(t, err)
	if claimed {
		_, err = f.people.RecordClaim(context.Background(), p.ID, id.NewUserID())
		require.NoError(t, err)
	}
	return p
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer test-token")
	return req
}

func (f *fixture) createNote(t *testing.T, refs []map[string]string) *note.Note {
	t.Helper()
	body := map[string]any{
		"title":      "The summer house",
		"body":       "We spent every August there.",
		"event_date": "1987-08-01",
	}
	if refs != nil {
		body["references"] = refs
	}
	req := authed(testutil.NewJSONRequest(t, http.MethodPost, "/notes", body))
	rr := testutil.DoRequest(f.router, req)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	return testutil.UnmarshalResponse[note.Note](t, rr)
}

func TestCreateNote(t *testing.T) {
	t.Run("creates without references", func(t *testing.T) {
		f := newFixture(t, false)
		n := f.createNote(t, nil)
		assert.Equal(t, f.authorID, n.AuthorID)
	})

	t.Run("rejects bad event date", func(t *testing.T) {
		f := newFixture(t, false)
		req := authed(testutil.NewJSONRequest(t, http.MethodPost, "/notes", map[string]any{
			"title":      "t",
			"body":       "b",
			"event_date": "August 1987",
		}))
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("rejects loosening override", func(t *testing.T) {
		f := newFixture(t, false)
		p := f.addPerson(t, "blurred", true)
		req := authed(testutil.NewJSONRequest(t, http.MethodPost, "/notes", map[string]any{
			"title":      "t",
			"body":       "b",
			"event_date": "1987-08-01",
			"references": []map[string]string{
				{"person_id": p.ID.String(), "visibility_override": "approved"},
			},
		}))
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_input")
	})

	t.Run("requires auth", func(t *testing.T) {
		f := newFixture(t, false)
		req := testutil.NewJSONRequest(t, http.MethodPost, "/notes", map[string]any{})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}

func TestGetNote_ResolutionEndToEnd(t *testing.T) {
	t.Run("approved claimed person shows name", func(t *testing.T) {
		f := newFixture(t, false)
		p := f.addPerson(t, "approved", true)
		n := f.createNote(t, []map[string]string{{"person_id": p.ID.String()}})

		req := authed(testutil.NewRequest(t, http.MethodGet, "/notes/"+n.ID.String()))
		rr := testutil.DoRequest(f.router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		view := testutil.UnmarshalResponse[note.View](t, rr)
		require.Len(t, view.People, 1)
		assert.Equal(t, visibility.Approved, view.People[0].Visibility)
		require.NotNil(t, view.People[0].Name)
		assert.Equal(t, "Miriam Adler", *view.People[0].Name)
	})

	t.Run("override tightens to blurred, name withheld", func(t *testing.T) {
		f := newFixture(t, false)
		p := f.addPerson(t, "approved", true)
		n := f.createNote(t, []map[string]string{
			{"person_id": p.ID.String(), "visibility_override": "blurred"},
		})

		req := authed(testutil.NewRequest(t, http.MethodGet, "/notes/"+n.ID.String()))
		rr := testutil.DoRequest(f.router, req)

		view := testutil.UnmarshalResponse[note.View](t, rr)
		require.Len(t, view.People, 1)
		assert.Equal(t, visibility.Blurred, view.People[0].Visibility)
		assert.Nil(t, view.People[0].Name)
	})

	t.Run("global removed preference drops the reference", func(t *testing.T) {
		f := newFixture(t, false)
		p := f.addPerson(t, "approved", true)
		n := f.createNote(t, []map[string]string{{"person_id": p.ID.String()}})

		_, err := f.prefs.SetGlobal(context.Background(), "removed")
		require.NoError(t, err)

		req := authed(testutil.NewRequest(t, http.MethodGet, "/notes/"+n.ID.String()))
		rr := testutil.DoRequest(f.router, req)

		view := testutil.UnmarshalResponse[note.View](t, rr)
		assert.Empty(t, view.People)
	})

	t.Run("author preference fills a pending base", func(t *testing.T) {
		f := newFixture(t, false)
		p := f.addPerson(t, "pending", true)
		n := f.createNote(t, []map[string]string{{"person_id": p.ID.String()}})

		_, err := f.prefs.SetContributor(context.Background(), f.authorID, "anonymized")
		require.NoError(t, err)

		req := authed(testutil.NewRequest(t, http.MethodGet, "/notes/"+n.ID.String()))
		rr := testutil.DoRequest(f.router, req)

		view := testutil.UnmarshalResponse[note.View](t, rr)
		require.Len(t, view.People, 1)
		assert.Equal(t, visibility.Anonymized, view.People[0].Visibility)
		assert.Nil(t, view.People[0].Name)
	})

	t.Run("unclaimed person never appears", func(t *testing.T) {
		f := newFixture(t, false)
		p := f.addPerson(t, "approved", false)
		n := f.createNote(t, []map[string]string{{"person_id": p.ID.String()}})

		req := authed(testutil.NewRequest(t, http.MethodGet, "/notes/"+n.ID.String()))
		rr := testutil.DoRequest(f.router, req)

		view := testutil.UnmarshalResponse[note.View](t, rr)
		assert.Empty(t, view.People)
	})

	t.Run("unknown note id", func(t *testing.T) {
		f := newFixture(t, false)
		req := authed(testutil.NewRequest(t, http.MethodGet, "/notes/"+id.NewNoteID().String()))
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})
}

func TestTimeline(t *testing.T) {
	f := newFixture(t, false)
	f.createNote(t, nil)

	req := authed(testutil.NewRequest(t, http.MethodGet, "/notes"))
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	views := testutil.UnmarshalResponse[[]*note.View](t, rr)
	assert.Len(t, *views, 1)
}

func TestDeleteNote(t *testing.T) {
	f := newFixture(t, false)
	n := f.createNote(t, nil)

	req := authed(testutil.NewRequest(t, http.MethodDelete, "/notes/"+n.ID.String()))
	rr := testutil.DoRequest(f.router, req)
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	req = authed(testutil.NewRequest(t, http.MethodGet, "/notes/"+n.ID.String()))
	rr = testutil.DoRequest(f.router, req)
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}

func TestAddReferences(t *testing.T) {
	f := newFixture(t, false)
	p := f.addPerson(t, "approved", true)
	n := f.createNote(t, nil)

	t.Run("adds and resolves", func(t *testing.T) {
		req := authed(testutil.NewJSONRequest(t, http.MethodPost,
			"/notes/"+n.ID.String()+"/references",
			map[string]any{"references": []map[string]string{{"person_id": p.ID.String()}}},
		))
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)

		req = authed(testutil.NewRequest(t, http.MethodGet, "/notes/"+n.ID.String()))
		rr = testutil.DoRequest(f.router, req)
		view := testutil.UnmarshalResponse[note.View](t, rr)
		assert.Len(t, view.People, 1)
	})

	t.Run("duplicate reference conflicts", func(t *testing.T) {
		req := authed(testutil.NewJSONRequest(t, http.MethodPost,
			"/notes/"+n.ID.String()+"/references",
			map[string]any{"references": []map[string]string{{"person_id": p.ID.String()}}},
		))
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
	})

	t.Run("empty list rejected", func(t *testing.T) {
		req := authed(testutil.NewJSONRequest(t, http.MethodPost,
			"/notes/"+n.ID.String()+"/references",
			map[string]any{"references": []map[string]string{}},
		))
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})
}
