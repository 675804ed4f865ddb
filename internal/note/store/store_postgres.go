package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"memoria/internal/note"
	id "memoria/pkg/domain"
	"memoria/pkg/platform/sentinel"
	"memoria/pkg/platform/tx"
)

// PostgresStore persists notes and references in Postgres.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SaveNote(ctx context.Context, n *note.Note) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO notes (id, author_id, title, body, event_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID.String(), n.AuthorID.String(), n.Title, n.Body, n.EventDate, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetNote(ctx context.Context, noteID id.NoteID) (*note.Note, error) {
	q := tx.QuerierFrom(ctx, s.db)
	row := q.QueryRowContext(ctx, `
		SELECT id, author_id, title, body, event_date, created_at
		FROM notes WHERE id = $1`,
		noteID.String(),
	)
	return scanNote(row)
}

func (s *PostgresStore) ListNotes(ctx context.Context) ([]*note.Note, error) {
	q := tx.QuerierFrom(ctx, s.db)
	rows, err := q.QueryContext(ctx, `
		SELECT id, author_id, title, body, event_date, created_at
		FROM notes ORDER BY event_date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []*note.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

func (s *PostgresStore) DeleteNote(ctx context.Context, noteID id.NoteID) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, noteID.String())
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SaveReference(ctx context.Context, ref *note.Reference) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		INSERT INTO note_references (id, note_id, person_id, visibility_override, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		ON CONFLICT (note_id, person_id) DO NOTHING`,
		ref.ID.String(), ref.NoteID.String(), ref.PersonID.String(), ref.Override, ref.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save reference: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save reference rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) ListReferences(ctx context.Context, noteID id.NoteID) ([]*note.Reference, error) {
	q := tx.QuerierFrom(ctx, s.db)
	rows, err := q.QueryContext(ctx, `
		SELECT id, note_id, person_id, COALESCE(visibility_override, ''), created_at
		FROM note_references WHERE note_id = $1 ORDER BY created_at`,
		noteID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	defer rows.Close()

	var refs []*note.Reference
	for rows.Next() {
		var (
			rawID     string
			rawNoteID string
			rawPerson string
			ref       note.Reference
		)
		if err := rows.Scan(&rawID, &rawNoteID, &rawPerson, &ref.Override, &ref.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reference: %w", err)
		}
		if ref.ID, err = id.ParseReferenceID(rawID); err != nil {
			return nil, fmt.Errorf("parse reference id: %w", err)
		}
		if ref.NoteID, err = id.ParseNoteID(rawNoteID); err != nil {
			return nil, fmt.Errorf("parse reference note id: %w", err)
		}
		if ref.PersonID, err = id.ParsePersonID(rawPerson); err != nil {
			return nil, fmt.Errorf("parse reference person id: %w", err)
		}
		refs = append(refs, &ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate references: %w", err)
	}
	return refs, nil
}

// CreateNoteWithReferences writes the note and its references atomically.
// The transaction rides the context so SaveNote and SaveReference pick it up
// through the ambient-tx helper.
func (s *PostgresStore) CreateNoteWithReferences(ctx context.Context, n *note.Note, refs []*note.Reference) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin note tx: %w", err)
	}
	defer func() { _ = sqlTx.Rollback() }()

	txCtx := tx.WithTx(ctx, sqlTx)
	if err := s.SaveNote(txCtx, n); err != nil {
		return err
	}
	for _, ref := range refs {
		if err := s.SaveReference(txCtx, ref); err != nil {
			return err
		}
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit note tx: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*note.Note, error) {
	var (
		rawID     string
		rawAuthor string
		n         note.Note
	)
	if err := row.Scan(&rawID, &rawAuthor, &n.Title, &n.Body, &n.EventDate, &n.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}

	noteID, err := id.ParseNoteID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse note id: %w", err)
	}
	authorID, err := id.ParseUserID(rawAuthor)
	if err != nil {
		return nil, fmt.Errorf("parse note author id: %w", err)
	}
	n.ID = noteID
	n.AuthorID = authorID
	return &n, nil
}
