package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/su2708/studyplan/internal/models"
	"github.com/su2708/studyplan/internal/storage"
)

const draftColumns = "id, book_title, test_day, today, items, created_at, updated_at"

// SaveDraft inserts or replaces a draft. CreatedAt and UpdatedAt are filled in when zero.
func (s *Store) SaveDraft(ctx context.Context, draft models.Draft) error {
	items, err := storage.EncodeItems(draft.Items)
	if err != nil {
		return err
	}
	now := time.Now()
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}
	draft.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO drafts (`+draftColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			book_title = excluded.book_title,
			test_day = excluded.test_day,
			today = excluded.today,
			items = excluded.items,
			updated_at = excluded.updated_at`,
		draft.ID, draft.BookTitle, draft.TestDay, draft.Today, string(items),
		formatTime(draft.CreatedAt), formatTime(draft.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

func (s *Store) GetDraft(ctx context.Context, id string) (models.Draft, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+draftColumns+" FROM drafts WHERE id = ?", id)
	draft, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Draft{}, fmt.Errorf("draft %s: %w", id, storage.ErrNotFound)
	}
	return draft, err
}

func (s *Store) ListDrafts(ctx context.Context) ([]models.Draft, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+draftColumns+" FROM drafts ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []models.Draft
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}
	return drafts, rows.Err()
}

func (s *Store) DeleteDraft(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM drafts WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("draft %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func scanDraft(row scanner) (models.Draft, error) {
	var (
		draft                models.Draft
		items                string
		createdAt, updatedAt string
	)
	if err := row.Scan(&draft.ID, &draft.BookTitle, &draft.TestDay, &draft.Today, &items, &createdAt, &updatedAt); err != nil {
		return models.Draft{}, err
	}
	var err error
	if draft.Items, err = storage.DecodeItems([]byte(items)); err != nil {
		return models.Draft{}, fmt.Errorf("draft %s: %w", draft.ID, err)
	}
	draft.CreatedAt = parseTime(createdAt)
	draft.UpdatedAt = parseTime(updatedAt)
	return draft, nil
}
