package sqlite

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/lexiglow/lexistore/internal/domain"
	"github.com/lexiglow/lexistore/internal/platform/logger"
	"github.com/lexiglow/lexistore/internal/store"
)

const textTagColumns = `"id", "name", "description"`

// SQLiteTextTagStore implements store.TextTagStore on the relational
// engine.
type SQLiteTextTagStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLiteTextTagStore creates the relational TextTagStore.
func NewSQLiteTextTagStore(db *sqlx.DB, log *slog.Logger) *SQLiteTextTagStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SQLiteTextTagStore{
		db:     db,
		logger: log.With(slog.String("component", "text_tag_store")),
	}
}

var _ store.TextTagStore = (*SQLiteTextTagStore)(nil)

// Create implements store.TextTagStore.Create.
func (s *SQLiteTextTagStore) Create(ctx context.Context, draft domain.TextTagDraft) (*domain.TextTag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tag, err := domain.NewTextTag(draft)
	if err != nil {
		return nil, err
	}

	err = RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		_, err := ext(ctx, s.db).ExecContext(ctx,
			`INSERT INTO "TextTag" (`+textTagColumns+`) VALUES (?, ?, ?)`,
			tag.ID, tag.Name, tag.Description,
		)
		return mapError("TextTag", false, err)
	})
	if err != nil {
		return nil, err
	}

	log.Info("text tag created",
		slog.String("tag_id", tag.ID),
		slog.String("name", tag.Name))
	return tag, nil
}

// GetByID implements store.TextTagStore.GetByID.
func (s *SQLiteTextTagStore) GetByID(ctx context.Context, id string) (*domain.TextTag, error) {
	return s.getWhere(ctx, `"id" = ?`, id)
}

// GetByName implements store.TextTagStore.GetByName.
func (s *SQLiteTextTagStore) GetByName(ctx context.Context, name string) (*domain.TextTag, error) {
	return s.getWhere(ctx, `"name" = ?`, name)
}

func (s *SQLiteTextTagStore) getWhere(ctx context.Context, where string, arg any) (*domain.TextTag, error) {
	var tag domain.TextTag
	err := sqlx.GetContext(ctx, ext(ctx, s.db), &tag,
		`SELECT `+textTagColumns+` FROM "TextTag" WHERE `+where, arg)
	if err != nil {
		return nil, mapError("TextTag", false, err)
	}
	return &tag, nil
}

// List implements store.TextTagStore.List. Tags have no timestamps, so
// they list in name order.
func (s *SQLiteTextTagStore) List(ctx context.Context, opts store.ListOptions) ([]*domain.TextTag, error) {
	opts = opts.Normalize()

	tags := []*domain.TextTag{}
	err := sqlx.SelectContext(ctx, ext(ctx, s.db), &tags,
		`SELECT `+textTagColumns+` FROM "TextTag" ORDER BY "name" LIMIT ? OFFSET ?`,
		opts.Limit, opts.Offset)
	if err != nil {
		return nil, mapError("TextTag", false, err)
	}
	return tags, nil
}

// Update implements store.TextTagStore.Update.
func (s *SQLiteTextTagStore) Update(ctx context.Context, id string, patch domain.TextTagPatch) (*domain.TextTag, error) {
	var updated *domain.TextTag

	err := RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		tag, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}

		tag.Apply(patch)
		if err := tag.Validate(); err != nil {
			return err
		}

		_, err = ext(ctx, s.db).ExecContext(ctx,
			`UPDATE "TextTag" SET "name" = ?, "description" = ? WHERE "id" = ?`,
			tag.Name, tag.Description, tag.ID,
		)
		if err != nil {
			return mapError("TextTag", false, err)
		}

		updated = tag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete implements store.TextTagStore.Delete. Association rows cascade
// through the schema's foreign keys; the texts themselves are untouched.
func (s *SQLiteTextTagStore) Delete(ctx context.Context, id string) error {
	return RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		res, err := ext(ctx, s.db).ExecContext(ctx, `DELETE FROM "TextTag" WHERE "id" = ?`, id)
		if err != nil {
			return mapError("TextTag", true, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return store.ErrTextTagNotFound
		}
		return nil
	})
}
