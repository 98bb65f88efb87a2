package sqlite

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/lexiglow/lexistore/internal/domain"
	"github.com/lexiglow/lexistore/internal/platform/logger"
	"github.com/lexiglow/lexistore/internal/store"
)

const languageColumns = `"id", "name", "code", "nativeName", "createdAt"`

// SQLiteLanguageStore implements store.LanguageStore on the relational
// engine.
type SQLiteLanguageStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLiteLanguageStore creates the relational LanguageStore. The
// database connection is initialized and owned by the caller.
func NewSQLiteLanguageStore(db *sqlx.DB, log *slog.Logger) *SQLiteLanguageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SQLiteLanguageStore{
		db:     db,
		logger: log.With(slog.String("component", "language_store")),
	}
}

var _ store.LanguageStore = (*SQLiteLanguageStore)(nil)

// Create implements store.LanguageStore.Create.
func (s *SQLiteLanguageStore) Create(ctx context.Context, draft domain.LanguageDraft) (*domain.Language, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	lang, err := domain.NewLanguage(draft)
	if err != nil {
		return nil, err
	}

	err = RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		_, err := ext(ctx, s.db).ExecContext(ctx,
			`INSERT INTO "Language" (`+languageColumns+`) VALUES (?, ?, ?, ?, ?)`,
			lang.ID, lang.Name, lang.Code, lang.NativeName, lang.CreatedAt,
		)
		return mapError("Language", false, err)
	})
	if err != nil {
		return nil, err
	}

	log.Info("language created",
		slog.String("language_id", lang.ID),
		slog.String("code", lang.Code))
	return lang, nil
}

// GetByID implements store.LanguageStore.GetByID.
func (s *SQLiteLanguageStore) GetByID(ctx context.Context, id string) (*domain.Language, error) {
	var lang domain.Language
	err := sqlx.GetContext(ctx, ext(ctx, s.db), &lang,
		`SELECT `+languageColumns+` FROM "Language" WHERE "id" = ?`, id)
	if err != nil {
		return nil, mapError("Language", false, err)
	}
	return &lang, nil
}

// GetByCode implements store.LanguageStore.GetByCode.
func (s *SQLiteLanguageStore) GetByCode(ctx context.Context, code string) (*domain.Language, error) {
	var lang domain.Language
	err := sqlx.GetContext(ctx, ext(ctx, s.db), &lang,
		`SELECT `+languageColumns+` FROM "Language" WHERE "code" = ?`, code)
	if err != nil {
		return nil, mapError("Language", false, err)
	}
	return &lang, nil
}

// List implements store.LanguageStore.List.
func (s *SQLiteLanguageStore) List(ctx context.Context, opts store.ListOptions) ([]*domain.Language, error) {
	opts = opts.Normalize()

	langs := []*domain.Language{}
	err := sqlx.SelectContext(ctx, ext(ctx, s.db), &langs,
		`SELECT `+languageColumns+` FROM "Language" ORDER BY "createdAt", "id" LIMIT ? OFFSET ?`,
		opts.Limit, opts.Offset)
	if err != nil {
		return nil, mapError("Language", false, err)
	}
	return langs, nil
}

// Update implements store.LanguageStore.Update. The language code is
// immutable; only display metadata is patchable.
func (s *SQLiteLanguageStore) Update(ctx context.Context, id string, patch domain.LanguagePatch) (*domain.Language, error) {
	var updated *domain.Language

	err := RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		lang, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}

		lang.Apply(patch)
		if err := lang.Validate(); err != nil {
			return err
		}

		_, err = ext(ctx, s.db).ExecContext(ctx,
			`UPDATE "Language" SET "name" = ?, "nativeName" = ? WHERE "id" = ?`,
			lang.Name, lang.NativeName, lang.ID,
		)
		if err != nil {
			return mapError("Language", false, err)
		}

		updated = lang
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete implements store.LanguageStore.Delete. Users, Texts, and
// UserVocabularies restrict the delete; UserLanguage associations
// cascade through the schema's foreign keys.
func (s *SQLiteLanguageStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		if err := restrictDelete(ctx, s.db, "Language", id); err != nil {
			return err
		}
		_, err := ext(ctx, s.db).ExecContext(ctx, `DELETE FROM "Language" WHERE "id" = ?`, id)
		return mapError("Language", true, err)
	})
	if err != nil {
		return err
	}

	log.Info("language deleted", slog.String("language_id", id))
	return nil
}
