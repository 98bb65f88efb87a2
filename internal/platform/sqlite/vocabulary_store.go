package sqlite

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/lexiglow/lexistore/internal/domain"
	"github.com/lexiglow/lexistore/internal/model"
	"github.com/lexiglow/lexistore/internal/platform/logger"
	"github.com/lexiglow/lexistore/internal/store"
)

const vocabularyColumns = `"id", "userId", "languageId", "name", "createdAt", "updatedAt"`

// SQLiteUserVocabularyStore implements store.UserVocabularyStore on the
// relational engine.
type SQLiteUserVocabularyStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLiteUserVocabularyStore creates the relational
// UserVocabularyStore.
func NewSQLiteUserVocabularyStore(db *sqlx.DB, log *slog.Logger) *SQLiteUserVocabularyStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SQLiteUserVocabularyStore{
		db:     db,
		logger: log.With(slog.String("component", "vocabulary_store")),
	}
}

var _ store.UserVocabularyStore = (*SQLiteUserVocabularyStore)(nil)

// Create implements store.UserVocabularyStore.Create. The unique
// (userId, languageId) constraint enforces the one-vocabulary-per-
// language rule.
func (s *SQLiteUserVocabularyStore) Create(ctx context.Context, draft domain.UserVocabularyDraft) (*domain.UserVocabulary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	vocab, err := domain.NewUserVocabulary(draft)
	if err != nil {
		return nil, err
	}

	err = RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := model.CheckReferences(ctx, refChecker{s.db}, "UserVocabulary", model.UserVocabularyReferences(vocab)); err != nil {
			return err
		}
		_, err := ext(ctx, s.db).ExecContext(ctx,
			`INSERT INTO "UserVocabulary" (`+vocabularyColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
			vocab.ID, vocab.UserID, vocab.LanguageID, vocab.Name,
			vocab.CreatedAt, vocab.UpdatedAt,
		)
		return mapError("UserVocabulary", false, err)
	})
	if err != nil {
		return nil, err
	}

	log.Info("vocabulary created",
		slog.String("vocabulary_id", vocab.ID),
		slog.String("user_id", vocab.UserID),
		slog.String("language_id", vocab.LanguageID))
	return vocab, nil
}

// GetByID implements store.UserVocabularyStore.GetByID.
func (s *SQLiteUserVocabularyStore) GetByID(ctx context.Context, id string) (*domain.UserVocabulary, error) {
	var vocab domain.UserVocabulary
	err := sqlx.GetContext(ctx, ext(ctx, s.db), &vocab,
		`SELECT `+vocabularyColumns+` FROM "UserVocabulary" WHERE "id" = ?`, id)
	if err != nil {
		return nil, mapError("UserVocabulary", false, err)
	}
	return &vocab, nil
}

// GetByUserAndLanguage implements
// store.UserVocabularyStore.GetByUserAndLanguage.
func (s *SQLiteUserVocabularyStore) GetByUserAndLanguage(ctx context.Context, userID, languageID string) (*domain.UserVocabulary, error) {
	var vocab domain.UserVocabulary
	err := sqlx.GetContext(ctx, ext(ctx, s.db), &vocab,
		`SELECT `+vocabularyColumns+` FROM "UserVocabulary" WHERE "userId" = ? AND "languageId" = ?`,
		userID, languageID)
	if err != nil {
		return nil, mapError("UserVocabulary", false, err)
	}
	return &vocab, nil
}

// ListByUser implements store.UserVocabularyStore.ListByUser.
func (s *SQLiteUserVocabularyStore) ListByUser(ctx context.Context, userID string, opts store.ListOptions) ([]*domain.UserVocabulary, error) {
	opts = opts.Normalize()

	vocabs := []*domain.UserVocabulary{}
	err := sqlx.SelectContext(ctx, ext(ctx, s.db), &vocabs,
		`SELECT `+vocabularyColumns+` FROM "UserVocabulary"
		WHERE "userId" = ? ORDER BY "createdAt", "id" LIMIT ? OFFSET ?`,
		userID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, mapError("UserVocabulary", false, err)
	}
	return vocabs, nil
}

// Update implements store.UserVocabularyStore.Update. Only the display
// name is patchable; updatedAt is trigger-maintained and re-read after
// the write.
func (s *SQLiteUserVocabularyStore) Update(ctx context.Context, id string, patch domain.UserVocabularyPatch) (*domain.UserVocabulary, error) {
	var updated *domain.UserVocabulary

	err := RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		vocab, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}

		vocab.Apply(patch)
		if err := vocab.Validate(); err != nil {
			return err
		}

		_, err = ext(ctx, s.db).ExecContext(ctx,
			`UPDATE "UserVocabulary" SET "name" = ? WHERE "id" = ?`,
			vocab.Name, vocab.ID,
		)
		if err != nil {
			return mapError("UserVocabulary", false, err)
		}

		updated, err = s.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete implements store.UserVocabularyStore.Delete. The vocabulary's
// items cascade through the schema's foreign keys.
func (s *SQLiteUserVocabularyStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		res, err := ext(ctx, s.db).ExecContext(ctx, `DELETE FROM "UserVocabulary" WHERE "id" = ?`, id)
		if err != nil {
			return mapError("UserVocabulary", true, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return store.ErrUserVocabularyNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("vocabulary deleted", slog.String("vocabulary_id", id))
	return nil
}
