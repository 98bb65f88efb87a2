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

const userLanguageColumns = `"userId", "languageId", "proficiencyLevel", "startedAt", "createdAt", "updatedAt"`

// SQLiteUserLanguageStore implements store.UserLanguageStore on the
// relational engine. Rows are keyed by the composite
// (userId, languageId) primary key.
type SQLiteUserLanguageStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLiteUserLanguageStore creates the relational UserLanguageStore.
func NewSQLiteUserLanguageStore(db *sqlx.DB, log *slog.Logger) *SQLiteUserLanguageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SQLiteUserLanguageStore{
		db:     db,
		logger: log.With(slog.String("component", "user_language_store")),
	}
}

var _ store.UserLanguageStore = (*SQLiteUserLanguageStore)(nil)

// Create implements store.UserLanguageStore.Create.
func (s *SQLiteUserLanguageStore) Create(ctx context.Context, draft domain.UserLanguageDraft) (*domain.UserLanguage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ul, err := domain.NewUserLanguage(draft)
	if err != nil {
		return nil, err
	}

	err = RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := model.CheckReferences(ctx, refChecker{s.db}, "UserLanguage", model.UserLanguageReferences(ul)); err != nil {
			return err
		}
		_, err := ext(ctx, s.db).ExecContext(ctx,
			`INSERT INTO "UserLanguage" (`+userLanguageColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
			ul.UserID, ul.LanguageID, ul.ProficiencyLevel, ul.StartedAt, ul.CreatedAt, ul.UpdatedAt,
		)
		return mapError("UserLanguage", false, err)
	})
	if err != nil {
		return nil, err
	}

	log.Info("user language created",
		slog.String("user_id", ul.UserID),
		slog.String("language_id", ul.LanguageID))
	return ul, nil
}

// Get implements store.UserLanguageStore.Get.
func (s *SQLiteUserLanguageStore) Get(ctx context.Context, userID, languageID string) (*domain.UserLanguage, error) {
	var ul domain.UserLanguage
	err := sqlx.GetContext(ctx, ext(ctx, s.db), &ul,
		`SELECT `+userLanguageColumns+` FROM "UserLanguage" WHERE "userId" = ? AND "languageId" = ?`,
		userID, languageID)
	if err != nil {
		return nil, mapError("UserLanguage", false, err)
	}
	return &ul, nil
}

// ListByUser implements store.UserLanguageStore.ListByUser.
func (s *SQLiteUserLanguageStore) ListByUser(ctx context.Context, userID string, opts store.ListOptions) ([]*domain.UserLanguage, error) {
	opts = opts.Normalize()

	uls := []*domain.UserLanguage{}
	err := sqlx.SelectContext(ctx, ext(ctx, s.db), &uls,
		`SELECT `+userLanguageColumns+` FROM "UserLanguage"
		WHERE "userId" = ? ORDER BY "createdAt", "languageId" LIMIT ? OFFSET ?`,
		userID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, mapError("UserLanguage", false, err)
	}
	return uls, nil
}

// Update implements store.UserLanguageStore.Update. updatedAt is
// trigger-maintained and deliberately not written here.
func (s *SQLiteUserLanguageStore) Update(ctx context.Context, userID, languageID string, patch domain.UserLanguagePatch) (*domain.UserLanguage, error) {
	var updated *domain.UserLanguage

	err := RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		ul, err := s.Get(ctx, userID, languageID)
		if err != nil {
			return err
		}

		ul.Apply(patch)
		if err := ul.Validate(); err != nil {
			return err
		}

		_, err = ext(ctx, s.db).ExecContext(ctx,
			`UPDATE "UserLanguage" SET "proficiencyLevel" = ?, "startedAt" = ?
			WHERE "userId" = ? AND "languageId" = ?`,
			ul.ProficiencyLevel, ul.StartedAt, userID, languageID,
		)
		if err != nil {
			return mapError("UserLanguage", false, err)
		}

		updated, err = s.Get(ctx, userID, languageID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete implements store.UserLanguageStore.Delete.
func (s *SQLiteUserLanguageStore) Delete(ctx context.Context, userID, languageID string) error {
	return RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		res, err := ext(ctx, s.db).ExecContext(ctx,
			`DELETE FROM "UserLanguage" WHERE "userId" = ? AND "languageId" = ?`,
			userID, languageID)
		if err != nil {
			return mapError("UserLanguage", true, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return store.ErrUserLanguageNotFound
		}
		return nil
	})
}
