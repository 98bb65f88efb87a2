package sqlite

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/lexiglow/lexistore/internal/domain"
	"github.com/lexiglow/lexistore/internal/model"
	"github.com/lexiglow/lexistore/internal/platform/logger"
	"github.com/lexiglow/lexistore/internal/store"
)

const vocabularyItemColumns = `"id", "userVocabularyId", "term", "lemma", "stemma",
	"partOfSpeech", "frequency", "status", "timesReviewed", "confidenceLevel",
	"notes", "createdAt", "updatedAt"`

// SQLiteUserVocabularyItemStore implements
// store.UserVocabularyItemStore on the relational engine.
type SQLiteUserVocabularyItemStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLiteUserVocabularyItemStore creates the relational
// UserVocabularyItemStore.
func NewSQLiteUserVocabularyItemStore(db *sqlx.DB, log *slog.Logger) *SQLiteUserVocabularyItemStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SQLiteUserVocabularyItemStore{
		db:     db,
		logger: log.With(slog.String("component", "vocabulary_item_store")),
	}
}

var _ store.UserVocabularyItemStore = (*SQLiteUserVocabularyItemStore)(nil)

// Create implements store.UserVocabularyItemStore.Create. The unique
// (userVocabularyId, term) constraint keeps terms unique within their
// vocabulary.
func (s *SQLiteUserVocabularyItemStore) Create(ctx context.Context, draft domain.UserVocabularyItemDraft) (*domain.UserVocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item, err := domain.NewUserVocabularyItem(draft)
	if err != nil {
		return nil, err
	}

	err = RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := model.CheckReferences(ctx, refChecker{s.db}, "UserVocabularyItem", model.UserVocabularyItemReferences(item)); err != nil {
			return err
		}
		_, err := ext(ctx, s.db).ExecContext(ctx,
			`INSERT INTO "UserVocabularyItem" (`+vocabularyItemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.UserVocabularyID, item.Term, item.Lemma, item.Stemma,
			item.PartOfSpeech, item.Frequency, item.Status, item.TimesReviewed,
			item.ConfidenceLevel, item.Notes, item.CreatedAt, item.UpdatedAt,
		)
		return mapError("UserVocabularyItem", false, err)
	})
	if err != nil {
		return nil, err
	}

	log.Info("vocabulary item created",
		slog.String("item_id", item.ID),
		slog.String("vocabulary_id", item.UserVocabularyID))
	return item, nil
}

// GetByID implements store.UserVocabularyItemStore.GetByID.
func (s *SQLiteUserVocabularyItemStore) GetByID(ctx context.Context, id string) (*domain.UserVocabularyItem, error) {
	var item domain.UserVocabularyItem
	err := sqlx.GetContext(ctx, ext(ctx, s.db), &item,
		`SELECT `+vocabularyItemColumns+` FROM "UserVocabularyItem" WHERE "id" = ?`, id)
	if err != nil {
		return nil, mapError("UserVocabularyItem", false, err)
	}
	return &item, nil
}

// ListByVocabulary implements
// store.UserVocabularyItemStore.ListByVocabulary.
func (s *SQLiteUserVocabularyItemStore) ListByVocabulary(ctx context.Context, vocabularyID string, filter store.VocabularyItemFilter, opts store.ListOptions) ([]*domain.UserVocabularyItem, error) {
	opts = opts.Normalize()

	where := []string{`"userVocabularyId" = ?`}
	args := []any{vocabularyID}
	if filter.Status != nil {
		where = append(where, `"status" = ?`)
		args = append(args, *filter.Status)
	}
	args = append(args, opts.Limit, opts.Offset)

	items := []*domain.UserVocabularyItem{}
	query := `SELECT ` + vocabularyItemColumns + ` FROM "UserVocabularyItem" WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY "createdAt", "id" LIMIT ? OFFSET ?`
	if err := sqlx.SelectContext(ctx, ext(ctx, s.db), &items, query, args...); err != nil {
		return nil, mapError("UserVocabularyItem", false, err)
	}
	return items, nil
}

// Update implements store.UserVocabularyItemStore.Update. updatedAt is
// trigger-maintained and re-read after the write.
func (s *SQLiteUserVocabularyItemStore) Update(ctx context.Context, id string, patch domain.UserVocabularyItemPatch) (*domain.UserVocabularyItem, error) {
	var updated *domain.UserVocabularyItem

	err := RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		item, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}

		item.Apply(patch)
		if err := item.Validate(); err != nil {
			return err
		}

		_, err = ext(ctx, s.db).ExecContext(ctx,
			`UPDATE "UserVocabularyItem" SET "term" = ?, "lemma" = ?, "stemma" = ?,
				"partOfSpeech" = ?, "frequency" = ?, "status" = ?,
				"timesReviewed" = ?, "confidenceLevel" = ?, "notes" = ?
			WHERE "id" = ?`,
			item.Term, item.Lemma, item.Stemma,
			item.PartOfSpeech, item.Frequency, item.Status,
			item.TimesReviewed, item.ConfidenceLevel, item.Notes,
			item.ID,
		)
		if err != nil {
			return mapError("UserVocabularyItem", false, err)
		}

		updated, err = s.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete implements store.UserVocabularyItemStore.Delete.
func (s *SQLiteUserVocabularyItemStore) Delete(ctx context.Context, id string) error {
	return RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		res, err := ext(ctx, s.db).ExecContext(ctx,
			`DELETE FROM "UserVocabularyItem" WHERE "id" = ?`, id)
		if err != nil {
			return mapError("UserVocabularyItem", true, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return store.ErrUserVocabularyItemNotFound
		}
		return nil
	})
}
