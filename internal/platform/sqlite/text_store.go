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

const textColumns = `"id", "title", "content", "languageId", "userId",
	"proficiencyLevel", "wordCount", "isPublic", "source", "createdAt", "updatedAt"`

// SQLiteTextStore implements store.TextStore on the relational engine.
// Tag membership lives in the TextTagAssociation table; every read
// joins it back onto the returned entities so TagIDs round-trips.
type SQLiteTextStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLiteTextStore creates the relational TextStore.
func NewSQLiteTextStore(db *sqlx.DB, log *slog.Logger) *SQLiteTextStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SQLiteTextStore{
		db:     db,
		logger: log.With(slog.String("component", "text_store")),
	}
}

var _ store.TextStore = (*SQLiteTextStore)(nil)

// Create implements store.TextStore.Create. The text row and its tag
// association rows are written in one transaction.
func (s *SQLiteTextStore) Create(ctx context.Context, draft domain.TextDraft) (*domain.Text, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	text, err := domain.NewText(draft)
	if err != nil {
		return nil, err
	}

	err = RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := model.CheckReferences(ctx, refChecker{s.db}, "Text", model.TextReferences(text)); err != nil {
			return err
		}
		_, err := ext(ctx, s.db).ExecContext(ctx,
			`INSERT INTO "Text" (`+textColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			text.ID, text.Title, text.Content, text.LanguageID, text.AuthorID,
			text.ProficiencyLevel, text.WordCount, text.IsPublic, text.Source,
			text.CreatedAt, text.UpdatedAt,
		)
		if err != nil {
			return mapError("Text", false, err)
		}
		return s.insertTags(ctx, text.ID, text.TagIDs)
	})
	if err != nil {
		return nil, err
	}

	log.Info("text created",
		slog.String("text_id", text.ID),
		slog.String("language_id", text.LanguageID),
		slog.Int("word_count", text.WordCount))
	return text, nil
}

// GetByID implements store.TextStore.GetByID.
func (s *SQLiteTextStore) GetByID(ctx context.Context, id string) (*domain.Text, error) {
	var text domain.Text
	err := sqlx.GetContext(ctx, ext(ctx, s.db), &text,
		`SELECT `+textColumns+` FROM "Text" WHERE "id" = ?`, id)
	if err != nil {
		return nil, mapError("Text", false, err)
	}
	if err := s.loadTags(ctx, []*domain.Text{&text}); err != nil {
		return nil, err
	}
	return &text, nil
}

// List implements store.TextStore.List. The filter builds the WHERE
// clause; tag membership filters through an EXISTS on the association
// table.
func (s *SQLiteTextStore) List(ctx context.Context, filter store.TextFilter, opts store.ListOptions) ([]*domain.Text, error) {
	opts = opts.Normalize()

	where := []string{"1 = 1"}
	args := []any{}
	if filter.LanguageID != nil {
		where = append(where, `"languageId" = ?`)
		args = append(args, *filter.LanguageID)
	}
	if filter.AuthorID != nil {
		where = append(where, `"userId" = ?`)
		args = append(args, *filter.AuthorID)
	}
	if filter.Level != nil {
		where = append(where, `"proficiencyLevel" = ?`)
		args = append(args, *filter.Level)
	}
	if filter.PublicOnly {
		where = append(where, `"isPublic" = 1`)
	}
	if filter.TagID != nil {
		where = append(where, `EXISTS (SELECT 1 FROM "TextTagAssociation" a
			WHERE a."textId" = "Text"."id" AND a."tagId" = ?)`)
		args = append(args, *filter.TagID)
	}
	args = append(args, opts.Limit, opts.Offset)

	texts := []*domain.Text{}
	query := `SELECT ` + textColumns + ` FROM "Text" WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY "createdAt", "id" LIMIT ? OFFSET ?`
	if err := sqlx.SelectContext(ctx, ext(ctx, s.db), &texts, query, args...); err != nil {
		return nil, mapError("Text", false, err)
	}
	if err := s.loadTags(ctx, texts); err != nil {
		return nil, err
	}
	return texts, nil
}

// Update implements store.TextStore.Update. A patch carrying TagIDs
// replaces the association rows wholesale. updatedAt is
// trigger-maintained; replacing only associations does not advance it,
// so a tag-only patch touches the row to keep the timestamp honest.
func (s *SQLiteTextStore) Update(ctx context.Context, id string, patch domain.TextPatch) (*domain.Text, error) {
	var updated *domain.Text

	err := RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		text, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}

		text.Apply(patch)
		if err := text.Validate(); err != nil {
			return err
		}
		if err := model.CheckReferences(ctx, refChecker{s.db}, "Text", model.TextReferences(text)); err != nil {
			return err
		}

		_, err = ext(ctx, s.db).ExecContext(ctx,
			`UPDATE "Text" SET "title" = ?, "content" = ?, "proficiencyLevel" = ?,
				"wordCount" = ?, "isPublic" = ?, "source" = ?
			WHERE "id" = ?`,
			text.Title, text.Content, text.ProficiencyLevel,
			text.WordCount, text.IsPublic, text.Source,
			text.ID,
		)
		if err != nil {
			return mapError("Text", false, err)
		}

		if patch.TagIDs != nil {
			if _, err := ext(ctx, s.db).ExecContext(ctx,
				`DELETE FROM "TextTagAssociation" WHERE "textId" = ?`, id); err != nil {
				return mapError("Text", false, err)
			}
			if err := s.insertTags(ctx, id, text.TagIDs); err != nil {
				return err
			}
		}

		updated, err = s.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete implements store.TextStore.Delete. The association rows
// cascade through the schema's foreign keys.
func (s *SQLiteTextStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		res, err := ext(ctx, s.db).ExecContext(ctx, `DELETE FROM "Text" WHERE "id" = ?`, id)
		if err != nil {
			return mapError("Text", true, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return store.ErrTextNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("text deleted", slog.String("text_id", id))
	return nil
}

func (s *SQLiteTextStore) insertTags(ctx context.Context, textID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		_, err := ext(ctx, s.db).ExecContext(ctx,
			`INSERT INTO "TextTagAssociation" ("textId", "tagId") VALUES (?, ?)`,
			textID, tagID)
		if err != nil {
			return mapError("Text", false, err)
		}
	}
	return nil
}

// loadTags populates TagIDs on the given texts with one batched query.
// Association rows come back in tag-id order to match the sorted-set
// representation on the entity.
func (s *SQLiteTextStore) loadTags(ctx context.Context, texts []*domain.Text) error {
	if len(texts) == 0 {
		return nil
	}

	ids := make([]string, len(texts))
	byID := make(map[string]*domain.Text, len(texts))
	for i, t := range texts {
		ids[i] = t.ID
		byID[t.ID] = t
		t.TagIDs = nil
	}

	query, args, err := sqlx.In(
		`SELECT "textId", "tagId" FROM "TextTagAssociation"
		WHERE "textId" IN (?) ORDER BY "tagId"`, ids)
	if err != nil {
		return err
	}

	rows := []struct {
		TextID string `db:"textId"`
		TagID  string `db:"tagId"`
	}{}
	if err := sqlx.SelectContext(ctx, ext(ctx, s.db), &rows, s.db.Rebind(query), args...); err != nil {
		return mapError("Text", false, err)
	}
	for _, row := range rows {
		t := byID[row.TextID]
		t.TagIDs = append(t.TagIDs, row.TagID)
	}
	return nil
}
