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

const userColumns = `"id", "email", "username", "passwordHash", "firstName", "lastName",
	"nativeLanguageId", "currentLanguageId", "createdAt", "updatedAt", "lastActiveAt"`

// SQLiteUserStore implements store.UserStore on the relational engine.
type SQLiteUserStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLiteUserStore creates the relational UserStore.
func NewSQLiteUserStore(db *sqlx.DB, log *slog.Logger) *SQLiteUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SQLiteUserStore{
		db:     db,
		logger: log.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*SQLiteUserStore)(nil)

// Create implements store.UserStore.Create. Both language references
// are verified inside the insert transaction; the schema's foreign
// keys back the same invariant.
func (s *SQLiteUserStore) Create(ctx context.Context, draft domain.UserDraft) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(draft)
	if err != nil {
		log.Warn("user validation failed during create", slog.String("error", err.Error()))
		return nil, err
	}

	err = RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := model.CheckReferences(ctx, refChecker{s.db}, "User", model.UserReferences(user)); err != nil {
			return err
		}
		_, err := ext(ctx, s.db).ExecContext(ctx,
			`INSERT INTO "User" (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			user.ID, user.Email, user.Username, user.PasswordHash,
			user.FirstName, user.LastName,
			user.NativeLanguageID, user.CurrentLanguageID,
			user.CreatedAt, user.UpdatedAt, user.LastActiveAt,
		)
		return mapError("User", false, err)
	})
	if err != nil {
		return nil, err
	}

	log.Info("user created",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))
	return user, nil
}

// GetByID implements store.UserStore.GetByID.
func (s *SQLiteUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getWhere(ctx, `"id" = ?`, id)
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *SQLiteUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getWhere(ctx, `"email" = ?`, email)
}

// GetByUsername implements store.UserStore.GetByUsername.
func (s *SQLiteUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getWhere(ctx, `"username" = ?`, username)
}

func (s *SQLiteUserStore) getWhere(ctx context.Context, where string, arg any) (*domain.User, error) {
	var user domain.User
	err := sqlx.GetContext(ctx, ext(ctx, s.db), &user,
		`SELECT `+userColumns+` FROM "User" WHERE `+where, arg)
	if err != nil {
		return nil, mapError("User", false, err)
	}
	return &user, nil
}

// List implements store.UserStore.List.
func (s *SQLiteUserStore) List(ctx context.Context, opts store.ListOptions) ([]*domain.User, error) {
	opts = opts.Normalize()

	users := []*domain.User{}
	err := sqlx.SelectContext(ctx, ext(ctx, s.db), &users,
		`SELECT `+userColumns+` FROM "User" ORDER BY "createdAt", "id" LIMIT ? OFFSET ?`,
		opts.Limit, opts.Offset)
	if err != nil {
		return nil, mapError("User", false, err)
	}
	return users, nil
}

// Update implements store.UserStore.Update. The statement deliberately
// omits updatedAt: the update trigger owns that column on this engine,
// and writing it here would race the trigger.
func (s *SQLiteUserStore) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	var updated *domain.User

	err := RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		user, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}

		user.Apply(patch)
		if err := user.Validate(); err != nil {
			return err
		}
		if err := model.CheckReferences(ctx, refChecker{s.db}, "User", model.UserReferences(user)); err != nil {
			return err
		}

		_, err = ext(ctx, s.db).ExecContext(ctx,
			`UPDATE "User" SET "email" = ?, "username" = ?, "passwordHash" = ?,
				"firstName" = ?, "lastName" = ?,
				"nativeLanguageId" = ?, "currentLanguageId" = ?, "lastActiveAt" = ?
			WHERE "id" = ?`,
			user.Email, user.Username, user.PasswordHash,
			user.FirstName, user.LastName,
			user.NativeLanguageID, user.CurrentLanguageID, user.LastActiveAt,
			user.ID,
		)
		if err != nil {
			return mapError("User", false, err)
		}

		// Re-read for the trigger-maintained updatedAt.
		updated, err = s.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete implements store.UserStore.Delete. The schema's foreign keys
// cascade the user's UserLanguage and UserVocabulary dependents (and
// transitively the vocabulary items) and null the author reference on
// the user's texts.
func (s *SQLiteUserStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := RunInTransaction(ctx, s.db, func(ctx context.Context) error {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		if err := restrictDelete(ctx, s.db, "User", id); err != nil {
			return err
		}
		_, err := ext(ctx, s.db).ExecContext(ctx, `DELETE FROM "User" WHERE "id" = ?`, id)
		return mapError("User", true, err)
	})
	if err != nil {
		return err
	}

	log.Info("user deleted", slog.String("user_id", id))
	return nil
}
