// Command seed provisions a storage engine with the schema and a small
// set of sample data, exercising the full repository surface in
// dependency order. It is idempotent: entities that already exist are
// looked up instead of recreated.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/lexiglow/lexistore/internal/config"
	"github.com/lexiglow/lexistore/internal/domain"
	"github.com/lexiglow/lexistore/internal/platform/logger"
	"github.com/lexiglow/lexistore/internal/platform/mongodb"
	"github.com/lexiglow/lexistore/internal/platform/sqlite"
	"github.com/lexiglow/lexistore/internal/store"
)

func main() {
	// A .env file is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.Setup(cfg.LogLevel)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	stores, cleanup, err := openEngine(ctx, cfg, log)
	if err != nil {
		log.Error("opening storage engine",
			slog.String("engine", cfg.Engine),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	if err := seed(ctx, stores, log); err != nil {
		log.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("seeding complete", slog.String("engine", cfg.Engine))
}

func openEngine(ctx context.Context, cfg *config.Config, log *slog.Logger) (*store.Stores, func(), error) {
	switch cfg.Engine {
	case "mongodb":
		db, err := mongodb.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := mongodb.EnsureSchema(ctx, db); err != nil {
			_ = mongodb.Disconnect(ctx, db)
			return nil, nil, err
		}
		cleanup := func() { _ = mongodb.Disconnect(context.Background(), db) }
		return mongodb.NewStores(db, log), cleanup, nil
	default:
		db, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		cleanup := func() { _ = db.Close() }
		return sqlite.NewStores(db, log), cleanup, nil
	}
}

// seed writes the sample data in dependency order: languages first,
// then users and tags, then everything referencing them.
func seed(ctx context.Context, s *store.Stores, log *slog.Logger) error {
	english, err := ensureLanguage(ctx, s, domain.LanguageDraft{
		Name: "English", Code: "en", NativeName: "English",
	})
	if err != nil {
		return err
	}
	german, err := ensureLanguage(ctx, s, domain.LanguageDraft{
		Name: "German", Code: "de", NativeName: "Deutsch",
	})
	if err != nil {
		return err
	}

	user, err := ensureUser(ctx, s, domain.UserDraft{
		Email:             "demo@lexiglow.dev",
		Username:          "demo",
		PasswordHash:      "$argon2id$v=19$m=65536,t=3,p=4$c2VlZA$placeholder",
		FirstName:         "Demo",
		LastName:          "Learner",
		NativeLanguageID:  english.ID,
		CurrentLanguageID: german.ID,
	})
	if err != nil {
		return err
	}

	if _, err := s.UserLanguages.Get(ctx, user.ID, german.ID); store.IsNotFound(err) {
		_, err = s.UserLanguages.Create(ctx, domain.UserLanguageDraft{
			UserID:           user.ID,
			LanguageID:       german.ID,
			ProficiencyLevel: domain.ProficiencyA2,
			StartedAt:        time.Now().AddDate(0, -3, 0),
		})
		if err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	beginner, err := ensureTag(ctx, s, "beginner")
	if err != nil {
		return err
	}
	stories, err := ensureTag(ctx, s, "short-stories")
	if err != nil {
		return err
	}

	// Texts have no natural key; skip when the demo author already has one.
	existing, err := s.Texts.List(ctx, store.TextFilter{AuthorID: &user.ID}, store.ListOptions{Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		_, err = s.Texts.Create(ctx, domain.TextDraft{
			Title:            "Der kleine Garten",
			Content:          "Hinter dem Haus liegt ein kleiner Garten. Dort wachsen Tomaten und Kräuter.",
			LanguageID:       german.ID,
			AuthorID:         &user.ID,
			ProficiencyLevel: domain.ProficiencyA2,
			IsPublic:         true,
			TagIDs:           []string{beginner.ID, stories.ID},
		})
		if err != nil {
			return err
		}
	}

	vocab, err := s.Vocabularies.GetByUserAndLanguage(ctx, user.ID, german.ID)
	if store.IsNotFound(err) {
		vocab, err = s.Vocabularies.Create(ctx, domain.UserVocabularyDraft{
			UserID:     user.ID,
			LanguageID: german.ID,
			Name:       "German essentials",
		})
	}
	if err != nil {
		return err
	}

	for _, term := range []string{"Haus", "Garten", "wachsen"} {
		_, err := s.VocabularyItems.Create(ctx, domain.UserVocabularyItemDraft{
			UserVocabularyID: vocab.ID,
			Term:             term,
		})
		if err != nil && !store.IsConflict(err) {
			return err
		}
	}

	log.Info("sample data in place",
		slog.String("user_id", user.ID),
		slog.String("vocabulary_id", vocab.ID))
	return nil
}

func ensureLanguage(ctx context.Context, s *store.Stores, draft domain.LanguageDraft) (*domain.Language, error) {
	lang, err := s.Languages.GetByCode(ctx, draft.Code)
	if err == nil {
		return lang, nil
	}
	if !store.IsNotFound(err) {
		return nil, err
	}
	return s.Languages.Create(ctx, draft)
}

func ensureUser(ctx context.Context, s *store.Stores, draft domain.UserDraft) (*domain.User, error) {
	user, err := s.Users.GetByEmail(ctx, draft.Email)
	if err == nil {
		return user, nil
	}
	if !store.IsNotFound(err) {
		return nil, err
	}
	return s.Users.Create(ctx, draft)
}

func ensureTag(ctx context.Context, s *store.Stores, name string) (*domain.TextTag, error) {
	tag, err := s.TextTags.GetByName(ctx, name)
	if err == nil {
		return tag, nil
	}
	if !store.IsNotFound(err) {
		return nil, err
	}
	return s.TextTags.Create(ctx, domain.TextTagDraft{Name: name})
}
