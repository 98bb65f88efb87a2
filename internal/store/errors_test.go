package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lexiglow/lexistore/internal/domain"
)

func TestTaxonomyClassification(t *testing.T) {
	assert.True(t, IsNotFound(ErrUserNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("looking up: %w", ErrTextNotFound)))
	assert.False(t, IsNotFound(ErrEmailExists))

	assert.True(t, IsConflict(ErrEmailExists))
	assert.True(t, IsConflict(ErrTermExists))
	assert.True(t, IsConflict(NewRestrictedDeleteError("Language", "User")))
	assert.False(t, IsConflict(ErrLanguageNotFound))

	assert.True(t, IsValidation(domain.NewValidationError("User", "email", "is required")))
	assert.False(t, IsValidation(ErrConflict))

	assert.True(t, IsUnavailable(fmt.Errorf("%w: dial tcp refused", ErrUnavailable)))
	assert.False(t, IsUnavailable(errors.New("some other error")))
}

func TestRestrictedDeleteErrorNamesBothEntities(t *testing.T) {
	err := NewRestrictedDeleteError("Language", "UserVocabulary")
	assert.Contains(t, err.Error(), "Language")
	assert.Contains(t, err.Error(), "UserVocabulary")
}

func TestListOptionsNormalize(t *testing.T) {
	opts := ListOptions{}.Normalize()
	assert.Equal(t, DefaultListLimit, opts.Limit)
	assert.Zero(t, opts.Offset)

	opts = ListOptions{Limit: -5, Offset: -1}.Normalize()
	assert.Equal(t, DefaultListLimit, opts.Limit)
	assert.Zero(t, opts.Offset)

	opts = ListOptions{Limit: 7, Offset: 3}.Normalize()
	assert.Equal(t, 7, opts.Limit)
	assert.Equal(t, 3, opts.Offset)
}
