package service

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/ikkim/shop-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNotFoundError(t *testing.T) {
	err := fmt.Errorf("handler: %w", &NotFoundError{Kind: "product", ID: 7})

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "product", notFound.Kind)
	assert.Equal(t, "product with id 7 not found", notFound.Error())
}

func TestNotCreatedError_Message(t *testing.T) {
	err := newNotCreated("delivery type", map[string]string{
		"name": "already exists",
		"id":   "unexpected",
	})
	assert.Equal(t, "failed to create delivery type: id unexpected, name already exists", err.Error())
}

func TestWrapErrors(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: users.phone")

	err := wrapCreateError("user", cause)
	var notCreated *NotCreatedError
	require.True(t, errors.As(err, &notCreated))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, map[string]string{"phone": "user with this phone already exists"}, notCreated.Fields)

	err = wrapUpdateError("user", 3, gorm.ErrRecordNotFound)
	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))

	err = wrapDeleteError("product", 3, errors.New("FOREIGN KEY constraint failed"))
	var notDeleted *NotDeletedError
	require.True(t, errors.As(err, &notDeleted))
	assert.Empty(t, notDeleted.FieldErrors())
	assert.Equal(t, apperrors.ResourceConflict, notDeleted.ClientCode())
	assert.Equal(t, "product references or is referenced by other records", notDeleted.ClientMessage())
	assert.Contains(t, notDeleted.Error(), "FOREIGN KEY constraint failed")
}

func TestWrapErrors_UnclassifiedCauseStaysInternal(t *testing.T) {
	cause := errors.New(`ERROR: deadlock detected (SQLSTATE 40P01)`)

	err := wrapUpdateError("order", 5, cause)
	var notUpdated *NotUpdatedError
	require.True(t, errors.As(err, &notUpdated))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, apperrors.InternalDatabaseError, notUpdated.ClientCode())
	assert.Equal(t, "failed to persist order", notUpdated.ClientMessage())
	assert.NotContains(t, notUpdated.ClientMessage(), "SQLSTATE")
}

func TestFieldFailure_ClientMessage(t *testing.T) {
	err := newNotUpdated("product", map[string]string{"price": "must be positive"})
	var notUpdated *NotUpdatedError
	require.True(t, errors.As(err, &notUpdated))
	assert.Empty(t, notUpdated.ClientCode())
	assert.Equal(t, "invalid product", notUpdated.ClientMessage())
	assert.Equal(t, map[string]string{"price": "must be positive"}, notUpdated.FieldErrors())
}
