package service

import (
	"context"
	"testing"

	"campusnet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationListClampsPagination(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &stubNotificationRepo{
		listForUser: func(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, error) {
			gotLimit, gotOffset = limit, offset
			return []models.Notification{{ID: 1}}, nil
		},
	}
	svc := NewNotificationService(repo)

	listed, err := svc.List(context.Background(), 1, 0, -1)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, 20, gotLimit)
	assert.Equal(t, 0, gotOffset)
}

func TestNotificationMarkReadPropagatesNotFound(t *testing.T) {
	repo := &stubNotificationRepo{
		markRead: func(ctx context.Context, userID, id uint) error {
			return models.NewNotFoundError("Notification", id)
		},
	}
	svc := NewNotificationService(repo)

	err := svc.MarkRead(context.Background(), 1, 99)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
