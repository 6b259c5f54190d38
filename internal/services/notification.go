package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/database"
	"github.com/inspire-dataserver/data-share-hub/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService struct {
	db *database.DB
}

func NewNotificationService(db *database.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) Add(ctx context.Context, userID uuid.UUID, message, notifType string) (*models.Notification, error) {
	var n models.Notification
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, message, type)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, message, type, read, created_at
	`, userID, message, notifType).Scan(
		&n.ID, &n.UserID, &n.Message, &n.Type, &n.Read, &n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, user_id, message, type, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE
	`, userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkAsRead flips the read flag for a notification the user owns. The
// user_id filter is what prevents cross-user mutation; a foreign id looks
// like a missing notification. Marking an already-read row again succeeds.
func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `
		UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE
	`, userID)
	return err
}
