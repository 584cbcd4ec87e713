package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type notificationRepoPG struct{ pool *pgxpool.Pool }

func NewNotificationRepoPG(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepoPG{pool: pool}
}

const notificationCols = `id, user_id, title, message, notification_type, is_read, related_id, created_at`

func (r *notificationRepoPG) scanNotification(row pgx.Row) (*Notification, error) {
	var n Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.NotificationType,
		&n.IsRead, &n.RelatedID, &n.CreatedAt)
	return &n, err
}

func (r *notificationRepoPG) Create(ctx context.Context, n *Notification) error {
	n.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notification (id, user_id, title, message, notification_type, is_read, related_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		n.ID, n.UserID, n.Title, n.Message, n.NotificationType, n.IsRead, n.RelatedID)
	return err
}

func (r *notificationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	return r.scanNotification(r.pool.QueryRow(ctx, `SELECT `+notificationCols+` FROM notification WHERE id = $1`, id))
}

func (r *notificationRepoPG) List(ctx context.Context, userID uuid.UUID, onlyUnread bool, limit, offset int) ([]*Notification, int, error) {
	where := ` WHERE user_id = $1`
	if onlyUnread {
		where += ` AND NOT is_read`
	}
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notification`+where, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+notificationCols+` FROM notification`+where+` ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Notification
	for rows.Next() {
		n, err := r.scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, nil
}

func (r *notificationRepoPG) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notification WHERE user_id = $1 AND NOT is_read`, userID).Scan(&count)
	return count, err
}

func (r *notificationRepoPG) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notification SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

func (r *notificationRepoPG) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notification SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID)
	return err
}
