package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-site/internal/models"
)

type ContactRepo struct {
	pool *pgxpool.Pool
}

func NewContactRepo(pool *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{pool: pool}
}

func (r *ContactRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	query, args, err := psql.
		Insert("contact_messages").
		Columns("id", "name", "email", "message", "remote_ip", "created_at").
		Values(msg.ID, msg.Name, msg.Email, msg.Message, msg.RemoteIP, msg.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

// ListRecent returns the newest messages first.
func (r *ContactRepo) ListRecent(ctx context.Context, limit uint64) ([]*models.ContactMessage, error) {
	query, args, err := psql.
		Select("id", "name", "email", "message", "remote_ip", "created_at").
		From("contact_messages").
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query contact messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.ContactMessage
	for rows.Next() {
		m := &models.ContactMessage{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.RemoteIP, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *ContactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.
		Delete("contact_messages").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return err
}
