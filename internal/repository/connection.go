package repository

import (
	"context"

	"github.com/hexanode/accounts/internal/model"
	ctxutil "github.com/hexanode/accounts/pkg/context"
	"github.com/hexanode/accounts/pkg/logger"
	"gorm.io/gorm"
)

// ConnectionRepository persists the append-only login history.
type ConnectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// Append inserts one connection record. Records are never updated or
// deleted afterwards.
func (r *ConnectionRepository) Append(ctx context.Context, conn *model.UserConnection) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Append")

	if err := r.db.WithContext(ctx).Create(conn).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to append connection record").
			Uint("user_id", conn.UserID).
			Err(err).
			Log()
		return err
	}

	return nil
}

// ListByUser returns the account's connection history, newest first.
func (r *ConnectionRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]model.UserConnection, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "ListByUser")

	var total int64
	query := r.db.WithContext(ctx).Model(&model.UserConnection{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var conns []model.UserConnection
	err := query.Order("connection_date DESC").Limit(limit).Offset(offset).Find(&conns).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list connection history").
			Uint("user_id", userID).
			Err(err).
			Log()
		return nil, 0, err
	}

	return conns, total, nil
}
