package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	apperrors "github.com/hexanode/accounts/internal/errors"
	"github.com/hexanode/accounts/internal/model"
	ctxutil "github.com/hexanode/accounts/pkg/context"
	"github.com/hexanode/accounts/pkg/logger"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// isDuplicateEntry matches the MySQL unique-constraint violation. The unique
// index on users.email is the source of truth for uniqueness; the pre-check
// inside the registration transaction only exists for the common fast path.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByID")

	var user model.User
	result := r.db.WithContext(ctx).Preload("Settings").First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}
		logger.ErrorWithContext(ctx, "Failed to get user by ID").
			Uint("user_id", id).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByEmail")

	var user model.User
	result := r.db.WithContext(ctx).Preload("Settings").Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}
		logger.ErrorWithContext(ctx, "Failed to get user by email").
			String("email", email).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &user, nil
}

func (r *UserRepository) GetAll(ctx context.Context, limit, offset int, search string) ([]model.User, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetAll")

	start := time.Now()
	var users []model.User
	var total int64

	query := r.db.WithContext(ctx).Model(&model.User{})

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"first_name LIKE ? OR last_name LIKE ? OR email LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count users").
			Err(err).
			Log()
		return nil, 0, err
	}

	if err := query.Preload("Settings").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch users").
			Int("limit", limit).
			Int("offset", offset).
			Err(err).
			Log()
		return nil, 0, err
	}

	logger.DebugWithContext(ctx, "Users retrieved").
		Int64("total", total).
		Int("returned_count", len(users)).
		Duration(time.Since(start)).
		Log()

	return users, total, nil
}

// Register creates the account and its settings row in one transaction.
// Both rows exist afterwards or neither does. A duplicate email aborts with
// ErrEmailExists whether it is caught by the pre-check or by the unique
// index during insert (the check-then-insert race loses to the constraint).
func (r *UserRepository) Register(ctx context.Context, user *model.User, settings *model.UserSettings) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Register")

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrEmailExists
		}

		if err := tx.Create(user).Error; err != nil {
			return err
		}

		settings.UserID = user.ID
		return tx.Create(settings).Error
	})

	if err != nil {
		if isDuplicateEntry(err) {
			logger.WarnWithContext(ctx, "Concurrent duplicate registration hit unique index").
				String("email", user.Email).
				Log()
			return apperrors.ErrEmailExists
		}
		return err
	}

	logger.InfoWithContext(ctx, "User registered").
		String("email", user.Email).
		Uint("user_id", user.ID).
		Log()

	return nil
}

// Update modifies profile fields (email and password are excluded).
func (r *UserRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Update")

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update user").
			Uint("user_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "UpdatePassword")

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password", hashedPassword)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update password").
			Uint("user_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpdateSettings overwrites the preference row for the account.
func (r *UserRepository) UpdateSettings(ctx context.Context, userID uint, fields map[string]interface{}) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "UpdateSettings")

	result := r.db.WithContext(ctx).Model(&model.UserSettings{}).Where("user_id = ?", userID).Updates(fields)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update settings").
			Uint("user_id", userID).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Exists reports whether the account still exists. Used by the refresh
// endpoint to reject tokens for deleted accounts.
func (r *UserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "Exists")

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the account, its settings and its connection history.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Delete")

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.UserSettings{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.UserConnection{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.ErrorWithContext(ctx, "Failed to delete user").
				Uint("user_id", id).
				Err(err).
				Log()
		}
		return err
	}

	logger.InfoWithContext(ctx, "User deleted").
		Uint("user_id", id).
		Log()

	return nil
}
