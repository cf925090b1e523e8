package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/hexanode/accounts/internal/constants"
	"github.com/hexanode/accounts/internal/dto"
	apperrors "github.com/hexanode/accounts/internal/errors"
	"github.com/hexanode/accounts/internal/model"
	"github.com/hexanode/accounts/internal/repository"
	ctxutil "github.com/hexanode/accounts/pkg/context"
	"github.com/hexanode/accounts/pkg/logger"
	"github.com/hexanode/accounts/pkg/tokencache"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ConnectionMeta carries per-attempt client metadata recorded into the
// connection history. Device and Location may come from the request body;
// IPAddress and Browser are always derived server-side.
type ConnectionMeta struct {
	Device    string
	Location  string
	IPAddress string
	Browser   string
}

type UserService struct {
	users       *repository.UserRepository
	connections *repository.ConnectionRepository
	tokens      *TokenService
	denylist    *tokencache.Denylist
	bcryptCost  int
}

func NewUserService(
	users *repository.UserRepository,
	connections *repository.ConnectionRepository,
	tokens *TokenService,
	denylist *tokencache.Denylist,
	bcryptCost int,
) *UserService {
	if bcryptCost == 0 {
		bcryptCost = 12
	}
	return &UserService{
		users:       users,
		connections: connections,
		tokens:      tokens,
		denylist:    denylist,
		bcryptCost:  bcryptCost,
	}
}

func (s *UserService) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *UserService) checkPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// recordConnection appends a login-history entry. Failures here never fail
// the login itself.
func (s *UserService) recordConnection(ctx context.Context, userID uint, meta ConnectionMeta, status string) {
	conn := &model.UserConnection{
		UserID:         userID,
		ConnectionDate: time.Now(),
		Device:         meta.Device,
		Location:       meta.Location,
		IPAddress:      meta.IPAddress,
		Browser:        meta.Browser,
		Status:         status,
	}
	if err := s.connections.Append(ctx, conn); err != nil {
		logger.WarnWithContext(ctx, "Failed to record connection").
			Uint("user_id", userID).
			String("status", status).
			Err(err).
			Log()
	}
}

// Login verifies credentials, logs the attempt, and mints a token pair.
// Unknown email and wrong password produce the same error.
func (s *UserService) Login(ctx context.Context, email, password string, meta ConnectionMeta) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Login")

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Login failed: unknown email").
				String("email", email).
				Log()
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !s.checkPassword(user.Password, password) {
		logger.WarnWithContext(ctx, "Login failed: incorrect password").
			Uint("user_id", user.ID).
			Log()
		s.recordConnection(ctx, user.ID, meta, constants.ConnectionStatusFailed)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.recordConnection(ctx, user.ID, meta, constants.ConnectionStatusSuccess)

	logger.InfoWithContext(ctx, "User logged in").
		Uint("user_id", user.ID).
		String("email", user.Email).
		Log()

	return &dto.AuthResponse{
		Message:      constants.MsgLoginSuccess,
		User:         *userToResponse(user),
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

// Register creates the account and its settings atomically and signs the
// new user in. Duplicate emails surface as ErrEmailExists whether caught
// by the pre-check or by the unique index.
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Register")

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  hashedPassword,
		Phone:     strings.TrimSpace(req.Phone),
		Bio:       req.Bio,
		Location:  strings.TrimSpace(req.Location),
		Website:   strings.TrimSpace(req.Website),
		Gender:    req.Gender,
		Language:  req.Language,
		Avatar:    req.Avatar,
	}
	if user.Language == "" {
		user.Language = "Français"
	}
	if req.BirthDate != "" {
		if birthDate, err := time.Parse("2006-01-02", req.BirthDate); err == nil {
			user.BirthDate = &birthDate
		}
	}

	settings := DefaultSettings(req.Settings)

	if err := s.users.Register(ctx, user, &settings); err != nil {
		if apperrors.IsDomainError(err) {
			return nil, err
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	// Re-read so the response reflects exactly what was persisted.
	created, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	token, err := s.tokens.IssueAccessToken(created.ID, created.Email)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	refreshToken, err := s.tokens.IssueRefreshToken(created.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User registered").
		Uint("user_id", created.ID).
		String("email", created.Email).
		Log()

	return &dto.AuthResponse{
		Message:      constants.MsgRegisterSuccess,
		User:         *userToResponse(created),
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh mints a new access token for a valid, unrevoked refresh token
// whose account still exists. The refresh token itself is not rotated.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Refresh")

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		logger.WarnWithContext(ctx, "Refresh failed: invalid token").
			Err(err).
			Log()
		return nil, err
	}

	if claims.IssuedAt != nil {
		revoked, err := s.denylist.IsRevoked(ctx, claims.UserID, claims.IssuedAt.Time)
		if err != nil {
			logger.WarnWithContext(ctx, "Denylist check failed, allowing refresh").
				Uint("user_id", claims.UserID).
				Err(err).
				Log()
		} else if revoked {
			return nil, apperrors.ErrTokenRevoked
		}
	}

	exists, err := s.users.Exists(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !exists {
		logger.WarnWithContext(ctx, "Refresh failed: account no longer exists").
			Uint("user_id", claims.UserID).
			Log()
		return nil, apperrors.ErrUnknownAccount
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	token, err := s.tokens.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Token refreshed").
		Uint("user_id", user.ID).
		Log()

	return &dto.RefreshResponse{
		Message: constants.MsgTokenRefreshed,
		Token:   token,
	}, nil
}

// Logout revokes every outstanding token for the account.
func (s *UserService) Logout(ctx context.Context, userID uint) error {
	ctx = ctxutil.WithOperation(ctx, "service", "Logout")

	if err := s.denylist.RevokeAll(ctx, userID); err != nil {
		logger.WarnWithContext(ctx, "Failed to revoke tokens on logout").
			Uint("user_id", userID).
			Err(err).
			Log()
		// Logout still succeeds from the client's point of view.
	}

	logger.InfoWithContext(ctx, "User logged out").
		Uint("user_id", userID).
		Log()

	return nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "GetByID")

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return userToResponse(user), nil
}

func (s *UserService) GetAll(ctx context.Context, limit, offset int, search string) ([]dto.UserResponse, int64, int, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "GetAll")

	users, total, err := s.users.GetAll(ctx, limit, offset, search)
	if err != nil {
		return nil, 0, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	pageTotal := int(math.Ceil(float64(total) / float64(limit)))
	res := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		res = append(res, *userToResponse(&users[i]))
	}

	return res, total, pageTotal, nil
}

// Update modifies profile fields. Email is immutable here.
func (s *UserService) Update(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Update")

	fields := map[string]interface{}{}
	if req.FirstName != "" {
		fields["first_name"] = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		fields["last_name"] = strings.TrimSpace(req.LastName)
	}
	if req.Phone != "" {
		fields["phone"] = strings.TrimSpace(req.Phone)
	}
	if req.Bio != "" {
		fields["bio"] = req.Bio
	}
	if req.Location != "" {
		fields["location"] = strings.TrimSpace(req.Location)
	}
	if req.Website != "" {
		fields["website"] = strings.TrimSpace(req.Website)
	}
	if req.Gender != "" {
		fields["gender"] = req.Gender
	}
	if req.Language != "" {
		fields["language"] = req.Language
	}
	if req.Avatar != "" {
		fields["avatar"] = req.Avatar
	}
	if req.BirthDate != "" {
		if birthDate, err := time.Parse("2006-01-02", req.BirthDate); err == nil {
			fields["birth_date"] = birthDate
		}
	}

	if len(fields) > 0 {
		if err := s.users.Update(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	return s.GetByID(ctx, id)
}

// UpdatePassword verifies the current password before replacing it, then
// revokes all outstanding tokens so stolen sessions die with the old password.
func (s *UserService) UpdatePassword(ctx context.Context, id uint, req *dto.UpdatePasswordRequest) error {
	ctx = ctxutil.WithOperation(ctx, "service", "UpdatePassword")

	if req.NewPassword != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !s.checkPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrIncorrectPassword
	}

	hashedPassword, err := s.hashPassword(req.NewPassword)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.users.UpdatePassword(ctx, id, hashedPassword); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.denylist.RevokeAll(ctx, id); err != nil {
		logger.WarnWithContext(ctx, "Failed to revoke tokens after password change").
			Uint("user_id", id).
			Err(err).
			Log()
	}

	logger.InfoWithContext(ctx, "Password updated").
		Uint("user_id", id).
		Log()

	return nil
}

// UpdateSettings applies preference changes for the account.
func (s *UserService) UpdateSettings(ctx context.Context, id uint, req *dto.SettingsRequest) (*dto.SettingsResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "UpdateSettings")

	fields := map[string]interface{}{}
	if req.TwoFactorEnabled != nil {
		fields["two_factor_enabled"] = *req.TwoFactorEnabled
	}
	if req.EmailNotifications != nil {
		fields["email_notifications"] = *req.EmailNotifications
	}
	if req.PrivateSession != nil {
		fields["private_session"] = *req.PrivateSession
	}
	if req.PublicProfile != nil {
		fields["public_profile"] = *req.PublicProfile
	}
	if req.EmailSearchable != nil {
		fields["email_searchable"] = *req.EmailSearchable
	}
	if req.DataSharing != nil {
		fields["data_sharing"] = *req.DataSharing
	}
	if req.Timezone != "" {
		fields["timezone"] = req.Timezone
	}
	if req.DateFormat != "" {
		fields["date_format"] = req.DateFormat
	}

	if len(fields) > 0 {
		if err := s.users.UpdateSettings(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return settingsToResponse(user.Settings), nil
}

// ListConnections returns the account's login history, newest first.
func (s *UserService) ListConnections(ctx context.Context, userID uint, limit, offset int) ([]dto.ConnectionResponse, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ListConnections")

	conns, total, err := s.connections.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	res := make([]dto.ConnectionResponse, 0, len(conns))
	for _, c := range conns {
		res = append(res, dto.ConnectionResponse{
			ID:        c.ID,
			Date:      c.ConnectionDate,
			Device:    c.Device,
			Location:  c.Location,
			IPAddress: c.IPAddress,
			Browser:   c.Browser,
			Status:    c.Status,
		})
	}

	return res, total, nil
}

// Delete removes the account. Deleting yourself is the only permitted case
// at the handler layer; the service just executes.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "service", "Delete")

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	// Dead account, dead tokens.
	if err := s.denylist.RevokeAll(ctx, id); err != nil {
		logger.WarnWithContext(ctx, "Failed to revoke tokens after account deletion").
			Uint("user_id", id).
			Err(err).
			Log()
	}

	return nil
}

// userToResponse strips the password hash and flattens settings.
func userToResponse(user *model.User) *dto.UserResponse {
	res := &dto.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
		Bio:       user.Bio,
		Location:  user.Location,
		Website:   user.Website,
		Gender:    user.Gender,
		Language:  user.Language,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		Settings:  settingsToResponse(user.Settings),
	}
	if user.BirthDate != nil {
		res.BirthDate = user.BirthDate.Format("2006-01-02")
	}
	return res
}
