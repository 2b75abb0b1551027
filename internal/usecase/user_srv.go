package usecase

import (
	"context"
	"errors"
	"strings"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/data/repository"
	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/dto/response"
	"movie-reviews/pkg/database"
	"movie-reviews/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const msgInvalidCredentials = "Invalid email or password"

type UserService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.UserResponse, error)
	GetByID(ctx context.Context, id int64) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	hasher   utils.PasswordHasher
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, hasher utils.PasswordHasher, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error) {
	// 1. Validasi input
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError("Validation failed", errs)
	}

	// 2. Hash password
	hashedPassword, err := us.hasher.Hash(req.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, utils.NewValidationError("Password is too long",
			map[string]string{"password": "Maximum length is 72 bytes"})
	}
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return nil, utils.NewInternalError("failed to process password", err)
	}

	// 3. Save user; the unique constraints decide duplicates
	user := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := us.userRepo.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			us.log.Warn("Register rejected - duplicate user",
				zap.String("username", req.Username),
				zap.String("email", req.Email))
			return nil, utils.NewConflictError("Username or email already exists", err)
		}
		us.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, utils.NewInternalError("failed to create user", err)
	}

	us.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email))

	resp := response.UserToRegisterResponse(user)
	return &resp, nil
}

// Login answers with the same AuthError whether the email is unknown or the
// password is wrong.
func (us *userService) Login(ctx context.Context, req *request.LoginRequest) (*response.UserResponse, error) {
	// 1. Validasi
	req.Email = strings.TrimSpace(req.Email)

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError("Email and password are required", errs)
	}

	// 2. Find user by email
	user, err := us.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		us.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, utils.NewInternalError("failed to login", err)
	}

	if user == nil {
		us.log.Warn("Login failed - unknown email", zap.String("email", req.Email))
		return nil, utils.NewAuthError(msgInvalidCredentials)
	}

	// 3. Check password
	if !us.hasher.Compare(user.PasswordHash, req.Password) {
		us.log.Warn("Login failed - invalid password", zap.Int64("user_id", user.ID))
		return nil, utils.NewAuthError(msgInvalidCredentials)
	}

	us.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	resp := response.UserToLoginResponse(user)
	return &resp, nil
}

func (us *userService) GetByID(ctx context.Context, id int64) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.Int64("user_id", id))
		return nil, utils.NewInternalError("failed to fetch user", err)
	}
	if user == nil {
		return nil, utils.NewNotFoundError("User not found")
	}

	resp := response.UserToProfileResponse(user)
	return &resp, nil
}
