package service

import (
	"context"
	"errors"
	"time"

	"github.com/dmitryhil/vineweb/config"
	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/internal/dto"
	"github.com/dmitryhil/vineweb/internal/repository"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/dmitryhil/vineweb/pkg/utils"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	config *config.Config
	now    func() time.Time
}

func CreateUserService(repo repository.UserRepository, config *config.Config) UserService {
	return &UserServiceImpl{repo: repo, config: config, now: time.Now}
}

func (s *UserServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.AuthResponse, err error) {
	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return
	}

	if exists {
		return res, errs.ErrUserAlreadyExists
	}

	user, err := s.createUser(ctx, domain.User{
		Username:  req.Username,
		Email:     req.Email,
		Role:      domain.RoleUser,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}, req.Password)
	if err != nil {
		return
	}

	return s.authResponse(user)
}

// Login accepts the username or the email. Unknown users and wrong passwords
// are indistinguishable to the caller.
func (s *UserServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.AuthResponse, err error) {
	user, err := s.repo.GetUserByLogin(ctx, req.Username)
	if errors.Is(err, errs.ErrUserNotFound) {
		return res, errs.ErrInvalidCredentials
	}
	if err != nil {
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password))
	if err != nil {
		log.Ctx(ctx).Info().Str("component", "Login").Str("user", user.ID.Hex()).Msg("wrong password")
		return res, errs.ErrInvalidCredentials
	}

	now := s.now()
	if err = s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return
	}
	user.LastLogin = &now

	return s.authResponse(user)
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id string) (res dto.UserResponse, err error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return
	}

	return dto.NewUserResponse(user), nil
}

// SeedAdmin creates the configured admin once. Nothing happens without
// configured credentials or when an admin already exists.
func (s *UserServiceImpl) SeedAdmin(ctx context.Context, seed config.SeedConfig) (err error) {
	if seed.AdminUsername == "" || seed.AdminPassword == "" {
		return nil
	}

	exists, err := s.repo.ExistsByRole(ctx, domain.RoleAdmin)
	if err != nil || exists {
		return
	}

	_, err = s.createUser(ctx, domain.User{
		Username: seed.AdminUsername,
		Email:    seed.AdminEmail,
		Role:     domain.RoleAdmin,
	}, seed.AdminPassword)
	if err != nil {
		return
	}

	log.Ctx(ctx).Info().Str("component", "SeedAdmin").Str("username", seed.AdminUsername).Msg("admin user created")

	return nil
}

func (s *UserServiceImpl) createUser(ctx context.Context, user domain.User, password string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user.HashedPassword = string(hash)
	user.CreatedAt = s.now()

	return s.repo.AddUser(ctx, user)
}

func (s *UserServiceImpl) authResponse(user domain.User) (res dto.AuthResponse, err error) {
	token, err := utils.CreateJWTToken(utils.TokenUser{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, s.config.JWTSecret)
	if err != nil {
		return
	}

	return dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}
