package service

import (
	"context"
	"errors"
	"time"

	"kb-assistant-be/internal/dto"
	"kb-assistant-be/internal/entity"
	"kb-assistant-be/internal/pkg/serverutils"
	"kb-assistant-be/internal/repository/specification"
	"kb-assistant-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory) IAuthService {
	return &authService{
		uowFactory: uowFactory,
	}
}

// defaultAvatars are assigned round-robin-ish by hashing the username; the
// frontend renders the emoji directly.
var defaultAvatars = []string{"👤", "🧑", "👩", "🧔", "👱"}

func pickAvatar(username string) string {
	var sum int
	for _, r := range username {
		sum += int(r)
	}
	return defaultAvatars[sum%len(defaultAvatars)]
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("username already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         entity.UserRoleUser,
		Avatar:       pickAvatar(req.Username),
		CreatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if user == nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    string(user.Role),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(serverutils.JwtSecret())
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User: dto.UserDTO{
			Id:       user.Id,
			Username: user.Username,
			Name:     user.Name,
			Role:     string(user.Role),
			Avatar:   user.Avatar,
		},
		Token: signedToken,
	}, nil
}
