package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"learnpath-be/internal/dto"
	"learnpath-be/internal/entity"
	"learnpath-be/internal/pkg/apperror"
	"learnpath-be/internal/repository/specification"
	"learnpath-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenExpiry = 24 * time.Hour

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	jwtSecret  []byte
	now        func() time.Time
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtSecret string) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		jwtSecret:  []byte(jwtSecret),
		now:        time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Validation("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		Id:    user.Id,
		Email: user.Email,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthenticated("invalid credentials")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperror.Unauthenticated("invalid credentials")
		}
		return nil, err
	}

	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(accessTokenExpiry).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(accessTokenExpiry.Seconds()),
		User: dto.UserDTO{
			Id:       user.Id,
			Email:    user.Email,
			FullName: user.FullName,
		},
	}, nil
}
