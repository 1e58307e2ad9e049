package service

import (
	"context"
	"errors"

	"github.com/reservapp/reservapp/internal/models"
	"github.com/reservapp/reservapp/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	GetUserInfo(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, emailFilter string) ([]*models.User, error)
	RemoveUser(ctx context.Context, userID int64) error
}

type userService struct {
	u repository.UserRepository
}

func NewUserService(u repository.UserRepository) UserService {
	return &userService{
		u: u,
	}
}

func (s *userService) GetUserInfo(ctx context.Context, id int64) (*models.User, error) {
	user, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isExist {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, emailFilter string) ([]*models.User, error) {
	return s.u.List(ctx, emailFilter)
}

func (s *userService) RemoveUser(ctx context.Context, userID int64) error {
	err := s.u.Remove(ctx, userID)
	if err != nil {
		return err
	}
	return nil
}
