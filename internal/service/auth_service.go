package service

import (
	"context"
	"errors"
	"log/slog"

	config "github.com/reservapp/reservapp/configs"
	"github.com/reservapp/reservapp/internal/models"
	"github.com/reservapp/reservapp/internal/repository"
	"github.com/reservapp/reservapp/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (int64, error)
	Login(ctx context.Context, email, password string) (int64, error)
	LoginCallback(ctx context.Context, code string) (int64, error)
}

type authService struct {
	cfg config.Config
	u   repository.UserRepository
}

func NewAuthService(cfg config.Config, u repository.UserRepository) AuthService {
	return &authService{
		cfg: cfg,
		u:   u,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (int64, error) {
	if err := utils.ValidatePassword(password); err != nil {
		return 0, err
	}

	_, isExist, err := s.u.GetByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if isExist {
		return 0, ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	userID, err := s.u.Create(ctx, nil, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return 0, err
	}

	return userID, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (int64, error) {
	user, isExist, err := s.u.GetByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if !isExist || user.PasswordHash == "" {
		return 0, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return 0, ErrInvalidCredentials
	}

	return user.ID, nil
}

func (s *authService) LoginCallback(ctx context.Context, code string) (int64, error) {
	if code == "" {
		err := errors.New("code is empty")
		slog.Info(err.Error())
		return 0, err
	}

	oauth2Config := &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURI,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}

	if oauth2Config.ClientID == "" || oauth2Config.ClientSecret == "" || oauth2Config.RedirectURL == "" {
		err := errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return 0, err
	}

	token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	client := oauth2Config.Client(ctx, token)

	oauth2Service, err := oauth2api.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	userInfo, err := oauth2Service.Userinfo.Get().Do()
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	user, isExist, err := s.u.GetByEmail(ctx, userInfo.Email)
	if err != nil {
		return 0, err
	}

	var userID int64
	if !isExist {
		userID, err = s.u.Create(ctx, nil, &models.User{
			GoogleID: userInfo.Id,
			Email:    userInfo.Email,
			Name:     userInfo.Name,
		})
		if err != nil {
			slog.Info(err.Error())
			return 0, err
		}
	} else {
		userID = user.ID
		if user.GoogleID == "" {
			user.GoogleID = userInfo.Id
			if err := s.u.Update(ctx, user); err != nil {
				slog.Info(err.Error())
			}
		}
	}

	return userID, nil
}
