package service

import (
	"errors"
	"time"

	"vibestudy/internal/config"
	"vibestudy/internal/model"
	"vibestudy/internal/repository"
	"vibestudy/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	user.LastLogin = time.Now()
	return s.UserRepo.Create(user)
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		return "", err
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
