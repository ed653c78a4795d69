package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hrm_records_go/internal/model"
	"hrm_records_go/internal/repository"
	"hrm_records_go/pkg/hash"
	"hrm_records_go/pkg/log"
	"hrm_records_go/pkg/token"

	"gorm.io/gorm"
)

// UserService 管理操作员账号与登录令牌。ADMIN 可写，VIEWER 只读。
type UserService interface {
	Login(username, password string) (accessToken, refreshToken string, err error)
	// Logout 把令牌加入黑名单；未配置 Redis 时令牌只能等待自然过期。
	Logout(tokenString string) error
	// IsRevoked 判断令牌是否已注销。
	IsRevoked(claims *token.CustomClaims) (bool, error)
	GetProfile(username string) (*model.User, error)
	CreateOperator(username, password, role string) (*model.User, error)
	ListOperators() ([]model.User, error)
	// EnsureAdmin 在账号不存在时创建管理员，启动时调用。
	EnsureAdmin(username, password string) error
}

type userService struct {
	userRepo   repository.UserRepository
	JWTManager *token.JWTManager
	blacklist  repository.TokenBlacklist
	now        func() time.Time
}

func NewUserService(userRepo repository.UserRepository, jwtManager *token.JWTManager, blacklist repository.TokenBlacklist) UserService {
	return &userService{
		userRepo:   userRepo,
		JWTManager: jwtManager,
		blacklist:  blacklist,
		now:        time.Now,
	}
}

func (s *userService) Login(username, password string) (accessToken, refreshToken string, err error) {
	if s.JWTManager == nil || s.userRepo == nil {
		return "", "", ErrInternal
	}
	// 1. 检查用户是否存在
	existingUser, err := s.userRepo.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 用户不存在，返回统一的凭证错误，防止用户枚举
			return "", "", ErrInvalidCredentials
		}
		log.Errorf("Login: failed to query user %q: %v", username, err)
		return "", "", ErrInternal
	}
	if existingUser == nil {
		return "", "", ErrInvalidCredentials
	}

	// 2. 检查密码是否正确
	if !hash.CheckPasswordHash(password, existingUser.Password) {
		return "", "", ErrInvalidCredentials
	}

	// 3. 生成JWT令牌（使用数据库中的 Username 与 Role）
	accessToken, refreshToken, err = s.JWTManager.GenerateToken(existingUser.ID, existingUser.Username, existingUser.Role)
	if err != nil {
		log.Errorf("Login: failed to generate token for user %q: %v", existingUser.Username, err)
		return "", "", ErrInternal
	}
	return accessToken, refreshToken, nil
}

func (s *userService) Logout(tokenString string) error {
	if s.JWTManager == nil {
		return ErrInternal
	}
	claims, err := s.JWTManager.VerifyToken(tokenString)
	if err != nil {
		return ErrInvalidCredentials
	}
	if s.blacklist == nil {
		log.Infow("logout without token blacklist", "user", claims.Username)
		return nil
	}
	if err := s.blacklist.Revoke(context.Background(), claims.ID, claims.Remaining(s.now())); err != nil {
		log.Errorf("Logout: failed to revoke token for user %q: %v", claims.Username, err)
		return ErrInternal
	}
	return nil
}

func (s *userService) IsRevoked(claims *token.CustomClaims) (bool, error) {
	if claims == nil {
		return true, nil
	}
	if s.blacklist == nil {
		return false, nil
	}
	revoked, err := s.blacklist.IsRevoked(context.Background(), claims.ID)
	if err != nil {
		log.Errorf("IsRevoked: blacklist lookup failed: %v", err)
		return false, ErrInternal
	}
	return revoked, nil
}

func (s *userService) GetProfile(username string) (*model.User, error) {
	if s.userRepo == nil {
		return nil, ErrInternal
	}
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Errorf("GetProfile: failed to query user %q: %v", username, err)
		return nil, ErrInternal
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) CreateOperator(username, password, role string) (*model.User, error) {
	if s.userRepo == nil {
		return nil, ErrInternal
	}
	username = strings.TrimSpace(username)
	role = strings.ToUpper(strings.TrimSpace(role))
	if role == "" {
		role = model.RoleViewer
	}
	if username == "" || (role != model.RoleAdmin && role != model.RoleViewer) {
		return nil, ErrInvalidInput
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := hash.HashPassword(password)
	if err != nil {
		if errors.Is(err, hash.ErrPasswordTooShort) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{Username: username, Password: hashed, Role: role}
	if err := s.userRepo.Create(user); err != nil {
		return nil, translate(err, nil, ErrUserAlreadyExists)
	}
	log.Infow("operator created", "username", username, "role", role)
	return user, nil
}

func (s *userService) ListOperators() ([]model.User, error) {
	if s.userRepo == nil {
		return nil, ErrInternal
	}
	return s.userRepo.FindAll()
}

func (s *userService) EnsureAdmin(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return nil
	}
	_, err := s.CreateOperator(username, password, model.RoleAdmin)
	if errors.Is(err, ErrUserAlreadyExists) {
		return nil
	}
	return err
}
