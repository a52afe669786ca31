package service

import (
	"context"
	"errors"
	"log"
	"portal-berita-server/internal/config"
	"portal-berita-server/internal/consts"
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/model"
	moduledto "portal-berita-server/internal/modules/user/dto"
	"portal-berita-server/internal/modules/user/repo"
	platformservice "portal-berita-server/internal/platform/service"
	"portal-berita-server/internal/utils"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	userStore repo.UserStore
}

func New(userStore repo.UserStore) *Service {
	return &Service{userStore: userStore}
}

// Register 注册普通用户
func (s *Service) Register(ctx context.Context, req moduledto.SignupRequest) (*model.User, error) {
	return s.createUser(ctx, req.UserName, req.FullName, req.Email, req.Password, consts.RoleUser)
}

// CreateAdmin 创建管理员账号，仅供命令行使用
func (s *Service) CreateAdmin(ctx context.Context, req moduledto.CreateAdminRequest) (*model.User, error) {
	fullName := req.FullName
	if fullName == "" {
		fullName = req.UserName
	}
	return s.createUser(ctx, req.UserName, fullName, req.Email, req.Password, consts.RoleAdmin)
}

func (s *Service) createUser(ctx context.Context, userName, fullName, email, password, role string) (*model.User, error) {
	userName = strings.TrimSpace(userName)
	email = strings.ToLower(strings.TrimSpace(email))
	fullName = strings.TrimSpace(fullName)

	if ok, msg := utils.ValidateUsername(userName); !ok {
		return nil, platformservice.NewValidationError(msg, "userName: "+msg)
	}
	if ok, msg := utils.ValidatePassword(password); !ok {
		return nil, platformservice.NewValidationError(msg, "password: "+msg)
	}
	if ok, msg := utils.ValidateEmail(email); !ok {
		return nil, platformservice.NewValidationError(msg, "email: "+msg)
	}
	if fullName == "" {
		return nil, platformservice.NewValidationError("姓名不能为空", "fullName: required")
	}

	usernameTaken, err := s.userStore.FieldExists(ctx, repo.UserFieldUserName, userName)
	if err != nil {
		log.Printf("❌ 检查用户名失败: %v", err)
		return nil, platformservice.NewInternalError("注册失败，请稍后重试")
	}
	if usernameTaken {
		return nil, platformservice.NewConflictError("用户名已存在")
	}

	emailTaken, err := s.userStore.FieldExists(ctx, repo.UserFieldEmail, email)
	if err != nil {
		log.Printf("❌ 检查邮箱失败: %v", err)
		return nil, platformservice.NewInternalError("注册失败，请稍后重试")
	}
	if emailTaken {
		return nil, platformservice.NewConflictError("邮箱已被注册")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, platformservice.NewInternalError("密码加密失败")
	}

	user := &model.User{
		ID:       model.NewID(),
		UserName: userName,
		FullName: fullName,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
		Posts:    []string{},
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, platformservice.NewConflictError("用户名或邮箱已存在")
		}
		log.Printf("❌ 创建用户失败: %v", err)
		return nil, platformservice.NewInternalError("注册失败，请稍后重试")
	}
	return user, nil
}

// Login 校验凭据并签发登录令牌，用户名或邮箱均可登录
func (s *Service) Login(ctx context.Context, identifier, password string) (*moduledto.SigninResponse, error) {
	identifier = strings.TrimSpace(identifier)
	user, err := s.userStore.FindByUserNameOrEmail(ctx, identifier)
	if err != nil && strings.Contains(identifier, "@") {
		user, err = s.userStore.FindByUserNameOrEmail(ctx, strings.ToLower(identifier))
	}
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			log.Printf("❌ 查询用户失败: %v", err)
		}
		return nil, platformservice.NewUnauthorizedError("用户名或密码错误")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, platformservice.NewUnauthorizedError("用户名或密码错误")
	}

	token, err := s.IssueLoginToken(user)
	if err != nil {
		return nil, platformservice.NewInternalError("生成令牌失败")
	}
	return &moduledto.SigninResponse{Token: token, User: user}, nil
}

// IssueLoginToken 按配置的有效期签发登录令牌
func (s *Service) IssueLoginToken(user *model.User) (string, error) {
	return utils.GenerateLoginToken(user.ID, user.Role, TokenTTL())
}

// TokenTTL 登录令牌有效期，同时用作 Cookie 的 MaxAge
func TokenTTL() time.Duration {
	hours := config.Get().JWT.ExpirationHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// GetProfile 获取用户资料（含拥有的文章 ID）
func (s *Service) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userStore.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, platformservice.NewNotFoundError("用户不存在")
		}
		log.Printf("❌ 查询用户失败: %v", err)
		return nil, platformservice.NewInternalError("获取用户信息失败")
	}
	if user.Posts == nil {
		user.Posts = []string{}
	}
	return user, nil
}
