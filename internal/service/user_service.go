package service

import (
	"blog-backend/internal/errors"
	"blog-backend/internal/model"
	"blog-backend/internal/repository/interfaces"
	"blog-backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceInterface 供处理器依赖，方便在测试中替换成mock
type UserServiceInterface interface {
	Register(user *model.User, password string) error
	Login(username, password string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
}

// UserService 处理与用户相关的业务逻辑
type UserService struct {
	userRepo     interfaces.UserRepository
	emailService *EmailService
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(userRepo interfaces.UserRepository) *UserService {
	return &UserService{
		userRepo:     userRepo,
		emailService: NewEmailService(),
	}
}

// IsUsernameTaken 检查用户名是否已被使用
func (s *UserService) IsUsernameTaken(username string) (bool, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// Register 注册新用户。用户名和邮箱都不允许重复
func (s *UserService) Register(user *model.User, password string) error {
	taken, err := s.IsUsernameTaken(user.Username)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询用户名失败", err)
	}
	if taken {
		return errors.New(errors.ErrUserExists, "username already exists")
	}

	existing, err := s.userRepo.FindByEmail(user.Email)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询邮箱失败", err)
	}
	if existing != nil {
		return errors.New(errors.ErrUserExists, "email already registered")
	}

	// 生成密码哈希
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)

	// 创建用户
	if err := s.userRepo.Create(user); err != nil {
		return err
	}

	// 注册邮件发送失败不影响注册本身
	if err := s.emailService.SendWelcomeEmail(user.Email, user.Username); err != nil {
		util.Logger.Error("发送欢迎邮件失败", zap.Error(err))
	}

	return nil
}

// Login 用户登录，按用户名查找并校验密码
func (s *UserService) Login(username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		util.Logger.Warn("用户登录失败，密码不正确", zap.String("username", username))
		return nil, errors.Wrap(errors.ErrValidation, "密码不正确", err)
	}

	util.Logger.Info("用户登录成功", zap.Int("user_id", user.ID))
	return user, nil
}

// GetUserByUsername 通过用户名获取用户信息，未找到时返回 nil, nil
func (s *UserService) GetUserByUsername(username string) (*model.User, error) {
	return s.userRepo.FindByUsername(username)
}
