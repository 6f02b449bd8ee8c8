package service

import (
	"testing"

	"blog-backend/internal/errors"
	"blog-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository 是 UserRepository 接口的模拟实现
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// TestRegister 测试用户注册功能
func TestRegister(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	user := &model.User{
		Username: "testuser",
		Email:    "test@example.com",
	}

	// 测试成功注册，密码被哈希后存储
	mockRepo.On("FindByUsername", "testuser").Return(nil, nil)
	mockRepo.On("FindByEmail", "test@example.com").Return(nil, nil)
	mockRepo.On("Create", mock.AnythingOfType("*model.User")).Return(nil)

	err := service.Register(user, "password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// 测试用户名已存在
	mockRepo.On("FindByUsername", "existinguser").Return(&model.User{}, nil)
	user.Username = "existinguser"
	err = service.Register(user, "password123")
	assert.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrUserExists))

	// 测试邮箱已被其他用户注册
	mockRepo.On("FindByUsername", "emailuser").Return(nil, nil)
	mockRepo.On("FindByEmail", "dup@example.com").Return(&model.User{}, nil)
	user.Username = "emailuser"
	user.Email = "dup@example.com"
	err = service.Register(user, "password123")
	assert.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrUserExists))
}

// TestLogin 测试登录的密码校验
func TestLogin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	stored := &model.User{
		ID:           1,
		Username:     "testuser",
		PasswordHash: string(hash),
	}

	mockRepo.On("FindByUsername", "testuser").Return(stored, nil)

	// 正确密码
	user, err := service.Login("testuser", "correct-password")
	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)

	// 错误密码
	_, err = service.Login("testuser", "wrong-password")
	assert.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrValidation))

	// 不存在的用户
	mockRepo.On("FindByUsername", "missing").Return(nil, nil)
	_, err = service.Login("missing", "whatever")
	assert.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrUserNotFound))
}
