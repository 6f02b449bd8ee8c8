package service

import (
	"testing"

	"blog-backend/internal/model"
	"blog-backend/internal/repository/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFollowRepository 是 FollowRepository 接口的模拟实现
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(follow *model.Follow) error {
	args := m.Called(follow)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(followerID, authorID int) error {
	args := m.Called(followerID, authorID)
	return args.Error(0)
}

func (m *MockFollowRepository) Exists(followerID, authorID int) (bool, error) {
	args := m.Called(followerID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) CountFollowers(authorID int) (int, error) {
	args := m.Called(authorID)
	return args.Int(0), args.Error(1)
}

func (m *MockFollowRepository) CountFollowing(followerID int) (int, error) {
	args := m.Called(followerID)
	return args.Int(0), args.Error(1)
}

// MockPostRepository 是 PostRepository 接口的模拟实现
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByAuthorAndID(username string, id int) (*model.Post, error) {
	args := m.Called(username, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) ListRecent(page, pageSize int) ([]*model.Post, int, error) {
	args := m.Called(page, pageSize)
	return args.Get(0).([]*model.Post), args.Int(1), args.Error(2)
}

func (m *MockPostRepository) ListByGroup(groupID, page, pageSize int) ([]*model.Post, int, error) {
	args := m.Called(groupID, page, pageSize)
	return args.Get(0).([]*model.Post), args.Int(1), args.Error(2)
}

func (m *MockPostRepository) ListByAuthor(authorID, page, pageSize int) ([]*model.Post, int, error) {
	args := m.Called(authorID, page, pageSize)
	return args.Get(0).([]*model.Post), args.Int(1), args.Error(2)
}

func (m *MockPostRepository) ListFollowed(followerID, page, pageSize int) ([]*model.Post, int, error) {
	args := m.Called(followerID, page, pageSize)
	return args.Get(0).([]*model.Post), args.Int(1), args.Error(2)
}

func (m *MockPostRepository) CountByAuthor(authorID int) (int, error) {
	args := m.Called(authorID)
	return args.Int(0), args.Error(1)
}

// MockGroupRepository 是 GroupRepository 接口的模拟实现
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) Create(group *model.Group) error {
	args := m.Called(group)
	return args.Error(0)
}

func (m *MockGroupRepository) GetBySlug(slug string) (*model.Group, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockGroupRepository) List() ([]*model.Group, error) {
	args := m.Called()
	return args.Get(0).([]*model.Group), args.Error(1)
}

// MockCommentRepository 是 CommentRepository 接口的模拟实现
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByPost(postID int) ([]*model.Comment, error) {
	args := m.Called(postID)
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func newTestBlogService(follows *MockFollowRepository) *BlogService {
	return NewBlogService(
		new(MockPostRepository),
		new(MockGroupRepository),
		new(MockCommentRepository),
		follows,
	)
}

// TestFollowSelf 测试自我关注被静默忽略
func TestFollowSelf(t *testing.T) {
	mockFollows := new(MockFollowRepository)
	service := newTestBlogService(mockFollows)

	err := service.Follow(1, 1)
	assert.NoError(t, err)

	// 不应该触碰存储层
	mockFollows.AssertNotCalled(t, "Create", mock.Anything)
}

// TestFollowDuplicate 测试重复关注不报错
func TestFollowDuplicate(t *testing.T) {
	mockFollows := new(MockFollowRepository)
	service := newTestBlogService(mockFollows)

	mockFollows.On("Create", mock.AnythingOfType("*model.Follow")).
		Return(interfaces.ErrDuplicateFollow)

	err := service.Follow(1, 2)
	assert.NoError(t, err)
	mockFollows.AssertExpectations(t)
}

// TestFollowSuccess 测试正常关注
func TestFollowSuccess(t *testing.T) {
	mockFollows := new(MockFollowRepository)
	service := newTestBlogService(mockFollows)

	mockFollows.On("Create", mock.MatchedBy(func(f *model.Follow) bool {
		return f.FollowerID == 1 && f.AuthorID == 2
	})).Return(nil)

	err := service.Follow(1, 2)
	assert.NoError(t, err)
	mockFollows.AssertExpectations(t)
}

// TestUnfollowIdempotent 测试取消未存在的关注也成功
func TestUnfollowIdempotent(t *testing.T) {
	mockFollows := new(MockFollowRepository)
	service := newTestBlogService(mockFollows)

	mockFollows.On("Delete", 1, 2).Return(nil)

	assert.NoError(t, service.Unfollow(1, 2))
	assert.NoError(t, service.Unfollow(1, 2))
	mockFollows.AssertExpectations(t)
}
