package user

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBlogService 是 BlogServiceInterface 的模拟实现
type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) CreatePost(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockBlogService) UpdatePost(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockBlogService) GetPost(username string, id int) (*model.Post, error) {
	args := m.Called(username, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockBlogService) ListRecent(page, pageSize int) ([]*model.Post, int, error) {
	args := m.Called(page, pageSize)
	return args.Get(0).([]*model.Post), args.Int(1), args.Error(2)
}

func (m *MockBlogService) ListByGroup(groupID, page, pageSize int) ([]*model.Post, int, error) {
	args := m.Called(groupID, page, pageSize)
	return args.Get(0).([]*model.Post), args.Int(1), args.Error(2)
}

func (m *MockBlogService) ListByAuthor(authorID, page, pageSize int) ([]*model.Post, int, error) {
	args := m.Called(authorID, page, pageSize)
	return args.Get(0).([]*model.Post), args.Int(1), args.Error(2)
}

func (m *MockBlogService) ListFollowed(followerID, page, pageSize int) ([]*model.Post, int, error) {
	args := m.Called(followerID, page, pageSize)
	return args.Get(0).([]*model.Post), args.Int(1), args.Error(2)
}

func (m *MockBlogService) CountByAuthor(authorID int) (int, error) {
	args := m.Called(authorID)
	return args.Int(0), args.Error(1)
}

func (m *MockBlogService) GetGroupBySlug(slug string) (*model.Group, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockBlogService) ListGroups() ([]*model.Group, error) {
	args := m.Called()
	return args.Get(0).([]*model.Group), args.Error(1)
}

func (m *MockBlogService) CreateGroup(group *model.Group) error {
	args := m.Called(group)
	return args.Error(0)
}

func (m *MockBlogService) CreateComment(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockBlogService) ListComments(postID int) ([]*model.Comment, error) {
	args := m.Called(postID)
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func (m *MockBlogService) Follow(followerID, authorID int) error {
	args := m.Called(followerID, authorID)
	return args.Error(0)
}

func (m *MockBlogService) Unfollow(followerID, authorID int) error {
	args := m.Called(followerID, authorID)
	return args.Error(0)
}

func (m *MockBlogService) IsFollowing(followerID, authorID int) (bool, error) {
	args := m.Called(followerID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogService) CountFollowers(authorID int) (int, error) {
	args := m.Called(authorID)
	return args.Int(0), args.Error(1)
}

func (m *MockBlogService) CountFollowing(followerID int) (int, error) {
	args := m.Called(followerID)
	return args.Int(0), args.Error(1)
}

// TestProfile 测试个人主页展示作者的帖子和统计数据
func TestProfile(t *testing.T) {
	mockUsers := new(MockUserService)
	mockBlog := new(MockBlogService)
	h := NewUserHandler(mockUsers, mockBlog, 10)
	r := newTestRouter(h)

	author := &model.User{ID: 1, Username: "sasha"}
	mockUsers.On("GetUserByUsername", "sasha").Return(author, nil)
	mockBlog.On("ListByAuthor", 1, 1, 10).Return([]*model.Post{
		{ID: 1, AuthorID: 1, Text: "作者的帖子", Author: author},
	}, 1, nil)
	mockBlog.On("CountFollowers", 1).Return(3, nil)
	mockBlog.On("CountFollowing", 1).Return(5, nil)
	mockBlog.On("IsFollowing", 2, 1).Return(true, nil)

	req := httptest.NewRequest(http.MethodGet, "/sasha/", nil)
	req.AddCookie(sessionCookie(t, 2))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "作者的帖子")
	assert.Contains(t, w.Body.String(), "sasha")
	mockBlog.AssertExpectations(t)
}

// TestProfileUnknownUser 测试未知用户名返回404并回显路径
func TestProfileUnknownUser(t *testing.T) {
	mockUsers := new(MockUserService)
	h := NewUserHandler(mockUsers, new(MockBlogService), 10)
	r := newTestRouter(h)

	mockUsers.On("GetUserByUsername", "ghost").Return(nil, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ghost/", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "/ghost/")
}

// TestProfileFollow 测试关注后重定向回作者主页
func TestProfileFollow(t *testing.T) {
	mockUsers := new(MockUserService)
	mockBlog := new(MockBlogService)
	h := NewUserHandler(mockUsers, mockBlog, 10)
	r := newTestRouter(h)

	author := &model.User{ID: 1, Username: "sasha"}
	mockUsers.On("GetUserByUsername", "sasha").Return(author, nil)
	mockBlog.On("Follow", 2, 1).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/sasha/follow/", nil)
	req.AddCookie(sessionCookie(t, 2))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/sasha/", w.Header().Get("Location"))
	mockBlog.AssertExpectations(t)
}

// TestProfileUnfollow 测试取消关注后重定向回作者主页
func TestProfileUnfollow(t *testing.T) {
	mockUsers := new(MockUserService)
	mockBlog := new(MockBlogService)
	h := NewUserHandler(mockUsers, mockBlog, 10)
	r := newTestRouter(h)

	author := &model.User{ID: 1, Username: "sasha"}
	mockUsers.On("GetUserByUsername", "sasha").Return(author, nil)
	mockBlog.On("Unfollow", 2, 1).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/sasha/unfollow/", nil)
	req.AddCookie(sessionCookie(t, 2))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/sasha/", w.Header().Get("Location"))
	mockBlog.AssertExpectations(t)
}

// TestProfileFollowRequiresLogin 测试匿名用户点关注被带到登录页
func TestProfileFollowRequiresLogin(t *testing.T) {
	mockUsers := new(MockUserService)
	mockBlog := new(MockBlogService)
	h := NewUserHandler(mockUsers, mockBlog, 10)
	r := newTestRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sasha/follow/", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Fsasha%2Ffollow%2F", w.Header().Get("Location"))
	mockBlog.AssertNotCalled(t, "Follow", mock.Anything, mock.Anything)
}
