package service

import (
	"blog-backend/internal/model"
	"blog-backend/internal/repository/interfaces"
	"blog-backend/internal/util"

	"go.uber.org/zap"
)

// BlogServiceInterface 供处理器依赖，方便在测试中替换成mock
type BlogServiceInterface interface {
	CreatePost(post *model.Post) error
	UpdatePost(post *model.Post) error
	GetPost(username string, id int) (*model.Post, error)
	ListRecent(page, pageSize int) ([]*model.Post, int, error)
	ListByGroup(groupID, page, pageSize int) ([]*model.Post, int, error)
	ListByAuthor(authorID, page, pageSize int) ([]*model.Post, int, error)
	ListFollowed(followerID, page, pageSize int) ([]*model.Post, int, error)
	CountByAuthor(authorID int) (int, error)

	GetGroupBySlug(slug string) (*model.Group, error)
	ListGroups() ([]*model.Group, error)
	CreateGroup(group *model.Group) error

	CreateComment(comment *model.Comment) error
	ListComments(postID int) ([]*model.Comment, error)

	Follow(followerID, authorID int) error
	Unfollow(followerID, authorID int) error
	IsFollowing(followerID, authorID int) (bool, error)
	CountFollowers(authorID int) (int, error)
	CountFollowing(followerID int) (int, error)
}

type BlogService struct {
	posts    interfaces.PostRepository
	groups   interfaces.GroupRepository
	comments interfaces.CommentRepository
	follows  interfaces.FollowRepository
}

func NewBlogService(
	posts interfaces.PostRepository,
	groups interfaces.GroupRepository,
	comments interfaces.CommentRepository,
	follows interfaces.FollowRepository,
) *BlogService {
	return &BlogService{
		posts:    posts,
		groups:   groups,
		comments: comments,
		follows:  follows,
	}
}

func (s *BlogService) CreatePost(post *model.Post) error {
	return s.posts.Create(post)
}

func (s *BlogService) UpdatePost(post *model.Post) error {
	return s.posts.Update(post)
}

// GetPost 按作者用户名和帖子ID查找，未找到时返回 nil, nil
func (s *BlogService) GetPost(username string, id int) (*model.Post, error) {
	return s.posts.GetByAuthorAndID(username, id)
}

func (s *BlogService) ListRecent(page, pageSize int) ([]*model.Post, int, error) {
	return s.posts.ListRecent(page, pageSize)
}

func (s *BlogService) ListByGroup(groupID, page, pageSize int) ([]*model.Post, int, error) {
	return s.posts.ListByGroup(groupID, page, pageSize)
}

func (s *BlogService) ListByAuthor(authorID, page, pageSize int) ([]*model.Post, int, error) {
	return s.posts.ListByAuthor(authorID, page, pageSize)
}

func (s *BlogService) ListFollowed(followerID, page, pageSize int) ([]*model.Post, int, error) {
	return s.posts.ListFollowed(followerID, page, pageSize)
}

func (s *BlogService) CountByAuthor(authorID int) (int, error) {
	return s.posts.CountByAuthor(authorID)
}

func (s *BlogService) GetGroupBySlug(slug string) (*model.Group, error) {
	return s.groups.GetBySlug(slug)
}

func (s *BlogService) ListGroups() ([]*model.Group, error) {
	return s.groups.List()
}

func (s *BlogService) CreateGroup(group *model.Group) error {
	return s.groups.Create(group)
}

func (s *BlogService) CreateComment(comment *model.Comment) error {
	return s.comments.Create(comment)
}

func (s *BlogService) ListComments(postID int) ([]*model.Comment, error) {
	return s.comments.ListByPost(postID)
}

// Follow 创建关注关系。自己关注自己静默忽略，
// 重复关注也静默忽略，保证 (follower, author) 只有一行
func (s *BlogService) Follow(followerID, authorID int) error {
	if followerID == authorID {
		util.Logger.Info("忽略自我关注", zap.Int("user_id", followerID))
		return nil
	}

	err := s.follows.Create(&model.Follow{
		FollowerID: followerID,
		AuthorID:   authorID,
	})
	if err == interfaces.ErrDuplicateFollow {
		return nil
	}
	return err
}

// Unfollow 删除关注关系，未关注时是幂等的 no-op
func (s *BlogService) Unfollow(followerID, authorID int) error {
	return s.follows.Delete(followerID, authorID)
}

// IsFollowing 查询 follower 是否已关注 author
func (s *BlogService) IsFollowing(followerID, authorID int) (bool, error) {
	return s.follows.Exists(followerID, authorID)
}

func (s *BlogService) CountFollowers(authorID int) (int, error) {
	return s.follows.CountFollowers(authorID)
}

func (s *BlogService) CountFollowing(followerID int) (int, error) {
	return s.follows.CountFollowing(followerID)
}
