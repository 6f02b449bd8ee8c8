package interfaces

import (
	"errors"

	"blog-backend/internal/model"
)

// ErrDuplicateFollow 表示 (follower, author) 关注关系已存在
var ErrDuplicateFollow = errors.New("follow already exists")

// GroupRepository 定义了话题分组的数据库操作接口
type GroupRepository interface {
	Create(group *model.Group) error
	GetBySlug(slug string) (*model.Group, error)
	List() ([]*model.Group, error)
}

// PostRepository 定义了帖子的数据库操作接口
// 所有列表方法按发布时间倒序返回，并且预加载作者和分组，
// 避免逐行回表查询
type PostRepository interface {
	Create(post *model.Post) error
	Update(post *model.Post) error
	GetByAuthorAndID(username string, id int) (*model.Post, error)
	ListRecent(page, pageSize int) ([]*model.Post, int, error)
	ListByGroup(groupID, page, pageSize int) ([]*model.Post, int, error)
	ListByAuthor(authorID, page, pageSize int) ([]*model.Post, int, error)
	ListFollowed(followerID, page, pageSize int) ([]*model.Post, int, error)
	CountByAuthor(authorID int) (int, error)
}

// CommentRepository 定义了评论的数据库操作接口
type CommentRepository interface {
	Create(comment *model.Comment) error
	ListByPost(postID int) ([]*model.Comment, error)
}

// FollowRepository 定义了关注关系的数据库操作接口
type FollowRepository interface {
	Create(follow *model.Follow) error
	Delete(followerID, authorID int) error
	Exists(followerID, authorID int) (bool, error)
	CountFollowers(authorID int) (int, error)
	CountFollowing(followerID int) (int, error)
}
