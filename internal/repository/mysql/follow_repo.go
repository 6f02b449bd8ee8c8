package mysql

import (
	"database/sql"
	"strings"

	"blog-backend/internal/model"
	"blog-backend/internal/repository/interfaces"
	"blog-backend/internal/util"

	"go.uber.org/zap"
)

type followRepository struct {
	db *sql.DB
}

func NewFollowRepository(db *sql.DB) *followRepository {
	return &followRepository{db: db}
}

// Create 插入关注记录。唯一约束保证同一对 (follower, author)
// 在并发写入下也只有一行；撞到唯一键时返回 ErrDuplicateFollow
func (r *followRepository) Create(follow *model.Follow) error {
	query := `INSERT INTO follows (follower_id, author_id, created_at)
              VALUES (?, ?, CURRENT_TIMESTAMP)`
	result, err := r.db.Exec(query, follow.FollowerID, follow.AuthorID)
	if err != nil {
		if isDuplicateKey(err) {
			return interfaces.ErrDuplicateFollow
		}
		util.Logger.Error("创建关注失败", zap.Error(err),
			zap.Int("follower_id", follow.FollowerID),
			zap.Int("author_id", follow.AuthorID))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新关注ID失败", zap.Error(err))
		return err
	}
	follow.ID = int(id)

	util.Logger.Info("关注创建成功", zap.Int("follow_id", follow.ID))
	return nil
}

// Delete 删除关注记录，记录不存在时也不报错
func (r *followRepository) Delete(followerID, authorID int) error {
	query := `DELETE FROM follows WHERE follower_id = ? AND author_id = ?`
	_, err := r.db.Exec(query, followerID, authorID)
	if err != nil {
		util.Logger.Error("删除关注失败", zap.Error(err),
			zap.Int("follower_id", followerID),
			zap.Int("author_id", authorID))
		return err
	}
	return nil
}

func (r *followRepository) Exists(followerID, authorID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
        SELECT EXISTS(
            SELECT 1 FROM follows
            WHERE follower_id = ? AND author_id = ?
        )`, followerID, authorID).Scan(&exists)
	return exists, err
}

func (r *followRepository) CountFollowers(authorID int) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM follows WHERE author_id = ?", authorID).Scan(&count)
	return count, err
}

func (r *followRepository) CountFollowing(followerID int) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM follows WHERE follower_id = ?", followerID).Scan(&count)
	return count, err
}

// MySQL 报 "Duplicate entry"，SQLite（测试库）报 "UNIQUE constraint failed"
func isDuplicateKey(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
