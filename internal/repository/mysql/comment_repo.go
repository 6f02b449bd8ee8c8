package mysql

import (
	"database/sql"

	"blog-backend/internal/model"
	"blog-backend/internal/util"

	"go.uber.org/zap"
)

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *commentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	query := `INSERT INTO comments (author_id, post_id, text, created_at)
              VALUES (?, ?, ?, CURRENT_TIMESTAMP)`
	result, err := r.db.Exec(query, comment.AuthorID, comment.PostID, comment.Text)
	if err != nil {
		util.Logger.Error("创建评论失败", zap.Error(err), zap.Int("post_id", comment.PostID))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新评论ID失败", zap.Error(err))
		return err
	}
	comment.ID = int(id)

	util.Logger.Info("评论创建成功", zap.Int("comment_id", comment.ID))
	return nil
}

// ListByPost 返回帖子下的全部评论，按创建时间正序
func (r *commentRepository) ListByPost(postID int) ([]*model.Comment, error) {
	query := `
        SELECT c.id, c.author_id, c.post_id, c.text, c.created_at,
               u.username, u.email, u.bio
        FROM comments c
        JOIN users u ON c.author_id = u.id
        WHERE c.post_id = ?
        ORDER BY c.created_at ASC, c.id ASC`

	rows, err := r.db.Query(query, postID)
	if err != nil {
		util.Logger.Error("查询评论列表失败", zap.Error(err), zap.Int("post_id", postID))
		return nil, err
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var comment model.Comment
		var author model.User
		err := rows.Scan(
			&comment.ID, &comment.AuthorID, &comment.PostID, &comment.Text, &comment.CreatedAt,
			&author.Username, &author.Email, &author.Bio,
		)
		if err != nil {
			util.Logger.Error("扫描评论数据失败", zap.Error(err))
			return nil, err
		}
		author.ID = comment.AuthorID
		comment.Author = &author
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}
