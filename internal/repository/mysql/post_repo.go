package mysql

import (
	"database/sql"

	"blog-backend/internal/model"
	"blog-backend/internal/util"

	"go.uber.org/zap"
)

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *postRepository {
	return &postRepository{db: db}
}

// 所有列表查询共用的查询头：一次联表取出作者和分组，
// 分组可能为空，所以用 LEFT JOIN。GROUPS 在 MySQL 8.0
// 里是保留字，表名必须加反引号
const postSelect = `
        SELECT p.id, p.author_id, p.group_id, p.text, p.image_url, p.created_at,
               u.username, u.email, u.bio,
               g.id, g.title, g.description, g.slug
        FROM posts p
        JOIN users u ON p.author_id = u.id
        LEFT JOIN ` + "`groups`" + ` g ON p.group_id = g.id`

func (r *postRepository) Create(post *model.Post) error {
	query := `INSERT INTO posts (author_id, group_id, text, image_url, created_at)
              VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`
	result, err := r.db.Exec(query, post.AuthorID, post.GroupID, post.Text, post.ImageURL)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新帖子ID失败", zap.Error(err))
		return err
	}
	post.ID = int(id)

	util.Logger.Info("帖子创建成功", zap.Int("post_id", post.ID))
	return nil
}

// Update 只更新可编辑字段，created_at 保持不变
func (r *postRepository) Update(post *model.Post) error {
	query := `UPDATE posts SET text = ?, group_id = ?, image_url = ? WHERE id = ?`
	_, err := r.db.Exec(query, post.Text, post.GroupID, post.ImageURL, post.ID)
	if err != nil {
		util.Logger.Error("更新帖子失败", zap.Error(err), zap.Int("post_id", post.ID))
		return err
	}
	return nil
}

// GetByAuthorAndID 按作者用户名和帖子ID查找，两者必须同时匹配
func (r *postRepository) GetByAuthorAndID(username string, id int) (*model.Post, error) {
	query := postSelect + ` WHERE p.id = ? AND u.username = ?`

	row := r.db.QueryRow(query, id, username)
	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

func (r *postRepository) ListRecent(page, pageSize int) ([]*model.Post, int, error) {
	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&total); err != nil {
		return nil, 0, err
	}

	query := postSelect + `
        ORDER BY p.created_at DESC, p.id DESC
        LIMIT ? OFFSET ?`

	posts, err := r.queryPosts(query, pageSize, offset(page, pageSize))
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ListByGroup(groupID, page, pageSize int) ([]*model.Post, int, error) {
	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM posts WHERE group_id = ?", groupID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := postSelect + `
        WHERE p.group_id = ?
        ORDER BY p.created_at DESC, p.id DESC
        LIMIT ? OFFSET ?`

	posts, err := r.queryPosts(query, groupID, pageSize, offset(page, pageSize))
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ListByAuthor(authorID, page, pageSize int) ([]*model.Post, int, error) {
	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM posts WHERE author_id = ?", authorID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := postSelect + `
        WHERE p.author_id = ?
        ORDER BY p.created_at DESC, p.id DESC
        LIMIT ? OFFSET ?`

	posts, err := r.queryPosts(query, authorID, pageSize, offset(page, pageSize))
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListFollowed 只返回当前用户关注的作者的帖子
func (r *postRepository) ListFollowed(followerID, page, pageSize int) ([]*model.Post, int, error) {
	var total int
	countQuery := `
        SELECT COUNT(*)
        FROM posts p
        JOIN follows f ON p.author_id = f.author_id
        WHERE f.follower_id = ?`
	if err := r.db.QueryRow(countQuery, followerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
        SELECT p.id, p.author_id, p.group_id, p.text, p.image_url, p.created_at,
               u.username, u.email, u.bio,
               g.id, g.title, g.description, g.slug
        FROM posts p
        JOIN follows f ON p.author_id = f.author_id
        JOIN users u ON p.author_id = u.id
        LEFT JOIN ` + "`groups`" + ` g ON p.group_id = g.id
        WHERE f.follower_id = ?
        ORDER BY p.created_at DESC, p.id DESC
        LIMIT ? OFFSET ?`

	posts, err := r.queryPosts(query, followerID, pageSize, offset(page, pageSize))
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) CountByAuthor(authorID int) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM posts WHERE author_id = ?", authorID).Scan(&count)
	return count, err
}

func (r *postRepository) queryPosts(query string, args ...interface{}) ([]*model.Post, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		util.Logger.Error("查询帖子列表失败", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			util.Logger.Error("扫描帖子数据失败", zap.Error(err))
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*model.Post, error) {
	var (
		post     model.Post
		author   model.User
		groupID  sql.NullInt64
		gID      sql.NullInt64
		gTitle   sql.NullString
		gDesc    sql.NullString
		gSlug    sql.NullString
		imageURL sql.NullString
	)

	err := row.Scan(
		&post.ID, &post.AuthorID, &groupID, &post.Text, &imageURL, &post.CreatedAt,
		&author.Username, &author.Email, &author.Bio,
		&gID, &gTitle, &gDesc, &gSlug,
	)
	if err != nil {
		return nil, err
	}

	post.ImageURL = imageURL.String
	author.ID = post.AuthorID
	post.Author = &author

	if groupID.Valid {
		id := int(groupID.Int64)
		post.GroupID = &id
		post.Group = &model.Group{
			ID:          int(gID.Int64),
			Title:       gTitle.String,
			Description: gDesc.String,
			Slug:        gSlug.String,
		}
	}
	return &post, nil
}

func offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
