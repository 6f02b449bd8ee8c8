package mysql

import (
	"database/sql"

	"blog-backend/internal/model"
	"blog-backend/internal/util"

	"go.uber.org/zap"
)

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) *groupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(group *model.Group) error {
	query := "INSERT INTO `groups` (title, description, slug) VALUES (?, ?, ?)"
	result, err := r.db.Exec(query, group.Title, group.Description, group.Slug)
	if err != nil {
		util.Logger.Error("创建分组失败", zap.Error(err), zap.String("slug", group.Slug))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新分组ID失败", zap.Error(err))
		return err
	}
	group.ID = int(id)

	util.Logger.Info("分组创建成功", zap.Int("group_id", group.ID), zap.String("slug", group.Slug))
	return nil
}

func (r *groupRepository) GetBySlug(slug string) (*model.Group, error) {
	// GROUPS 在 MySQL 8.0 里是保留字，必须加反引号
	query := "SELECT id, title, description, slug FROM `groups` WHERE slug = ?"

	var group model.Group
	err := r.db.QueryRow(query, slug).Scan(
		&group.ID, &group.Title, &group.Description, &group.Slug,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// List 返回全部分组，用于发帖表单的分组下拉选择
func (r *groupRepository) List() ([]*model.Group, error) {
	query := "SELECT id, title, description, slug FROM `groups` ORDER BY title ASC"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		var group model.Group
		if err := rows.Scan(&group.ID, &group.Title, &group.Description, &group.Slug); err != nil {
			return nil, err
		}
		groups = append(groups, &group)
	}
	return groups, rows.Err()
}
