package model

import "time"

// Group 话题分组，帖子可以选择性地归属于一个分组
type Group struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"` // 唯一的URL标识，创建后不再修改
}

type Post struct {
	ID        int       `json:"id"`
	AuthorID  int       `json:"author_id"`
	GroupID   *int      `json:"group_id,omitempty"`
	Text      string    `json:"text"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"` // 创建后不再修改
	Author    *User     `json:"author,omitempty"`
	Group     *Group    `json:"group,omitempty"`
}

type Comment struct {
	ID        int       `json:"id"`
	AuthorID  int       `json:"author_id"`
	PostID    int       `json:"post_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Author    *User     `json:"author,omitempty"`
}

// Follow 表示 follower 关注 author 的有向关系
// (follower_id, author_id) 在数据库层有唯一约束
type Follow struct {
	ID         int       `json:"id"`
	FollowerID int       `json:"follower_id"`
	AuthorID   int       `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
}
