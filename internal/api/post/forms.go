package post

import (
	"strconv"
	"strings"

	"blog-backend/internal/model"
)

// PostForm 是发帖/编辑表单的回显数据和校验结果
type PostForm struct {
	Text    string
	GroupID int
	Errors  map[string]string
}

// parsePostForm 从请求中读取表单字段并校验。
// 分组必须从已有分组中选择，校验失败时不产生任何写入
func parsePostForm(text, group string, groups []*model.Group) *PostForm {
	form := &PostForm{
		Text:   text,
		Errors: make(map[string]string),
	}

	if strings.TrimSpace(form.Text) == "" {
		form.Errors["text"] = "内容不能为空"
	}

	if group != "" {
		id, err := strconv.Atoi(group)
		if err != nil {
			form.Errors["group"] = "无效的分组"
			return form
		}
		for _, g := range groups {
			if g.ID == id {
				form.GroupID = id
				break
			}
		}
		if form.GroupID == 0 {
			form.Errors["group"] = "分组不存在"
		}
	}
	return form
}

// Valid 返回表单是否通过校验
func (f *PostForm) Valid() bool {
	return len(f.Errors) == 0
}

// groupID 返回表单选中的分组ID，未选择时为 nil
func (f *PostForm) groupID() *int {
	if f.GroupID == 0 {
		return nil
	}
	id := f.GroupID
	return &id
}
