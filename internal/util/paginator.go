package util

import "blog-backend/internal/model"

// Paginator 描述一整个有序序列的分页信息
type Paginator struct {
	Total    int `json:"total"`
	PerPage  int `json:"per_page"`
	NumPages int `json:"num_pages"`
}

// Page 是其中一页，携带该页的帖子
type Page struct {
	Number  int           `json:"number"`
	Posts   []*model.Post `json:"posts"`
	HasNext bool          `json:"has_next"`
	HasPrev bool          `json:"has_prev"`
}

// NewPaginator 根据总数和每页条数计算分页信息
func NewPaginator(total, perPage int) *Paginator {
	numPages := (total + perPage - 1) / perPage
	if numPages < 1 {
		numPages = 1
	}
	return &Paginator{
		Total:    total,
		PerPage:  perPage,
		NumPages: numPages,
	}
}

// FetchPage 通过 list 取一页帖子。页码超出总页数时收敛到
// 最后一页并返回最后一页的内容，而不是把越界页码直接落库
// 取回一个空列表
func FetchPage(list func(page int) ([]*model.Post, int, error), page, perPage int) (*Paginator, *Page, error) {
	if page < 1 {
		page = 1
	}

	posts, total, err := list(page)
	if err != nil {
		return nil, nil, err
	}

	paginator := NewPaginator(total, perPage)
	if page > paginator.NumPages {
		page = paginator.NumPages
		if posts, _, err = list(page); err != nil {
			return nil, nil, err
		}
	}
	return paginator, paginator.PageOf(posts, page), nil
}

// PageOf 把已经按页取出的帖子包装成一页，越界的页码收敛到边界页
func (p *Paginator) PageOf(posts []*model.Post, number int) *Page {
	if number < 1 {
		number = 1
	}
	if number > p.NumPages {
		number = p.NumPages
	}
	return &Page{
		Number:  number,
		Posts:   posts,
		HasNext: number < p.NumPages,
		HasPrev: number > 1,
	}
}
