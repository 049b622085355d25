package repository

import "errors"

// ErrDuplicate 唯一约束冲突（邮箱、slug）
var ErrDuplicate = errors.New("repository: duplicate key")

// PostListFilter 查询文章列表的过滤条件
type PostListFilter struct {
	Page     int // 从 0 开始
	PageSize int
	Category string // 为空表示不过滤，大小写不敏感
	ViewerID string // 非空时额外可见该作者自己的草稿
	OrderBy  string
}
