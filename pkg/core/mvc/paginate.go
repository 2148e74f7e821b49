package mvc

import (
	"gorm.io/gorm"
)

type Page struct {
	PageNum int         `json:"pageNum"`
	Size    int         `json:"size"`
	Sort    interface{} `json:"sort"`
}

func Paginate(page *Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset, size := page.Paginate()
		return db.Offset(offset).Limit(size)
	}
}

// Paginate 返回 offset 与 size，页码从 1 开始，size 默认 10
func (page *Page) Paginate() (int, int) {
	pageNum := page.PageNum
	size := page.Size

	if pageNum <= 0 {
		pageNum = 1
	}
	if size <= 0 {
		size = 10
	}

	return (pageNum - 1) * size, size
}
