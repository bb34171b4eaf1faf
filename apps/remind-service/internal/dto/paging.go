package dto

// Paging defaults
const (
	DefaultPageSize = 12
	DefaultPageNum  = 5
)

// PagingUtil describes the page window shown under a list
type PagingUtil struct {
	Page          int  `json:"page"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	StartPage     int  `json:"startPage"`
	EndPage       int  `json:"endPage"`
	IsPrev        bool `json:"isPrev"`
	IsNext        bool `json:"isNext"`
}

// NewPagingUtil computes the window for page. size is the page size and
// pageNum the number of page links shown at once.
func NewPagingUtil(totalElements, page, size, pageNum int) *PagingUtil {
	if size <= 0 {
		size = DefaultPageSize
	}
	if pageNum <= 0 {
		pageNum = DefaultPageNum
	}

	totalPages := 1
	if totalElements > 0 {
		totalPages = (totalElements-1)/size + 1
	}
	page = ClampPage(page, totalPages)

	start := ((page-1)/pageNum)*pageNum + 1
	end := start + pageNum - 1
	if end > totalPages {
		end = totalPages
	}

	return &PagingUtil{
		Page:          page,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		StartPage:     start,
		EndPage:       end,
		IsPrev:        start != 1,
		IsNext:        end*size < totalElements,
	}
}

// ClampPage keeps page within [1, totalPages]
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Offset is the row offset of page
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}
