// Package pagination holds the pure page math shared by the server list
// endpoint and the client's pagination controls. It never touches the store:
// a page past the end simply yields an offset past the end, and the store
// returns an empty window for it.
package pagination

// DefaultPageSize is the number of notes shown per page.
const DefaultPageSize = 8

// maxPagesToShow caps how many page numbers render before the control
// collapses the middle into ellipses.
const maxPagesToShow = 5

// Ellipsis is the marker value PageNumbers inserts where page numbers were
// elided. Valid page numbers are always >= 1, so 0 is free to carry it.
const Ellipsis = 0

// Window computes the offset/limit slice for a 1-based page. page values
// below 1 are treated as 1; pages past the end are not clamped.
func Window(page, pageSize, totalItems int) (offset, totalPages int) {
	if page < 1 {
		page = 1
	}
	offset = (page - 1) * pageSize
	totalPages = (totalItems + pageSize - 1) / pageSize
	return offset, totalPages
}

// PageNumbers returns the sequence of page numbers to render for pagination
// controls, with Ellipsis markers where pages were elided. When totalPages
// fits within maxPagesToShow every page is listed; otherwise the first and
// last pages always appear, plus a window of one page around currentPage
// clamped to [2, totalPages-1].
func PageNumbers(currentPage, totalPages int) []int {
	if totalPages <= maxPagesToShow {
		pages := make([]int, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	pages := []int{1}

	startPage := currentPage - 1
	if startPage < 2 {
		startPage = 2
	}
	endPage := currentPage + 1
	if endPage > totalPages-1 {
		endPage = totalPages - 1
	}

	if startPage > 2 {
		pages = append(pages, Ellipsis)
	}
	for i := startPage; i <= endPage; i++ {
		pages = append(pages, i)
	}
	if endPage < totalPages-1 {
		pages = append(pages, Ellipsis)
	}

	return append(pages, totalPages)
}
