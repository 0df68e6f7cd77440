package response

// Pagination describes a page cut from an in-memory listing. From and To are
// 1-based item positions; both are 0 for an empty page.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	TotalItems int  `json:"total_items"`
	HasMore    bool `json:"has_more"`
	From       int  `json:"from"`
	To         int  `json:"to"`
}
