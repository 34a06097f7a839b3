package domain

// Categories selects provider content categories
type Categories struct {
	General bool
	Anime   bool
	People  bool
}

// AllCategories enables every category
func AllCategories() Categories {
	return Categories{General: true, Anime: true, People: true}
}

// SearchFilters narrows a provider query
type SearchFilters struct {
	Categories Categories
	Nsfw       NsfwFilter
}

// SearchQuery is a single paginated provider query
type SearchQuery struct {
	Text    string
	Page    int
	Filters SearchFilters
}

// PageInfo describes pagination of a search result
type PageInfo struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// SearchResult holds one page of provider results
type SearchResult struct {
	Items    []Wallpaper
	PageInfo PageInfo
}

// Empty reports whether the result carries no items
func (r SearchResult) Empty() bool {
	return len(r.Items) == 0
}
