package models

// PageQuery captures pagination and filter parameters for list endpoints.
// Code, when set, is an exact-equality filter.
type PageQuery struct {
	PageSize int
	Offset   int
	Code     string
}

// DefaultPageSize is used when a list request omits pageSize.
const DefaultPageSize = 50

// Page is a single slice of a remote result set. Total counts every record
// matching the filter regardless of pagination; Offset echoes the request.
type Page[T any] struct {
	Total   int `json:"total"`
	Count   int `json:"count"`
	Offset  int `json:"offset"`
	Results []T `json:"results"`
}
