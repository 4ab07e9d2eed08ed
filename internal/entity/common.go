package entity

// Meta contains pagination metadata.
type Meta struct {
	Page     int64 `json:"page"`
	PageSize int64 `json:"page_size"`
	Total    int64 `json:"total"`
}

// BaseParams contains shared pagination parameters.
type BaseParams struct {
	PageSize int64 `json:"page_size" form:"page_size"`
	Page     int64 `json:"page" form:"page"`
}
