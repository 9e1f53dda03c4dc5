package api

import "github.com/mergehosts/mergehosts/src/internal/hosts"

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// SummaryResponse is returned by GET /api/v1/summary.
type SummaryResponse struct {
	Sources []hosts.SourceStats `json:"sources"`
	Total   int                 `json:"total"`
}
