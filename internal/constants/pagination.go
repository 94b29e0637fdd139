package constants

// Listing query parameters
const (
	QueryParamCurrent  = "current"
	QueryParamPageSize = "pageSize"
	QueryParamName     = "name"
	QueryParamLocation = "location"
	QueryParamLimit    = "limit"
)

// Similar-jobs limits
const (
	DefaultSimilarLimit = 5
	MaxSimilarLimit     = 20
)

// Default sort per listing family
const (
	SortNewest          = "-createdAt"
	SortRecentlyUpdated = "-updatedAt"
)
