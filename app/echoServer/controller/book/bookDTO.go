package book

// BrowseQuery carries the browse filters as query parameters.
type BrowseQuery struct {
	Q         string  `query:"q"`
	Subject   string  `query:"subject"`
	Condition string  `query:"condition"`
	Location  string  `query:"location"`
	MinPrice  float64 `query:"min_price"`
	MaxPrice  float64 `query:"max_price"`
	Sort      string  `query:"sort"`
	Limit     int     `query:"limit"`
}
