package entity

import "time"

// SearchSession is the per-session state kept between a search and its
// follow-up filter and pagination requests
type SearchSession struct {
	ID        string       `json:"id"`
	Params    SearchParams `json:"params"`
	Result    *ResultInfo  `json:"result"`
	Filter    FilterState  `json:"filter"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
