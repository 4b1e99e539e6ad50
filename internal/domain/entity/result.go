package entity

// ResultInfo is the merged, ranked outcome of one search. It is built once and
// never mutated; filtering derives new views from it.
type ResultInfo struct {
	Airlines        []string `json:"airlines"`
	DepAirports     []string `json:"depAirports"`
	ArrAirports     []string `json:"arrAirports"`
	MinPrice        float64  `json:"minPrice"`
	MaxPrice        float64  `json:"maxPrice"`
	Trips           []Trip   `json:"trips"`
	PairingsQueried int      `json:"pairingsQueried"`
	PairingsFailed  int      `json:"pairingsFailed"`
}
