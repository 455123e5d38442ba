package model

// Record is one raw row from the DaaS queue export. Any field may be blank;
// a blank date inherits the previous row's date during aggregation (the
// export merges date cells vertically across several logical rows).
type Record struct {
	Resource string
	Status   string
	Date     string
}

// DateBreakdown holds the per-date slice of an aggregation: how many records
// each resource and each canonical status contributed on that date.
type DateBreakdown struct {
	Resources map[string]int `json:"resources"`
	Statuses  map[string]int `json:"statuses"`
}

// Aggregation is the full output of the DaaS queue aggregator.
type Aggregation struct {
	ResourceCounts map[string]int           `json:"resource_counts"`
	StatusCounts   map[string]int           `json:"status_counts"`
	DateWise       map[string]DateBreakdown `json:"date_wise_data"`
}

// NewAggregation returns an Aggregation with all maps allocated.
func NewAggregation() Aggregation {
	return Aggregation{
		ResourceCounts: make(map[string]int),
		StatusCounts:   make(map[string]int),
		DateWise:       make(map[string]DateBreakdown),
	}
}

// TotalByResource sums the resource counters.
func (a Aggregation) TotalByResource() int {
	n := 0
	for _, c := range a.ResourceCounts {
		n += c
	}
	return n
}

// TotalByStatus sums the status counters.
func (a Aggregation) TotalByStatus() int {
	n := 0
	for _, c := range a.StatusCounts {
		n += c
	}
	return n
}
