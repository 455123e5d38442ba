package queue

import "github.com/skv/csm-reporter/internal/model"

// SampleData returns the fixed fallback dataset used when the queue export
// cannot be read. The caller decides when to substitute it; Extract never
// does so on its own.
func SampleData() model.Aggregation {
	return model.Aggregation{
		ResourceCounts: map[string]int{
			"Abhijeet Nashikkar":        25,
			"Aditya Anand":              18,
			"Nishanth Senthilkumar":     22,
			"Sakthivel s Venkatachalam": 15,
			"Saptha":                    8,
		},
		StatusCounts: map[string]int{
			"New":                        12,
			"In Progress":                20,
			"Awaiting":                   15,
			"Internal Solution Provided": 10,
			"Resolved":                   25,
			"Closed":                     6,
		},
		DateWise: map[string]model.DateBreakdown{
			"01/09/2025": {
				Resources: map[string]int{
					"Abhijeet Nashikkar": 5, "Aditya Anand": 4,
					"Nishanth Senthilkumar": 6, "Sakthivel s Venkatachalam": 3,
					"Saptha": 2,
				},
				Statuses: map[string]int{
					"New": 3, "In Progress": 5, "Awaiting": 4,
					"Internal Solution Provided": 2, "Resolved": 5, "Closed": 1,
				},
			},
			"02/09/2025": {
				Resources: map[string]int{
					"Abhijeet Nashikkar": 4, "Aditya Anand": 3,
					"Nishanth Senthilkumar": 4, "Sakthivel s Venkatachalam": 2,
					"Saptha": 1,
				},
				Statuses: map[string]int{
					"New": 2, "In Progress": 3, "Awaiting": 2,
					"Internal Solution Provided": 2, "Resolved": 4, "Closed": 1,
				},
			},
			"03/09/2025": {
				Resources: map[string]int{
					"Abhijeet Nashikkar": 6, "Aditya Anand": 4,
					"Nishanth Senthilkumar": 5, "Sakthivel s Venkatachalam": 4,
					"Saptha": 2,
				},
				Statuses: map[string]int{
					"New": 2, "In Progress": 4, "Awaiting": 3,
					"Internal Solution Provided": 2, "Resolved": 8, "Closed": 2,
				},
			},
			"04/09/2025": {
				Resources: map[string]int{
					"Abhijeet Nashikkar": 5, "Aditya Anand": 3,
					"Nishanth Senthilkumar": 4, "Sakthivel s Venkatachalam": 3,
					"Saptha": 1,
				},
				Statuses: map[string]int{
					"New": 2, "In Progress": 4, "Awaiting": 3,
					"Internal Solution Provided": 2, "Resolved": 4, "Closed": 1,
				},
			},
			"05/09/2025": {
				Resources: map[string]int{
					"Abhijeet Nashikkar": 5, "Aditya Anand": 4,
					"Nishanth Senthilkumar": 3, "Sakthivel s Venkatachalam": 3,
					"Saptha": 2,
				},
				Statuses: map[string]int{
					"New": 3, "In Progress": 4, "Awaiting": 3,
					"Internal Solution Provided": 2, "Resolved": 4, "Closed": 1,
				},
			},
		},
	}
}
