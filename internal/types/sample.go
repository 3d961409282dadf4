package types

// SampleVacationRequest is the demo request used when no request file is given.
func SampleVacationRequest() VacationRequest {
	return VacationRequest{
		Travelers: []Traveler{
			{Name: "Yuri", Age: 30, Interests: []Interest{InterestTennis, InterestCooking, InterestComedy, InterestTechnology}},
			{Name: "Hiro", Age: 25, Interests: []Interest{InterestReading, InterestMusic, InterestTheatre, InterestArt}},
		},
		Destination:     "AgentsVille",
		DateOfArrival:   "2025-06-10",
		DateOfDeparture: "2025-06-12",
		Budget:          130,
	}
}
