package types

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Request side ----------------------------------------------------------------------

type Traveler struct {
	Name      string     `json:"name"`
	Age       int        `json:"age"`
	Interests []Interest `json:"interests"`
}

// NewTraveler validates and returns a Traveler. Interests are copied.
func NewTraveler(name string, age int, interests ...Interest) (Traveler, error) {
	t := Traveler{Name: name, Age: age, Interests: slices.Clone(interests)}
	if err := t.Validate(); err != nil {
		return Traveler{}, err
	}
	return t, nil
}

func (t Traveler) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("types: traveler name is empty")
	}
	if t.Age < 0 {
		return fmt.Errorf("types: traveler %s has negative age %d", t.Name, t.Age)
	}
	for _, i := range t.Interests {
		if !i.Valid() {
			return fmt.Errorf("types: traveler %s has unknown interest %q", t.Name, i)
		}
	}
	return nil
}

// VacationRequest is one planning problem instance.
type VacationRequest struct {
	Travelers       []Traveler `json:"travelers"`
	Destination     string     `json:"destination"`
	DateOfArrival   Date       `json:"date_of_arrival"`
	DateOfDeparture Date       `json:"date_of_departure"`
	Budget          int        `json:"budget"`
}

func NewVacationRequest(travelers []Traveler, destination string, arrival, departure Date, budget int) (VacationRequest, error) {
	r := VacationRequest{
		Travelers:       slices.Clone(travelers),
		Destination:     destination,
		DateOfArrival:   arrival,
		DateOfDeparture: departure,
		Budget:          budget,
	}
	if err := r.Validate(); err != nil {
		return VacationRequest{}, err
	}
	return r, nil
}

func (r VacationRequest) Validate() error {
	if len(r.Travelers) == 0 {
		return errors.New("types: vacation request has no travelers")
	}
	for _, t := range r.Travelers {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(r.Destination) == "" {
		return errors.New("types: vacation request destination is empty")
	}
	if err := r.DateOfArrival.Validate(); err != nil {
		return err
	}
	if err := r.DateOfDeparture.Validate(); err != nil {
		return err
	}
	if r.DateOfArrival.After(r.DateOfDeparture) {
		return fmt.Errorf("types: arrival %s is after departure %s", r.DateOfArrival, r.DateOfDeparture)
	}
	if r.Budget < 0 {
		return fmt.Errorf("types: negative budget %d", r.Budget)
	}
	return nil
}

// Dates lists every date of the stay, arrival and departure included.
func (r VacationRequest) Dates() ([]Date, error) {
	return DateRange(r.DateOfArrival, r.DateOfDeparture)
}

// InterestUnion collects every traveler's interests.
func (r VacationRequest) InterestUnion() InterestSet {
	s := NewInterestSet()
	for _, t := range r.Travelers {
		s.Add(t.Interests...)
	}
	return s
}

// Catalog side ----------------------------------------------------------------------

type Weather struct {
	Temperature     float64 `json:"temperature"`
	TemperatureUnit string  `json:"temperature_unit"`
	Condition       string  `json:"condition"`
}

type Activity struct {
	ActivityID       string     `json:"activity_id"`
	Name             string     `json:"name"`
	StartTime        Timestamp  `json:"start_time"`
	EndTime          Timestamp  `json:"end_time"`
	Location         string     `json:"location"`
	Description      string     `json:"description"`
	Price            int        `json:"price"`
	RelatedInterests []Interest `json:"related_interests"`
}

// Equal reports full-field equality. Interest order is significant.
func (a Activity) Equal(b Activity) bool {
	return a.ActivityID == b.ActivityID &&
		a.Name == b.Name &&
		a.StartTime == b.StartTime &&
		a.EndTime == b.EndTime &&
		a.Location == b.Location &&
		a.Description == b.Description &&
		a.Price == b.Price &&
		slices.Equal(a.RelatedInterests, b.RelatedInterests)
}

func (a Activity) Validate() error {
	if strings.TrimSpace(a.ActivityID) == "" {
		return errors.New("types: activity id is empty")
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("types: activity %s has no name", a.ActivityID)
	}
	if err := a.StartTime.Validate(); err != nil {
		return fmt.Errorf("activity %s: %w", a.ActivityID, err)
	}
	if err := a.EndTime.Validate(); err != nil {
		return fmt.Errorf("activity %s: %w", a.ActivityID, err)
	}
	if a.Price < 0 {
		return fmt.Errorf("types: activity %s has negative price %d", a.ActivityID, a.Price)
	}
	for _, i := range a.RelatedInterests {
		if !i.Valid() {
			return fmt.Errorf("types: activity %s has unknown interest %q", a.ActivityID, i)
		}
	}
	return nil
}

// Plan side -------------------------------------------------------------------------

type ActivityRecommendation struct {
	Activity                 Activity `json:"activity"`
	ReasonsForRecommendation []string `json:"reasons_for_recommendation"`
}

type ItineraryDay struct {
	Date                    Date                     `json:"date"`
	Weather                 Weather                  `json:"weather"`
	ActivityRecommendations []ActivityRecommendation `json:"activity_recommendations"`
}

// TravelPlan is a full itinerary. TotalCost is the stated cost; whether it
// matches the recommended prices is checked by evaluation, not here.
type TravelPlan struct {
	City          string         `json:"city"`
	StartDate     Date           `json:"start_date"`
	EndDate       Date           `json:"end_date"`
	TotalCost     int            `json:"total_cost"`
	ItineraryDays []ItineraryDay `json:"itinerary_days"`
}

// Validate checks structure only.
func (p TravelPlan) Validate() error {
	if strings.TrimSpace(p.City) == "" {
		return errors.New("types: travel plan city is empty")
	}
	if err := p.StartDate.Validate(); err != nil {
		return err
	}
	if err := p.EndDate.Validate(); err != nil {
		return err
	}
	for _, day := range p.ItineraryDays {
		if err := day.Date.Validate(); err != nil {
			return err
		}
		for _, rec := range day.ActivityRecommendations {
			if err := rec.Activity.Validate(); err != nil {
				return err
			}
			if len(rec.ReasonsForRecommendation) == 0 {
				return fmt.Errorf("types: recommendation %s on %s has no reasons", rec.Activity.ActivityID, day.Date)
			}
		}
	}
	return nil
}

// CalculatedCost sums the prices of every recommended activity.
func (p TravelPlan) CalculatedCost() int {
	total := 0
	for _, day := range p.ItineraryDays {
		for _, rec := range day.ActivityRecommendations {
			total += rec.Activity.Price
		}
	}
	return total
}

// Recommendations flattens the plan in day order.
func (p TravelPlan) Recommendations() []ActivityRecommendation {
	var out []ActivityRecommendation
	for _, day := range p.ItineraryDays {
		out = append(out, day.ActivityRecommendations...)
	}
	return out
}
