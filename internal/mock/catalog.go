// Package mock is the deterministic weather and activity oracle. It never
// touches the network; all data comes from an embedded YAML catalog.
package mock

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"tripplanner/internal/types"
)

//go:embed catalog.yaml
var catalogYAML []byte

var (
	ErrUnknownCity = errors.New("mock: unsupported city")
	ErrNoWeather   = errors.New("mock: no weather for date")
)

type catalogFile struct {
	Cities []cityFile `yaml:"cities"`
}

type cityFile struct {
	Name       string                 `yaml:"name"`
	Weather    map[string]weatherFile `yaml:"weather"`
	Activities []activityFile         `yaml:"activities"`
}

type weatherFile struct {
	Temperature     float64 `yaml:"temperature"`
	TemperatureUnit string  `yaml:"temperature_unit"`
	Condition       string  `yaml:"condition"`
}

type activityFile struct {
	ActivityID       string   `yaml:"activity_id"`
	Name             string   `yaml:"name"`
	StartTime        string   `yaml:"start_time"`
	EndTime          string   `yaml:"end_time"`
	Location         string   `yaml:"location"`
	Description      string   `yaml:"description"`
	Price            int      `yaml:"price"`
	RelatedInterests []string `yaml:"related_interests"`
}

type city struct {
	name       string
	weather    map[types.Date]types.Weather
	activities map[types.Date][]types.Activity
}

// Catalog answers weather and activity lookups. It is immutable after Load
// and safe for concurrent use.
type Catalog struct {
	cities map[string]*city
	byID   map[string]types.Activity
}

// Load parses a YAML catalog.
func Load(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("mock: parse catalog: %w", err)
	}
	c := &Catalog{cities: map[string]*city{}, byID: map[string]types.Activity{}}
	for _, cf := range f.Cities {
		ct := &city{
			name:       cf.Name,
			weather:    map[types.Date]types.Weather{},
			activities: map[types.Date][]types.Activity{},
		}
		for ds, w := range cf.Weather {
			d, err := types.ParseDate(ds)
			if err != nil {
				return nil, fmt.Errorf("mock: city %s: %w", cf.Name, err)
			}
			ct.weather[d] = types.Weather{Temperature: w.Temperature, TemperatureUnit: w.TemperatureUnit, Condition: w.Condition}
		}
		for _, af := range cf.Activities {
			a, err := af.toActivity()
			if err != nil {
				return nil, fmt.Errorf("mock: city %s: %w", cf.Name, err)
			}
			if _, dup := c.byID[a.ActivityID]; dup {
				return nil, fmt.Errorf("mock: duplicate activity id %s", a.ActivityID)
			}
			c.byID[a.ActivityID] = a
			day := a.StartTime.Date()
			ct.activities[day] = append(ct.activities[day], a)
		}
		c.cities[cityKey(cf.Name)] = ct
	}
	return c, nil
}

func (af activityFile) toActivity() (types.Activity, error) {
	start, err := types.ParseTimestamp(af.StartTime)
	if err != nil {
		return types.Activity{}, err
	}
	end, err := types.ParseTimestamp(af.EndTime)
	if err != nil {
		return types.Activity{}, err
	}
	interests := make([]types.Interest, 0, len(af.RelatedInterests))
	for _, s := range af.RelatedInterests {
		interests = append(interests, types.Interest(s))
	}
	a := types.Activity{
		ActivityID:       af.ActivityID,
		Name:             af.Name,
		StartTime:        start,
		EndTime:          end,
		Location:         af.Location,
		Description:      strings.TrimSpace(af.Description),
		Price:            af.Price,
		RelatedInterests: interests,
	}
	return a, a.Validate()
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(catalogYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func cityKey(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// Cities lists supported city names, sorted.
func (c *Catalog) Cities() []string {
	out := make([]string, 0, len(c.cities))
	for _, ct := range c.cities {
		out = append(out, ct.name)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Weather(date types.Date, cityName string) (types.Weather, error) {
	ct, ok := c.cities[cityKey(cityName)]
	if !ok {
		return types.Weather{}, fmt.Errorf("%w: %q", ErrUnknownCity, cityName)
	}
	w, ok := ct.weather[date]
	if !ok {
		return types.Weather{}, fmt.Errorf("%w: %s in %s", ErrNoWeather, date, ct.name)
	}
	return w, nil
}

// Activities returns the activities starting on date, in catalog order.
// Unsupported cities yield an empty list.
func (c *Catalog) Activities(date types.Date, cityName string) []types.Activity {
	ct, ok := c.cities[cityKey(cityName)]
	if !ok {
		return []types.Activity{}
	}
	src := ct.activities[date]
	out := make([]types.Activity, len(src))
	for i, a := range src {
		out[i] = cloneActivity(a)
	}
	return out
}

func (c *Catalog) ActivityByID(id string) (types.Activity, bool) {
	a, ok := c.byID[id]
	if !ok {
		return types.Activity{}, false
	}
	return cloneActivity(a), true
}

func cloneActivity(a types.Activity) types.Activity {
	a.RelatedInterests = slices.Clone(a.RelatedInterests)
	return a
}
