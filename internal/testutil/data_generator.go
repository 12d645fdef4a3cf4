package testutil

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// DataGenerator builds request payloads with realistic random values.
type DataGenerator struct {
	faker *gofakeit.Faker
	seed  uint64
}

// NewDataGenerator creates a generator; pass a seed for reproducible data.
func NewDataGenerator(seed ...uint64) *DataGenerator {
	var s uint64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = uint64(time.Now().UnixNano())
	}

	return &DataGenerator{
		faker: gofakeit.New(s),
		seed:  s,
	}
}

func (g *DataGenerator) Seed() uint64 {
	return g.seed
}

type CoursePayload struct {
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	City  string  `json:"city"`
	State string  `json:"state"`
}

type HolePayload struct {
	Number   int `json:"number"`
	Par      int `json:"par"`
	Distance int `json:"distance"`
}

type LayoutPayload struct {
	Name  string        `json:"name"`
	Holes []HolePayload `json:"holes"`
}

type UserPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type ScorePayload struct {
	Number  int `json:"number"`
	Strokes int `json:"strokes"`
}

type ScoreCardPayload struct {
	LayoutID uint           `json:"layoutId"`
	Datetime string         `json:"datetime"`
	Scores   []ScorePayload `json:"scores"`
}

func (g *DataGenerator) Course() CoursePayload {
	address := g.faker.Address()
	return CoursePayload{
		Name:  fmt.Sprintf("%s %s", g.faker.LastName(), g.faker.RandomString([]string{"Woods", "Park", "Hollow", "Ridge", "Meadows"})),
		Lat:   address.Latitude,
		Lon:   address.Longitude,
		City:  address.City,
		State: address.State,
	}
}

// Layout returns a layout with holes numbered 1..holeCount.
func (g *DataGenerator) Layout(holeCount int) LayoutPayload {
	holes := make([]HolePayload, 0, holeCount)
	for i := 1; i <= holeCount; i++ {
		holes = append(holes, HolePayload{
			Number:   i,
			Par:      g.faker.Number(3, 5),
			Distance: g.faker.Number(150, 650),
		})
	}
	return LayoutPayload{
		Name:  fmt.Sprintf("%s tees", g.faker.Color()),
		Holes: holes,
	}
}

func (g *DataGenerator) User() UserPayload {
	person := g.faker.Person()
	username := g.faker.Username()
	return UserPayload{
		FirstName: person.FirstName,
		LastName:  person.LastName,
		Email:     fmt.Sprintf("%s.%d@example.com", username, g.faker.Number(1000, 9999)),
		Username:  fmt.Sprintf("%s%d", username, g.faker.Number(1000, 9999)),
		Password:  g.faker.Password(true, true, true, false, false, 16),
	}
}

// ScoreCard scores every listed hole number of a layout.
func (g *DataGenerator) ScoreCard(layoutID uint, numbers ...int) ScoreCardPayload {
	scores := make([]ScorePayload, 0, len(numbers))
	for _, number := range numbers {
		scores = append(scores, ScorePayload{Number: number, Strokes: g.faker.Number(2, 7)})
	}
	played := g.faker.DateRange(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	return ScoreCardPayload{
		LayoutID: layoutID,
		Datetime: played.UTC().Truncate(time.Millisecond).Format(time.RFC3339Nano),
		Scores:   scores,
	}
}
