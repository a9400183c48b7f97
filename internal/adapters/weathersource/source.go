// Package weathersource defines where observations come from. Adapters in the
// sub-packages fetch live readings or generate plausible synthetic ones.
package weathersource

import (
	"context"
	"errors"
	"strings"

	"github.com/okian/aura/internal/domain/model"
	"github.com/okian/aura/internal/domain/weather"
)

// Sentinel kinds for source errors.
var (
	ErrUpstream     = errors.New("weather upstream failed")
	ErrNotFound     = errors.New("location not found")
	ErrInvalidQuery = errors.New("invalid location query")
)

// Source produces observations for a location and resolves place names.
type Source interface {
	Fetch(ctx context.Context, loc model.Location) (weather.Observation, error)
	Geocode(ctx context.Context, query string) (model.Location, error)
}

// Random is the randomness RandomPlace draws from.
type Random interface {
	Intn(n int) int
}

// Places with fixed coordinates that geocoders do not resolve well.
var specialPlaces = []model.Location{ //nolint:gochecknoglobals // static lookup table
	{Name: "Pacific Ocean", Latitude: -10, Longitude: -140},
	{Name: "Atlantic Ocean", Latitude: 30, Longitude: -30},
	{Name: "Indian Ocean", Latitude: -20, Longitude: 80},
	{Name: "Arctic Ocean", Latitude: 80, Longitude: 0},
	{Name: "Southern Ocean", Latitude: -60, Longitude: 0},
	{Name: "Antarctica", Latitude: -75, Longitude: 0},
	{Name: "South Pole", Latitude: -90, Longitude: 0},
	{Name: "North Pole", Latitude: 90, Longitude: 0},
	{Name: "Point Nemo, Pacific Ocean", Latitude: -48.8767, Longitude: -123.3933},
	{Name: "Mid-Atlantic Ridge", Latitude: 0, Longitude: -25},
	{Name: "Mariana Trench", Latitude: 11.35, Longitude: 142.2},
}

// curatedPlaces is the pool RandomPlace picks from.
var curatedPlaces = []string{ //nolint:gochecknoglobals // static list
	"Tokyo, Japan", "New York, USA", "London, UK", "Paris, France", "Sydney, Australia",
	"Mumbai, India", "São Paulo, Brazil", "Cairo, Egypt", "Istanbul, Turkey", "Bangkok, Thailand",
	"Mexico City, Mexico", "Buenos Aires, Argentina", "Lagos, Nigeria", "Jakarta, Indonesia", "Seoul, South Korea",
	"Moscow, Russia", "Berlin, Germany", "Madrid, Spain", "Rome, Italy", "Amsterdam, Netherlands",
	"Vancouver, Canada", "Dubai, UAE", "Singapore", "Hong Kong", "Shanghai, China",
	"Los Angeles, USA", "Chicago, USA", "San Francisco, USA", "Miami, USA", "Seattle, USA",
	"Denver, USA", "St. Louis, USA", "Portland, USA", "Boston, USA", "Austin, USA",
	"Reykjavik, Iceland", "Oslo, Norway", "Stockholm, Sweden", "Helsinki, Finland", "Copenhagen, Denmark",
	"Lima, Peru", "Bogotá, Colombia", "Santiago, Chile", "Caracas, Venezuela",
	"Nairobi, Kenya", "Cape Town, South Africa", "Casablanca, Morocco", "Tunis, Tunisia", "Accra, Ghana",
	"Kathmandu, Nepal", "Lhasa, Tibet", "Ulaanbaatar, Mongolia", "Almaty, Kazakhstan", "Tashkent, Uzbekistan",
	"Anchorage, USA", "Fairbanks, USA", "Yellowknife, Canada", "Nuuk, Greenland", "Longyearbyen, Svalbard",
	"Honolulu, USA", "Fiji", "Tahiti", "Bora Bora", "Maldives",
	"Mount Everest Base Camp", "Kilimanjaro", "Machu Picchu", "Grand Canyon", "Sahara Desert",
	"Amazon Rainforest", "Siberia", "Patagonia", "Death Valley, USA", "Atacama Desert, Chile",
	"Gobi Desert, Mongolia", "Namib Desert, Namibia", "Great Barrier Reef, Australia", "Iguazu Falls, Argentina",
	"Niagara Falls", "Mount Fuji, Japan", "Mount Kilimanjaro, Tanzania", "Mount Rainier, USA",
	"Antarctica", "McMurdo Station, Antarctica", "South Pole", "North Pole",
	"Point Nemo, Pacific Ocean", "Bouvet Island", "Tristan da Cunha", "Easter Island",
	"Svalbard, Norway", "Alert, Nunavut, Canada", "Oymyakon, Russia", "Vostok Station, Antarctica",
	"Pacific Ocean", "Atlantic Ocean", "Indian Ocean", "Arctic Ocean", "Southern Ocean",
	"Mid-Atlantic Ridge", "Mariana Trench", "Hawaii", "Galapagos Islands", "Madagascar",
	"Dallol, Ethiopia", "Lut Desert, Iran", "Salar de Uyuni, Bolivia", "Danakil Depression, Ethiopia",
	"Lake Baikal, Russia", "Dead Sea", "Caspian Sea", "Lake Titicaca, Peru",
}

// SpecialPlace returns the fixed coordinates of a well-known remote place.
// Matching ignores case and surrounding space.
func SpecialPlace(name string) (model.Location, bool) {
	name = strings.TrimSpace(name)
	for _, p := range specialPlaces {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return model.Location{}, false
}

// Places returns the curated place names.
func Places() []string {
	return append([]string(nil), curatedPlaces...)
}

// RandomPlace picks one curated place name.
func RandomPlace(rng Random) string {
	return curatedPlaces[rng.Intn(len(curatedPlaces))]
}
