package severity

import (
	"sort"
)

// Contributions at or below this are left out of an explanation.
const minContribution = 0.01

var factorDisplayNames = map[string]string{ //nolint:gochecknoglobals // static lookup table
	FactorWeatherCode:   "Weather Code",
	FactorWind:          "Wind Speed",
	FactorPrecipitation: "Precipitation",
	FactorVisibility:    "Visibility",
	FactorCloudCover:    "Cloud Cover",
}

// FactorContribution describes how much one factor moved the score.
type FactorContribution struct {
	Name         string  `json:"name"`
	DisplayName  string  `json:"display_name"`
	Value        float64 `json:"value"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
	Share        float64 `json:"share"`
}

// Explanation is a human-oriented breakdown of a Result.
type Explanation struct {
	Score       float64              `json:"score"`
	WeatherType WeatherType          `json:"weather_type"`
	Label       string               `json:"label"`
	Factors     []FactorContribution `json:"factors"`
}

// Explain breaks a result down into its significant contributions, largest
// first. Share is the fraction of the score a factor accounts for.
func Explain(r Result) Explanation {
	contributions := make([]FactorContribution, 0, len(r.Factors))
	for _, f := range r.Factors {
		c := f.Contribution()
		if c <= minContribution {
			continue
		}
		share := 0.0
		if r.Score > 0 {
			share = c / r.Score
		}
		name, ok := factorDisplayNames[f.Name]
		if !ok {
			name = f.Name
		}
		contributions = append(contributions, FactorContribution{
			Name:         f.Name,
			DisplayName:  name,
			Value:        f.Value,
			Weight:       f.Weight,
			Contribution: c,
			Share:        share,
		})
	}

	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].Contribution > contributions[j].Contribution
	})

	return Explanation{
		Score:       r.Score,
		WeatherType: r.WeatherType,
		Label:       r.WeatherType.DisplayName(),
		Factors:     contributions,
	}
}
