package aura

// Info describes how weather inputs drive a mode.
type Info struct {
	Mode    Mode     `json:"mode"`
	Title   string   `json:"title"`
	Effects []string `json:"effects"`
}

var sharedEffects = []string{ //nolint:gochecknoglobals // static text
	"Coordinates → Base color hue",
	"Temperature → Color warmth/coolness",
	"Air Quality → Color saturation",
}

var modeEffects = map[Mode][]string{ //nolint:gochecknoglobals // static text
	Radial: {
		"Wind Speed → Number of layers & spread",
		"Wind Direction → Gradient center offset",
		"Cloud Cover → Polygon shape (circle to polygon)",
		"Precipitation → Rain streaks, droplets, wet gloss",
		"Altitude → Brightness intensity",
		"Humidity → Blur amount",
		"UV Index → Overall brightness",
		"Visibility → Opacity",
	},
	Layered: {
		"Wind Speed → Number of layers",
		"Wind Direction → Linear gradient angles",
		"Cloud Cover → Polygon shape",
		"Precipitation → Rain streaks & water droplets",
		"Pressure → Shadow spread",
		"Altitude → Brightness intensity",
	},
	Swirl: {
		"Wind Speed → Number of spiral layers",
		"Wind Direction → Rotation angle",
		"Cloud Cover → Polygon shape",
		"Precipitation → Swirling rain particles",
		"Altitude → Brightness intensity",
	},
	Linear: {
		"Wind Speed → Number of gradient layers",
		"Wind Direction → Gradient angles",
		"Cloud Cover → Polygon shape",
		"Precipitation → Vertical rain streaks",
		"UV Index → Brightness",
		"Altitude → Brightness intensity",
	},
	Particle: {
		"Wind Speed → Particle count & spread",
		"Wind Direction → Particle drift direction",
		"Cloud Cover → Polygon shape",
		"Precipitation → More particles & rain streaks",
		"Altitude → Brightness intensity",
	},
	Fractal: {
		"Wind Speed → Grid complexity",
		"Wind Direction → Pattern angles",
		"Cloud Cover → Polygon shape",
		"Precipitation → Rain texture overlay",
		"Weather Code → Contrast (clear vs foggy)",
		"Altitude → Brightness intensity",
	},
}

var randomizerEffects = []string{ //nolint:gochecknoglobals // static text
	"Randomly selects one of the other modes",
	"All data inputs affect the chosen mode",
	"Each random generation uses a different mode",
	"Great for exploring visual variation",
}

var modeTitles = map[Mode]string{ //nolint:gochecknoglobals // static text
	Radial:     "Radial Mode",
	Layered:    "Layered Mode",
	Swirl:      "Swirl Mode",
	Linear:     "Linear Mode",
	Particle:   "Particle Mode",
	Fractal:    "Fractal Mode",
	Randomizer: "Randomizer Mode",
}

// Describe returns the title and input-to-effect lines of a mode.
func Describe(m Mode) Info {
	if m == Randomizer {
		return Info{Mode: m, Title: modeTitles[m], Effects: append([]string(nil), randomizerEffects...)}
	}
	if !m.IsConcrete() {
		m = Radial
	}
	effects := make([]string, 0, len(sharedEffects)+len(modeEffects[m]))
	effects = append(effects, sharedEffects...)
	effects = append(effects, modeEffects[m]...)
	return Info{Mode: m, Title: modeTitles[m], Effects: effects}
}

// DescribeAll returns Describe for every selectable mode.
func DescribeAll() []Info {
	modes := Modes()
	out := make([]Info, 0, len(modes))
	for _, m := range modes {
		out = append(out, Describe(m))
	}
	return out
}
