package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/siderealworks/astrocarto/core"
	"github.com/siderealworks/astrocarto/model"
)

// Tables bundles the tunable scoring tables handed to the engine. The
// shipped defaults apply wherever the file leaves a value unset.
type Tables struct {
	Orbs      core.OrbPolicy
	Weights   core.Favorability
	Sentiment core.SentimentLookup
}

// tablesFile is the on-disk TOML shape. Every section is an overlay on the
// defaults, so a file can tune a single orb without restating the rest.
type tablesFile struct {
	Orbs struct {
		Base                   map[string]float64 `toml:"base"`
		TransitMultipliers     map[string]float64 `toml:"transit_multipliers"`
		ProgressionMultipliers map[string]float64 `toml:"progression_multipliers"`
	} `toml:"orbs"`
	Favorability struct {
		Bodies           map[string]float64 `toml:"bodies"`
		Aspects          map[string]float64 `toml:"aspects"`
		Sentiments       map[string]float64 `toml:"sentiments"`
		ProgressionBonus *float64           `toml:"progression_bonus"`
		VisitThreshold   *float64           `toml:"visit_threshold"`
	} `toml:"favorability"`
	LineSentiments []lineSentimentEntry `toml:"line_sentiments"`
}

type lineSentimentEntry struct {
	Body      string `toml:"body"`
	Line      string `toml:"line"`
	Sentiment string `toml:"sentiment"`
}

// DefaultTables returns the shipped tuning with a neutral sentiment
// classifier.
func DefaultTables() Tables {
	return Tables{
		Orbs:    core.DefaultOrbPolicy(),
		Weights: core.DefaultFavorability(),
		Sentiment: func(model.Body, model.LineType) model.Sentiment {
			return model.SentimentNeutral
		},
	}
}

// LoadTables reads a TOML tuning file and overlays it on the defaults.
// An empty path returns the defaults unchanged.
func LoadTables(path string) (Tables, error) {
	tables := DefaultTables()
	if path == "" {
		return tables, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("reading tuning tables: %w", err)
	}
	var file tablesFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return Tables{}, fmt.Errorf("parsing tuning tables %s: %w", path, err)
	}

	if err := overlayAspects(tables.Orbs.BaseOrbs, file.Orbs.Base); err != nil {
		return Tables{}, err
	}
	if err := overlayBodies(tables.Orbs.TransitMultipliers, file.Orbs.TransitMultipliers); err != nil {
		return Tables{}, err
	}
	if err := overlayBodies(tables.Orbs.ProgressionMultipliers, file.Orbs.ProgressionMultipliers); err != nil {
		return Tables{}, err
	}
	if err := overlayBodies(tables.Weights.MovingBody, file.Favorability.Bodies); err != nil {
		return Tables{}, err
	}
	if err := overlayAspects(tables.Weights.Aspect, file.Favorability.Aspects); err != nil {
		return Tables{}, err
	}
	for name, weight := range file.Favorability.Sentiments {
		s := model.Sentiment(name)
		if _, ok := tables.Weights.Sentiment[s]; !ok {
			return Tables{}, fmt.Errorf("unknown sentiment %q in tuning tables", name)
		}
		tables.Weights.Sentiment[s] = weight
	}
	if file.Favorability.ProgressionBonus != nil {
		tables.Weights.ProgressionBonus = *file.Favorability.ProgressionBonus
	}
	if file.Favorability.VisitThreshold != nil {
		tables.Weights.VisitThreshold = *file.Favorability.VisitThreshold
	}

	if len(file.LineSentiments) > 0 {
		lookup, err := sentimentLookup(file.LineSentiments)
		if err != nil {
			return Tables{}, err
		}
		tables.Sentiment = lookup
	}
	return tables, nil
}

func overlayBodies(dst map[model.Body]float64, src map[string]float64) error {
	for name, value := range src {
		body, ok := model.BodyFromString(name)
		if !ok {
			return fmt.Errorf("unknown body %q in tuning tables", name)
		}
		dst[body] = value
	}
	return nil
}

func overlayAspects(dst map[model.AspectType]float64, src map[string]float64) error {
	for name, value := range src {
		aspect := model.AspectType(name)
		if aspect.Angle() == 0 && aspect != model.Conjunction {
			return fmt.Errorf("unknown aspect %q in tuning tables", name)
		}
		dst[aspect] = value
	}
	return nil
}

var validLineTypes = map[model.LineType]bool{
	model.LineMC:  true,
	model.LineIC:  true,
	model.LineASC: true,
	model.LineDSC: true,
}

var validSentiments = map[model.Sentiment]bool{
	model.SentimentPositive:  true,
	model.SentimentDifficult: true,
	model.SentimentNeutral:   true,
}

func sentimentLookup(entries []lineSentimentEntry) (core.SentimentLookup, error) {
	type key struct {
		body model.Body
		line model.LineType
	}
	table := make(map[key]model.Sentiment, len(entries))
	for _, e := range entries {
		body, ok := model.BodyFromString(e.Body)
		if !ok {
			return nil, fmt.Errorf("unknown body %q in line sentiments", e.Body)
		}
		line := model.LineType(e.Line)
		if !validLineTypes[line] {
			return nil, fmt.Errorf("unknown line type %q in line sentiments", e.Line)
		}
		s := model.Sentiment(e.Sentiment)
		if !validSentiments[s] {
			return nil, fmt.Errorf("unknown sentiment %q in line sentiments", e.Sentiment)
		}
		table[key{body, line}] = s
	}

	return func(body model.Body, line model.LineType) model.Sentiment {
		if s, ok := table[key{body, line}]; ok {
			return s
		}
		return model.SentimentNeutral
	}, nil
}
