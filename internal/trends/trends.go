// Package trends selects article topics. It stands in for an unreliable
// third-party trends service with a curated catalog, so the pipeline never
// stalls on topic discovery.
package trends

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"BlogForge/internal/ports"
)

// DefaultRegion matches the business's primary market.
const DefaultRegion = "BF"

var catalog = []string{
	"Guide du nettoyage à sec professionnel",
	"Comment enlever les taches tenaces",
	"Entretien des vêtements de marque",
	"Nettoyage écologique et durable",
	"Conseils de blanchisserie pour vêtements délicats",
	"Préservation des couleurs lors du lavage",
	"Nettoyage des tissus spécialisés",
	"Élimination des odeurs des vêtements",
	"Repassage professionnel des chemises",
	"Entretien des vêtements de sport",
}

var fallback = []string{
	"Guide du nettoyage à sec",
	"Comment enlever les taches",
	"Entretien des vêtements",
	"Nettoyage écologique",
	"Conseils de blanchisserie",
}

const selectionSize = 5

// Source implements ports.TopicSource over the static catalog.
type Source struct {
	logger  *slog.Logger
	shuffle func([]string)
}

var _ ports.TopicSource = (*Source)(nil)

// NewSource builds a topic source; logger may be nil.
func NewSource(logger *slog.Logger) *Source {
	return &Source{
		logger: logger,
		shuffle: func(topics []string) {
			rand.Shuffle(len(topics), func(i, j int) {
				topics[i], topics[j] = topics[j], topics[i]
			})
		},
	}
}

// TrendingTopics returns a shuffled selection from the catalog. It never
// fails; any internal problem degrades to the fixed fallback list.
func (s *Source) TrendingTopics(ctx context.Context, region string) []string {
	if region == "" {
		region = DefaultRegion
	}

	selected, err := s.pick()
	if err != nil {
		s.log("topic selection failed, using fallback list", "region", region, "error", err)
		return append([]string(nil), fallback...)
	}

	s.log("topics selected", "region", region, "count", len(selected))
	return selected
}

func (s *Source) pick() (topics []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			topics = nil
			err = fmt.Errorf("topic shuffle panicked: %v", r)
		}
	}()

	shuffled := append([]string(nil), catalog...)
	s.shuffle(shuffled)
	return shuffled[:selectionSize], nil
}

func (s *Source) log(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
