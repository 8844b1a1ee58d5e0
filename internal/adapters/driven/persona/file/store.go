// Package file provides the file-backed persona store. Personas are
// synthetic customer profiles; the file is read once and never reloaded,
// a persona set does not change mid-session.
package file

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
	"github.com/salesmate-labs/salesmate-cli/internal/core/ports/driven"
	"github.com/salesmate-labs/salesmate-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.PersonaStore = (*Store)(nil)

// personaDocument is the top-level shape of the personas file.
type personaDocument struct {
	Personas []personaRecord `json:"personas" validate:"required,min=1,dive"`
}

// personaRecord is the on-disk persona shape.
type personaRecord struct {
	PersonaID     string `json:"persona_id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Age           int    `json:"age" validate:"gte=0,lte=120"`
	Occupation    string `json:"occupation"`
	TechSavviness string `json:"tech_savviness" validate:"required"`

	CommunicationStyle struct {
		Pace      string `json:"pace"`
		Tone      string `json:"tone"`
		Verbosity string `json:"verbosity"`
	} `json:"communication_style"`

	ConversationPatterns struct {
		GreetingStyle string `json:"greeting_style"`
		PatienceLevel string `json:"patience_level"`
	} `json:"conversation_patterns"`

	ShoppingBehavior struct {
		PriceSensitivity string   `json:"price_sensitivity"`
		DecisionTime     string   `json:"decision_time"`
		Influences       []string `json:"influences"`
	} `json:"shopping_behavior"`

	ProductPreferences struct {
		CategoriesOfInterest []string           `json:"categories_of_interest" validate:"required,min=1"`
		KeyFeaturesValued    []string           `json:"key_features_valued"`
		BudgetRange          map[string]float64 `json:"budget_range" validate:"required"`
		DealBreakers         []string           `json:"deal_breakers"`
	} `json:"product_preferences"`

	PainPoints []string `json:"pain_points"`
}

func (r *personaRecord) toDomain(validate *validator.Validate) (domain.Persona, error) {
	if err := validate.Struct(r); err != nil {
		return domain.Persona{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	savviness := domain.TechSavviness(r.TechSavviness)
	if !savviness.IsValid() {
		return domain.Persona{}, fmt.Errorf("%w: unknown tech savviness %q", domain.ErrInvalidInput, r.TechSavviness)
	}

	p := domain.Persona{
		ID:            r.PersonaID,
		Name:          r.Name,
		Age:           r.Age,
		Occupation:    r.Occupation,
		TechSavviness: savviness,
		Budget: domain.BudgetRange{
			Min:       r.ProductPreferences.BudgetRange["min"],
			Max:       r.ProductPreferences.BudgetRange["max"],
			SweetSpot: r.ProductPreferences.BudgetRange["sweet_spot"],
		},
		CategoriesOfInterest: r.ProductPreferences.CategoriesOfInterest,
		ValuedFeatures:       r.ProductPreferences.KeyFeaturesValued,
		DealBreakers:         r.ProductPreferences.DealBreakers,
		PainPoints:           r.PainPoints,
		Communication: domain.CommunicationStyle{
			Pace:          r.CommunicationStyle.Pace,
			Tone:          r.CommunicationStyle.Tone,
			Verbosity:     r.CommunicationStyle.Verbosity,
			PatienceLevel: r.ConversationPatterns.PatienceLevel,
			GreetingStyle: r.ConversationPatterns.GreetingStyle,
		},
		Shopping: domain.ShoppingBehavior{
			PriceSensitivity: r.ShoppingBehavior.PriceSensitivity,
			DecisionTime:     r.ShoppingBehavior.DecisionTime,
			Influences:       r.ShoppingBehavior.Influences,
		},
	}

	if err := p.Validate(); err != nil {
		return domain.Persona{}, err
	}
	return p, nil
}

// Store holds the loaded personas.
type Store struct {
	personas []domain.Persona
	byID     map[string]int
}

// NewStore creates a persona store from the personas file. Loading is
// all-or-nothing: one bad persona fails the whole file.
func NewStore(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read personas file %s: %w", domain.ErrLoad, path, err)
	}

	var doc personaDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse personas file %s: %w", domain.ErrLoad, path, err)
	}
	if len(doc.Personas) == 0 {
		return nil, fmt.Errorf("%w: no personas found in %s", domain.ErrLoad, path)
	}

	validate := validator.New()
	s := &Store{byID: make(map[string]int, len(doc.Personas))}
	for i := range doc.Personas {
		rec := &doc.Personas[i]
		p, err := rec.toDomain(validate)
		if err != nil {
			id := rec.PersonaID
			if id == "" {
				id = "unknown"
			}
			return nil, fmt.Errorf("%w: persona %s: %w", domain.ErrLoad, id, err)
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate persona id %s", domain.ErrLoad, p.ID)
		}
		s.byID[p.ID] = len(s.personas)
		s.personas = append(s.personas, p)
	}

	logger.Info("personas loaded: %d from %s", len(s.personas), path)
	return s, nil
}

// All returns every persona in source order.
func (s *Store) All() []domain.Persona {
	out := make([]domain.Persona, len(s.personas))
	copy(out, s.personas)
	return out
}

// ByID returns the persona with the given ID.
func (s *Store) ByID(id string) (*domain.Persona, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: persona %s", domain.ErrNotFound, id)
	}
	p := s.personas[i]
	return &p, nil
}
