package domain

import (
	"fmt"
	"strings"
)

// TechSavviness describes how comfortable a persona is with technology.
type TechSavviness string

// Recognised tech savviness levels.
const (
	TechBeginner TechSavviness = "beginner"
	TechModerate TechSavviness = "moderate"
	TechHigh     TechSavviness = "high"
	TechExpert   TechSavviness = "expert"
)

// IsValid returns true if the level is recognised.
func (t TechSavviness) IsValid() bool {
	switch t {
	case TechBeginner, TechModerate, TechHigh, TechExpert:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t TechSavviness) String() string {
	return string(t)
}

// BudgetRange is a persona's spending envelope.
type BudgetRange struct {
	// Min and Max bound the acceptable price. Invariant: 0 <= Min <= Max.
	Min float64
	Max float64

	// SweetSpot is the preferred spend. Zero means unset; use the
	// SweetSpotOrMax accessor, which defaults to Max.
	SweetSpot float64
}

// SweetSpotOrMax returns the preferred spend, defaulting to Max when unset.
func (b BudgetRange) SweetSpotOrMax() float64 {
	if b.SweetSpot > 0 {
		return b.SweetSpot
	}
	return b.Max
}

// Contains reports whether the price falls inside [Min, Max].
func (b BudgetRange) Contains(price float64) bool {
	return price >= b.Min && price <= b.Max
}

// Validate checks the budget invariants.
func (b BudgetRange) Validate() error {
	if b.Min < 0 || b.Max < 0 {
		return fmt.Errorf("%w: budget values cannot be negative", ErrInvalidInput)
	}
	if b.Min > b.Max {
		return fmt.Errorf("%w: minimum budget cannot exceed maximum", ErrInvalidInput)
	}
	return nil
}

// CommunicationStyle captures how a persona prefers to converse.
type CommunicationStyle struct {
	Pace      string
	Tone      string
	Verbosity string

	// PatienceLevel and GreetingStyle drive prompt guidance.
	PatienceLevel string
	GreetingStyle string
}

// ShoppingBehavior captures a persona's purchasing habits.
type ShoppingBehavior struct {
	PriceSensitivity string
	DecisionTime     string
	Influences       []string
}

// Persona is an immutable synthetic customer profile loaded from the
// persona source. Identity is the persona ID.
type Persona struct {
	// ID is the unique persona identifier.
	ID string

	// Name is the persona's display name.
	Name string

	// Age in years.
	Age int

	// Occupation is a free-form job description.
	Occupation string

	// TechSavviness drives how technical the assistant's replies get.
	TechSavviness TechSavviness

	// Budget is the spending envelope used as a hard recommendation gate.
	Budget BudgetRange

	// CategoriesOfInterest lists product categories the persona cares about.
	CategoriesOfInterest []string

	// ValuedFeatures lists feature keywords the persona looks for.
	ValuedFeatures []string

	// DealBreakers lists attributes that rule a product out.
	DealBreakers []string

	// PainPoints lists current frustrations worth addressing.
	PainPoints []string

	// Communication captures conversational preferences.
	Communication CommunicationStyle

	// Shopping captures purchasing habits.
	Shopping ShoppingBehavior
}

// Validate checks the persona invariants.
func (p *Persona) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: persona ID is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: persona name is required", ErrInvalidInput)
	}
	if p.Age < 0 || p.Age > 120 {
		return fmt.Errorf("%w: age must be between 0 and 120", ErrInvalidInput)
	}
	if len(p.CategoriesOfInterest) == 0 {
		return fmt.Errorf("%w: categories of interest must be non-empty", ErrInvalidInput)
	}
	return p.Budget.Validate()
}

// InterestedIn reports a case-insensitive category-of-interest match.
func (p *Persona) InterestedIn(category string) bool {
	for _, c := range p.CategoriesOfInterest {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// ValuesFeature reports a case-insensitive valued-feature match.
func (p *Persona) ValuesFeature(feature string) bool {
	for _, f := range p.ValuedFeatures {
		if strings.EqualFold(f, feature) {
			return true
		}
	}
	return false
}

// WithinBudget reports whether the price falls inside the budget envelope.
func (p *Persona) WithinBudget(price float64) bool {
	return p.Budget.Contains(price)
}

// LLMContext renders a compact profile summary for system prompts.
func (p *Persona) LLMContext() string {
	return fmt.Sprintf(
		"Customer Profile: %s, %d years old, %s. "+
			"Tech savviness: %s. "+
			"Communication style: %s tone, %s pace. "+
			"Shopping behavior: %s price sensitivity, %s decision time. "+
			"Key interests: %s. "+
			"Budget range: $%.2f-$%.2f. "+
			"Values: %s. "+
			"Pain points: %s.",
		p.Name, p.Age, p.Occupation,
		p.TechSavviness,
		p.Communication.Tone, p.Communication.Pace,
		p.Shopping.PriceSensitivity, p.Shopping.DecisionTime,
		firstN(p.CategoriesOfInterest, 3),
		p.Budget.Min, p.Budget.Max,
		firstN(p.ValuedFeatures, 5),
		firstN(p.PainPoints, 3),
	)
}

// firstN joins at most n items from a list for prompt building.
func firstN(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}
