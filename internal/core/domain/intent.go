package domain

// Intent is a classifier-derived tag summarising what the user's latest
// message is trying to accomplish.
type Intent string

// Recognised intents. Unknown is the graceful-degradation fallback when
// classification fails or returns something unparseable.
const (
	IntentBrowsing       Intent = "browsing"
	IntentAskingQuestion Intent = "asking_question"
	IntentRecommendation Intent = "requesting_recommendation"
	IntentComparing      Intent = "comparing_products"
	IntentReadyToBuy     Intent = "ready_to_buy"
	IntentObjection      Intent = "objection"
	IntentUnknown        Intent = "unknown"
)

// IsValid returns true if the intent is recognised.
func (i Intent) IsValid() bool {
	switch i {
	case IntentBrowsing, IntentAskingQuestion, IntentRecommendation,
		IntentComparing, IntentReadyToBuy, IntentObjection, IntentUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (i Intent) String() string {
	return string(i)
}

// ParseIntent maps a classifier output string onto the closed intent set,
// falling back to IntentUnknown for anything unrecognised.
func ParseIntent(s string) Intent {
	i := Intent(s)
	if i.IsValid() {
		return i
	}
	return IntentUnknown
}

// Stage is a coarse label for where a conversation turn sits in the sales
// funnel.
type Stage string

// Funnel stages.
const (
	StageGreeting          Stage = "greeting"
	StageDiscovery         Stage = "discovery"
	StageRecommendation    Stage = "recommendation"
	StageComparison        Stage = "comparison"
	StageObjectionHandling Stage = "objection_handling"
	StageClosing           Stage = "closing"
)

// String returns the string representation.
func (s Stage) String() string {
	return string(s)
}

// Stage maps the intent onto a funnel stage. The mapping is total:
// unmatched intents default to discovery.
func (i Intent) Stage() Stage {
	switch i {
	case IntentRecommendation:
		return StageRecommendation
	case IntentComparing:
		return StageComparison
	case IntentReadyToBuy:
		return StageClosing
	case IntentObjection:
		return StageObjectionHandling
	default:
		return StageDiscovery
	}
}

// IntentAnalysis is the structured result of classifying a user message.
type IntentAnalysis struct {
	// Intent is the classified purpose of the message.
	Intent Intent

	// Categories lists product categories the user mentioned, if any.
	Categories []string

	// Budget is a price ceiling extracted from the message, nil when the
	// user did not mention one.
	Budget *float64

	// Requirements lists other stated preferences.
	Requirements []string
}

// UnknownIntent returns the graceful-degradation analysis used when
// classification fails.
func UnknownIntent() IntentAnalysis {
	return IntentAnalysis{Intent: IntentUnknown}
}
