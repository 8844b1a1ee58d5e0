package services

import (
	"fmt"
	"strings"

	"github.com/salesmate-labs/salesmate-cli/internal/core/domain"
)

// baseSystemPrompt frames every generated reply.
const baseSystemPrompt = `You are an expert sales assistant for an electronics store. Your role is to help customers find the perfect products that match their needs and budget.

Your approach:
- Be friendly, professional, and helpful
- Ask clarifying questions to understand customer needs
- Recommend products that genuinely fit their requirements
- Explain product benefits clearly and concisely
- Handle objections professionally

Guidelines:
- Always prioritize customer satisfaction over making a sale
- Be honest about product limitations
- Respect the customer's budget
- Keep responses concise and focused
- Don't reference the customer's "profile"; speak naturally as if you know the customer from previous conversations
- NEVER say you don't have a product if it appears in the inventory list
- NEVER make up product specifications - use only the data provided`

// intentAnalysisPrompt drives the intent classifier call. The reply format
// is line-oriented so it survives model formatting quirks.
const intentAnalysisPrompt = `Analyze the user's message and extract:
1. Intent (browsing, asking_question, requesting_recommendation, comparing_products, ready_to_buy, objection)
2. Mentioned product categories or types
3. Budget if mentioned
4. Key requirements or preferences

Respond in this exact format:
Intent: [intent]
Categories: [comma-separated list or "none"]
Budget: [amount or "not mentioned"]
Requirements: [comma-separated list or "none"]`

// PromptBuilder assembles system prompts from persona, product, and stage
// context.
type PromptBuilder struct{}

// NewPromptBuilder creates a prompt builder.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// SystemPrompt builds the full system prompt for a conversation turn.
func (b *PromptBuilder) SystemPrompt(persona *domain.Persona, products []domain.Product, stage domain.Stage) string {
	parts := []string{
		baseSystemPrompt,
		b.customerContext(persona),
		b.productContext(products),
		b.stageGuidance(stage, persona),
	}
	return strings.Join(parts, "\n\n")
}

// GreetingPrompt builds the system prompt for the opening greeting.
func (b *PromptBuilder) GreetingPrompt(persona *domain.Persona) string {
	return b.stageGuidance(domain.StageGreeting, persona)
}

// RecommendationPrompt builds the system prompt for an explicit
// recommendation request.
func (b *PromptBuilder) RecommendationPrompt(persona *domain.Persona, products []domain.Product) string {
	return b.stageGuidance(domain.StageRecommendation, persona) + "\n\n" + b.productContext(products)
}

// ComparisonPrompt builds the system prompt for a product comparison.
func (b *PromptBuilder) ComparisonPrompt(persona *domain.Persona, products []domain.Product) string {
	return b.stageGuidance(domain.StageComparison, persona) + "\n\n" + b.productContext(products)
}

// IntentPrompt returns the classifier system prompt.
func (b *PromptBuilder) IntentPrompt() string {
	return intentAnalysisPrompt
}

func (b *PromptBuilder) customerContext(p *domain.Persona) string {
	return fmt.Sprintf(`You are speaking with %s.

What you know about this customer:
- %s
- They prefer %s communication at a %s pace
- They have %s patience level
- Absolute deal breakers: %s

Use this information naturally. Don't ask questions about preferences you already know.`,
		p.Name,
		p.LLMContext(),
		orUnknown(p.Communication.Tone),
		orUnknown(p.Communication.Pace),
		orUnknown(p.Communication.PatienceLevel),
		joinOrNone(p.DealBreakers, 3),
	)
}

func (b *PromptBuilder) productContext(products []domain.Product) string {
	if len(products) == 0 {
		return "Currently, no specific products are being highlighted."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "STORE INVENTORY: %d products available\n\n", len(products))

	for i, p := range products {
		fmt.Fprintf(&sb, "PRODUCT #%d: %s\n", i+1, p.Name)
		fmt.Fprintf(&sb, "Brand: %s\n", p.Brand)
		fmt.Fprintf(&sb, "Category: %s / %s\n", p.Category, p.Subcategory)
		fmt.Fprintf(&sb, "Price: %s", p.FormattedPrice())
		if p.OnSale() {
			fmt.Fprintf(&sb, " (Original: %s %.2f, %d%% OFF)", p.Price.Currency, p.Price.OriginalPrice, p.Price.DiscountPercent)
		}
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "Stock: %s (%d units)\n", p.Stock.Status, p.Stock.Quantity)
		fmt.Fprintf(&sb, "Rating: %.1f/5.0 (%d reviews)\n", p.Rating, p.ReviewCount)
		fmt.Fprintf(&sb, "Warranty: %d months | Returns: %d days\n", p.Warranty.Months, p.Warranty.ReturnDays)
		if p.ShortDescription != "" {
			fmt.Fprintf(&sb, "Description: %s\n", p.ShortDescription)
		} else if p.Description != "" {
			fmt.Fprintf(&sb, "Description: %s\n", p.Description)
		}
		if len(p.Features) > 0 {
			fmt.Fprintf(&sb, "Key Features: %s\n", strings.Join(p.Features, ", "))
		}
		if len(p.UseCases) > 0 {
			fmt.Fprintf(&sb, "Use Cases: %s\n", strings.Join(p.UseCases, ", "))
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (b *PromptBuilder) stageGuidance(stage domain.Stage, p *domain.Persona) string {
	switch stage {
	case domain.StageGreeting:
		return fmt.Sprintf(`Conversation Stage: Initial Greeting

Your task:
- Greet the customer warmly using a %s style
- Welcome them to the store
- Ask an open-ended question to understand what they're looking for

Keep it brief and natural. Don't introduce yourself by name.`,
			orUnknown(p.Communication.GreetingStyle))

	case domain.StageRecommendation:
		return fmt.Sprintf(`Conversation Stage: Product Recommendation

Your task:
- Recommend 2-3 products that best match their stated needs
- Explain why each product fits their requirements
- Respect their budget range of $%.2f - $%.2f
- Use EXACT specifications from the product details provided

Focus on products that align with their valued features: %s`,
			p.Budget.Min, p.Budget.Max, joinOrNone(p.ValuedFeatures, 3))

	case domain.StageComparison:
		return fmt.Sprintf(`Conversation Stage: Product Comparison

Your task:
- Help them compare products they're interested in
- Highlight key differences in features, price, and value
- Be objective and honest about pros and cons
- Address any concerns about their deal breakers: %s
- Use EXACT specifications from the product details - never guess

Remember: They have %s price sensitivity.`,
			joinOrNone(p.DealBreakers, 2), orUnknown(p.Shopping.PriceSensitivity))

	case domain.StageObjectionHandling:
		return `Conversation Stage: Handling Concerns

Your task:
- Listen carefully to their concerns or objections
- Address concerns honestly and professionally
- Provide additional information or alternatives
- Reassure them about warranties, returns, and support
- Don't pressure - help them make the right decision`

	case domain.StageClosing:
		return fmt.Sprintf(`Conversation Stage: Closing the Sale

Your task:
- Summarize the recommended product(s)
- Confirm it meets their needs and budget
- Explain next steps (purchase process, delivery, etc.)
- Thank them for their time

Keep the tone positive and helpful, matching their %s preference.`,
			orUnknown(p.Communication.Tone))

	default:
		return fmt.Sprintf(`Conversation Stage: Needs Discovery

Your task:
- Ask targeted questions to understand their specific needs
- Listen for budget constraints, use cases, and preferences
- Identify must-have features vs nice-to-have features
- Take note of their %s tech level when explaining features

Remember: This customer has %s patience, so adjust your questioning pace accordingly.`,
			p.TechSavviness, orUnknown(p.Communication.PatienceLevel))
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "neutral"
	}
	return s
}

func joinOrNone(items []string, n int) string {
	if len(items) == 0 {
		return "none stated"
	}
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}
