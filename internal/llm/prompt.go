package llm

import "fmt"

// Sector extensions appended to the base prompt, keyed by business type.
// Unmatched types fall back to the generic key set.
var sectorPrompts = map[string]string{
	"Food & beverage": `
	Also add the following keys to the JSON, with insights specific to food businesses:
	- "menu_analysis": (string) "Dishes, drinks or cuisine styles that are trending or missing in the area."
	- "delivery_strategy": (string) "Tips to optimize presence on delivery apps and strategies for in-house delivery."
	`,
	"Retail": `
	Also add the following keys to the JSON, with insights specific to retail:
	- "product_mix_analysis": (string) "Analysis of the ideal product mix for this location, suggesting brands, styles or trending categories."
	- "visual_merchandising_strategy": (string) "Tips for the storefront and interior layout to maximize walk-ins and sales."
	`,
	"Personal care": `
	Also add the following keys to the JSON, with insights specific to personal-care services:
	- "signature_services": (string) "Suggestion of 2 to 3 exclusive services, techniques or products that can set the business apart from local competitors."
	- "scheduling_strategy": (string) "Analysis of the best way to manage appointments (own app, WhatsApp Business, etc.) to retain the local audience."
	`,
}

// sectorInsightKeys is every key a sector extension may add to the payload.
var sectorInsightKeys = []string{
	"menu_analysis",
	"delivery_strategy",
	"product_mix_analysis",
	"visual_merchandising_strategy",
	"signature_services",
	"scheduling_strategy",
}

func BuildInsightPrompt(
	businessType, term, location, competitorListing string,
	meanRating float64,
) string {

	base := fmt.Sprintf(`
	Analyze the market for '%s' in '%s'.
	Collected data:
	- Competitors found: %s
	- Average competitor rating: %.1f

	Generate a report as a JSON object with the following required keys:
	"executive_summary": (string) A concise paragraph with the market overview.
	"sentiment_analysis": (object) An object with keys "Positive", "Negative" and "Neutral", each a value from 0 to 100.
	"action_plan": (array of 5 to 7 strings) Practical, actionable steps.
	"demographics": (object) with keys "summary", "age_range" and "main_interests" (array).
	"competitor_dossiers": (array of objects) for the top 5 competitors, each with "name", "market_positioning", "strengths" and "weaknesses".
	`, term, location, competitorListing, meanRating)

	if extra, ok := sectorPrompts[businessType]; ok {
		return base + extra
	}
	return base
}

func BuildSWOTPrompt(term, location, summary string) string {
	return fmt.Sprintf(`Based on the following market analysis for '%s' in '%s': "%s". `+
		`Create a SWOT analysis. Your answer must be a JSON object with four keys: `+
		`"strengths", "weaknesses", "opportunities" and "threats". `+
		`Each key must contain an array of 2 to 3 strings.`,
		term, location, summary)
}
