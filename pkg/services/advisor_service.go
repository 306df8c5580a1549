package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	config "chainmind-api/configs"
	"chainmind-api/pkg/gemini"
	"chainmind-api/pkg/models"
)

// User-facing degraded output. Failures never propagate past this service:
// narrative calls fall back to a fixed sentence, structured calls to nil.
const (
	keyMissingMessage = "Opps! Server settings mein 'GEMINI_API_KEY' missing hai. Please check environment variables."
	fallbackMessage   = "I encountered an error. Please ensure your API key is valid and active."
)

const advisorCallTimeout = 30 * time.Second

// AdvisorService fronts the generative-language API with the three
// dashboard operations: narrative analysis, structured system summary and
// structured supplier comparison.
type AdvisorService struct {
	client  *gemini.Client
	persona *config.AdvisorPersona
}

// NewAdvisorService creates a new advisor service.
func NewAdvisorService(client *gemini.Client, persona *config.AdvisorPersona) *AdvisorService {
	if persona == nil {
		persona = config.DefaultAdvisorPersona()
	}
	return &AdvisorService{
		client:  client,
		persona: persona,
	}
}

// ChainAnalysis answers a free-text question against the current snapshot.
// It always returns displayable text, never an error.
func (as *AdvisorService) ChainAnalysis(ctx context.Context, query string, snap models.Snapshot) string {
	if !as.client.HasAPIKey() {
		return keyMissingMessage
	}

	ctx, cancel := context.WithTimeout(ctx, advisorCallTimeout)
	defer cancel()

	prompt := fmt.Sprintf(`Current Supply Chain Context:
1. Sales Data: %s
2. Inventory: %s
3. Suppliers: %s
4. Logistics: %s

%s
User Query: %s`,
		mustJSON(snap.Sales),
		mustJSON(snap.Inventory),
		mustJSON(snap.Suppliers),
		mustJSON(snap.Logistics),
		as.persona.BuildSystemPrompt(),
		query,
	)

	tools := []gemini.Tool{
		{GoogleMaps: &struct{}{}},
		{GoogleSearch: &struct{}{}},
	}

	response, err := as.client.GenerateContent(ctx, prompt, nil, tools)
	if err != nil {
		log.Printf("Chain analysis failed: %v", err)
		return fallbackMessage
	}

	text := response.Text()
	if text == "" {
		return fallbackMessage
	}

	if sources := groundingSources(response); len(sources) > 0 {
		var sb strings.Builder
		sb.WriteString(text)
		sb.WriteString("\n\n**Related Sources & Locations:**")
		for _, src := range sources {
			sb.WriteString(fmt.Sprintf("\n- [%s](%s)", src.Title, src.URI))
		}
		text = sb.String()
	}

	return text
}

// SystemSummary requests the four-key structured summary. Returns nil when
// anything fails; callers render placeholder text for nil.
func (as *AdvisorService) SystemSummary(ctx context.Context, snap models.Snapshot) *models.SystemSummary {
	if !as.client.HasAPIKey() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, advisorCallTimeout)
	defer cancel()

	prompt := fmt.Sprintf(`Context: Sales: %s, Inventory: %s, Suppliers: %s, Logistics: %s
Analyze and return JSON:
{
  "forecast": { "number": 1200, "explanation": "text" },
  "risk": { "level": "text", "days": 5, "explanation": "text" },
  "procurement": { "units": 500, "supplier": "text", "reason": "text", "timing": "text" },
  "logistics": { "route": "text", "delays": "text", "advice": "text" }
}`,
		mustJSON(snap.Sales),
		mustJSON(snap.Inventory),
		mustJSON(snap.Suppliers),
		mustJSON(snap.Logistics),
	)

	var summary models.SystemSummary
	if err := as.client.GenerateJSON(ctx, prompt, &summary); err != nil {
		log.Printf("System summary failed: %v", err)
		return nil
	}
	return &summary
}

// CompareSuppliers requests a ranked supplier comparison. The urgency flag
// is baked into the prompt wording. Returns nil when anything fails.
func (as *AdvisorService) CompareSuppliers(ctx context.Context, suppliers []models.SupplierRecord, urgent bool) *models.SupplierComparison {
	if !as.client.HasAPIKey() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, advisorCallTimeout)
	defer cancel()

	mode := "regular"
	if urgent {
		mode = "URGENT"
	}

	prompt := fmt.Sprintf(`Compare suppliers for a %s order: %s
Return JSON:
{
  "comparison": [
    { "name": "text", "score": 85, "pros": ["text"], "cons": ["text"], "rank": 1 }
  ],
  "winner": { "name": "text", "reasoning": "text" },
  "urgencyAdvice": "text"
}
Score each supplier 0-100, rank starting at 1 for the best option.`,
		mode,
		mustJSON(suppliers),
	)

	var comparison models.SupplierComparison
	if err := as.client.GenerateJSON(ctx, prompt, &comparison); err != nil {
		log.Printf("Supplier comparison failed: %v", err)
		return nil
	}
	return &comparison
}

// groundingSources flattens the web and maps citations of a response.
func groundingSources(response *gemini.GenerateContentResponse) []models.GroundingSource {
	var sources []models.GroundingSource
	for _, chunk := range response.GroundingChunksOf() {
		if chunk.Maps != nil {
			sources = append(sources, models.GroundingSource{Title: chunk.Maps.Title, URI: chunk.Maps.URI})
		} else if chunk.Web != nil {
			sources = append(sources, models.GroundingSource{Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}
	return sources
}

// mustJSON serializes fixture-backed state that cannot fail to encode.
func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}
