package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-1.5-flash"

type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini classifies with a Gemini model through the Gemini API.
type Gemini struct {
	models generator
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{models: client.Models, model: model}, nil
}

func (g *Gemini) Classify(ctx context.Context, menu []MenuItem, text string) (Result, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(menu, text)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return Result{}, fmt.Errorf("generate content: %w", err)
	}
	return parseResponse(resp.Text())
}

func buildPrompt(menu []MenuItem, text string) string {
	var sb strings.Builder
	sb.WriteString("Convert a restaurant customer's order into JSON. You recognise products on the menu by name or alias.\n\n")
	sb.WriteString("### MENU\n")
	for _, m := range menu {
		alias := m.Alias
		if alias == "" {
			alias = "N/A"
		}
		fmt.Fprintf(&sb, "- ID: %s, Name: '%s', Alias: %s\n", m.ID, m.Name, alias)
	}
	fmt.Fprintf(&sb, "\n### ORDER\n%q\n\n", text)
	sb.WriteString(`### RULES
1. Intent is one of ADD_ITEMS, MODIFY_QUANTITY, REMOVE_ITEMS, RESET_ORDER, NOT_FOUND.
2. For every product mentioned give its ID and the exact numeric quantity. No quantity means 1.
3. REMOVE_ITEMS without a number means quantity 999.
4. Answer with the JSON only.

### FORMAT
{"intent": "...", "entities": [{"product_id": "<ID>", "quantity": <QUANTITY>}]}
`)
	return sb.String()
}

// parseResponse decodes model output, tolerating markdown code fences and
// skipping entities whose product id is not a UUID.
func parseResponse(raw string) (Result, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")

	var decoded struct {
		Intent   string `json:"intent"`
		Entities []struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
		} `json:"entities"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &decoded); err != nil {
		return Result{}, fmt.Errorf("decode model output: %w", err)
	}

	res := Result{Intent: decoded.Intent, Entities: []Entity{}}
	for _, e := range decoded.Entities {
		id, err := uuid.Parse(e.ProductID)
		if err != nil {
			continue
		}
		res.Entities = append(res.Entities, Entity{ProductID: id, Quantity: e.Quantity})
	}
	return res, nil
}
