// internal/services/design_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/couturehub/couture-backend/internal/config"
	"github.com/couturehub/couture-backend/internal/models"
	"github.com/couturehub/couture-backend/internal/utils"
)

// DesignService asks an OpenAI-compatible completion endpoint for model
// and fabric suggestions. Any upstream failure falls back to a static
// catalogue so the feature degrades instead of erroring.
type DesignService struct {
	config     *config.Config
	httpClient *http.Client
}

type GenerateModelsRequest struct {
	Prompt   string                  `json:"prompt" validate:"required,min=3"`
	Category models.ClothingCategory `json:"category,omitempty"`
	Count    int                     `json:"count,omitempty" validate:"omitempty,min=1,max=6"`
}

type AnalyzeFabricRequest struct {
	Description string `json:"description" validate:"required,min=3"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
}

type DesignSuggestion struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Styles      []string `json:"styles"`
}

type FabricAnalysis struct {
	FabricType     string   `json:"fabric_type"`
	Composition    string   `json:"composition"`
	SuitableFor    []string `json:"suitable_for"`
	CareNotes      string   `json:"care_notes"`
	Recommendation string   `json:"recommendation"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewDesignService(config *config.Config) *DesignService {
	return &DesignService{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Design.Timeout) * time.Second,
		},
	}
}

func (s *DesignService) GenerateModels(ctx context.Context, req *GenerateModelsRequest) ([]DesignSuggestion, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	count := req.Count
	if count == 0 {
		count = 3
	}

	prompt := fmt.Sprintf(
		"Suggest %d tailored clothing designs for: %s. Category: %s. "+
			"Respond as a JSON array of objects with fields name, category, description, styles.",
		count, req.Prompt, req.Category,
	)

	content, err := s.complete(ctx, prompt)
	if err != nil {
		logrus.WithError(err).Warn("Design generation failed, using fallback suggestions")
		return s.fallbackSuggestions(req.Category, count), nil
	}

	var suggestions []DesignSuggestion
	if err := json.Unmarshal([]byte(content), &suggestions); err != nil || len(suggestions) == 0 {
		logrus.WithError(err).Warn("Unparseable design response, using fallback suggestions")
		return s.fallbackSuggestions(req.Category, count), nil
	}

	return suggestions, nil
}

func (s *DesignService) AnalyzeFabric(ctx context.Context, req *AnalyzeFabricRequest) (*FabricAnalysis, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	prompt := fmt.Sprintf(
		"Analyze this fabric for tailoring: %s. "+
			"Respond as a JSON object with fields fabric_type, composition, suitable_for, care_notes, recommendation.",
		req.Description,
	)

	content, err := s.complete(ctx, prompt)
	if err != nil {
		logrus.WithError(err).Warn("Fabric analysis failed, using fallback analysis")
		return s.fallbackAnalysis(), nil
	}

	var analysis FabricAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil || analysis.FabricType == "" {
		logrus.WithError(err).Warn("Unparseable fabric response, using fallback analysis")
		return s.fallbackAnalysis(), nil
	}

	return &analysis, nil
}

func (s *DesignService) complete(ctx context.Context, prompt string) (string, error) {
	if s.config.Design.APIKey == "" {
		return "", fmt.Errorf("design API key not configured")
	}

	payload := chatCompletionRequest{
		Model: s.config.Design.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a tailoring and fashion design assistant. Reply with JSON only."},
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Design.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.config.Design.APIKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("design API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("design API returned status %d", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("design API returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

func (s *DesignService) fallbackSuggestions(category models.ClothingCategory, count int) []DesignSuggestion {
	catalogue := []DesignSuggestion{
		{
			Name:        "Classic Boubou",
			Category:    string(models.ClothingCategoryOther),
			Description: "Flowing wide-sleeved robe with embroidered neckline, suited to wax print or bazin fabric.",
			Styles:      []string{"traditional", "embroidered"},
		},
		{
			Name:        "Slim Two-Piece Suit",
			Category:    string(models.ClothingCategorySuit),
			Description: "Tailored single-breasted jacket with tapered trousers in lightweight wool.",
			Styles:      []string{"formal", "slim-fit"},
		},
		{
			Name:        "A-Line Wax Print Dress",
			Category:    string(models.ClothingCategoryDress),
			Description: "Knee-length A-line dress with statement sleeves in bold wax print.",
			Styles:      []string{"casual", "wax-print"},
		},
		{
			Name:        "Mandarin Collar Shirt",
			Category:    string(models.ClothingCategoryShirt),
			Description: "Fitted shirt with mandarin collar and contrast piping, cotton poplin.",
			Styles:      []string{"smart-casual"},
		},
		{
			Name:        "High-Waist Pencil Skirt",
			Category:    string(models.ClothingCategorySkirt),
			Description: "High-waisted pencil skirt with back vent, fully lined.",
			Styles:      []string{"office", "fitted"},
		},
		{
			Name:        "Wide-Leg Trousers",
			Category:    string(models.ClothingCategoryPants),
			Description: "Pleated wide-leg trousers with side pockets in linen blend.",
			Styles:      []string{"relaxed", "linen"},
		},
	}

	var filtered []DesignSuggestion
	for _, suggestion := range catalogue {
		if category == "" || suggestion.Category == string(category) {
			filtered = append(filtered, suggestion)
		}
	}
	if len(filtered) == 0 {
		filtered = catalogue
	}
	if len(filtered) > count {
		filtered = filtered[:count]
	}

	return filtered
}

func (s *DesignService) fallbackAnalysis() *FabricAnalysis {
	return &FabricAnalysis{
		FabricType:     "cotton",
		Composition:    "100% cotton",
		SuitableFor:    []string{"shirt", "dress", "skirt"},
		CareNotes:      "Machine wash cold, iron at medium heat.",
		Recommendation: "Versatile everyday fabric; pre-wash before cutting to allow for shrinkage.",
	}
}
