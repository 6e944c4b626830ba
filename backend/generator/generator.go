package generator

import (
	"context"
	"fmt"
	"time"

	"courseforge/backend/config"
	"courseforge/backend/models"

	"github.com/go-resty/resty/v2"
)

// Params describe the course an instructor wants generated.
type Params struct {
	Topic       string `json:"topic" validate:"required"`
	Difficulty  string `json:"difficulty"`
	ModuleCount int    `json:"module_count"`
	TargetHours int    `json:"target_hours"`
}

// OutlineGenerator produces a course outline from generation parameters. The
// generation backend is an external service; the engine only consumes its
// output.
type OutlineGenerator interface {
	GenerateOutline(ctx context.Context, params Params) (*models.CourseOutline, error)
}

// HTTPGenerator calls the configured outline-generation service.
type HTTPGenerator struct {
	client *resty.Client
}

func NewHTTPGenerator(cfg *config.Config) *HTTPGenerator {
	client := resty.New().
		SetBaseURL(cfg.GeneratorURL).
		SetTimeout(60 * time.Second)
	if cfg.GeneratorAPIKey != "" {
		client.SetAuthToken(cfg.GeneratorAPIKey)
	}
	return &HTTPGenerator{client: client}
}

func (g *HTTPGenerator) GenerateOutline(ctx context.Context, params Params) (*models.CourseOutline, error) {
	var outline models.CourseOutline
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(params).
		SetResult(&outline).
		Post("/v1/outlines")
	if err != nil {
		return nil, fmt.Errorf("outline generation request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("outline generation failed: %s", resp.Status())
	}
	if err := outline.Validate(); err != nil {
		return nil, err
	}
	return &outline, nil
}
