package domain

import "errors"

// TenantConfig holds per-tenant overrides. Empty fields mean "use the default".
type TenantConfig struct {
	TenantID      string `dynamodbav:"TenantID"`
	ModelID       string `dynamodbav:"ModelId,omitempty"`
	DefaultPrompt string `dynamodbav:"DefaultPrompt,omitempty"`
}

type SummarizationRequest struct {
	TenantID string
	UserID   string
	Text     string
}

type SummarizationResult struct {
	Summary string `json:"summary"`
	Cached  bool   `json:"cached"`
}

var ErrTenantConfigNotFound = errors.New("tenant config not found")
