// Package gemini audits images against brand rules with Google's Gemini
// vision API.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
	"github.com/dmoralesf/brand-guardian/internal/core/jsonx"
	"github.com/dmoralesf/brand-guardian/internal/infrastructure/resilience"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1"

	// Model output kept for debugging is capped so a runaway response
	// cannot bloat the stored report.
	rawOutputLimit = 4000
)

type Config struct {
	APIKey         string
	Model          string
	BaseURL        string
	RequestTimeout time.Duration
	Executor       *resilience.Executor
}

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		executor:   cfg.Executor,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) Judge(ctx context.Context, image []byte, mimeType, rulesText string) (domain.AuditJudgment, error) {
	if c.apiKey == "" {
		return domain.AuditJudgment{}, domain.WrapError(domain.ErrMissingCredential, "vision judge", errors.New("api key is not configured"))
	}
	if len(image) == 0 {
		return domain.AuditJudgment{}, domain.WrapError(domain.ErrValidation, "vision judge", errors.New("empty image"))
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	request := generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
				{Text: buildJudgePrompt(rulesText)},
			},
		}},
	}

	var raw string
	call := func(ctx context.Context) error {
		text, err := c.generateContent(ctx, request)
		if err != nil {
			return err
		}
		raw = text
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "vision.judge", call, classifyGeminiError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return domain.AuditJudgment{}, wrapTemporaryIfNeeded("vision judge", err)
	}

	return parseJudgment(raw)
}

func (c *Client) generateContent(ctx context.Context, payload generateRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal judge request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create judge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini judge request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &HTTPStatusError{
			Operation:  "judge",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(respBody),
		}
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode judge response: %w", err)
	}

	var text strings.Builder
	for _, candidate := range decoded.Candidates {
		for _, p := range candidate.Content.Parts {
			text.WriteString(p.Text)
		}
		break
	}
	return strings.TrimSpace(text.String()), nil
}

func parseJudgment(raw string) (domain.AuditJudgment, error) {
	object, err := jsonx.ExtractObject(raw)
	if err != nil {
		return domain.AuditJudgment{}, err
	}

	var judgment domain.AuditJudgment
	if err := json.Unmarshal(object, &judgment); err != nil {
		return domain.AuditJudgment{}, domain.WrapError(domain.ErrParse, "parse judgment", err)
	}

	if judgment.ValidatedRules == nil {
		judgment.ValidatedRules = []string{}
	}
	if judgment.Violations == nil {
		judgment.Violations = []domain.Violation{}
	}
	if judgment.Notes == nil {
		judgment.Notes = []string{}
	}
	if len(raw) > rawOutputLimit {
		raw = raw[:rawOutputLimit]
	}
	judgment.Raw = raw
	return judgment, nil
}
