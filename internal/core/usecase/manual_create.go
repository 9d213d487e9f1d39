package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
	"github.com/dmoralesf/brand-guardian/internal/core/jsonx"
	"github.com/dmoralesf/brand-guardian/internal/core/ports"
)

const manualTemperature = 0.4

const manualSystemPrompt = "You are a Brand DNA Architect. " +
	"Return ONLY valid JSON, no markdown, no explanations. " +
	"Respect TYPES strictly:\n" +
	"- tone.dos/donts: arrays of strings\n" +
	"- messaging.*: arrays of strings\n" +
	"- style_rules.reading_level: ONLY 'simple' or 'medium'\n" +
	"- style_rules.length_guidelines: object/dict\n" +
	"- visual_guidelines.*: arrays of strings\n" +
	"- approval_checklist: array of strings (minimum 8 items)\n" +
	"When information is missing, return empty lists or {} (NOT strings)."

type CreateManualUseCase struct {
	brands    ports.BrandRepository
	manuals   ports.ManualRepository
	generator ports.TextGenerator
	queue     ports.MessageQueue
	tracer    ports.Tracer
}

func NewCreateManualUseCase(
	brands ports.BrandRepository,
	manuals ports.ManualRepository,
	generator ports.TextGenerator,
	queue ports.MessageQueue,
	tracer ports.Tracer,
) *CreateManualUseCase {
	return &CreateManualUseCase{
		brands:    brands,
		manuals:   manuals,
		generator: generator,
		queue:     queue,
		tracer:    tracer,
	}
}

// CreateManual generates a new manual version for a brand: invoke the text
// model with the Brand DNA prompt, extract and normalize the JSON,
// validate, persist, and publish an indexing event for the worker. A new
// version supersedes the previous one; old chunks are never mutated.
func (uc *CreateManualUseCase) CreateManual(ctx context.Context, brandID string, req ports.ManualRequest) (*domain.ManualRecord, error) {
	if strings.TrimSpace(req.Product) == "" || strings.TrimSpace(req.Audience) == "" {
		return nil, domain.WrapError(domain.ErrValidation, "create manual",
			fmt.Errorf("product and audience are required"))
	}

	span := uc.tracer.Trace("brand_dna.create_manual", map[string]any{"brand_id": brandID})
	defer span.End()

	rules, err := uc.brands.GetVisualRules(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("fetch visual rules: %w", err)
	}

	raw, err := uc.generator.Chat(ctx, manualSystemPrompt, buildManualPrompt(req, rules), manualTemperature)
	if err != nil {
		return nil, fmt.Errorf("generate manual: %w", err)
	}

	obj, err := jsonx.ExtractObject(raw)
	if err != nil {
		return nil, fmt.Errorf("extract manual json: %w", err)
	}
	manual, err := domain.NormalizeManual(obj)
	if err != nil {
		return nil, fmt.Errorf("normalize manual: %w", err)
	}
	if manual.BrandName == "" {
		manual.BrandName = req.BrandName
	}
	if err := manual.Validate(); err != nil {
		return nil, err
	}

	version := 1
	if prev, err := uc.manuals.GetLatestManual(ctx, brandID); err == nil {
		version = prev.Version + 1
	} else if !domain.IsKind(err, domain.ErrNoManual) {
		return nil, fmt.Errorf("fetch previous manual: %w", err)
	}

	record := &domain.ManualRecord{
		ID:        uuid.NewString(),
		BrandID:   brandID,
		Manual:    manual,
		Version:   version,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.manuals.InsertManual(ctx, record); err != nil {
		return nil, fmt.Errorf("persist manual: %w", err)
	}

	if err := uc.queue.PublishManualCreated(ctx, record.ID); err != nil {
		return nil, fmt.Errorf("publish indexing event: %w", err)
	}

	span.Update(map[string]any{"manual_id": record.ID, "version": record.Version})
	return record, nil
}

func (uc *CreateManualUseCase) GetManual(ctx context.Context, manualID string) (*domain.ManualRecord, error) {
	record, err := uc.manuals.GetManualByID(ctx, manualID)
	if err != nil {
		return nil, fmt.Errorf("fetch manual: %w", err)
	}
	return record, nil
}

func (uc *CreateManualUseCase) GetLatestManual(ctx context.Context, brandID string) (*domain.ManualRecord, error) {
	record, err := uc.manuals.GetLatestManual(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("fetch latest manual: %w", err)
	}
	return record, nil
}

// buildManualPrompt renders the user instruction. The brand's stored
// visual rules are the user's source of truth: the model must not invent
// visual rules, and empty lists must stay empty.
func buildManualPrompt(req ports.ManualRequest, rules *domain.VisualRules) string {
	brandName := req.BrandName
	if brandName == "" {
		brandName = req.Product
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Parameters:\n- brand_name: %s\n- product: %s\n- tone: %s\n- audience: %s\n",
		brandName, req.Product, req.Tone, req.Audience)
	if extra := strings.TrimSpace(req.ExtraConstraints); extra != "" {
		fmt.Fprintf(&b, "- extra_constraints: %s\n", extra)
	}

	fmt.Fprintf(&b, `
Visual Rules (USER'S SOURCE OF TRUTH):
- colors: %v
- logo_rules: %v
- typography: %v
- image_style: %v
- notes: %s

NON-NEGOTIABLE rule:
- Do NOT invent new visual rules.
- If a list above is empty it must stay empty in visual_guidelines, and notes must say 'MISSING: user must define ...'.
`, rules.Colors, rules.LogoRules, rules.Typography, rules.ImageStyle, rules.Notes)

	b.WriteString(`
Return a JSON object with these keys:
brand_name, product, audience,
tone{description,dos[],donts[]},
messaging{value_props[],taglines[],forbidden_claims[],preferred_terms[],forbidden_terms[]},
style_rules{reading_level,length_guidelines},
visual_guidelines{colors[],logo_rules[],typography[],image_style[],notes},
examples{good[{type,text}],bad[{type,text,why}]},
approval_checklist[], assumptions[].

Rules:
- Be specific in dos/donts and forbidden_terms.
- Include 2 good examples and 2 bad examples (with "why").

Minimum required quality:
- approval_checklist: at least 8 verifiable checklist items (MUST NOT be empty).
- style_rules.length_guidelines: use realistic defaults when no channel is given:
  { "title": "<= 6 words", "description": "<= 150 words", "script_15s": "60-90 words" }
- forbidden_claims: include 3-6 forbidden claims specific to the product.`)

	return b.String()
}
