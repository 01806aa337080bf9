// Package coach runs the one-shot generation phases: CV scan, career
// roadmap, project idea, cover letter, opportunity search, and the
// onboarding profile summary.
package coach

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/andriy/career-mentor/internal/bridge"
	"github.com/andriy/career-mentor/internal/curator"
	"github.com/andriy/career-mentor/internal/llm"
	"github.com/andriy/career-mentor/internal/prompts"
	"github.com/andriy/career-mentor/internal/types"
)

// Fallback texts recorded when the backend fails mid-phase. They stand in
// for the generated result so every phase still produces a displayable,
// archivable outcome.
const (
	ScanFallback        = "Помилка аналізу."
	ProjectFallback     = "Помилка генерації."
	RoadmapFallback     = "Помилка створення плану."
	CoverLetterFallback = "Помилка аналізу вакансії."
	SearchFallback      = "Помилка пошуку"
)

// Profile summary fallbacks for intake completion.
const (
	SummaryErrorFallback = "Standard Junior Profile"
	SummaryEmptyFallback = "Junior Developer Profile"
)

// cvRuneLimit caps how much CV text is embedded into a prompt.
const cvRuneLimit = 50000

// Coach executes one-shot phases against the generation backend.
type Coach struct {
	client llm.Client
	log    *zap.Logger
}

// New returns a coach bound to a backend client.
func New(client llm.Client, log *zap.Logger) *Coach {
	return &Coach{client: client, log: log}
}

// system assembles the frozen phase instruction: persona, phase prompt,
// bridged ledger context, and the user's bio.
func (c *Coach) system(phaseKey string, p *types.Profile, bridged bridge.Context) string {
	var b strings.Builder
	b.WriteString(prompts.MustGet("persona.json", "mentor-persona"))
	b.WriteString("\n\n")
	b.WriteString(prompts.MustGet("phases.json", phaseKey))
	if rendered := bridged.Render(); rendered != "" {
		b.WriteString("\n\n")
		b.WriteString(rendered)
	}
	if p != nil && p.BioSummary != "" {
		b.WriteString("\n\n[USER PROFILE]\n")
		b.WriteString(p.BioSummary)
	}
	return b.String()
}

// run executes one text phase. On backend failure the fallback text is
// returned alongside the error, so the caller can record it like any
// other result.
func (c *Coach) run(ctx context.Context, phaseKey, prompt, fallback string, p *types.Profile, bridged bridge.Context, tier llm.ModelTier, temperature float32) (string, error) {
	text, err := c.client.GenerateContent(ctx, c.system(phaseKey, p, bridged), prompt, tier, temperature)
	if err != nil {
		c.log.Warn("phase generation failed", zap.String("phase", phaseKey), zap.Error(err))
		return fallback, fmt.Errorf("phase %s failed: %w", phaseKey, err)
	}
	if strings.TrimSpace(text) == "" {
		return fallback, fmt.Errorf("phase %s returned no text", phaseKey)
	}
	return text, nil
}

// Scan analyzes CV text against the current market.
func (c *Coach) Scan(ctx context.Context, p *types.Profile, bridged bridge.Context, cvText string) (string, error) {
	return c.run(ctx, "scan-system", TruncateCV(cvText), ScanFallback, p, bridged, llm.TierAdvanced, 0.4)
}

// Roadmap generates a career roadmap toward a target role.
func (c *Coach) Roadmap(ctx context.Context, p *types.Profile, bridged bridge.Context, goal string) (string, error) {
	return c.run(ctx, "roadmap-system", goal, RoadmapFallback, p, bridged, llm.TierStandard, 0.5)
}

// ProjectIdea generates a portfolio project proposal.
func (c *Coach) ProjectIdea(ctx context.Context, p *types.Profile, bridged bridge.Context, interests string) (string, error) {
	return c.run(ctx, "project-system", interests, ProjectFallback, p, bridged, llm.TierStandard, 0.7)
}

// CoverLetter analyzes a vacancy and drafts a tailored cover letter.
func (c *Coach) CoverLetter(ctx context.Context, p *types.Profile, bridged bridge.Context, vacancyText string) (string, error) {
	return c.run(ctx, "cover-letter-system", vacancyText, CoverLetterFallback, p, bridged, llm.TierStandard, 0.5)
}

// FindOpportunities runs the structured opportunity search. An empty query
// defaults to a junior-position search seeded with the user's bio. The
// returned result is always non-nil and displayable; sources carry any
// citation URIs the backend attached.
func (c *Coach) FindOpportunities(ctx context.Context, p *types.Profile, bridged bridge.Context, query string) (*types.SearchResult, []string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		query = "Junior positions for " + p.BioSummary
	}

	prompt := prompts.Format(prompts.MustGet("phases.json", "search-prompt"), map[string]string{
		"Query": query,
	})

	res, err := c.client.GenerateJSON(ctx, c.system("search-system", p, bridged), prompt, llm.TierStandard)
	if err != nil {
		c.log.Warn("search generation failed", zap.Error(err))
		return &types.SearchResult{Summary: SearchFallback}, nil, fmt.Errorf("search failed: %w", err)
	}

	result, err := curator.ParsePayload(res.Text)
	return result, res.Sources, err
}

// SummarizeProfile condenses the intake form and interview into a short
// bio. It never fails visibly: backend errors and empty replies both map
// to a generic summary.
func (c *Coach) SummarizeProfile(ctx context.Context, form types.IntakeForm, transcript types.Transcript) string {
	prompt := prompts.Format(prompts.MustGet("intake.json", "summarize-profile"), map[string]string{
		"Name":        form.Name,
		"Email":       form.Email,
		"Github":      form.GithubURL,
		"Linkedin":    form.LinkedinURL,
		"CV":          TruncateCV(form.CVText),
		"ChatHistory": renderTranscript(transcript),
	})

	text, err := c.client.GenerateContent(ctx, "", prompt, llm.TierLite, 0.3)
	if err != nil {
		c.log.Warn("profile summary failed", zap.Error(err))
		return SummaryErrorFallback
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return SummaryEmptyFallback
	}
	return text
}

// TruncateCV caps CV text at the prompt embedding limit.
func TruncateCV(text string) string {
	runes := []rune(text)
	if len(runes) <= cvRuneLimit {
		return text
	}
	return string(runes[:cvRuneLimit])
}

func renderTranscript(t types.Transcript) string {
	var b strings.Builder
	for _, turn := range t {
		label := "User"
		if turn.Speaker == types.SpeakerAssistant {
			label = "Mentor"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, turn.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}
