// Package advisor asks a generative model for a short commentary on a
// portfolio summary.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/inky"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// Generator is the part of the genai client used by the Advisor.
// *genai.Models implements it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NoPicks is the commentary of an empty portfolio. The model is not asked.
const NoPicks = "No assets were picked, there is nothing to comment on."

const instruction = `You are a cautious investment coach commenting on a small
portfolio that a beginner built by swiping through asset cards.
Answer in at most three short paragraphs of markdown.
Comment on diversification across categories and on the volatility of meme
coins. Never give personalized financial advice.`

// Advisor comments on summaries.
type Advisor struct {
	Generator Generator
	Model     string
	Log       logrus.FieldLogger
}

// New returns an Advisor using the models of client.
func New(client *genai.Client, model string, log logrus.FieldLogger) *Advisor {
	return &Advisor{Generator: client.Models, Model: model, Log: log}
}

// Prompt describes the summary for the model.
func Prompt(s inky.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "My portfolio has %d assets worth %s in total, with an average daily change of %s.\n",
		s.Count(), s.TotalValue, s.AverageChange.SignedString())
	b.WriteString("Breakdown by category:\n")
	for _, e := range s.Tally.Entries() {
		fmt.Fprintf(&b, "- %s: %d\n", e.Category, e.Count)
	}
	b.WriteString("Assets:\n")
	for _, a := range s.Picks {
		fmt.Fprintf(&b, "- %s %s (%s) at %s, %s today\n", a.Symbol, a.Name, a.Category, a.Price, a.Change.SignedString())
	}
	return b.String()
}

// Comment returns the model commentary on s.
func (a *Advisor) Comment(ctx context.Context, s inky.Summary) (string, error) {
	if s.Count() == 0 {
		return NoPicks, nil
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
	}
	resp, err := a.Generator.GenerateContent(ctx, a.Model, genai.Text(Prompt(s)), config)
	if err != nil {
		return "", fmt.Errorf("cannot generate commentary with %s: %w", a.Model, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from %s", a.Model)
	}
	var texts []string
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	if a.Log != nil {
		a.Log.WithFields(logrus.Fields{"model": a.Model, "picks": s.Count()}).Debug("commentary generated")
	}
	return strings.Join(texts, ""), nil
}
