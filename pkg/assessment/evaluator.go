// Package assessment scores topic submissions. The generative evaluator asks
// the content provider; the deterministic one compares answers directly.
package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"learnpath-be/pkg/llm"
	"learnpath-be/pkg/progression"
)

const (
	KindGenerative    = "generative"
	KindDeterministic = "deterministic"
)

var (
	ErrMissingScore    = errors.New("evaluation is missing score or outOf")
	ErrNegativeScore = errors.New("evaluation score or outOf is negative")
)

type Answer struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
	UserAnswer    string `json:"userAnswer"`
}

type EvaluatedAnswer struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
	UserAnswer    string `json:"userAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

// Result is an evaluation. Document is what gets stored on the path item.
type Result struct {
	Score      float64
	OutOf      float64
	Evaluation []EvaluatedAnswer
	Document   json.RawMessage
}

func (r *Result) Passed() bool {
	return progression.Passed(r.Score, r.OutOf)
}

// ContractViolation reports an evaluation list that disagrees with outOf.
// outOf still wins.
func (r *Result) ContractViolation() bool {
	return len(r.Evaluation) > 0 && float64(len(r.Evaluation)) != r.OutOf
}

// ScoreAboveOutOf reports a score larger than outOf. The pass policy still
// decides the outcome, so outOf 0 fails whatever the score.
func (r *Result) ScoreAboveOutOf() bool {
	return r.Score > r.OutOf
}

type Evaluator interface {
	Evaluate(ctx context.Context, topic string, answers []Answer) (*Result, error)
}

type PromptFunc func(topic string, answers []Answer) string

type GenerativeEvaluator struct {
	provider llm.ContentProvider
	prompt   PromptFunc
}

func NewGenerativeEvaluator(provider llm.ContentProvider, prompt PromptFunc) *GenerativeEvaluator {
	return &GenerativeEvaluator{provider: provider, prompt: prompt}
}

func (e *GenerativeEvaluator) Evaluate(ctx context.Context, topic string, answers []Answer) (*Result, error) {
	doc, err := e.provider.GenerateStructured(ctx, e.prompt(topic, answers))
	if err != nil {
		return nil, err
	}
	return ParseResult(doc)
}

type DeterministicEvaluator struct{}

func NewDeterministicEvaluator() *DeterministicEvaluator {
	return &DeterministicEvaluator{}
}

func (e *DeterministicEvaluator) Evaluate(_ context.Context, _ string, answers []Answer) (*Result, error) {
	evaluation := make([]EvaluatedAnswer, 0, len(answers))
	score := 0
	for _, a := range answers {
		correct := strings.EqualFold(strings.TrimSpace(a.UserAnswer), strings.TrimSpace(a.CorrectAnswer))
		if correct {
			score++
		}
		evaluation = append(evaluation, EvaluatedAnswer{
			Question:      a.Question,
			CorrectAnswer: a.CorrectAnswer,
			UserAnswer:    a.UserAnswer,
			IsCorrect:     correct,
		})
	}

	result := &Result{Score: float64(score), OutOf: float64(len(answers)), Evaluation: evaluation}
	doc, err := json.Marshal(document{Score: &result.Score, OutOf: &result.OutOf, Evaluation: evaluation})
	if err != nil {
		return nil, fmt.Errorf("marshal evaluation: %w", err)
	}
	result.Document = doc
	return result, nil
}

type document struct {
	Score      *float64          `json:"score"`
	OutOf      *float64          `json:"outOf"`
	Evaluation []EvaluatedAnswer `json:"evaluation"`
}

// ParseResult validates a provider evaluation document.
func ParseResult(doc json.RawMessage) (*Result, error) {
	var d document
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrMalformedJSON, err)
	}
	if d.Score == nil || d.OutOf == nil {
		return nil, ErrMissingScore
	}
	if *d.OutOf < 0 || *d.Score < 0 {
		return nil, fmt.Errorf("%w: score %v, outOf %v", ErrNegativeScore, *d.Score, *d.OutOf)
	}
	return &Result{
		Score:      *d.Score,
		OutOf:      *d.OutOf,
		Evaluation: d.Evaluation,
		Document:   doc,
	}, nil
}

// CountQuestions returns the number of questions in a generated assessment.
// It accepts a bare array or an object with a "questions" array.
func CountQuestions(doc json.RawMessage) (int, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(doc, &list); err == nil {
		return len(list), nil
	}
	var wrapped struct {
		Questions []json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal(doc, &wrapped); err != nil || wrapped.Questions == nil {
		return 0, fmt.Errorf("%w: expected a list of questions", llm.ErrMalformedJSON)
	}
	return len(wrapped.Questions), nil
}

func New(kind string, provider llm.ContentProvider, prompt PromptFunc) (Evaluator, error) {
	switch strings.ToLower(kind) {
	case "", KindGenerative:
		return NewGenerativeEvaluator(provider, prompt), nil
	case KindDeterministic:
		return NewDeterministicEvaluator(), nil
	default:
		return nil, fmt.Errorf("unknown assessment evaluator: %s", kind)
	}
}
