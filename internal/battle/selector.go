package battle

import (
	"strings"

	"github.com/abhisek/flashwiz/internal/cards"
	"github.com/abhisek/flashwiz/internal/challenge"
	"github.com/abhisek/flashwiz/internal/progress"
	"github.com/abhisek/flashwiz/internal/rarity"
)

// SkippedSource records a pool entry that could not become a battle card.
type SkippedSource struct {
	ID     string
	Reason string
}

// Selector builds the card queue for a battle.
type Selector struct {
	Classifier *rarity.Classifier
	Config     Config
	Rand       Rand
}

// NewSelector creates a selector.
func NewSelector(c *rarity.Classifier, cfg Config, r Rand) *Selector {
	return &Selector{Classifier: c, Config: cfg, Rand: r}
}

// Generate picks up to count sources from pool and turns them into card
// instances. A pool smaller than count yields a shorter battle; no source is
// repeated. Malformed and duplicate sources are skipped and reported.
func (s *Selector) Generate(pool []cards.Source, p progress.Progress, count int) ([]challenge.CardInstance, []SkippedSource, error) {
	valid, skipped := s.filter(pool)
	if len(valid) == 0 {
		return nil, skipped, ErrEmptyPool
	}

	if count <= 0 {
		count = s.Config.BattleSize
	}
	if count <= 0 {
		count = DefaultBattleSize
	}

	order := make([]int, len(valid))
	for i := range order {
		order[i] = i
	}
	s.Rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	if count > len(order) {
		count = len(order)
	}

	queue := make([]challenge.CardInstance, 0, count)
	for _, idx := range order[:count] {
		queue = append(queue, s.instance(valid[idx], valid, p))
	}
	return queue, skipped, nil
}

func (s *Selector) filter(pool []cards.Source) ([]cards.Source, []SkippedSource) {
	var (
		valid   []cards.Source
		skipped []SkippedSource
	)
	seen := make(map[string]bool, len(pool))
	for _, src := range pool {
		if !cards.Valid(src) {
			id := ""
			if src != nil {
				id = src.SourceID()
			}
			skipped = append(skipped, SkippedSource{ID: id, Reason: "missing prompt or answer"})
			continue
		}
		if seen[src.SourceID()] {
			skipped = append(skipped, SkippedSource{ID: src.SourceID(), Reason: "duplicate id"})
			continue
		}
		seen[src.SourceID()] = true
		valid = append(valid, src)
	}
	return valid, skipped
}

func (s *Selector) instance(src cards.Source, pool []cards.Source, p progress.Progress) challenge.CardInstance {
	res := s.Classifier.Classify(ClassifierInput(src), p.MomentumScore)
	answers := acceptedAnswers(src)

	inst := challenge.CardInstance{
		CardID:         src.SourceID(),
		IsConcept:      !src.HasIndependentSRS(),
		Tier:           res.Tier,
		Score:          res.Score,
		Atk:            res.Atk,
		Def:            res.Def,
		Type:           challenge.TypeText,
		Prompt:         strings.TrimSpace(src.PromptText()),
		CorrectAnswers: answers,
	}

	if res.Tier == rarity.Legendary || s.Rand.Float64() >= s.Config.MCQRatio {
		return inst
	}

	distractors := s.distractors(src, answers, pool)
	if len(distractors) < s.Config.MinDistractors {
		return inst
	}

	options := append(distractors, answers[0])
	s.Rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	inst.Type = challenge.TypeMCQ
	inst.Options = options
	return inst
}

// distractors collects other sources' primary answers that do not collide
// with any accepted answer of src, sampled down to MaxDistractors.
func (s *Selector) distractors(src cards.Source, answers []string, pool []cards.Source) []string {
	taken := make(map[string]bool, len(answers))
	for _, a := range answers {
		taken[foldKey(a)] = true
	}

	var candidates []string
	for _, other := range pool {
		if other.SourceID() == src.SourceID() {
			continue
		}
		a := cards.PrimaryAnswer(other)
		key := foldKey(a)
		if a == "" || taken[key] {
			continue
		}
		taken[key] = true
		candidates = append(candidates, a)
	}

	limit := s.Config.MaxDistractors
	if limit <= 0 {
		limit = MaxDistractors
	}
	if len(candidates) > limit {
		s.Rand.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		candidates = candidates[:limit]
	}
	return candidates
}

// ClassifierInput extracts what the rarity classifier needs from a source.
func ClassifierInput(src cards.Source) rarity.Input {
	in := rarity.Input{
		PromptRunes: cards.RuneLen(src.PromptText()),
		AnswerRunes: cards.RuneLen(cards.PrimaryAnswer(src)),
		ReviewCount: src.Reviews(),
		HasSRS:      src.HasIndependentSRS(),
	}
	if v, ok := src.Complexity(); ok {
		in.Complexity = &v
	}
	return in
}

func acceptedAnswers(src cards.Source) []string {
	var out []string
	for _, a := range src.CorrectAnswers() {
		if t := strings.TrimSpace(a); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func foldKey(s string) string {
	return strings.ToLower(challenge.NormalizeText(s))
}
