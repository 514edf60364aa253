package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"career-match/internal/domain/attempt"
	"career-match/internal/domain/gap"
	"career-match/internal/domain/job"
	"career-match/internal/domain/level"
	"career-match/internal/domain/matching"
	"career-match/internal/domain/roadmap"
	"career-match/internal/domain/user"
	"career-match/internal/repository"

	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

type fakeUsers struct {
	profiles map[uuid.UUID]user.Profile
	err      error
}

func newFakeUsers(ps ...user.Profile) *fakeUsers {
	f := &fakeUsers{profiles: map[uuid.UUID]user.Profile{}}
	for _, p := range ps {
		f.profiles[p.ID] = p
	}
	return f
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (user.Profile, error) {
	if f.err != nil {
		return user.Profile{}, f.err
	}
	p, ok := f.profiles[id]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return p, nil
}

func (f *fakeUsers) UpdateEmbedding(_ context.Context, id uuid.UUID, text string, emb []float32, space string) error {
	if f.err != nil {
		return f.err
	}
	p := f.profiles[id]
	p.ID, p.ProfileText, p.Embedding, p.EmbeddingSpace = id, text, emb, space
	f.profiles[id] = p
	return nil
}

func (f *fakeUsers) ReplaceHoldings(_ context.Context, id uuid.UUID, skills, knowledge map[string]level.Level) error {
	if f.err != nil {
		return f.err
	}
	p := f.profiles[id]
	p.ID, p.Skills, p.Knowledge = id, skills, knowledge
	f.profiles[id] = p
	return nil
}

type fakeRecs struct {
	rankings map[uuid.UUID][]repository.StoredMatch
	replaced int
	err      error
}

func newFakeRecs() *fakeRecs {
	return &fakeRecs{rankings: map[uuid.UUID][]repository.StoredMatch{}}
}

func (f *fakeRecs) ReplaceRanking(_ context.Context, userID uuid.UUID, version string, results []matching.MatchResult) error {
	if f.err != nil {
		return f.err
	}
	f.replaced++
	out := make([]repository.StoredMatch, 0, len(results))
	for i, m := range results {
		out = append(out, repository.StoredMatch{
			JobID: m.JobID, Title: m.Title, Rank: i + 1, Score: m.Score, Percentage: m.Percentage, CatalogVersion: version,
		})
	}
	f.rankings[userID] = out
	return nil
}

func (f *fakeRecs) LatestRanking(_ context.Context, userID uuid.UUID) ([]repository.StoredMatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rankings[userID], nil
}

type fakeJobs struct {
	postings map[uuid.UUID]job.Posting
	order    []uuid.UUID
	failReq  map[uuid.UUID]error
	err      error
}

func newFakeJobs(ps ...job.Posting) *fakeJobs {
	f := &fakeJobs{postings: map[uuid.UUID]job.Posting{}, failReq: map[uuid.UUID]error{}}
	for _, p := range ps {
		f.postings[p.ID] = p
		f.order = append(f.order, p.ID)
	}
	return f
}

func (f *fakeJobs) ListCatalog(context.Context, string) ([]job.Posting, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]job.Posting, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.postings[id])
	}
	return out, nil
}

func (f *fakeJobs) FindByID(_ context.Context, id uuid.UUID) (job.Posting, error) {
	p, ok := f.postings[id]
	if !ok {
		return job.Posting{}, repository.ErrJobPostingNotFound
	}
	return p, nil
}

func (f *fakeJobs) Upsert(_ context.Context, p job.Posting, _ string) error {
	if _, ok := f.postings[p.ID]; !ok {
		f.order = append(f.order, p.ID)
	}
	f.postings[p.ID] = p
	return nil
}

func (f *fakeJobs) Stats(context.Context) (repository.CatalogStats, error) {
	return repository.CatalogStats{Total: len(f.postings)}, nil
}

func (f *fakeJobs) Requirements(_ context.Context, id uuid.UUID) (gap.Requirements, error) {
	if err := f.failReq[id]; err != nil {
		return gap.Requirements{}, err
	}
	p, ok := f.postings[id]
	if !ok {
		return gap.Requirements{}, gap.NewMissingEntityError(gap.EntityJob, id)
	}
	return gap.Requirements{Skills: p.RequiredSkills, Knowledge: p.RequiredKnowledge}, nil
}

type fakeGaps struct {
	reports map[[2]uuid.UUID]repository.StoredGapReport
	upserts int
	err     error
}

func newFakeGaps() *fakeGaps {
	return &fakeGaps{reports: map[[2]uuid.UUID]repository.StoredGapReport{}}
}

func (f *fakeGaps) Upsert(_ context.Context, userID uuid.UUID, attemptNo int, similarity float64, rep gap.JobReport) error {
	if f.err != nil {
		return f.err
	}
	f.upserts++
	f.reports[[2]uuid.UUID{userID, rep.JobID}] = repository.StoredGapReport{
		UserID:     userID,
		Attempt:    attemptNo,
		Similarity: similarity,
		Job:        rep,
		ComputedAt: time.Now(),
	}
	return nil
}

func (f *fakeGaps) ListByUser(_ context.Context, userID uuid.UUID) ([]repository.StoredGapReport, error) {
	out := make([]repository.StoredGapReport, 0)
	for k, v := range f.reports {
		if k[0] == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeGaps) FindByUserJob(_ context.Context, userID, jobID uuid.UUID) (repository.StoredGapReport, error) {
	r, ok := f.reports[[2]uuid.UUID{userID, jobID}]
	if !ok {
		return repository.StoredGapReport{}, repository.ErrGapReportNotFound
	}
	return r, nil
}

type fakeAssessments struct {
	questions []attempt.Question
	answers   []attempt.Answer
	err       error
}

func (f *fakeAssessments) QuestionsByAttempt(_ context.Context, userID uuid.UUID, n int) ([]attempt.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]attempt.Question, 0)
	for _, q := range f.questions {
		if q.UserID == userID && q.Attempt == n {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeAssessments) AnswersByUser(_ context.Context, userID uuid.UUID) ([]attempt.Answer, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]attempt.Answer, 0)
	for _, a := range f.answers {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssessments) AnswersByAttempt(ctx context.Context, userID uuid.UUID, n int) ([]attempt.Answer, error) {
	all, err := f.AnswersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]attempt.Answer, 0)
	for _, a := range all {
		if a.Attempt == n {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssessments) SaveAnswers(_ context.Context, answers []attempt.Answer) error {
	if f.err != nil {
		return f.err
	}
	f.answers = append(f.answers, answers...)
	return nil
}

func (f *fakeAssessments) SaveQuestions(_ context.Context, questions []attempt.Question) error {
	if f.err != nil {
		return f.err
	}
	f.questions = append(f.questions, questions...)
	return nil
}

type fakeQuestionGenerator struct {
	questions []attempt.Question
	err       error
	calls     int
	gotText   string
}

func (g *fakeQuestionGenerator) Generate(_ context.Context, profileText string, _ int) ([]attempt.Question, error) {
	g.calls++
	g.gotText = profileText
	return g.questions, g.err
}

type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

type fakeNotifier struct {
	events []string
}

func (n *fakeNotifier) Notify(event string, _ any) {
	n.events = append(n.events, event)
}

type fakeEmbedder struct {
	vec   []float32
	space string
	err   error
	calls int
}

func (e *fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	e.calls++
	return e.vec, e.err
}

func (e *fakeEmbedder) Space() string { return e.space }

type fakeGenerator struct {
	calls int
	got   gap.Report
	err   error
}

func (g *fakeGenerator) Generate(_ context.Context, _ string, gaps gap.Report) (roadmap.Roadmap, error) {
	g.calls++
	g.got = gaps
	if g.err != nil {
		return roadmap.Roadmap{}, g.err
	}
	return roadmap.Roadmap{
		Topics:    map[string]string{"SQL": "Advanced"},
		SubTopics: map[string][]string{"SQL": {"Joins"}},
	}, nil
}

func posting(title string, emb []float32, skills, knowledge map[string]level.Level) job.Posting {
	return job.Posting{
		ID:                uuid.New(),
		Title:             title,
		Embedding:         emb,
		RequiredSkills:    skills,
		RequiredKnowledge: knowledge,
	}
}
