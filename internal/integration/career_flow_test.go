package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"career-match/internal/config"
	"career-match/internal/database"
	"career-match/internal/database/migration"
	dbpostgres "career-match/internal/database/postgres"
	"career-match/internal/delivery/http/handler"
	"career-match/internal/delivery/http/middleware"
	"career-match/internal/delivery/http/routes"
	v1 "career-match/internal/delivery/http/routes/v1"
	"career-match/internal/domain/job"
	"career-match/internal/domain/level"
	"career-match/internal/domain/matching"
	"career-match/internal/infrastructure/export"
	"career-match/internal/pkg/jwt"
	"career-match/internal/repository"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "integration-secret"

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type staticEmbedder struct {
	space string
	vec   []float32
}

func (e staticEmbedder) Embed(context.Context, string) ([]float32, error) { return e.vec, nil }
func (e staticEmbedder) Space() string                                    { return e.space }

type seeded struct {
	space    string
	userID   uuid.UUID
	analyst  uuid.UUID
	bi       uuid.UUID
	designer uuid.UUID
}

func TestIntegration_RankGapsAttemptReport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	if err := (migration.Runner{}).Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	seed := seedData(t, ctx, db)
	defer cleanupSeed(t, db, seed)

	app := newTestApp(db, seed.space)
	tok := signToken(t, seed.userID)

	call(t, app, tok, http.MethodPost, "/api/v1/catalog/refresh", "", fiber.StatusOK)

	env := call(t, app, tok, http.MethodPost, "/api/v1/matches", "", fiber.StatusOK)
	var matches struct {
		Items []struct {
			JobID uuid.UUID `json:"job_id"`
			Pct   float64   `json:"similarity_percentage"`
		} `json:"items"`
	}
	decode(t, env.Data, &matches)
	if len(matches.Items) != 3 {
		t.Fatalf("matches: expected 3 items, got %d", len(matches.Items))
	}
	if matches.Items[0].JobID != seed.analyst || matches.Items[0].Pct != 100 {
		t.Fatalf("matches: expected analyst first at 100%%, got %+v", matches.Items[0])
	}
	if matches.Items[2].JobID != seed.designer {
		t.Fatalf("matches: expected designer last, got %s", matches.Items[2].JobID)
	}

	call(t, app, tok, http.MethodPost, "/api/v1/attempts/1/questions",
		`{"questions":[{"question":"Which clause filters grouped rows?","options":["A. WHERE","B. HAVING"],"answer":"B"}]}`,
		fiber.StatusCreated)
	call(t, app, tok, http.MethodPost, "/api/v1/attempts/1/questions", "", fiber.StatusConflict)

	env = call(t, app, tok, http.MethodGet, "/api/v1/attempts/1/questions", "", fiber.StatusOK)
	var quiz struct {
		Questions []struct {
			ID uuid.UUID `json:"id"`
		} `json:"questions"`
	}
	decode(t, env.Data, &quiz)
	if len(quiz.Questions) != 1 {
		t.Fatalf("questions: expected 1, got %d", len(quiz.Questions))
	}

	body := `{"answers":[{"question_id":"` + quiz.Questions[0].ID.String() + `","selected_option":"b"}]}`
	call(t, app, tok, http.MethodPost, "/api/v1/attempts/1/answers", body, fiber.StatusCreated)

	env = call(t, app, tok, http.MethodGet, "/api/v1/attempts/1/score", "", fiber.StatusOK)
	var score struct {
		Correct int `json:"correct"`
		Total   int `json:"total"`
	}
	decode(t, env.Data, &score)
	if score.Correct != 1 || score.Total != 1 {
		t.Fatalf("score: unexpected %+v", score)
	}

	env = call(t, app, tok, http.MethodPost, "/api/v1/gaps", "", fiber.StatusOK)
	var gaps struct {
		Attempt int `json:"attempt_number"`
		Reports []struct {
			JobID       uuid.UUID `json:"job_id"`
			GapAnalysis struct {
				Skills []struct {
					Name   string       `json:"name"`
					Status level.Status `json:"status"`
				} `json:"skills"`
			} `json:"gap_analysis"`
		} `json:"reports"`
	}
	decode(t, env.Data, &gaps)
	if gaps.Attempt != 1 || len(gaps.Reports) != 3 {
		t.Fatalf("gaps: unexpected attempt %d / reports %d", gaps.Attempt, len(gaps.Reports))
	}
	for _, r := range gaps.Reports {
		if r.JobID != seed.analyst {
			continue
		}
		for _, s := range r.GapAnalysis.Skills {
			if s.Name == "SQL" && s.Status != level.StatusWeak {
				t.Fatalf("gaps: expected SQL weak, got %s", s.Status)
			}
		}
	}

	resp := raw(t, app, tok, http.MethodGet, "/api/v1/report/"+seed.analyst.String()+"/export", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("export: expected 200, got %d", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(b, []byte("PK")) {
		t.Fatalf("export: expected xlsx zip payload")
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("CAREERMATCH_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("CAREERMATCH_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("CAREERMATCH_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("CAREERMATCH_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("CAREERMATCH_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("CAREERMATCH_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set CAREERMATCH_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}, nil)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func seedData(t *testing.T, ctx context.Context, db database.DB) seeded {
	t.Helper()

	s := seeded{
		space:    "integration/" + uuid.NewString(),
		userID:   uuid.New(),
		analyst:  uuid.New(),
		bi:       uuid.New(),
		designer: uuid.New(),
	}

	users := repository.NewPostgresUserProfileRepository(db)
	if err := users.UpdateEmbedding(ctx, s.userID, "sql reporting and dashboards", []float32{1, 0}, s.space); err != nil {
		t.Fatalf("seed user embedding: %v", err)
	}
	if err := users.ReplaceHoldings(ctx, s.userID,
		map[string]level.Level{"SQL": level.Intermediate},
		map[string]level.Level{"Statistics": level.Basic},
	); err != nil {
		t.Fatalf("seed holdings: %v", err)
	}

	jobs := repository.NewPostgresJobPostingRepository(db)
	for _, p := range []job.Posting{
		{ID: s.designer, Title: "Product Designer", Embedding: []float32{0, 1}},
		{ID: s.analyst, Title: "Data Analyst", Embedding: []float32{1, 0}},
		{ID: s.bi, Title: "BI Developer", Embedding: []float32{0.8, 0.6}},
	} {
		p.Company = "Acme"
		p.RequiredSkills = map[string]level.Level{"SQL": level.Advanced, "Python": level.Basic}
		p.RequiredKnowledge = map[string]level.Level{"Statistics": level.Basic}
		if err := jobs.Upsert(ctx, p, s.space); err != nil {
			t.Fatalf("seed posting %s: %v", p.Title, err)
		}
	}

	return s
}

func cleanupSeed(t *testing.T, db database.DB, s seeded) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.Exec(ctx, `DELETE FROM user_profiles WHERE id = $1`, s.userID); err != nil {
		t.Logf("cleanup user: %v", err)
	}
	if _, err := db.Exec(ctx, `DELETE FROM job_postings WHERE embedding_space = $1`, s.space); err != nil {
		t.Logf("cleanup postings: %v", err)
	}
}

func newTestApp(db database.DB, space string) *fiber.App {
	users := repository.NewPostgresUserProfileRepository(db)
	jobs := repository.NewPostgresJobPostingRepository(db)
	recs := repository.NewPostgresRecommendationRepository(db)
	gaps := repository.NewPostgresGapReportRepository(db)
	assessments := repository.NewPostgresAssessmentRepository(db)
	holder := matching.NewCatalogHolder(nil)

	gapUC := usecase.NewGapAnalysisUsecase(users, recs, jobs, gaps, assessments, nil, nil)

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	routes.NewRegistry(
		handler.NewHealthHandler(db, nil),
		middleware.NewAuthMiddleware(jwt.NewHMACService(testSecret)),
		v1.Handlers{
			Catalog: handler.NewCatalogHandler(usecase.NewCatalogUsecase(jobs, holder, nil, nil, space, nil)),
			Profile: handler.NewProfileHandler(usecase.NewProfileUsecase(users, staticEmbedder{space: space, vec: []float32{1, 0}}, nil)),
			Match:   handler.NewMatchHandler(usecase.NewMatchingUsecase(users, recs, holder, nil, matching.DefaultTopK, nil)),
			Gap:     handler.NewGapHandler(gapUC, usecase.NewRoadmapUsecase(gapUC, nil, nil)),
			Attempt: handler.NewAttemptHandler(usecase.NewAttemptUsecase(assessments, users, nil, nil)),
			Report:  handler.NewReportHandler(usecase.NewReportUsecase(users, jobs, gaps, assessments, export.WriteExcel, nil)),
		},
	).Register(app)
	return app
}

func signToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	claims := jwt.Claims{
		UserID:    userID,
		TokenType: jwt.TokenTypeAccess,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func raw(t *testing.T, app *fiber.App, tok, method, path, body string) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Authorization", "Bearer "+tok)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func call(t *testing.T, app *fiber.App, tok, method, path, body string, want int) envelope {
	t.Helper()
	resp := raw(t, app, tok, method, path, body)
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != want {
		t.Fatalf("%s %s: expected %d, got %d (%s)", method, path, want, resp.StatusCode, b)
	}
	var env envelope
	decode(t, b, &env)
	return env
}

func decode(t *testing.T, b []byte, out any) {
	t.Helper()
	if err := json.Unmarshal(b, out); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
