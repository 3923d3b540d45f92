package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/seo-audit/internal/api"
	"github.com/jonesrussell/seo-audit/internal/audit"
	"github.com/jonesrussell/seo-audit/internal/config"
	"github.com/jonesrussell/seo-audit/internal/deck"
	"github.com/jonesrussell/seo-audit/internal/handlers"
	"github.com/jonesrussell/seo-audit/internal/logger"
	"github.com/jonesrussell/seo-audit/internal/models"
	"github.com/jonesrussell/seo-audit/internal/pagespeed"
	"github.com/jonesrussell/seo-audit/internal/provider"
	"github.com/jonesrussell/seo-audit/internal/readability"
	"github.com/jonesrussell/seo-audit/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	mock   sqlmock.Sqlmock
	slides *slidesStub
}

type slidesStub struct {
	batchSlides int
}

// newTestEnv wires the full router against one stub server that answers both
// the data provider and presentation API paths; they never collide.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	slides := &slidesStub{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v3/on_page/task_post":
			_, _ = w.Write([]byte(`{"status_code":20000,"tasks":[{"id":"task-123"}]}`))
		case "/v3/dataforseo_labs/google/ranked_keywords/live":
			_, _ = w.Write([]byte(`{"status_code":20000,"tasks":[{"result":[{"metrics":{"organic":{"count":240,"etv":18500}},"items":[]}]}]}`))
		case "/v3/dataforseo_labs/google/domain_rank_overview/live":
			_, _ = w.Write([]byte(`{"status_code":20000,"tasks":[{"result":[{"metrics":{"organic":{"etv":18500,"count":240}}}]}]}`))
		case "/v3/backlinks/summary/live":
			_, _ = w.Write([]byte(`{"status_code":20000,"tasks":[{"result":[{"total_backlinks":5400,"referring_domains":88}]}]}`))
		case "/v3/backlinks/referring_domains/live":
			_, _ = w.Write([]byte(`{"status_code":20000,"tasks":[{"result":[{"items":[]}]}]}`))
		case "/v3/on_page/summary/task-123":
			_, _ = w.Write([]byte(`{"status_code":20000,"tasks":[{"result":[{"target":"acme.com","crawl_progress":"finished","crawl_status":{"pages_crawled":5,"pages_in_queue":0},"total_pages":5}]}]}`))
		case "/presentations":
			_, _ = w.Write([]byte(`{"presentationId":"pres-1","slides":[]}`))
		case "/presentations/pres-1:batchUpdate":
			var batch struct {
				Requests []map[string]any `json:"requests"`
			}
			_ = json.NewDecoder(r.Body).Decode(&batch)
			for _, req := range batch.Requests {
				if _, ok := req["createSlide"]; ok {
					slides.batchSlides++
				}
			}
			_, _ = w.Write([]byte(`{}`))
		case "/files/pres-1/permissions":
			_, _ = w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	providerClient, err := provider.NewClient(config.ProviderConfig{
		BaseURL:       srv.URL,
		Login:         "user",
		Password:      "pass",
		MaxCrawlPages: 100,
		KeywordLimit:  1000,
	}, logger.NewNop())
	require.NoError(t, err)

	repo := repository.NewAuditRepository(db, logger.NewNop())
	service := audit.NewService(
		repo,
		providerClient,
		pagespeed.NewClient(config.PageSpeedConfig{BaseURL: srv.URL}, logger.NewNop()),
		readability.NewAnalyzer(logger.NewNop()),
		nil,
		logger.NewNop(),
	)

	slidesCfg := config.SlidesConfig{BaseURL: srv.URL, DriveBaseURL: srv.URL, AccessToken: "token"}
	assembler := deck.NewAssembler(nil, deck.NewSequentialIDs(), logger.NewNop())
	deckClient := deck.NewClient(slidesCfg, assembler, logger.NewNop())
	images := deck.NewImageStore(slidesCfg, logger.NewNop())

	auditHandler := handlers.NewAuditHandler(service, logger.NewNop())
	slidesHandler := handlers.NewSlidesHandler(service, deckClient, images, nil, logger.NewNop())
	router := api.NewRouter(auditHandler, slidesHandler, []string{"*"}, logger.NewNop())

	return &testEnv{router: router, mock: mock, slides: slides}
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateAudit_InvalidBody(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/audits", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "Invalid request body", body["error"])
}

func TestCreateAudit(t *testing.T) {
	env := newTestEnv(t)
	env.mock.ExpectQuery("INSERT INTO audit_projects").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("id-1"))

	w := env.request(t, http.MethodPost, "/api/v1/audits", map[string]any{"domain": "https://acme.com"})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "acme.com", body["domain"])
	assert.Equal(t, "task-123", body["task_id"])
	assert.Equal(t, "id-1", body["project_id"], "the id returned is the stored row's id")
}

func TestListAudits(t *testing.T) {
	env := newTestEnv(t)
	rows := sqlmock.NewRows([]string{"id", "domain", "status", "task_id", "created_at", "completed_at"}).
		AddRow("id-1", "acme.com", models.StatusCompleted, "task-1", time.Now(), time.Now())
	env.mock.ExpectQuery("SELECT (.+) FROM audit_projects ORDER BY created_at DESC").
		WillReturnRows(rows)

	w := env.request(t, http.MethodGet, "/api/v1/audits", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.InDelta(t, 1, body["count"], 0.001)
}

func TestGetAudit_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.mock.ExpectQuery("SELECT (.+) FROM audit_projects WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	w := env.request(t, http.MethodGet, "/api/v1/audits/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCrawlStatus(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/audits/status/task-123", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "finished", body["crawl_progress"])
	assert.Equal(t, true, body["finished"])
	assert.InDelta(t, 5, body["pages_crawled"], 0.001)
}

func TestDeleteAudit_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.mock.ExpectQuery("SELECT (.+) FROM audit_projects WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	w := env.request(t, http.MethodDelete, "/api/v1/audits/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateSlides(t *testing.T) {
	env := newTestEnv(t)
	blob := `{"total_traffic":18500,"total_keywords":240}`
	rows := sqlmock.NewRows([]string{"id", "domain", "status", "task_id", "created_at", "completed_at", "audit_data"}).
		AddRow("id-1", "acme.com", models.StatusCompleted, "task-1", time.Now(), time.Now(), []byte(blob))
	env.mock.ExpectQuery("SELECT (.+) FROM audit_projects WHERE id").
		WithArgs("id-1").
		WillReturnRows(rows)

	w := env.request(t, http.MethodPost, "/api/v1/slides", map[string]any{"project_id": "id-1"})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "pres-1", body["presentation_id"])
	assert.InDelta(t, 16, body["slide_count"], 0.001)
	assert.Equal(t, 16, env.slides.batchSlides)
}

func TestGenerateSlides_MissingProjectID(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/slides", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
