package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/leondli/npsboard/internal/adapter/export"
	"github.com/leondli/npsboard/internal/adapter/repository"
	"github.com/leondli/npsboard/internal/usecase/dashboard"
	"github.com/leondli/npsboard/pkg/response"
)

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, NewHandlers(dashboard.New(repository.NewMemory(), nil), nil))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

type idOnly struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags"`
}

func TestTagFilterAndCascade(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/v1/tags", map[string]string{"name": "Finance", "color": "green", "category": "survey"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create tag: %d %s", w.Code, w.Body)
	}
	tag := decode[idOnly](t, env.Data)

	for _, body := range []map[string]any{
		{"title": "Tagged", "type": "metric", "size": "sm", "tags": []string{tag.ID}, "data": map[string]any{"value": 1}},
		{"title": "Plain", "type": "metric", "size": "sm"},
	} {
		if w, _ := do(t, r, http.MethodPost, "/api/v1/widgets", body); w.Code != http.StatusCreated {
			t.Fatalf("create widget: %d %s", w.Code, w.Body)
		}
	}

	w, env = do(t, r, http.MethodPost, "/api/v1/filters/toggle/"+tag.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("toggle: %d %s", w.Code, w.Body)
	}
	state := decode[FilterState](t, env.Data)
	if len(state.Widgets) != 1 || state.Widgets[0].Title != "Tagged" {
		t.Fatalf("filtered widgets = %+v", state.Widgets)
	}

	if w, _ := do(t, r, http.MethodDelete, "/api/v1/tags/"+tag.ID, nil); w.Code != http.StatusOK {
		t.Fatalf("delete tag: %d %s", w.Code, w.Body)
	}

	_, env = do(t, r, http.MethodGet, "/api/v1/filters", nil)
	state = decode[FilterState](t, env.Data)
	if len(state.ActiveTags) != 0 || len(state.Widgets) != 2 {
		t.Fatalf("after delete: %+v", state)
	}
	for _, wd := range state.Widgets {
		if len(wd.Tags) != 0 {
			t.Fatalf("widget %q still tagged %v", wd.Title, wd.Tags)
		}
	}
}

func TestWidgetData(t *testing.T) {
	r := newTestRouter(t)

	ids := make(map[string]string)
	for name, body := range map[string]map[string]any{
		"good":   {"title": "Score", "type": "metric", "size": "sm", "data": map[string]any{"value": 40}},
		"broken": {"title": "Rows", "type": "table", "size": "lg", "data": map[string]any{"value": 40}},
	} {
		w, env := do(t, r, http.MethodPost, "/api/v1/widgets", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("create %s widget: %d %s", name, w.Code, w.Body)
		}
		ids[name] = decode[idOnly](t, env.Data).ID
	}

	w, env := do(t, r, http.MethodGet, "/api/v1/widgets/"+ids["good"]+"/data", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("good data: %d %s", w.Code, w.Body)
	}
	if got := decode[map[string]float64](t, env.Data)["value"]; got != 40 {
		t.Fatalf("value = %v, want 40", got)
	}

	w, env = do(t, r, http.MethodGet, "/api/v1/widgets/"+ids["broken"]+"/data", nil)
	if w.Code != http.StatusUnprocessableEntity || env.Code != response.CodeNoData {
		t.Fatalf("broken data: %d %s, want 422 %s", w.Code, env.Code, response.CodeNoData)
	}

	// render keeps degrading instead of failing
	w, _ = do(t, r, http.MethodGet, "/api/v1/widgets/"+ids["broken"]+"/render", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("render broken: %d %s", w.Code, w.Body)
	}
}

func TestNotFoundAndValidation(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name     string
		method   string
		path     string
		body     any
		want     int
		wantCode string
	}{
		{"missing tag", http.MethodPatch, "/api/v1/tags/tag-nope", map[string]string{"name": "x"}, http.StatusNotFound, response.CodeNotFound},
		{"missing widget", http.MethodDelete, "/api/v1/widgets/widget-nope", nil, http.StatusNotFound, response.CodeNotFound},
		{"toggle unknown tag", http.MethodPost, "/api/v1/filters/toggle/tag-nope", nil, http.StatusNotFound, response.CodeNotFound},
		{"bad category", http.MethodGet, "/api/v1/tags?category=team", nil, http.StatusBadRequest, response.CodeValidationError},
		{"bad color", http.MethodPost, "/api/v1/tags", map[string]string{"name": "x", "color": "teal", "category": "user"}, http.StatusBadRequest, response.CodeValidationError},
		{"score out of range", http.MethodPost, "/api/v1/nps/score", map[string]any{"scores": []int{9, 12}}, http.StatusBadRequest, response.CodeValidationError},
		{"malformed body", http.MethodPost, "/api/v1/surveys", "not an object", http.StatusBadRequest, response.CodeBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := do(t, r, tc.method, tc.path, tc.body)
			if w.Code != tc.want || env.Code != tc.wantCode {
				t.Fatalf("got %d %s, want %d %s (%s)", w.Code, env.Code, tc.want, tc.wantCode, w.Body)
			}
		})
	}
}

func TestSurveyResponsesAndScore(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/v1/surveys", map[string]any{
		"title":     "Q1",
		"responses": []map[string]any{{"score": 9}, {"score": 9}, {"score": 3}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create survey: %d %s", w.Code, w.Body)
	}
	s := decode[idOnly](t, env.Data)

	_, env = do(t, r, http.MethodGet, "/api/v1/surveys/"+s.ID+"/nps", nil)
	sum := decode[struct {
		Score  int  `json:"score"`
		Cached bool `json:"cached"`
	}](t, env.Data)
	if sum.Score != 33 || sum.Cached {
		t.Fatalf("score = %+v", sum)
	}

	if w, _ := do(t, r, http.MethodPost, "/api/v1/surveys/"+s.ID+"/nps/recompute", nil); w.Code != http.StatusOK {
		t.Fatalf("recompute: %d", w.Code)
	}
	w, env = do(t, r, http.MethodPost, "/api/v1/surveys/"+s.ID+"/responses", map[string]any{"score": 10})
	if w.Code != http.StatusCreated {
		t.Fatalf("add response: %d %s", w.Code, w.Body)
	}
	resp := decode[idOnly](t, env.Data)

	_, env = do(t, r, http.MethodGet, "/api/v1/surveys/"+s.ID+"/nps", nil)
	sum = decode[struct {
		Score  int  `json:"score"`
		Cached bool `json:"cached"`
	}](t, env.Data)
	if sum.Score != 50 || sum.Cached {
		t.Fatalf("score after new response = %+v", sum)
	}

	if w, _ := do(t, r, http.MethodDelete, "/api/v1/surveys/"+s.ID+"/responses/"+resp.ID, nil); w.Code != http.StatusOK {
		t.Fatalf("remove response: %d", w.Code)
	}

	_, env = do(t, r, http.MethodGet, "/api/v1/nps/distribution", nil)
	buckets := decode[[]DistributionBucket](t, env.Data)
	if len(buckets) != 11 || buckets[9].Count != 2 || buckets[3].Count != 1 || buckets[10].Count != 0 {
		t.Fatalf("distribution = %+v", buckets)
	}
}

func TestExportAndHealth(t *testing.T) {
	r := newTestRouter(t)

	w, _ := do(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}

	w, _ = do(t, r, http.MethodGet, "/api/v1/export/nps.xlsx", nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != export.ContentType {
		t.Fatalf("export: %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	if w.Body.Len() == 0 {
		t.Fatal("export body is empty")
	}

	// The change feed is only mounted when a hub is configured
	w, _ = do(t, r, http.MethodGet, "/api/v1/ws", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("ws without hub: %d", w.Code)
	}
}
