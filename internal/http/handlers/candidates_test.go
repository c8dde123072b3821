package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devsync89/jobportal/internal/domain/candidate"
	"github.com/devsync89/jobportal/internal/domain/interview"
	"github.com/devsync89/jobportal/internal/domain/user"
	"github.com/devsync89/jobportal/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

func TestCreateCandidateHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{
				"name": "Jane Doe",
				"email": "jane@example.com",
				"phone": "+1555000111",
				"age": 30,
				"experience_years": 4
			}`,
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "validation_error",
			body:           `{"name": "J"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "uid_is_stripped",
			body: `{
				"uid": "sneaky-account-link",
				"name": "Jane Doe",
				"email": "jane@example.com",
				"phone": "+1555000111",
				"age": 30
			}`,
			wantStatusCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			f := newPipelineFixture()
			h := handlers.NewCandidatesHandler(f.cands, f.ivs, f.engine, nil)

			r := setupRouter(http.MethodPost, "/candidates", identity(user.RoleStaff), h.Create)

			req := httptest.NewRequest(http.MethodPost, "/candidates", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode != http.StatusCreated {
				return
			}

			var c candidate.Candidate

			if err := json.Unmarshal(w.Body.Bytes(), &c); err != nil {
				t.Fatalf("decode: %v", err)
			}

			if c.UID != "" {
				t.Fatalf("staff input must not set the account link, got uid=%q", c.UID)
			}

			if c.Status != candidate.StatusPending {
				t.Fatalf("new candidates start Pending, got %s", c.Status)
			}
		})
	}
}

func TestCandidateMeHandler(t *testing.T) {
	f := newPipelineFixture()

	// linked record for the test identity
	if _, err := f.cands.Create(context.Background(), candidate.CreateCandidateRequest{
		UID: "test-user", Name: "Jane Doe", Email: "jane@example.com", Phone: "+1555000111", Age: 30,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	h := handlers.NewCandidatesHandler(f.cands, f.ivs, f.engine, nil)

	t.Run("linked_record", func(t *testing.T) {
		r := setupRouter(http.MethodGet, "/candidates/me", identity(user.RoleCandidate), h.Me)

		req := httptest.NewRequest(http.MethodGet, "/candidates/me", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("got %d, body=%s", w.Code, w.Body.String())
		}

		var c candidate.Candidate

		if err := json.Unmarshal(w.Body.Bytes(), &c); err != nil {
			t.Fatalf("decode: %v", err)
		}

		if c.UID != "test-user" {
			t.Fatalf("wrong record returned: %+v", c)
		}
	})

	t.Run("no_linked_record", func(t *testing.T) {
		other := func(c *gin.Context) {
			c.Set("auth.userID", "someone-else")
			c.Set("auth.role", string(user.RoleCandidate))
			c.Next()
		}

		r := setupRouter(http.MethodGet, "/candidates/me", other, h.Me)

		req := httptest.NewRequest(http.MethodGet, "/candidates/me", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("got %d, want 404, body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("missing_identity", func(t *testing.T) {
		r := setupRouter(http.MethodGet, "/candidates/me", h.Me)

		req := httptest.NewRequest(http.MethodGet, "/candidates/me", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("got %d, want 401, body=%s", w.Code, w.Body.String())
		}
	})
}

func TestOverrideStatusHandler(t *testing.T) {
	f := newPipelineFixture()
	c := f.seedCandidate(t)

	h := handlers.NewCandidatesHandler(f.cands, f.ivs, f.engine, nil)

	do := func(role user.Role, status string) *httptest.ResponseRecorder {
		r := setupRouter(http.MethodPost, "/candidates/:id/status", identity(role), h.OverrideStatus)

		req := httptest.NewRequest(http.MethodPost, "/candidates/"+c.ID+"/status",
			bytes.NewBufferString(`{"status":"`+status+`"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do(user.RoleStaff, string(candidate.StatusInterviewScheduled))

	if w.Code != http.StatusOK {
		t.Fatalf("staff override got %d, body=%s", w.Code, w.Body.String())
	}

	w = do(user.RoleCandidate, string(candidate.StatusHired))

	if w.Code != http.StatusForbidden {
		t.Fatalf("candidate override got %d, want 403, body=%s", w.Code, w.Body.String())
	}

	if env := decodeErr(t, w); env.Error.Code != "forbidden" {
		t.Fatalf("got error code %q, want forbidden", env.Error.Code)
	}
}

func TestApplyRangeHandler(t *testing.T) {
	f := newPipelineFixture()

	for i := 0; i < 4; i++ {
		f.seedCandidate(t)
	}

	h := handlers.NewCandidatesHandler(f.cands, f.ivs, f.engine, nil)
	r := setupRouter(http.MethodPost, "/candidates/selection/range", identity(user.RoleStaff), h.ApplyRange)

	do := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/candidates/selection/range", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do(`{"start":2,"end":3}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Selected []string `json:"selected"`
		Count    int      `json:"count"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Count != 2 {
		t.Fatalf("got count %d, want 2", resp.Count)
	}

	// out-of-bounds ranges map to the invalid_range vocabulary
	w = do(`{"start":3,"end":99}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400, body=%s", w.Code, w.Body.String())
	}

	if env := decodeErr(t, w); env.Error.Code != "invalid_range" {
		t.Fatalf("got error code %q, want invalid_range", env.Error.Code)
	}
}

func TestExportPhonesHandler(t *testing.T) {
	f := newPipelineFixture()
	c1 := f.seedCandidate(t)
	f.seedCandidate(t)

	// only c1 has something on the calendar
	f.seedInterview(t, c1.ID, interview.TypeTechnical)

	h := handlers.NewCandidatesHandler(f.cands, f.ivs, f.engine, nil)
	r := setupRouter(http.MethodGet, "/candidates/phones/export", identity(user.RoleStaff), h.ExportPhones)

	t.Run("json_all", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/candidates/phones/export", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("got %d, body=%s", w.Code, w.Body.String())
		}

		var resp struct {
			Phones []string `json:"phones"`
			Count  int      `json:"count"`
		}

		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}

		if resp.Count != 2 {
			t.Fatalf("got count %d, want 2", resp.Count)
		}
	})

	t.Run("upcoming_only", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/candidates/phones/export?upcomingOnly=true", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("got %d, body=%s", w.Code, w.Body.String())
		}

		var resp struct {
			Phones []string `json:"phones"`
		}

		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}

		if len(resp.Phones) != 1 {
			t.Fatalf("only the candidate with a scheduled interview should export: %v", resp.Phones)
		}
	})

	t.Run("csv_format", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/candidates/phones/export?format=csv", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("got %d, body=%s", w.Code, w.Body.String())
		}

		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
			t.Fatalf("got content type %q, want text/csv", ct)
		}

		if !strings.HasPrefix(w.Body.String(), "phone\n") {
			t.Fatalf("csv export must start with the header row, got %q", w.Body.String())
		}
	})
}

func TestListCandidatesHandler(t *testing.T) {
	f := newPipelineFixture()

	if _, err := f.cands.Create(context.Background(), candidate.CreateCandidateRequest{
		Name: "Alice Example", Email: "alice@example.com", Phone: "111", Age: 28,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := f.cands.Create(context.Background(), candidate.CreateCandidateRequest{
		Name: "Bob Sample", Email: "bob@sample.dev", Phone: "222", Age: 41,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	h := handlers.NewCandidatesHandler(f.cands, f.ivs, f.engine, nil)
	r := setupRouter(http.MethodGet, "/candidates", identity(user.RoleStaff), h.List)

	tests := []struct {
		name           string
		url            string
		wantStatusCode int
		wantCount      int
	}{
		{name: "all", url: "/candidates", wantStatusCode: http.StatusOK, wantCount: 2},
		{name: "query_filter", url: "/candidates?q=alice", wantStatusCode: http.StatusOK, wantCount: 1},
		{name: "unknown_status", url: "/candidates?status=Bogus", wantStatusCode: http.StatusBadRequest},
		{name: "limit_out_of_bounds", url: "/candidates?limit=9999", wantStatusCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode != http.StatusOK {
				return
			}

			var resp struct {
				Count int `json:"count"`
			}

			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}

			if resp.Count != tt.wantCount {
				t.Fatalf("got count %d, want %d", resp.Count, tt.wantCount)
			}
		})
	}
}

func TestImportCandidatesHandler(t *testing.T) {
	f := newPipelineFixture()
	h := handlers.NewCandidatesHandler(f.cands, f.ivs, f.engine, nil)
	r := setupRouter(http.MethodPost, "/candidates/import", identity(user.RoleStaff), h.Import)

	csv := strings.Join([]string{
		"name,email,phone,age,experience_years",
		"Jane Doe,jane@example.com,111,30,4",
		"Broken Row,,222,30,4",
		"John Roe,john@example.com,333,35,1",
	}, "\n")

	req := httptest.NewRequest(http.MethodPost, "/candidates/import", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Imported int `json:"imported"`
		Errors   []struct {
			Row int `json:"row"`
		} `json:"errors"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Imported != 2 || len(resp.Errors) != 1 || resp.Errors[0].Row != 2 {
		t.Fatalf("unexpected import summary: %+v body=%s", resp, w.Body.String())
	}
}
