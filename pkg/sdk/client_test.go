package resources

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestFindResourceByID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resources/find-resource-by-id" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("id"); got != "riscv-hello" {
			t.Errorf("id = %q", got)
		}
		if r.URL.Query().Has("resource_version") {
			t.Error("resource_version sent for all-versions lookup")
		}
		_ = json.NewEncoder(w).Encode([]Resource{
			{ID: "riscv-hello", ResourceVersion: "1.1.0", LatestVersion: "1.1.0"},
			{ID: "riscv-hello", ResourceVersion: "1.0.0", LatestVersion: "1.1.0"},
		})
	})

	docs, err := c.FindResourceByID(context.Background(), "riscv-hello", "")
	if err != nil {
		t.Fatalf("FindResourceByID: %v", err)
	}
	if len(docs) != 2 || docs[0].ResourceVersion != "1.1.0" {
		t.Fatalf("docs = %+v", docs)
	}
}

func TestFindResourceByID_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not found: no-such"})
	})

	_, err := c.FindResourceByID(context.Background(), "no-such", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound match", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *APIError", err)
	}
	if apiErr.Message != "not found: no-such" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestFindResourcesInBatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("id"); got != "a,b" {
			t.Errorf("id = %q, want comma-joined", got)
		}
		if got := q.Get("resource_version"); got != "None,1.0.0" {
			t.Errorf("resource_version = %q, want None sentinel for empty version", got)
		}
		_ = json.NewEncoder(w).Encode([][]Resource{
			{{ID: "a", ResourceVersion: "2.0.0"}},
			{{ID: "b", ResourceVersion: "1.0.0"}},
		})
	})

	results, err := c.FindResourcesInBatch(context.Background(), []BatchPair{
		{ID: "a"},
		{ID: "b", Version: "1.0.0"},
	})
	if err != nil {
		t.Fatalf("FindResourcesInBatch: %v", err)
	}
	if len(results) != 2 || results[1][0].ID != "b" {
		t.Fatalf("results = %+v", results)
	}
}

func TestFindResourcesInBatch_EmptyRejectedLocally(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be called")
	})

	_, err := c.FindResourcesInBatch(context.Background(), nil)
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err = %v, want ErrInvalidRequest match", err)
	}
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("contains-str"); got != "riscv" {
			t.Errorf("contains-str = %q", got)
		}
		if got := q.Get("must-include"); got != "category,binary" {
			t.Errorf("must-include = %q", got)
		}
		if got := q.Get("page"); got != "2" {
			t.Errorf("page = %q", got)
		}
		_ = json.NewEncoder(w).Encode(SearchResult{
			Documents:  []Resource{{ID: "riscv-hello", ResourceVersion: "1.1.0"}},
			TotalCount: 11,
		})
	})

	result, err := c.Search(context.Background(), SearchQuery{
		Query:       "riscv",
		MustInclude: "category,binary",
		Page:        2,
		PageSize:    10,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.TotalCount != 11 || len(result.Documents) != 1 {
		t.Fatalf("result = %+v", result)
	}
}

func TestSearch_BadRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid pagination parameters"})
	})

	_, err := c.Search(context.Background(), SearchQuery{Page: -1})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err = %v, want ErrInvalidRequest match", err)
	}
}

func TestFilterOptions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(FilterValues{
			Category:     []string{"binary", "workload"},
			Architecture: []string{"RISCV", "X86"},
			Gem5Versions: []string{"24.1", "24.0"},
		})
	})

	values, err := c.FilterOptions(context.Background())
	if err != nil {
		t.Fatalf("FilterOptions: %v", err)
	}
	if len(values.Category) != 2 || values.Gem5Versions[0] != "24.1" {
		t.Fatalf("values = %+v", values)
	}
}

func TestDependentWorkloads(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "riscv-hello" {
			t.Errorf("id = %q", got)
		}
		_ = json.NewEncoder(w).Encode([]WorkloadRef{{ID: "wl-boot"}})
	})

	refs, err := c.DependentWorkloads(context.Background(), "riscv-hello")
	if err != nil {
		t.Fatalf("DependentWorkloads: %v", err)
	}
	if len(refs) != 1 || refs[0].ID != "wl-boot" {
		t.Fatalf("refs = %+v", refs)
	}
}

func TestHealth_DegradedStillDecodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthReport{
			Status: "degraded",
			Checks: map[string]string{"database": "error"},
		})
	})

	report, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if report.Status != "degraded" || report.Checks["database"] != "error" {
		t.Fatalf("report = %+v", report)
	}
}

func TestAPIError_PlainTextBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	})

	_, err := c.FilterOptions(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "upstream unavailable" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidRequest) {
		t.Error("502 must not match the 4xx sentinels")
	}
}
