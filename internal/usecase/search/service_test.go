package search

import (
	"context"
	"errors"
	"testing"

	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
	"github.com/gem5-vision/resources-api/internal/domain/search/request"
)

// --- Mocks ---

type mockRepo struct {
	docs        []domres.Resource
	searchErr   error
	total       int
	countErr    error
	searchCalls int
	countCalls  int
}

func (m *mockRepo) Search(_ context.Context, _ request.Request) ([]domres.Resource, error) {
	m.searchCalls++
	return m.docs, m.searchErr
}

func (m *mockRepo) Count(_ context.Context, _ request.Request) (int, error) {
	m.countCalls++
	return m.total, m.countErr
}

func makeRequest(t *testing.T, page, pageSize int) request.Request {
	t.Helper()
	req, err := request.New("ubuntu", "", "", page, pageSize)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return req
}

func TestSearch_ReturnsPageAndTotal(t *testing.T) {
	repo := &mockRepo{
		docs: []domres.Resource{
			{ID: "x86-ubuntu-18.04-img", Score: 9.5},
			{ID: "x86-ubuntu-20.04-img", Score: 7.1},
		},
		total: 5,
	}
	svc := New(repo)

	page, err := svc.Search(context.Background(), makeRequest(t, 1, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalCount() != 5 {
		t.Errorf("totalCount = %d, want 5", page.TotalCount())
	}
	if len(page.Documents()) != 2 {
		t.Errorf("got %d documents, want 2", len(page.Documents()))
	}
	if repo.countCalls != 1 || repo.searchCalls != 1 {
		t.Errorf("round trips = %d count, %d search; want 1 and 1", repo.countCalls, repo.searchCalls)
	}
}

// A page past the last match is an empty page with the true total.
func TestSearch_PagePastEndKeepsTotal(t *testing.T) {
	repo := &mockRepo{total: 7}
	svc := New(repo)

	// totalCount=7, page_size=3 -> last page is 3; page 4 is past the end.
	page, err := svc.Search(context.Background(), makeRequest(t, 4, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Documents()) != 0 {
		t.Errorf("got %d documents, want 0", len(page.Documents()))
	}
	if page.TotalCount() != 7 {
		t.Errorf("totalCount = %d, want 7", page.TotalCount())
	}
	if repo.searchCalls != 0 {
		t.Error("fetch round-trip should be skipped past the last page")
	}
}

func TestSearch_NoMatches(t *testing.T) {
	svc := New(&mockRepo{total: 0})

	page, err := svc.Search(context.Background(), makeRequest(t, 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalCount() != 0 || len(page.Documents()) != 0 {
		t.Errorf("got total=%d docs=%d, want zeroes", page.TotalCount(), len(page.Documents()))
	}
}

func TestSearch_CountErrorPropagates(t *testing.T) {
	countErr := errors.New("aggregate failed")
	svc := New(&mockRepo{countErr: countErr})

	_, err := svc.Search(context.Background(), makeRequest(t, 1, 10))
	if !errors.Is(err, countErr) {
		t.Errorf("err = %v, want wrapped count error", err)
	}
}

func TestSearch_FetchErrorPropagates(t *testing.T) {
	fetchErr := errors.New("cursor closed")
	svc := New(&mockRepo{total: 3, searchErr: fetchErr})

	_, err := svc.Search(context.Background(), makeRequest(t, 1, 10))
	if !errors.Is(err, fetchErr) {
		t.Errorf("err = %v, want wrapped fetch error", err)
	}
}
