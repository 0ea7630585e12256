package pagination

import (
	"net/http/httptest"
	"testing"
)

func TestNewRequest_ClampsBelowOne(t *testing.T) {
	for _, page := range []int{0, -1, -99} {
		req := NewRequest(page)
		if req.Number != 1 {
			t.Fatalf("page %d: expected clamp to 1, got %d", page, req.Number)
		}
		if req.Offset() != 0 {
			t.Fatalf("page %d: expected offset 0, got %d", page, req.Offset())
		}
	}
}

func TestRequest_OffsetTranslation(t *testing.T) {
	// 1-based hacia afuera, 0-based hacia el store
	cases := []struct {
		page   int
		offset int
	}{
		{1, 0},
		{2, 5},
		{3, 10},
	}
	for _, c := range cases {
		req := NewRequest(c.page)
		if req.Offset() != c.offset {
			t.Fatalf("page %d: expected offset %d, got %d", c.page, c.offset, req.Offset())
		}
		if req.Limit() != PageSize {
			t.Fatalf("page %d: expected limit %d, got %d", c.page, PageSize, req.Limit())
		}
	}
}

func TestParsePage(t *testing.T) {
	cases := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", 1, false},
		{"page=1", 1, false},
		{"page=3", 3, false},
		{"page=0", 1, false},
		{"page=-2", 1, false},
		{"page=abc", 0, true},
	}
	for _, c := range cases {
		r := httptest.NewRequest("GET", "/owners?"+c.query, nil)
		req, err := ParsePage(r)
		if c.wantErr {
			if err == nil {
				t.Fatalf("query %q: expected error", c.query)
			}
			continue
		}
		if err != nil {
			t.Fatalf("query %q: unexpected error: %v", c.query, err)
		}
		if req.Number != c.want {
			t.Fatalf("query %q: expected page %d, got %d", c.query, c.want, req.Number)
		}
	}
}

func TestNew_TotalPages(t *testing.T) {
	cases := []struct {
		total int
		pages int
	}{
		{0, 0},
		{1, 1},
		{5, 1},
		{6, 2},
		{12, 3},
	}
	for _, c := range cases {
		p := New([]int{}, NewRequest(1), c.total)
		if p.TotalPages != c.pages {
			t.Fatalf("total %d: expected %d pages, got %d", c.total, c.pages, p.TotalPages)
		}
	}
}

func TestNew_NilItemsBecomesEmpty(t *testing.T) {
	p := New[int](nil, NewRequest(1), 0)
	if p.Items == nil {
		t.Fatalf("expected non-nil items slice")
	}
	if len(p.Items) != 0 {
		t.Fatalf("expected empty items, got %d", len(p.Items))
	}
}

func TestSlice_Windows(t *testing.T) {
	all := []int{10, 11, 12, 13, 14, 15, 16}

	p1 := Slice(all, NewRequest(1))
	if len(p1.Items) != 5 || p1.Items[0] != 10 || p1.Items[4] != 14 {
		t.Fatalf("page 1: wrong window %#v", p1.Items)
	}

	p2 := Slice(all, NewRequest(2))
	if len(p2.Items) != 2 || p2.Items[0] != 15 {
		t.Fatalf("page 2: wrong window %#v", p2.Items)
	}
	if p2.TotalElements != 7 || p2.TotalPages != 2 {
		t.Fatalf("page 2: wrong totals %d/%d", p2.TotalElements, p2.TotalPages)
	}
}

func TestSlice_PastTheEndIsNotAnError(t *testing.T) {
	all := []int{1, 2, 3}
	p := Slice(all, NewRequest(9))
	if len(p.Items) != 0 {
		t.Fatalf("expected empty page, got %#v", p.Items)
	}
	if p.TotalElements != 3 || p.TotalPages != 1 {
		t.Fatalf("expected totals preserved, got %d/%d", p.TotalElements, p.TotalPages)
	}
	if p.Number != 9 {
		t.Fatalf("expected requested page number echoed, got %d", p.Number)
	}
}
