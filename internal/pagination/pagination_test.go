package pagination

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     Params
	}{
		{"defaults", 0, 0, Params{Page: 1, PageSize: DefaultPageSize}},
		{"negative page", -3, 20, Params{Page: 1, PageSize: 20}},
		{"below min size", 2, -1, Params{Page: 2, PageSize: MinPageSize}},
		{"above max size", 1, 1000, Params{Page: 1, PageSize: MaxPageSize}},
		{"in range", 4, 25, Params{Page: 4, PageSize: 25}},
		{"huge page", math.MaxInt64 / 5, 10, Params{Page: MaxPage(10), PageSize: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.page, tt.pageSize); got != tt.want {
				t.Fatalf("Normalize(%d, %d) = %+v, want %+v", tt.page, tt.pageSize, got, tt.want)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := Normalize(2, 10)
	if p.Offset() != 10 || p.Limit() != 10 {
		t.Fatalf("unexpected offset/limit: %d/%d", p.Offset(), p.Limit())
	}
}

func TestOffset_HugePageStaysPositive(t *testing.T) {
	for _, size := range []int{1, 10, MaxPageSize} {
		p := Normalize(math.MaxInt64, size)
		if p.Offset() < 0 || p.Offset() > math.MaxInt32 {
			t.Fatalf("page size %d: offset %d out of range", size, p.Offset())
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, pageSize, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{15, 10, 2},
		{101, 100, 2},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.pageSize); got != tt.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
		}
	}
}

func TestNormalizeSearch(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	for _, in := range []*string{nil, strPtr(""), strPtr("*"), strPtr("   "), strPtr(" * ")} {
		if got := NormalizeSearch(in); got != "" {
			t.Fatalf("expected no filter for %v, got %q", in, got)
		}
	}
	if got := NormalizeSearch(strPtr(" Stand ")); got != "Stand" {
		t.Fatalf("unexpected search: %q", got)
	}
}

func TestNewPage_NilItemsBecomeEmpty(t *testing.T) {
	page := NewPage[string](nil, 15, Normalize(2, 10))
	if page.Items == nil {
		t.Fatal("expected non-nil items")
	}
	if page.Total != 15 || page.TotalPages != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
}
