package listing

import "testing"

func TestNewPage(t *testing.T) {
	tests := []struct {
		name         string
		current      any
		pageSize     any
		wantCurrent  int
		wantPageSize int
	}{
		{"missing values use defaults", nil, nil, 1, 10},
		{"numeric strings", "2", "5", 2, 5},
		{"non-numeric current", "abc", "5", 1, 5},
		{"zero and negative", "0", "-3", 1, 10},
		{"empty strings", "", "  ", 1, 10},
		{"leading zeros", "007", " 08 ", 7, 8},
		{"page size is capped", 3, 500, 3, MaxPageSize},
		{"float input", 4.0, 20.0, 4, 20},
		{"fractional string", "1.5", "x", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(tt.current, tt.pageSize)
			if p.Current != tt.wantCurrent {
				t.Errorf("Expected current %d, got %d", tt.wantCurrent, p.Current)
			}
			if p.PageSize != tt.wantPageSize {
				t.Errorf("Expected pageSize %d, got %d", tt.wantPageSize, p.PageSize)
			}
		})
	}
}

func TestPageOffset(t *testing.T) {
	for current := 1; current <= 5; current++ {
		for _, size := range []int{1, 10, MaxPageSize} {
			p := NewPage(current, size)
			want := (current - 1) * size
			if p.Offset() != want {
				t.Errorf("Expected offset %d for page %d/%d, got %d", want, current, size, p.Offset())
			}
			if p.Offset() < 0 {
				t.Errorf("Offset must never be negative, got %d", p.Offset())
			}
		}
	}

	if off := NewPage("-4", "abc").Offset(); off != 0 {
		t.Errorf("Expected offset 0 after fallback, got %d", off)
	}
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		total     int64
		pageSize  int
		wantPages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{12, 5, 3},
	}

	for _, tt := range tests {
		meta := NewMeta(Page{Current: 1, PageSize: tt.pageSize}, tt.total)
		if meta.Pages != tt.wantPages {
			t.Errorf("total=%d pageSize=%d: expected %d pages, got %d", tt.total, tt.pageSize, tt.wantPages, meta.Pages)
		}
		if meta.Total != tt.total {
			t.Errorf("Expected total %d, got %d", tt.total, meta.Total)
		}
	}
}
