package pagination

import "testing"

func TestPageRequest_Defaults(t *testing.T) {
	tests := []struct {
		name       string
		in         PageRequest
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"empty", PageRequest{}, 1, DefaultPageSize, 0},
		{"explicit", PageRequest{Page: 3, PageSize: 10}, 3, 10, 20},
		{"oversized page", PageRequest{Page: 2, PageSize: 500}, 2, MaxPageSize, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Defaults()
			if p.Page != tt.wantPage || p.PageSize != tt.wantSize {
				t.Errorf("got page %d size %d, want %d and %d", p.Page, p.PageSize, tt.wantPage, tt.wantSize)
			}
			if got := p.Offset(); got != tt.wantOffset {
				t.Errorf("offset: got %d, want %d", got, tt.wantOffset)
			}
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse([]string{"a", "b"}, 1, 2, 5)
	if resp.TotalPages != 3 {
		t.Errorf("total pages: got %d, want 3", resp.TotalPages)
	}
	if !resp.HasNext {
		t.Error("expected a next page")
	}

	last := NewPageResponse([]string{"e"}, 3, 2, 5)
	if last.HasNext {
		t.Error("expected no next page after the last one")
	}

	empty := NewPageResponse[string](nil, 1, 20, 0)
	if empty.Data == nil || len(empty.Data) != 0 {
		t.Errorf("expected empty non-nil data, got %#v", empty.Data)
	}
	if empty.TotalPages != 0 || empty.HasNext {
		t.Errorf("unexpected empty page metadata: %+v", empty)
	}
}
