package paginate

import "testing"

func items(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate_FirstPage(t *testing.T) {
	p := Paginate(items(20), 8, 1)
	if len(p.Items) != 8 || p.Items[0] != 1 || p.Items[7] != 8 {
		t.Fatalf("page 1 items: %v", p.Items)
	}
	if p.TotalPages != 3 || p.TotalItems != 20 {
		t.Fatalf("totals: pages=%d items=%d", p.TotalPages, p.TotalItems)
	}
	if p.Start != 1 || p.End != 8 {
		t.Fatalf("bounds: %d-%d", p.Start, p.End)
	}
}

func TestPaginate_ShortLastPage(t *testing.T) {
	p := Paginate(items(20), 8, 3)
	if len(p.Items) != 4 || p.Items[0] != 17 {
		t.Fatalf("last page items: %v", p.Items)
	}
	if p.Start != 17 || p.End != 20 {
		t.Fatalf("bounds: %d-%d", p.Start, p.End)
	}
}

func TestPaginate_ClampsOutOfRange(t *testing.T) {
	if p := Paginate(items(20), 8, 0); p.Number != 1 {
		t.Fatalf("page 0 clamped to %d", p.Number)
	}
	if p := Paginate(items(20), 8, 99); p.Number != 3 {
		t.Fatalf("page 99 clamped to %d", p.Number)
	}
}

func TestPaginate_EmptyView(t *testing.T) {
	p := Paginate([]int{}, 8, 1)
	if len(p.Items) != 0 || p.TotalItems != 0 {
		t.Fatalf("empty view: %+v", p)
	}
	if p.TotalPages != 1 {
		t.Fatalf("TotalPages=%d want 1 on empty view", p.TotalPages)
	}
	if p.Start != 0 || p.End != 0 {
		t.Fatalf("bounds on empty view: %d-%d", p.Start, p.End)
	}
}

func TestPaginate_DefaultSize(t *testing.T) {
	p := Paginate(items(10), 0, 1)
	if len(p.Items) != DefaultPageSize {
		t.Fatalf("default size not applied: %d", len(p.Items))
	}
}

func TestPager_OutOfRangeIsNoOp(t *testing.T) {
	pg := NewPager(8)
	pg.SetView(20)
	if pg.Page() != 1 || pg.TotalPages() != 3 {
		t.Fatalf("after SetView: page=%d total=%d", pg.Page(), pg.TotalPages())
	}

	if !pg.SetPage(2) || pg.Page() != 2 {
		t.Fatalf("SetPage(2) failed")
	}
	if pg.SetPage(0) || pg.Page() != 2 {
		t.Fatalf("SetPage(0) should be a no-op")
	}
	if pg.SetPage(4) || pg.Page() != 2 {
		t.Fatalf("SetPage(4) should be a no-op")
	}
}

func TestPager_ViewChangeResetsToFirstPage(t *testing.T) {
	pg := NewPager(8)
	pg.SetView(20)
	pg.SetPage(3)
	pg.SetView(5)
	if pg.Page() != 1 || pg.TotalPages() != 1 {
		t.Fatalf("after shrink: page=%d total=%d", pg.Page(), pg.TotalPages())
	}

	p := Slice(pg, items(5))
	if len(p.Items) != 5 {
		t.Fatalf("slice after reset: %v", p.Items)
	}
}
