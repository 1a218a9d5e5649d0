package grid

// lastPage returns the last page holding a filtered row, at least 1.
func lastPage(total, perPage int) int {
	if perPage < 1 || total == 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// SetPage moves to a page, clamped to the existing pages. It is ignored
// without client paging.
func (s *Store) SetPage(page int) {
	po := s.page.Peek()
	if !po.UseClient {
		return
	}
	// In scroll mode the filtered rows only cover the loaded pages, so the
	// limit comes from every row.
	total := len(s.data.Peek())
	if po.Type != PageScroll {
		s.g.Untracked(func() { total = len(s.filtered.Get()) })
	}
	po.Page = max(1, min(page, lastPage(total, po.PerPage)))
	s.page.Set(po)
}

// SetPerPage changes the page size and returns to the first page.
func (s *Store) SetPerPage(perPage int) {
	po := s.page.Peek()
	if !po.UseClient || perPage < 1 {
		return
	}
	po.PerPage = perPage
	po.Page = 1
	s.page.Set(po)
}

func (s *Store) resetPage() {
	po := s.page.Peek()
	if po.UseClient && po.Page != 1 {
		po.Page = 1
		s.page.Set(po)
	}
}

// clampPage keeps the current page within the existing pages after rows
// were removed.
func (s *Store) clampPage() {
	po := s.page.Peek()
	if !po.UseClient || po.Type == PageScroll {
		return
	}
	var total int
	s.g.Untracked(func() { total = len(s.filtered.Get()) })
	if last := lastPage(total, po.PerPage); po.Page > last {
		po.Page = last
		s.page.Set(po)
	}
}
