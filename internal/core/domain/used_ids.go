package domain

// UsedIDSet tracks employee IDs already drawn during one generation run. It
// only grows.
type UsedIDSet struct {
	ids map[string]struct{}
}

func NewUsedIDSet() *UsedIDSet {
	return &UsedIDSet{ids: make(map[string]struct{})}
}

func (s *UsedIDSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *UsedIDSet) Add(records ...EmployeeRecord) {
	for _, r := range records {
		s.ids[r.EmployeeID] = struct{}{}
	}
}

func (s *UsedIDSet) Len() int {
	return len(s.ids)
}
