package listing

// Selection: набор выбранных записей для массового удаления. Порядок выбора сохраняется.
type Selection struct {
	order []string
	set   map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{set: make(map[string]struct{})}
}

func (s *Selection) Has(id string) bool {
	_, ok := s.set[id]
	return ok
}

func (s *Selection) Len() int { return len(s.order) }

// Toggle выбирает или снимает выбор одной записи.
func (s *Selection) Toggle(id string) {
	if s.Has(id) {
		s.remove(id)
		return
	}
	s.add(id)
}

// TogglePage выбирает все записи текущей страницы; если они уже все выбраны, снимает выбор.
func (s *Selection) TogglePage(ids []string) {
	all := len(ids) > 0
	for _, id := range ids {
		if !s.Has(id) {
			all = false
			break
		}
	}
	for _, id := range ids {
		if all {
			s.remove(id)
		} else {
			s.add(id)
		}
	}
}

func (s *Selection) Clear() {
	s.order = nil
	s.set = make(map[string]struct{})
}

func (s *Selection) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Selection) add(id string) {
	if s.Has(id) {
		return
	}
	s.set[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *Selection) remove(id string) {
	if !s.Has(id) {
		return
	}
	delete(s.set, id)
	for i, x := range s.order {
		if x == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
