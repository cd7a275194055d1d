package pdfs

// TemplateStore keeps imported template pages by key.
// T is the backend's template handle (e.g. an int id for fpdf)
type TemplateStore[T any] struct {
	templates map[string]T
}

func NewTemplateStore[T any]() *TemplateStore[T] {
	return &TemplateStore[T]{templates: make(map[string]T)}
}

func (s *TemplateStore[T]) Store(key string, template T) {
	s.templates[key] = template
}

func (s *TemplateStore[T]) Get(key string) (T, bool) {
	t, ok := s.templates[key]
	return t, ok
}

func (s *TemplateStore[T]) Has(key string) bool {
	_, ok := s.templates[key]
	return ok
}

func (s *TemplateStore[T]) Len() int {
	return len(s.templates)
}
