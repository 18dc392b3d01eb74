package response

// Log is the id-keyed answer collection of one attempt. Putting an entry
// whose key is already present replaces it in place, so the log never holds
// two answers for the same item. A Log is owned by a single attempt and is
// not safe for concurrent use.
type Log[E Entry] struct {
	order   []string
	entries map[string]E
}

func NewLog[E Entry]() *Log[E] {
	return &Log[E]{entries: make(map[string]E)}
}

// Put validates e and stores it. replaced is true when an earlier answer for
// the same key was overwritten.
func (l *Log[E]) Put(e E) (replaced bool, err error) {
	if err := e.Validate(); err != nil {
		return false, err
	}

	key := e.Key()
	if _, ok := l.entries[key]; ok {
		l.entries[key] = e
		return true, nil
	}

	l.order = append(l.order, key)
	l.entries[key] = e
	return false, nil
}

func (l *Log[E]) Get(key string) (E, bool) {
	e, ok := l.entries[key]
	return e, ok
}

func (l *Log[E]) Has(key string) bool {
	_, ok := l.entries[key]
	return ok
}

func (l *Log[E]) Len() int {
	return len(l.order)
}

// Entries returns the answers in first-answered order.
func (l *Log[E]) Entries() []E {
	out := make([]E, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, l.entries[k])
	}
	return out
}

// Delete drops the answer for key, if any.
func (l *Log[E]) Delete(key string) {
	if _, ok := l.entries[key]; !ok {
		return
	}
	delete(l.entries, key)
	for i, k := range l.order {
		if k == key {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Clear drops every answer, e.g. on retake.
func (l *Log[E]) Clear() {
	l.order = nil
	l.entries = make(map[string]E)
}
