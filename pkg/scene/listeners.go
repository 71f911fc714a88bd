package scene

import "slices"

type listener struct {
	id int
	fn func()
}

// listeners is a per-event callback list. Removal during dispatch is safe.
type listeners[E comparable] struct {
	next int
	subs map[E][]listener
}

func (l *listeners[E]) add(ev E, fn func()) func() {
	if l.subs == nil {
		l.subs = make(map[E][]listener)
	}
	l.next++
	id := l.next
	l.subs[ev] = append(l.subs[ev], listener{id: id, fn: fn})
	return func() {
		l.subs[ev] = slices.DeleteFunc(l.subs[ev], func(s listener) bool { return s.id == id })
	}
}

func (l *listeners[E]) fire(ev E) {
	for _, s := range slices.Clone(l.subs[ev]) {
		s.fn()
	}
}

func (l *listeners[E]) count(ev E) int {
	return len(l.subs[ev])
}
