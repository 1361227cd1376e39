package landmark

import "sync/atomic"

var empty = &Result{}

// Latest holds the most recent Result. One goroutine stores, any number
// load; a load sees either the old or the new result, never a mix.
type Latest struct {
	p atomic.Pointer[Result]
}

// Store publishes r. r must not be modified afterwards.
func (l *Latest) Store(r *Result) {
	if r == nil {
		r = empty
	}
	l.p.Store(r)
}

// Load returns the last stored result, or an empty one if nothing was
// stored yet.
func (l *Latest) Load() *Result {
	if r := l.p.Load(); r != nil {
		return r
	}
	return empty
}
