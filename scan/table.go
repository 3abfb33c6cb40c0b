package scan

import "sync"

// table is the process-wide, append-only list of declarations.
var table struct {
	mu     sync.Mutex
	thunks []func() Record
}

// Declare appends rec to the process-wide declaration table. It is meant to be called from
// package init functions or var initializers, before the first scan.
func Declare(rec Record) {
	DeclareFunc(func() Record { return rec })
}

// DeclareFunc appends a record that is built lazily, at scan time.
func DeclareFunc(fn func() Record) {
	if fn == nil {
		return
	}
	table.mu.Lock()
	table.thunks = append(table.thunks, fn)
	table.mu.Unlock()
}

// Declared returns the records of the process-wide table in declaration order.
func Declared() []Record {
	table.mu.Lock()
	thunks := append([]func() Record(nil), table.thunks...)
	table.mu.Unlock()

	out := make([]Record, len(thunks))
	for i, fn := range thunks {
		out[i] = fn()
	}
	return out
}
