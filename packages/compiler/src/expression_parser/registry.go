package expression_parser

import (
	"encoding/json"
	"sync"
)

// BindingRecord pairs a registered expression with its parsed tree.
// Ids start at 1 and are assigned in registration order.
type BindingRecord struct {
	ID         int
	Expression string
	AST        AST
}

// MarshalJSON writes the record with the tree in dehydrated form
func (r *BindingRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         int           `json:"id"`
		Expression string        `json:"expression"`
		AST        []interface{} `json:"ast"`
	}{
		ID:         r.ID,
		Expression: r.Expression,
		AST:        r.AST.Dehydrate(),
	})
}

// Registry assigns ids to expressions. Registering the same expression
// twice returns the existing record.
type Registry struct {
	mu           sync.Mutex
	nextID       int
	byExpression map[string]*BindingRecord
	records      []*BindingRecord
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		nextID:       1,
		byExpression: map[string]*BindingRecord{},
	}
}

// Add registers expression and its tree
func (r *Registry) Add(expression string, ast AST) *BindingRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record, ok := r.byExpression[expression]; ok {
		return record
	}
	record := &BindingRecord{ID: r.nextID, Expression: expression, AST: ast}
	r.nextID++
	r.byExpression[expression] = record
	r.records = append(r.records, record)
	return record
}

// Lookup returns the record registered for expression
func (r *Registry) Lookup(expression string) (*BindingRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.byExpression[expression]
	return record, ok
}

// Get returns the record with the given id
func (r *Registry) Get(id int) (*BindingRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id < 1 || id > len(r.records) {
		return nil, false
	}
	return r.records[id-1], true
}

// Records returns every record in id order
func (r *Registry) Records() []*BindingRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	records := make([]*BindingRecord, len(r.records))
	copy(records, r.records)
	return records
}

// Len returns the number of registered records
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Reset drops every record and restarts ids at 1
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID = 1
	r.byExpression = map[string]*BindingRecord{}
	r.records = nil
}
