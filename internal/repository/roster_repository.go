package repository

import (
	"sync"

	"github.com/medtrain/progress-tracker-api/internal/models"
	"github.com/medtrain/progress-tracker-api/internal/roster"
)

// RosterRepository holds the session roster. The tracker has no persistence:
// records live in process memory from upload until reset or shutdown. A
// mutex guards against concurrent HTTP handlers; within one request the
// operator flow is sequential.
type RosterRepository struct {
	mu         sync.RWMutex
	students   []models.Student
	thresholds models.Thresholds
	defaults   models.Thresholds
	sourceFile string
}

// NewRosterRepository builds an empty roster with the configured default
// thresholds.
func NewRosterRepository(defaults models.Thresholds) *RosterRepository {
	return &RosterRepository{
		thresholds: defaults,
		defaults:   defaults,
	}
}

// Replace swaps in a freshly ingested roster, remembering the upload name.
func (r *RosterRepository) Replace(students []models.Student, sourceFile string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.students = append([]models.Student(nil), students...)
	r.sourceFile = sourceFile
}

// List returns a copy of the roster in ingestion order.
func (r *RosterRepository) List() []models.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Student(nil), r.students...)
}

// Get looks a record up by ID.
func (r *RosterRepository) Get(id string) (models.Student, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.students {
		if s.ID == id {
			return s, true
		}
	}
	return models.Student{}, false
}

// Filter returns the records whose IDs are in ids, preserving roster order.
func (r *RosterRepository) Filter(ids []string) []models.Student {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]models.Student, 0, len(wanted))
	for _, s := range r.students {
		if _, ok := wanted[s.ID]; ok {
			result = append(result, s)
		}
	}
	return result
}

// Append adds an operator-created record to the end of the roster.
func (r *RosterRepository) Append(s models.Student) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.students = append(r.students, s)
}

// Update replaces the record with a matching ID wholesale. Records are never
// partially mutated.
func (r *RosterRepository) Update(s models.Student) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.students {
		if r.students[i].ID == s.ID {
			r.students[i] = s
			return true
		}
	}
	return false
}

// Thresholds returns the active classifier thresholds.
func (r *RosterRepository) Thresholds() models.Thresholds {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.thresholds
}

// SetThresholds stores new thresholds and re-derives every record's status
// under the same lock, so readers never observe a half-reclassified roster.
func (r *RosterRepository) SetThresholds(t models.Thresholds) []models.Student {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.thresholds = t
	r.students = roster.Reclassify(r.students, t)
	return append([]models.Student(nil), r.students...)
}

// SourceFile reports the name of the last uploaded workbook.
func (r *RosterRepository) SourceFile() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sourceFile
}

// Reset discards the session: records, upload name and threshold overrides.
func (r *RosterRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.students = nil
	r.sourceFile = ""
	r.thresholds = r.defaults
}
