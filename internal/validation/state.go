package validation

// Status is the lifecycle state of a validated field
type Status string

const (
	// StatusUnchecked means no verdict has been reached yet
	StatusUnchecked Status = "unchecked"
	// StatusChecking means an asynchronous check is in flight
	StatusChecking Status = "checking"
	// StatusValid means the field passed its checks
	StatusValid Status = "valid"
	// StatusInvalid means the field failed a check
	StatusInvalid Status = "invalid"
	// StatusError means a check could not complete (transport failure)
	StatusError Status = "error"
)

// FieldState is the per-field validation record. It resets to unchecked
// whenever the underlying field value changes.
type FieldState struct {
	Status  Status
	Message string
}

// IsValid reports whether the field has a positive verdict
func (s FieldState) IsValid() bool {
	return s.Status == StatusValid
}

func valid() FieldState {
	return FieldState{Status: StatusValid}
}

func invalid(message string) FieldState {
	return FieldState{Status: StatusInvalid, Message: message}
}

// FieldSet tracks validation state for a group of named fields
type FieldSet struct {
	states map[string]FieldState
}

// NewFieldSet creates an empty FieldSet
func NewFieldSet() *FieldSet {
	return &FieldSet{states: make(map[string]FieldState)}
}

// Get returns the state of a field, unchecked when never set
func (f *FieldSet) Get(field string) FieldState {
	return f.states[field]
}

// Set records the state of a field, overwriting any prior verdict
func (f *FieldSet) Set(field string, state FieldState) {
	f.states[field] = state
}

// Reset returns a field to unchecked, used when its value changes
func (f *FieldSet) Reset(field string) {
	delete(f.states, field)
}

// AllValid reports whether every named field has a positive verdict
func (f *FieldSet) AllValid(fields ...string) bool {
	for _, field := range fields {
		if !f.states[field].IsValid() {
			return false
		}
	}
	return true
}

// FirstNotValid returns the first of the named fields lacking a positive
// verdict, or "" when all are valid
func (f *FieldSet) FirstNotValid(fields ...string) string {
	for _, field := range fields {
		if !f.states[field].IsValid() {
			return field
		}
	}
	return ""
}
