package depgraph

// Dependency is one import edge found in a file.
type Dependency struct {
	From string `json:"from"`
	// To is the resolved file path, or the raw specifier when Resolved is false.
	To        string `json:"to"`
	Specifier string `json:"specifier"`
	Statement string `json:"statement"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Resolved  bool   `json:"resolved"`
}

// Severity grades a DependencyError.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// DependencyError is a problem reported against a file. It is data, not a Go error.
type DependencyError struct {
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Column     int      `json:"column"`
	Message    string   `json:"message"`
	Severity   Severity `json:"severity"`
	ImportPath string   `json:"importPath"`
	// Suggestion is nil when no corrected specifier was found.
	Suggestion *string `json:"suggestion,omitempty"`
}
