package index

// ADRIndex defines the interface for ADR catalogue operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type ADRIndex interface {
	Upsert(row ADRRow, body string) error
	Delete(filename string) error
	Get(filename string) (*ADRRow, error)
	List() ([]ADRRow, error)
	Search(query string, limit int) ([]ADRRow, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies ADRIndex at compile time.
var _ ADRIndex = (*DB)(nil)
