package datastore

// Store is the destination for fetch outcome records. Two implementations
// exist: SQLiteStore writes a local Datasette-compatible database file,
// DatasetteClient posts to a remote Datasette instance.
type Store interface {
	// Connect establishes or validates the connection to the store
	Connect() error

	// CreateTable ensures the outcome table exists; remote stores may treat
	// this as a no-op
	CreateTable(schema string) error

	// BatchInsert inserts the outcome rows into the named table
	BatchInsert(database string, table string, records []map[string]any) error

	// Close releases the connection
	Close() error
}
