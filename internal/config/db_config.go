package config

type DBConfig interface {
	GetDatabaseDSN() string
}

type DB struct{}

var _ DBConfig = DB{}

// GetDatabaseDSN returns the Postgres connection string. An empty value
// means "run on the in-memory repositories" (dev mode).
func (DB) GetDatabaseDSN() string {
	return GetEnv("DATABASE_DSN", "")
}
