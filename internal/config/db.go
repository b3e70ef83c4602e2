package config

// DB holds the database configuration settings, including the bounds of the
// connection pool.
type DB struct {
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	// Pool bounds. Zero values fall back to the defaults below.
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // seconds
	ConnMaxIdleTime int // seconds
}

const (
	defaultDBPort          = 5432
	defaultMaxOpenConns    = 20
	defaultMaxIdleConns    = 10
	defaultConnMaxLifetime = 3600 // seconds
	defaultConnMaxIdleTime = 30   // seconds
)

func (d *DB) applyDefaults() {
	if d.Port == 0 {
		d.Port = defaultDBPort
	}

	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	if d.MaxOpenConns == 0 {
		d.MaxOpenConns = defaultMaxOpenConns
	}

	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultMaxIdleConns
	}

	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = defaultConnMaxLifetime
	}

	if d.ConnMaxIdleTime == 0 {
		d.ConnMaxIdleTime = defaultConnMaxIdleTime
	}
}
