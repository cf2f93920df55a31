package ledgerio

import (
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/schema"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// observationsTable is the name of the archive table.
const observationsTable = "waste_observations"

// ArchiveStoreImpl handles durable observation storage using various database backends.
type ArchiveStoreImpl struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
}

var _ contract.ArchiveStore = &ArchiveStoreImpl{} // Compile-time check

// validTableName restricts table names to safe identifier characters.
var validTableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NewArchiveStore initializes and returns a new ArchiveStore based on the backend type.
func NewArchiveStore(tableName string, backend schema.DatabaseBackend, connStr string) (contract.ArchiveStore, error) {
	if !validTableName.MatchString(tableName) {
		return nil, fmt.Errorf("invalid table name %q", tableName)
	}

	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetArchiveDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite archive at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL archive: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL archive: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, fmt.Errorf("unsupported archive backend: %s. Must be sqlite, mysql or postgresql", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if _, err := db.Exec(getCreateTableQuery(tableName, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &ArchiveStoreImpl{db: db, tableName: tableName, backend: backend}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
func getCreateTableQuery(tableName string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				food_type VARCHAR(255) NOT NULL,
				weight_grams DOUBLE NOT NULL,
				captured_at VARCHAR(32) NOT NULL,
				event_unix BIGINT NOT NULL,
				confidence DOUBLE NOT NULL,
				meal_period VARCHAR(16) NOT NULL,
				image_filename VARCHAR(255) NOT NULL
			);
		`, tableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				food_type TEXT NOT NULL,
				weight_grams DOUBLE PRECISION NOT NULL,
				captured_at TEXT NOT NULL,
				event_unix BIGINT NOT NULL,
				confidence DOUBLE PRECISION NOT NULL,
				meal_period TEXT NOT NULL,
				image_filename TEXT NOT NULL
			);
		`, tableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				food_type TEXT NOT NULL,
				weight_grams REAL NOT NULL,
				captured_at TEXT NOT NULL,
				event_unix INTEGER NOT NULL,
				confidence REAL NOT NULL,
				meal_period TEXT NOT NULL,
				image_filename TEXT NOT NULL
			);
		`, tableName)
	}
}

// placeholders returns the parameter placeholder list for the backend.
func (as *ArchiveStoreImpl) placeholders(n int) []any {
	out := make([]any, n)
	for i := range n {
		if as.backend == schema.PostgreSQLBackend {
			out[i] = fmt.Sprintf("$%d", i+1)
		} else {
			out[i] = "?"
		}
	}
	return out
}

// Insert appends one observation row to the archive.
func (as *ArchiveStoreImpl) Insert(obs schema.Observation) error {
	var eventUnix int64
	if obs.TimeValid {
		eventUnix = obs.EventTime.Unix()
	}

	args := append([]any{as.tableName}, as.placeholders(7)...)
	query := fmt.Sprintf(`INSERT INTO %s (food_type, weight_grams, captured_at, event_unix, confidence, meal_period, image_filename)
		VALUES (%s, %s, %s, %s, %s, %s, %s)`, args...)
	_, err := as.db.Exec(query, obs.FoodType, obs.WeightGrams, obs.Timestamp, eventUnix, obs.Confidence, string(obs.MealPeriod), obs.ImageFilename)
	return err
}

// All returns every archived observation in insertion order.
func (as *ArchiveStoreImpl) All() ([]schema.Observation, error) {
	query := fmt.Sprintf(`SELECT food_type, weight_grams, captured_at, event_unix, confidence, meal_period, image_filename
		FROM %s ORDER BY id`, as.tableName)
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query archive: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []schema.Observation
	for rows.Next() {
		var obs schema.Observation
		var eventUnix int64
		var meal string
		if err := rows.Scan(&obs.FoodType, &obs.WeightGrams, &obs.Timestamp, &eventUnix, &obs.Confidence, &meal, &obs.ImageFilename); err != nil {
			return nil, fmt.Errorf("failed to scan archive row: %w", err)
		}
		obs.MealPeriod = schema.MealPeriod(meal)
		if eventUnix > 0 {
			obs.EventTime = time.Unix(eventUnix, 0)
			obs.TimeValid = true
		}
		entries = append(entries, obs)
	}
	return entries, rows.Err()
}

// Status returns row counts and the event-time span of the archive.
func (as *ArchiveStoreImpl) Status() (schema.ArchiveStatus, error) {
	status := schema.ArchiveStatus{
		Backend:  string(as.backend),
		Location: as.tableName,
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", as.tableName)
	if err := as.db.QueryRow(countQuery).Scan(&status.Observations); err != nil {
		return status, fmt.Errorf("failed to count archive rows: %w", err)
	}
	if status.Observations == 0 {
		return status, nil
	}

	spanQuery := fmt.Sprintf("SELECT MIN(event_unix), MAX(event_unix) FROM %s WHERE event_unix > 0", as.tableName)
	var oldest, newest sql.NullInt64
	if err := as.db.QueryRow(spanQuery).Scan(&oldest, &newest); err != nil {
		return status, fmt.Errorf("failed to read archive span: %w", err)
	}
	if oldest.Valid {
		status.OldestEvent = time.Unix(oldest.Int64, 0)
	}
	if newest.Valid {
		status.NewestEvent = time.Unix(newest.Int64, 0)
	}
	return status, nil
}

// Clear deletes all archived rows.
func (as *ArchiveStoreImpl) Clear() error {
	query := fmt.Sprintf("DELETE FROM %s", as.tableName)
	if _, err := as.db.Exec(query); err != nil {
		return fmt.Errorf("failed to clear archive: %w", err)
	}
	return nil
}

// Close closes the underlying DB connection.
func (as *ArchiveStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}
