// Package storage persists ping observations to SQLite.
package storage

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite" // sqlite driver
)

// Observation is one recorded ping result for one server.
type Observation struct {
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Online    bool      `json:"online"`
	Version   string    `json:"version,omitempty"`
	Protocol  int       `json:"protocol,omitempty"`
	Players   int       `json:"players"`
	MaxPlayer int       `json:"maxPlayers"`
	MOTD      string    `json:"motd,omitempty"`
	Latency   int64     `json:"latencyMs"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Repository manages the SQLite database connection.
type Repository struct {
	db *sql.DB
}

// New opens the database, sets pool parameters and runs migrations.
func New(dbPath string) (*Repository, error) {
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(1 * time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS servers (
		name        TEXT PRIMARY KEY,
		address     TEXT NOT NULL,
		online      INTEGER NOT NULL,
		version     TEXT NOT NULL DEFAULT '',
		protocol    INTEGER NOT NULL DEFAULT 0,
		players     INTEGER NOT NULL DEFAULT 0,
		max_players INTEGER NOT NULL DEFAULT 0,
		motd        TEXT NOT NULL DEFAULT '',
		latency_ms  INTEGER NOT NULL DEFAULT 0,
		error       TEXT NOT NULL DEFAULT '',
		checked_at  TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS history (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		online      INTEGER NOT NULL,
		players     INTEGER NOT NULL DEFAULT 0,
		latency_ms  INTEGER NOT NULL DEFAULT 0,
		checked_at  TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_name_checked_at
		ON history (name, checked_at DESC);
	`)
	return err
}

// Close closes the underlying database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Record upserts the latest state of a server and appends it to the
// history table.
func (r *Repository) Record(obs Observation) error {
	_, err := r.db.Exec(`
	INSERT INTO servers (
		name, address, online, version, protocol, players, max_players,
		motd, latency_ms, error, checked_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
		address     = excluded.address,
		online      = excluded.online,
		version     = excluded.version,
		protocol    = excluded.protocol,
		players     = excluded.players,
		max_players = excluded.max_players,
		motd        = excluded.motd,
		latency_ms  = excluded.latency_ms,
		error       = excluded.error,
		checked_at  = excluded.checked_at;
	`,
		obs.Name, obs.Address, obs.Online, obs.Version, obs.Protocol,
		obs.Players, obs.MaxPlayer, obs.MOTD, obs.Latency, obs.Error,
		obs.CheckedAt,
	)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
	INSERT INTO history (name, online, players, latency_ms, checked_at)
	VALUES (?, ?, ?, ?, ?);
	`,
		obs.Name, obs.Online, obs.Players, obs.Latency, obs.CheckedAt,
	)
	return err
}

// Servers returns the latest observation of every server, most recently
// checked first.
func (r *Repository) Servers() ([]Observation, error) {
	rows, err := r.db.Query(`
	SELECT name, address, online, version, protocol, players, max_players,
	       motd, latency_ms, error, checked_at
	FROM servers
	ORDER BY checked_at DESC;
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var obss []Observation
	for rows.Next() {
		var obs Observation
		if err := rows.Scan(
			&obs.Name, &obs.Address, &obs.Online, &obs.Version,
			&obs.Protocol, &obs.Players, &obs.MaxPlayer, &obs.MOTD,
			&obs.Latency, &obs.Error, &obs.CheckedAt,
		); err != nil {
			return nil, err
		}
		obss = append(obss, obs)
	}
	return obss, rows.Err()
}

// History returns up to limit past observations of one server, newest
// first.
func (r *Repository) History(name string, limit int) ([]Observation, error) {
	rows, err := r.db.Query(`
	SELECT name, online, players, latency_ms, checked_at
	FROM history
	WHERE name = ?
	ORDER BY checked_at DESC
	LIMIT ?;
	`, name, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var obss []Observation
	for rows.Next() {
		var obs Observation
		if err := rows.Scan(
			&obs.Name, &obs.Online, &obs.Players, &obs.Latency, &obs.CheckedAt,
		); err != nil {
			return nil, err
		}
		obss = append(obss, obs)
	}
	return obss, rows.Err()
}

// Prune drops history entries older than the cutoff.
func (r *Repository) Prune(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM history WHERE checked_at < ?;`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
