package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New opens the SQLite database at path. The pool is limited to one
// connection so writers never contend for the file lock.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		username TEXT NOT NULL PRIMARY KEY,
		password_hash TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		-- Store list fields as JSON text
		interests_json TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS quiz_history (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		topic TEXT NOT NULL,
		score INTEGER NOT NULL,
		total_questions INTEGER NOT NULL,
		questions_json TEXT,
		user_answers_json TEXT,
		timestamp TEXT NOT NULL,
		UNIQUE (user_id, seq)
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
