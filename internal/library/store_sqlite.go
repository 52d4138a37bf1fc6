package library

import (
	"database/sql"

	"github.com/llehouerou/tunes/internal/db"
	"github.com/llehouerou/tunes/internal/errmsg"
)

// SQLiteStore keeps the index in a SQLite database. The whole index is
// replaced on every save, in one transaction, so readers never see a
// half-written library.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLiteStore opens or creates the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	conn, err := db.Open(path)
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpLibraryLoad, path, err)
	}
	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, errmsg.Wrap(errmsg.OpLibraryLoad, path, err)
	}
	return &SQLiteStore{db: conn, path: path}, nil
}

func initSchema(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS tracks (
			position      INTEGER NOT NULL,
			id            TEXT NOT NULL,
			path          TEXT PRIMARY KEY,
			filename      TEXT NOT NULL,
			title         TEXT,
			artist        TEXT,
			album         TEXT,
			year          INTEGER,
			track_number  INTEGER,
			genre         TEXT,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			mtime         INTEGER
		);
		CREATE INDEX IF NOT EXISTS idx_tracks_position ON tracks(position);
	`)
	return err
}

// Load returns the tracks in saved order.
func (s *SQLiteStore) Load() (*Index, error) {
	rows, err := s.db.Query(`
		SELECT id, path, filename, title, artist, album, year, track_number, genre, duration_secs, mtime
		FROM tracks ORDER BY position
	`)
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpLibraryLoad, s.path, err)
	}
	defer rows.Close()

	idx := &Index{Tracks: []Track{}}
	for rows.Next() {
		var (
			t                        Track
			title, artist, album     sql.NullString
			genre                    sql.NullString
			year, trackNumber, mtime sql.NullInt64
			duration                 int64
		)
		if err := rows.Scan(&t.ID, &t.Path, &t.Filename, &title, &artist, &album,
			&year, &trackNumber, &genre, &duration, &mtime); err != nil {
			return nil, errmsg.Wrap(errmsg.OpLibraryLoad, s.path, err)
		}
		t.Title = db.NullStringValue(title)
		t.Artist = db.NullStringValue(artist)
		t.Album = db.NullStringValue(album)
		t.Genre = db.NullStringValue(genre)
		t.Year = int(db.NullInt64Value(year))
		t.TrackNumber = int(db.NullInt64Value(trackNumber))
		t.Mtime = db.NullInt64Value(mtime)
		t.DurationSecs = uint64(max(duration, 0))
		idx.Tracks = append(idx.Tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errmsg.Wrap(errmsg.OpLibraryLoad, s.path, err)
	}
	return idx, nil
}

// Save replaces the stored index.
func (s *SQLiteStore) Save(idx *Index) error {
	err := db.WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM tracks`); err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO tracks (position, id, path, filename, title, artist, album, year, track_number, genre, duration_secs, mtime)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, t := range idx.Clone().Tracks {
			if _, err := stmt.Exec(i, t.ID, t.Path, t.Filename,
				db.NullString(t.Title), db.NullString(t.Artist), db.NullString(t.Album),
				db.NullInt64(int64(t.Year)), db.NullInt64(int64(t.TrackNumber)),
				db.NullString(t.Genre), int64(t.DurationSecs), db.NullInt64(t.Mtime)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errmsg.Wrap(errmsg.OpLibrarySave, s.path, err)
	}
	return nil
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
