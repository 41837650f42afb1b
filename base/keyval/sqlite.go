package keyval

import (
	"database/sql"

	"golang.org/x/xerrors"
	_ "modernc.org/sqlite"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/log"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	tbl TEXT NOT NULL,
	k   TEXT NOT NULL,
	v   BLOB NOT NULL,
	PRIMARY KEY (tbl, k)
);
`

type sqlite struct {
	db *sql.DB
}

// NewSqlite opens (creating if needed) a sqlite-backed Store at path.
func NewSqlite(path string) (Store, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, xerrors.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, xerrors.Errorf("ensure sqlite schema: %w", err)
	}
	return &sqlite{db: db}, nil
}

func (s *sqlite) Get(c ctx.Ctx, table, key string) ([]byte, error) {
	var val []byte
	err := s.db.QueryRowContext(c, `SELECT v FROM kv WHERE tbl = ? AND k = ?`, table, key).Scan(&val)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		c.WithFields(log.Fields{"err": err, "table": table, "key": key}).Error("sqlite get failed")
		return nil, err
	}
	return val, nil
}

func (s *sqlite) Put(c ctx.Ctx, table, key string, value []byte) error {
	_, err := s.db.ExecContext(c,
		`INSERT INTO kv (tbl, k, v) VALUES (?, ?, ?) ON CONFLICT (tbl, k) DO UPDATE SET v = excluded.v`,
		table, key, value)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "table": table, "key": key}).Error("sqlite put failed")
	}
	return err
}

func (s *sqlite) Delete(c ctx.Ctx, table, key string) error {
	_, err := s.db.ExecContext(c, `DELETE FROM kv WHERE tbl = ? AND k = ?`, table, key)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "table": table, "key": key}).Error("sqlite delete failed")
	}
	return err
}

func (s *sqlite) RangeScan(c ctx.Ctx, table string, opts ...RangeOptionsFunc) ([]Entry, error) {
	options := GetRangeOptions(opts...)

	query := `SELECT k, v FROM kv WHERE tbl = ?`
	args := []interface{}{table}
	if options.Start != nil {
		query += ` AND k >= ?`
		args = append(args, *options.Start)
	}
	if options.End != nil {
		query += ` AND k < ?`
		args = append(args, *options.End)
	}
	if options.Reverse {
		query += ` ORDER BY k DESC`
	} else {
		query += ` ORDER BY k ASC`
	}
	if options.Limit != nil {
		query += ` LIMIT ?`
		args = append(args, *options.Limit)
	}

	rows, err := s.db.QueryContext(c, query, args...)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "table": table}).Error("sqlite range scan failed")
		return nil, err
	}
	defer rows.Close()

	res := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func (s *sqlite) Close() error {
	return s.db.Close()
}
