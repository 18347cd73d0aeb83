// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"database/sql"
	"math"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/obaranni/staking/core"
)

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	account BLOB NOT NULL,
	amount TEXT NOT NULL,
	time INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS event_name ON event(name);
CREATE INDEX IF NOT EXISTS event_account ON event(account);`

type OrderType string

const (
	ASC  OrderType = "asc"
	DESC OrderType = "desc"
)

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Event is a persisted contract event.
type Event struct {
	Seq     uint64       `json:"seq"`
	Name    string       `json:"name"`
	Account core.Address `json:"account"`
	Amount  *big.Int     `json:"amount"`
	Time    uint64       `json:"time"`
}

// Filter selects events. Empty fields match everything.
type Filter struct {
	Name    string        `json:"name"`
	Account *core.Address `json:"account"`
	Order   OrderType     `json:"order"` // default asc
	Options *Options      `json:"options"`
}

// EventDB manages all events
type EventDB struct {
	path          string
	db            *sql.DB
	sqliteVersion string
}

// New open a event db
func New(path string) (*EventDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// a memory db lives as long as its single connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}
	s, _, _ := sqlite3.Version()
	return &EventDB{
		path:          path,
		db:            db,
		sqliteVersion: s,
	}, nil
}

// NewMem create a memory sqlite db
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Insert stores events in one transaction and assigns their sequence numbers.
func (db *EventDB) Insert(events ...*Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	for _, event := range events {
		amount := event.Amount
		if amount == nil {
			amount = new(big.Int)
		}
		res, err := tx.Exec("INSERT INTO event(name, account, amount, time) VALUES (?, ?, ?, ?);",
			event.Name,
			event.Account.Bytes(),
			amount.String(),
			event.Time)
		if err != nil {
			tx.Rollback()
			return err
		}
		seq, err := res.LastInsertId()
		if err != nil {
			tx.Rollback()
			return err
		}
		event.Seq = uint64(seq)
	}
	return tx.Commit()
}

// Filter return events with options
func (db *EventDB) Filter(filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.query("SELECT seq, name, account, amount, time FROM event ORDER BY seq ASC")
	}
	var args []any
	stmt := "SELECT seq, name, account, amount, time FROM event WHERE 1"
	if filter.Name != "" {
		args = append(args, filter.Name)
		stmt += " AND name = ? "
	}
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes())
		stmt += " AND account = ? "
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		if filter.Options.Offset > math.MaxInt64 || filter.Options.Limit > math.MaxInt64 {
			return nil, errors.Errorf("options out of range: offset %d, limit %d", filter.Options.Offset, filter.Options.Limit)
		}
		stmt += " LIMIT ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(stmt, args...)
}

func (db *EventDB) query(stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			seq     uint64
			name    string
			account []byte
			amount  string
			time    uint64
		)
		if err := rows.Scan(&seq, &name, &account, &amount, &time); err != nil {
			return nil, err
		}
		value, ok := new(big.Int).SetString(amount, 10)
		if !ok {
			return nil, errors.Errorf("event %d: malformed amount %q", seq, amount)
		}
		events = append(events, &Event{
			Seq:     seq,
			Name:    name,
			Account: core.BytesToAddress(account),
			Amount:  value,
			Time:    time,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Path return db's path
func (db *EventDB) Path() string {
	return db.path
}

// Close close sqlite
func (db *EventDB) Close() error {
	return db.db.Close()
}
