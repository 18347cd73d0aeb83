// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"math"
	"net/http"

	ethmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"

	"github.com/obaranni/staking/api/utils"
	"github.com/obaranni/staking/core"
	"github.com/obaranni/staking/eventdb"
)

// Event for marshal a stored event.
type Event struct {
	Seq     uint64                   `json:"seq"`
	Name    string                   `json:"name"`
	Account core.Address             `json:"account"`
	Amount  *ethmath.HexOrDecimal256 `json:"amount"`
	Time    uint64                   `json:"time"`
}

func convertEvent(e *eventdb.Event) *Event {
	return &Event{
		Seq:     e.Seq,
		Name:    e.Name,
		Account: e.Account,
		Amount:  (*ethmath.HexOrDecimal256)(e.Amount),
		Time:    e.Time,
	}
}

type Events struct {
	db    *eventdb.EventDB
	limit uint64
}

// New creates the events resource, limit caps the page size.
func New(db *eventdb.EventDB, limit uint64) *Events {
	return &Events{db, limit}
}

func (e *Events) parseFilter(req *http.Request) (*eventdb.Filter, error) {
	query := req.URL.Query()
	filter := &eventdb.Filter{
		Name:  query.Get("name"),
		Order: eventdb.OrderType(query.Get("order")),
	}
	switch filter.Order {
	case "", eventdb.ASC, eventdb.DESC:
	default:
		return nil, utils.BadRequest(fmt.Errorf("order: unsupported %q", filter.Order))
	}
	if s := query.Get("account"); s != "" {
		addr, err := utils.ParseAddress("account", s)
		if err != nil {
			return nil, err
		}
		filter.Account = &addr
	}

	offset, err := utils.ParseUint("offset", query.Get("offset"), 0)
	if err != nil {
		return nil, err
	}
	if offset > math.MaxInt64 {
		return nil, utils.BadRequest(fmt.Errorf("offset exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
	}
	limit, err := utils.ParseUint("limit", query.Get("limit"), e.limit)
	if err != nil {
		return nil, err
	}
	if limit > e.limit {
		return nil, utils.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", e.limit))
	}
	filter.Options = &eventdb.Options{Offset: offset, Limit: limit}
	return filter, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req)
	if err != nil {
		return err
	}
	events, err := e.db.Filter(filter)
	if err != nil {
		return err
	}
	out := make([]*Event, 0, len(events))
	for _, ev := range events {
		out = append(out, convertEvent(ev))
	}
	return utils.WriteJSON(w, out)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /events").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
