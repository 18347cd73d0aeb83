// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obaranni/staking/builtin/reverts"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"bad request", BadRequest(errors.New("address: bad")), http.StatusBadRequest, "address: bad\n"},
		{"forbidden", Forbidden(errors.New("limit")), http.StatusForbidden, "limit\n"},
		{"no cause", HTTPError(nil, http.StatusTeapot), http.StatusTeapot, ""},
		{"revert", reverts.ErrNoStakers, http.StatusBadRequest, "no stakers\n"},
		{"wrapped revert", errors.WithMessage(reverts.ErrInvalidAmount, "stake"), http.StatusBadRequest, "stake: amount should be greater than 0\n"},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError, "disk on fire\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return tt.err
			})(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestParse(t *testing.T) {
	addr, err := ParseAddress("address", "0x000000000000000000000000000000000000000a")
	require.NoError(t, err)
	assert.Equal(t, byte(0xa), addr[19])

	_, err = ParseAddress("address", "0x12")
	var he *httpError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.status)

	v, err := ParseUint("limit", "", 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v)

	v, err = ParseUint("limit", "42", 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)

	_, err = ParseUint("limit", "-1", 7)
	assert.Error(t, err)
}
