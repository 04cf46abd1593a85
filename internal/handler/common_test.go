package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, path string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestClaimUintAcceptsJWTNumericTypes(t *testing.T) {
	for _, v := range []any{uint64(42), int(42), int64(42), float64(42), "42"} {
		got, err := claimUint(v, "user_id")
		require.NoError(t, err)
		assert.Equal(t, uint64(42), got)
	}
}

func TestClaimUintRejectsGarbage(t *testing.T) {
	_, err := claimUint(nil, "user_id")
	assert.Error(t, err)

	_, err = claimUint("not-a-number", "user_id")
	assert.Error(t, err)
}

func TestGetRestaurantIDReadsRidClaim(t *testing.T) {
	c := testContext(t, "/v1/tables")
	c.Set("restaurant_id", float64(7)) // JWT claims decode numbers as float64

	rid, err := getRestaurantID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), rid)
}

func TestPathID(t *testing.T) {
	c := testContext(t, "/v1/pos/tables/5/tab")
	c.SetParamNames("id")
	c.SetParamValues("5")

	id, ok := pathID(c, "id")
	require.True(t, ok)
	assert.Equal(t, uint64(5), id)

	c.SetParamValues("zero")
	_, ok = pathID(c, "id")
	assert.False(t, ok)

	c.SetParamValues("0")
	_, ok = pathID(c, "id")
	assert.False(t, ok)
}
