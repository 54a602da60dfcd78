package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_IgnoresZoneOffset(t *testing.T) {
	lima := time.FixedZone("PET", -5*3600)
	// 21:30 in Lima is already the next day in UTC.
	late := time.Date(2025, 6, 1, 21, 30, 0, 0, lima)
	assert.Equal(t, "2025-06-01", DateOf(late).String())

	tokyo := time.FixedZone("JST", 9*3600)
	early := time.Date(2025, 6, 2, 1, 0, 0, 0, tokyo)
	assert.Equal(t, "2025-06-02", DateOf(early).String())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("02/06/2025")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDate_Arithmetic(t *testing.T) {
	d := MustParseDate("2024-12-30")
	assert.Equal(t, "2025-01-02", d.AddDays(3).String())
	assert.Equal(t, "2024-02-29", MustParseDate("2024-03-01").AddDays(-1).String())
	assert.Equal(t, 3, d.DaysUntil(d.AddDays(3)))
	assert.Equal(t, -3, d.DaysUntil(d.AddDays(-3)))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.True(t, d.Equal(NewDate(2024, time.December, 30)))
}

func TestDate_IsWeekend(t *testing.T) {
	assert.True(t, MustParseDate("2025-05-31").IsWeekend())  // Saturday
	assert.True(t, MustParseDate("2025-06-01").IsWeekend())  // Sunday
	assert.False(t, MustParseDate("2025-06-02").IsWeekend()) // Monday
}

func TestDate_DaysUntil_AcrossDST(t *testing.T) {
	// Stored at midnight UTC, so DST transitions in any local zone can't
	// shorten a day.
	a := MustParseDate("2025-03-08")
	b := MustParseDate("2025-03-10")
	assert.Equal(t, 2, a.DaysUntil(b))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Start Date  `json:"start"`
		End   *Date `json:"end"`
	}
	in := payload{Start: MustParseDate("2025-06-02")}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2025-06-02","end":null}`, string(data))

	var out payload
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2025-07-28","end":"2025-07-29"}`), &out))
	assert.Equal(t, "2025-07-28", out.Start.String())
	require.NotNil(t, out.End)
	assert.Equal(t, "2025-07-29", out.End.String())

	err = json.Unmarshal([]byte(`{"start":"28-07-2025"}`), &out)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2025-06-02"))
	assert.Equal(t, "2025-06-02", d.String())

	require.NoError(t, d.Scan([]byte("2025-06-03T00:00:00Z")))
	assert.Equal(t, "2025-06-03", d.String())

	lima := time.FixedZone("PET", -5*3600)
	require.NoError(t, d.Scan(time.Date(2025, 6, 4, 23, 0, 0, 0, lima)))
	assert.Equal(t, "2025-06-04", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDate_Value(t *testing.T) {
	v, err := MustParseDate("2025-06-02").Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestMinMaxDate(t *testing.T) {
	a := MustParseDate("2025-01-01")
	b := MustParseDate("2025-02-01")
	assert.Equal(t, a, MinDate(a, b))
	assert.Equal(t, b, MaxDate(a, b))
}
