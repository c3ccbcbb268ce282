package ordering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriodYearMonth(t *testing.T) {
	f, err := ParsePeriod("", "", "2025", "3")
	require.NoError(t, err)
	require.NotNil(t, f.Start)
	require.NotNil(t, f.End)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local), *f.Start)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.Local), *f.End)
}

func TestParsePeriodYearOnly(t *testing.T) {
	f, err := ParsePeriod("", "", "2024", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local), *f.Start)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local), *f.End)
}

func TestParsePeriodMonthWithoutYear(t *testing.T) {
	f, err := ParsePeriod("", "", "", "6")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Year(), f.Start.Year())
	assert.Equal(t, time.June, f.Start.Month())
}

func TestParsePeriodExplicitRangeWins(t *testing.T) {
	f, err := ParsePeriod("2025-01-10", "2025-01-20", "2030", "7")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local), *f.Start)
	// fim day is included, so the exclusive bound is the next day
	assert.Equal(t, time.Date(2025, time.January, 21, 0, 0, 0, 0, time.Local), *f.End)
}

func TestParsePeriodInvalid(t *testing.T) {
	_, err := ParsePeriod("", "", "1999", "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = ParsePeriod("", "", "2025", "13")
	require.Error(t, err)

	_, err = ParsePeriod("2025-02-10", "2025-02-01", "", "")
	require.Error(t, err)

	// fim exactly one day before inicio is still out of order
	_, err = ParsePeriod("2025-01-10", "2025-01-09", "", "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = ParsePeriod("10/02/2025", "", "", "")
	require.Error(t, err)
}

func TestParsePeriodSingleDayRange(t *testing.T) {
	f, err := ParsePeriod("2025-01-10", "2025-01-10", "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local), *f.Start)
	assert.Equal(t, time.Date(2025, time.January, 11, 0, 0, 0, 0, time.Local), *f.End)
}

func TestParsePeriodNonNumericTreatedAsAbsent(t *testing.T) {
	f, err := ParsePeriod("", "", "abc", "xyz")
	require.NoError(t, err)
	assert.Nil(t, f.Start)
	assert.Nil(t, f.End)
}
