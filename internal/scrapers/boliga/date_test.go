package boliga

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	want := time.Date(2021, time.May, 7, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{
		"07-05-2021",
		"7-5-2021",
		"07.05.2021",
		"7/5/2021",
		"2021-05-07",
		"7. maj 2021",
		"7. Maj. 2021",
		" 7  maj  2021 ",
	} {
		got, err := NormalizeDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	got, err := NormalizeDate("3. februar 2020")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, time.February, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestNormalizeDate_Unrecognized(t *testing.T) {
	for _, raw := range []string{"", "i går", "31. feb. 2020", "7. mai 2021", "05/2021", "32-01-2021"} {
		_, err := NormalizeDate(raw)
		assert.ErrorIs(t, err, ErrUnrecognizedDate, raw)
	}
}
