package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowLookupHeaderVariants(t *testing.T) {
	variants := []string{
		"CompletedChapters",
		"completedchapters",
		"Completed Chapters",
		"completed_chapters",
		"CompletedChapters ",
		" COMPLETED_CHAPTERS",
		"Completed\tChapters",
	}

	for _, header := range variants {
		header := header
		t.Run(header, func(t *testing.T) {
			row := NewRow()
			row.Set(header, "12")
			value, ok := row.Lookup("CompletedChapters")
			require.True(t, ok)
			assert.Equal(t, "12", value)
		})
	}
}

func TestRowLookupMiss(t *testing.T) {
	row := NewRow()
	row.Set("Name", "Asha")
	_, ok := row.Lookup("Email")
	assert.False(t, ok)
}

func TestRowLookupFirstColumnWins(t *testing.T) {
	row := NewRow()
	row.Set("Completed Chapters", "3")
	row.Set("completed_chapters", "9")
	value, ok := row.Lookup("CompletedChapters")
	require.True(t, ok)
	assert.Equal(t, "3", value)
}

func TestRowIntCoercion(t *testing.T) {
	cases := []struct {
		name string
		cell string
		want int
	}{
		{"plain", "7", 7},
		{"padded", " 7 ", 7},
		{"decimal truncates", "7.9", 7},
		{"negative", "-2", -2},
		{"non numeric", "seven", 0},
		{"blank", "   ", 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			row := NewRow()
			row.Set("Marks", tc.cell)
			assert.Equal(t, tc.want, row.Int("Marks"))
		})
	}
}

func TestRowIntMissingField(t *testing.T) {
	assert.Equal(t, 0, NewRow().Int("Marks"))
}

func TestRowStringFallback(t *testing.T) {
	row := NewRow()
	row.Set("OCS1", "  ")
	assert.Equal(t, "N/A", row.String("OCS1", "N/A"))
	assert.Equal(t, "N/A", row.String("OCS2", "N/A"))

	row.Set("OCS2", " Attended ")
	assert.Equal(t, "Attended", row.String("OCS2", "N/A"))
}
