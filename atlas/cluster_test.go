package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClusterSuggestions(t *testing.T) {
	in := []Suggestion{
		{Label: "Bakery", Code: "311811", Index: 0},
		{Label: "bakery ", Code: "445291", Index: 3},
		{Label: "Florist", Code: "453110", Index: 1},
		{Label: "Bakery", Code: "445291", Index: 4},
		{Label: "Bakery", Code: "311811", Index: 5},
		{Label: "Coal Mining", Code: "212114", Index: 2},
	}

	got := clusterSuggestions(in, 2)

	assert.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, []string{"445291"}, got[0].AlsoCodes)
	assert.Equal(t, "Florist", got[1].Label)
	assert.Nil(t, got[1].AlsoCodes)
}

func TestClusterSuggestionsNoLimit(t *testing.T) {
	in := []Suggestion{{Label: "A"}, {Label: "B"}, {Label: "a", Code: "1"}}
	got := clusterSuggestions(in, 0)
	assert.Len(t, got, 2)
	assert.Equal(t, []string{"1"}, got[0].AlsoCodes)
}
