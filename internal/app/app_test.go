package app

import (
	"testing"

	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yashubustudio/atlas/atlas"
)

func TestLogViewKeepsLastLines(t *testing.T) {
	v := newLogView(2)

	n, err := v.Write([]byte("one\r\ntwo\n\nthree\n"))

	require.NoError(t, err)
	assert.Equal(t, len("one\r\ntwo\n\nthree\n"), n)
	assert.Equal(t, "two\nthree", v.Text())
	got, err := v.bind.Get()
	require.NoError(t, err)
	assert.Equal(t, "two\nthree", got)
}

func TestLogViewCore(t *testing.T) {
	v := newLogView(10)
	logger := zap.New(v.core())

	logger.Debug("hidden")
	logger.Info("reference loaded", zap.Int("candidates", 3))

	assert.Contains(t, v.Text(), "reference loaded")
	assert.Contains(t, v.Text(), `"candidates": 3`)
	assert.NotContains(t, v.Text(), "hidden")
}

func TestBuildColumnChoices(t *testing.T) {
	tbl := atlas.Table{
		Header: []string{"id", "name", "description"},
		Rows: [][]string{
			{"1", "", "A very long bakery description here"},
			{"2", "Acme", ""},
		},
	}

	choices := buildColumnChoices(tbl)

	require.Len(t, choices, 2)
	assert.Equal(t, "name", choices[0].Name)
	assert.Equal(t, "name (e.g. Acme)", choices[0].Label)
	assert.Equal(t, "description (e.g. A very long bakery d…)", choices[1].Label)
	assert.Equal(t, 1, defaultChoice(tbl, choices, ""))
	assert.Equal(t, 0, defaultChoice(tbl, choices, "Name"))
	assert.Equal(t, 1, defaultChoice(tbl, choices, "id"))
	assert.Equal(t, []string{"name (e.g. Acme)", "description (e.g. A very long bakery d…)"}, choiceLabels(choices))
}

func TestMakeColumns(t *testing.T) {
	cols := makeColumns()
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.Title
	}
	assert.Equal(t, append(append([]string{}, atlas.BatchHeader...), "Appetite", "Score"), titles)

	masked := atlas.BatchResultRow{InputDescription: "coal", Appetite: atlas.OutOfAppetite, Score: 0.9, Masked: true}
	assert.Equal(t, "coal", cols[0].Render(masked))
	assert.Equal(t, "Out of Appetite", cols[7].Render(masked))
	assert.Equal(t, "", cols[8].Render(masked))

	row := atlas.BatchResultRow{Flags: atlas.Flags{"Yes", "No", "No", "Yes"}, Score: 0.5}
	assert.Equal(t, "Yes", cols[3].Render(row))
	assert.Equal(t, "Yes", cols[6].Render(row))
	assert.Equal(t, "0.500", cols[8].Render(row))
}

func TestFormatAlternatives(t *testing.T) {
	res := atlas.MatchResult{Alternatives: []atlas.Suggestion{
		{Label: "Bakery", Code: "311811"},
		{Label: "Cafe", Code: "722515", Score: atlas.Breakdown{Total: 0.42}, AlsoCodes: []string{"722513"}},
	}}
	assert.Equal(t, "2. Cafe [722515 / 722513]  0.420", formatAlternatives(res))
	assert.Empty(t, formatAlternatives(atlas.MatchResult{}))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "311811 (Manufacturing)", formatIndustryCode("311811"))
	assert.Equal(t, "X1", formatIndustryCode("X1"))
	assert.Equal(t, "0.550  keyword 1.000 / semantic 1.000 / naics 0.000",
		formatBreakdown(atlas.Breakdown{Total: 0.55, Keyword: 1, Semantic: 1}))
	assert.Contains(t, formatBreakdown(atlas.Breakdown{PartnerBoost: 0.15}), "partner +0.15")
	assert.Equal(t, widget.DangerImportance, appetiteImportance(atlas.OutOfAppetite))
	assert.Equal(t, widget.SuccessImportance, appetiteImportance(atlas.OnlyAppetite(atlas.GL)))
	assert.Equal(t, "abc…", truncateText("abcdef", 3))
}
