package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  Appetite
		style string
	}{
		{"two yes", yesNo("Yes", "Yes", "No", "No"), InAppetite, StyleGreen},
		{"all yes", yesNo("Yes", "Yes", "Yes", "Yes"), InAppetite, StyleGreen},
		{"pl only", yesNo("Yes", "No", "No", "No"), "PL Only", StyleGreen},
		{"cyber only", yesNo("No", "No", "No", "Yes"), "Cyber Only", StyleGreen},
		{"bop only mixed case", yesNo("no", "NO", " yes ", "No"), "BOP Only", StyleGreen},
		{"none", yesNo("No", "No", "No", "No"), OutOfAppetite, StyleRed},
		{"blank flags", Flags{}, OutOfAppetite, StyleRed},
		{"unknown text is not yes", yesNo("Maybe", "", "N/A", "Yes"), "Cyber Only", StyleGreen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.flags)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.style, got.Style())
		})
	}
}

func TestFlagsAllNo(t *testing.T) {
	assert.True(t, yesNo("No", "no", " NO", "No").AllNo())
	assert.False(t, yesNo("No", "No", "No", "").AllNo())
	assert.False(t, yesNo("No", "No", "Yes", "No").AllNo())
}

func TestFlagsMarshalJSON(t *testing.T) {
	data, err := yesNo("Yes", "No", "Yes", "No").MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"PL":"Yes","GL":"No","BOP":"Yes","Cyber":"No"}`, string(data))
}

func TestLOBString(t *testing.T) {
	assert.Equal(t, "PL", PL.String())
	assert.Equal(t, "Cyber", Cyber.String())
	assert.Equal(t, "LOB(?)", LOB(9).String())
}
