package app

import (
	"fmt"

	"yashubustudio/atlas/atlas"
)

type tableColumn struct {
	Title  string
	Width  float32
	Render func(atlas.BatchResultRow) string
}

func makeColumns() []tableColumn {
	cols := []tableColumn{
		{Title: "Input_Description", Width: 320, Render: func(r atlas.BatchResultRow) string { return r.InputDescription }},
		{Title: "Hiscox_COB", Width: 220, Render: func(r atlas.BatchResultRow) string { return r.COB }},
		{Title: "full_industry_code", Width: 140, Render: func(r atlas.BatchResultRow) string { return r.IndustryCode }},
	}
	for _, l := range atlas.LOBs {
		lob := l
		cols = append(cols, tableColumn{
			Title:  lob.String(),
			Width:  64,
			Render: func(r atlas.BatchResultRow) string { return r.Flags.Value(lob) },
		})
	}
	cols = append(cols,
		tableColumn{Title: "Appetite", Width: 140, Render: func(r atlas.BatchResultRow) string { return r.Appetite.String() }},
		tableColumn{Title: "Score", Width: 70, Render: func(r atlas.BatchResultRow) string {
			if r.Masked {
				return ""
			}
			return fmt.Sprintf("%.3f", r.Score)
		}},
	)
	return cols
}
