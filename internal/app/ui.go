package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"yashubustudio/atlas/atlas"
)

type uiState struct {
	ctx        context.Context
	service    *atlas.Service
	logger     *zap.Logger
	configPath string

	cfgMu sync.Mutex
	cfg   atlas.Config

	w          fyne.Window
	statusBind binding.String
	refLabel   *widget.Label
	refBtn     *widget.Button

	// search tab
	query       *widget.Entry
	searchNAICS *widget.Check
	searchBtn   *widget.Button
	cobLabel    *widget.Label
	codeLabel   *widget.Label
	appetite    *widget.Label
	lobLabels   [len(atlas.LOBs)]*widget.Label
	scoreLabel  *widget.Label
	altLabel    *widget.Label

	// batch tab
	batchNAICS   *widget.Check
	fileLabel    *widget.Label
	columnSelect *widget.Select
	loadBtn      *widget.Button
	runBtn       *widget.Button
	exportBtn    *widget.Button
	progress     *widget.ProgressBar
	resTbl       *widget.Table
	columns      []tableColumn

	table   atlas.Table
	choices []columnChoice
	rows    []atlas.BatchResultRow
}

func buildUI(ctx context.Context, a fyne.App, svc *atlas.Service, view *logView, configPath string, logger *zap.Logger) *uiState {
	u := &uiState{
		ctx:        ctx,
		service:    svc,
		logger:     logger,
		configPath: configPath,
		cfg:        svc.Config(),
	}
	u.w = a.NewWindow("Atlas - Class of Business Matcher")

	u.statusBind = binding.NewString()
	_ = u.statusBind.Set("Ready")
	view.start()

	u.refLabel = widget.NewLabel("Reference: not loaded")
	u.refBtn = widget.NewButtonWithIcon("Load reference", theme.FolderOpenIcon(), func() { u.onChooseReference() })

	logEntry := widget.NewEntryWithData(view.bind)
	logEntry.MultiLine = true
	logEntry.Wrapping = fyne.TextWrapWord
	logEntry.Disable()

	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Search", theme.SearchIcon(), u.buildSearchTab()),
		container.NewTabItemWithIcon("Batch Upload", theme.UploadIcon(), u.buildBatchTab()),
		container.NewTabItemWithIcon("Log", theme.ListIcon(), logEntry),
	)

	top := container.NewBorder(nil, nil, nil, u.refBtn, u.refLabel)
	bottom := widget.NewLabelWithData(u.statusBind)
	u.w.SetContent(container.NewBorder(top, bottom, nil, nil, tabs))
	u.w.Resize(fyne.NewSize(1180, 760))
	u.applyBusy(true)
	return u
}

func (u *uiState) buildSearchTab() fyne.CanvasObject {
	u.searchNAICS = widget.NewCheck("NAICS code search", nil)
	u.searchNAICS.SetChecked(u.cfg.UI.NAICSMode)
	u.searchNAICS.OnChanged = func(checked bool) {
		u.updateConfig(func(c *atlas.Config) { c.UI.NAICSMode = checked })
	}

	u.query = widget.NewEntry()
	u.query.SetPlaceHolder("Describe the business, e.g. artisan bakery")
	u.query.OnSubmitted = func(string) { u.onSearch() }
	u.searchBtn = widget.NewButtonWithIcon("Search", theme.SearchIcon(), func() { u.onSearch() })

	u.cobLabel = widget.NewLabel("")
	u.codeLabel = widget.NewLabel("")
	u.appetite = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	u.scoreLabel = widget.NewLabel("")
	u.altLabel = widget.NewLabel("")
	u.altLabel.Wrapping = fyne.TextWrapWord

	form := widget.NewForm(
		widget.NewFormItem("Class of business", u.cobLabel),
		widget.NewFormItem("Industry code", u.codeLabel),
		widget.NewFormItem("Appetite", u.appetite),
	)
	for i, l := range atlas.LOBs {
		u.lobLabels[i] = widget.NewLabel("")
		form.Append(l.String(), u.lobLabels[i])
	}
	form.Append("Score", u.scoreLabel)
	form.Append("Alternatives", u.altLabel)

	input := container.NewBorder(nil, nil, nil, u.searchBtn, u.query)
	return container.NewVBox(u.searchNAICS, input, widget.NewSeparator(), form)
}

func (u *uiState) buildBatchTab() fyne.CanvasObject {
	u.batchNAICS = widget.NewCheck("NAICS code search", nil)
	u.batchNAICS.SetChecked(u.cfg.UI.NAICSMode)

	u.fileLabel = widget.NewLabel("No file loaded")
	u.columnSelect = widget.NewSelect(nil, func(string) {
		if c, ok := u.selectedColumn(); ok {
			u.updateConfig(func(cfg *atlas.Config) { cfg.UI.BatchColumn = c.Name })
		}
	})
	u.columnSelect.PlaceHolder = "Text column"
	u.columnSelect.Disable()

	u.loadBtn = widget.NewButtonWithIcon("Open file", theme.FolderOpenIcon(), func() { u.onLoadFile() })
	u.runBtn = widget.NewButtonWithIcon("Run", theme.MediaPlayIcon(), func() { u.onRunBatch() })
	u.exportBtn = widget.NewButtonWithIcon("Export CSV", theme.DocumentSaveIcon(), func() { u.onExport() })
	u.runBtn.Disable()
	u.exportBtn.Disable()

	u.progress = widget.NewProgressBar()
	u.progress.Hide()

	u.columns = makeColumns()
	u.resTbl = widget.NewTable(
		func() (int, int) { return len(u.rows) + 1, len(u.columns) },
		func() fyne.CanvasObject {
			lbl := widget.NewLabel("")
			lbl.Truncation = fyne.TextTruncateEllipsis
			return lbl
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			lbl := obj.(*widget.Label)
			if id.Col >= len(u.columns) {
				lbl.SetText("")
				return
			}
			if id.Row == 0 {
				lbl.TextStyle = fyne.TextStyle{Bold: true}
				lbl.SetText(u.columns[id.Col].Title)
				return
			}
			lbl.TextStyle = fyne.TextStyle{}
			rowIdx := id.Row - 1
			if rowIdx >= len(u.rows) {
				lbl.SetText("")
				return
			}
			lbl.SetText(u.columns[id.Col].Render(u.rows[rowIdx]))
		},
	)
	for i, col := range u.columns {
		u.resTbl.SetColumnWidth(i, col.Width)
	}
	u.resTbl.OnSelected = func(id widget.TableCellID) {
		if id.Row <= 0 || id.Row-1 >= len(u.rows) {
			return
		}
		row := u.rows[id.Row-1]
		dialog.ShowInformation("Row detail", fmt.Sprintf("%s\n\n%s %s\n%s",
			row.InputDescription, row.COB, row.IndustryCode, row.Appetite), u.w)
	}

	controls := container.NewVBox(
		u.batchNAICS,
		container.NewBorder(nil, nil, u.loadBtn, nil, u.fileLabel),
		container.NewGridWithColumns(3, u.columnSelect, u.runBtn, u.exportBtn),
		u.progress,
	)
	return container.NewBorder(controls, nil, nil, nil, u.resTbl)
}

func (u *uiState) setBusy(b bool) {
	fyne.Do(func() { u.applyBusy(b) })
}

// applyBusy must run on the main thread.
func (u *uiState) applyBusy(b bool) {
	ready := !b && u.service.CandidateCount() > 0
	setEnabled(u.searchBtn, ready)
	setEnabled(u.refBtn, !b)
	setEnabled(u.loadBtn, !b)
	setEnabled(u.runBtn, ready && len(u.choices) > 0)
	setEnabled(u.exportBtn, !b && len(u.rows) > 0)
}

func setEnabled(btn *widget.Button, on bool) {
	if btn == nil {
		return
	}
	if on {
		btn.Enable()
	} else {
		btn.Disable()
	}
}

func (u *uiState) setStatus(text string) {
	_ = u.statusBind.Set(text)
}

func (u *uiState) updateConfig(mutate func(*atlas.Config)) {
	u.cfgMu.Lock()
	mutate(&u.cfg)
	cfg := u.cfg
	u.cfgMu.Unlock()
	u.service.UpdateConfig(cfg)
	if err := atlas.SaveConfig(u.configPath, cfg); err != nil {
		u.logger.Warn("save config failed", zap.Error(err))
	}
}

func (u *uiState) config() atlas.Config {
	u.cfgMu.Lock()
	defer u.cfgMu.Unlock()
	return u.cfg
}

// loadReference embeds the reference table in the background. Call it from the main thread.
func (u *uiState) loadReference(path, partnerPath string) {
	u.applyBusy(true)
	u.setStatus("Loading reference table...")
	go func() {
		start := time.Now()
		err := u.service.LoadReferenceFiles(u.ctx, path, partnerPath)
		if err != nil {
			u.logger.Error("reference load failed", zap.String("path", path), zap.Error(err))
			u.setStatus("Reference load failed")
			fyne.Do(func() { dialog.ShowError(err, u.w) })
			u.setBusy(false)
			return
		}
		n := u.service.CandidateCount()
		u.setStatus(fmt.Sprintf("Reference loaded: %d rows (%.1fs)", n, time.Since(start).Seconds()))
		fyne.Do(func() {
			u.refLabel.SetText(fmt.Sprintf("Reference: %s (%d rows)", filepath.Base(path), n))
		})
		u.setBusy(false)
	}()
}

func (u *uiState) onChooseReference() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		u.updateConfig(func(c *atlas.Config) { c.Reference.Path = path })
		u.loadReference(path, u.config().Reference.PartnerPath)
	}, u.w)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".tsv", ".xlsx"}))
	fd.Show()
}

func (u *uiState) onSearch() {
	text := strings.TrimSpace(u.query.Text)
	if text == "" {
		dialog.ShowInformation("Search", "Enter a business description", u.w)
		return
	}
	naicsMode := u.searchNAICS.Checked
	u.setBusy(true)
	u.setStatus("Searching...")
	go func() {
		defer u.setBusy(false)
		res, err := u.service.Match(u.ctx, text, naicsMode)
		if err != nil {
			u.setStatus("Search failed")
			fyne.Do(func() { dialog.ShowError(err, u.w) })
			return
		}
		u.setStatus(fmt.Sprintf("Matched %q", text))
		fyne.Do(func() { u.showMatch(res) })
	}()
}

func (u *uiState) showMatch(res atlas.MatchResult) {
	u.cobLabel.SetText(res.Matched.COB)
	u.codeLabel.SetText(formatIndustryCode(res.Matched.IndustryCode))
	u.appetite.Importance = appetiteImportance(res.Appetite)
	u.appetite.SetText(res.Appetite.String())
	for i, l := range atlas.LOBs {
		u.lobLabels[i].SetText(res.Matched.Flags.Value(l))
	}
	u.scoreLabel.SetText(formatBreakdown(res.Score))
	u.altLabel.SetText(formatAlternatives(res))
}

func (u *uiState) onLoadFile() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		table, err := atlas.ReadTable(path)
		if err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		choices := buildColumnChoices(table)
		if len(choices) == 0 {
			dialog.ShowError(atlas.ErrNoTextColumnSelected, u.w)
			return
		}
		u.table = table
		u.choices = choices
		u.columnSelect.Options = choiceLabels(choices)
		u.columnSelect.Enable()
		u.columnSelect.SetSelectedIndex(defaultChoice(table, choices, u.config().UI.BatchColumn))
		u.fileLabel.SetText(fmt.Sprintf("%s (%d rows)", filepath.Base(path), len(table.Rows)))
		u.logger.Info("batch file loaded", zap.String("file", filepath.Base(path)), zap.Int("rows", len(table.Rows)))
		u.setBusy(false)
	}, u.w)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".tsv", ".xlsx"}))
	fd.Show()
}

func (u *uiState) selectedColumn() (columnChoice, bool) {
	idx := u.columnSelect.SelectedIndex()
	if idx < 0 || idx >= len(u.choices) {
		return columnChoice{}, false
	}
	return u.choices[idx], true
}

func (u *uiState) onRunBatch() {
	col, ok := u.selectedColumn()
	if !ok {
		dialog.ShowError(atlas.ErrNoTextColumnSelected, u.w)
		return
	}
	inputs, err := u.table.Column(col.Name)
	if err != nil {
		dialog.ShowError(err, u.w)
		return
	}
	naicsMode := u.batchNAICS.Checked
	u.setBusy(true)
	u.progress.Max = 1
	u.progress.SetValue(0)
	u.progress.Show()
	u.setStatus("Processing...")
	start := time.Now()

	go func() {
		rows, err := u.service.RunBatch(u.ctx, inputs, naicsMode, func(done, total int) {
			fyne.Do(func() { u.progress.SetValue(float64(done) / float64(total)) })
			u.setStatus(fmt.Sprintf("Processing %d/%d", done, total))
		})
		fyne.Do(func() { u.progress.Hide() })
		if err != nil {
			u.setStatus("Batch failed")
			fyne.Do(func() { dialog.ShowError(err, u.w) })
			u.setBusy(false)
			return
		}
		fyne.Do(func() {
			u.rows = rows
			u.resTbl.Refresh()
		})
		u.setStatus(fmt.Sprintf("Done: %d rows (%.1fs)", len(rows), time.Since(start).Seconds()))
		u.setBusy(false)
	}()
}

func (u *uiState) onExport() {
	if len(u.rows) == 0 {
		dialog.ShowInformation("Export", "No results to export", u.w)
		return
	}
	rows := u.rows
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil || uc == nil {
			return
		}
		defer uc.Close()
		if err := atlas.WriteBatchCSV(uc, rows); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		name := uc.URI().Name()
		u.updateConfig(func(c *atlas.Config) { c.UI.ExportName = name })
		u.logger.Info("batch results exported", zap.String("file", name), zap.Int("rows", len(rows)))
	}, u.w)
	fd.SetFileName(u.config().UI.ExportName)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv"}))
	fd.Show()
}
