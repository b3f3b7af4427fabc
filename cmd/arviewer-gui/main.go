package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/medar/arviewer/internal/catalog"
	"github.com/medar/arviewer/internal/session"
)

// Browser lists the landmarks of every registered model without opening the
// 3D viewer
type Browser struct {
	window   fyne.Window
	registry *catalog.Registry
	session  *session.Session

	model     catalog.Model
	landmarks []catalog.Landmark

	landmarkList  *widget.List
	levelRadio    *widget.RadioGroup
	detail        *widget.RichText
	progressLabel *widget.Label
}

func main() {
	reg, err := catalog.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}
	if len(reg.Models()) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no models registered")
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow("MedAR - Landmark Browser")

	b := &Browser{
		window:   w,
		registry: reg,
		session:  session.New(reg.Models()[0].ID),
	}
	b.setupUI()

	initial := reg.Models()[0].ID
	if len(os.Args) > 1 {
		initial = os.Args[1]
	}
	b.selectModel(initial)

	w.Resize(fyne.NewSize(1000, 700))
	w.ShowAndRun()
}

func (b *Browser) setupUI() {
	models := b.registry.Models()
	labels := make([]string, len(models))
	for i, m := range models {
		labels[i] = m.Label
	}

	modelSelect := widget.NewSelect(labels, func(label string) {
		for _, m := range models {
			if m.Label == label {
				b.selectModel(m.ID)
			}
		}
	})

	levels := make([]string, len(catalog.Levels))
	for i, l := range catalog.Levels {
		levels[i] = string(l)
	}
	b.levelRadio = widget.NewRadioGroup(levels, func(level string) {
		if l, ok := catalog.ParseLevel(level); ok {
			b.session.SetLevel(l)
			b.refreshLandmarks()
		}
	})
	b.levelRadio.Horizontal = true
	b.levelRadio.Required = true

	b.landmarkList = widget.NewList(
		func() int { return len(b.landmarks) },
		func() fyne.CanvasObject { return widget.NewLabel("landmark") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			lm := b.landmarks[id]
			text := fmt.Sprintf("%s %s", lm.Type.Icon(), lm.Title)
			if b.session.IsVisited(lm.ID) {
				text += "  ✓"
			}
			item.(*widget.Label).SetText(text)
		},
	)
	b.landmarkList.OnSelected = func(id widget.ListItemID) {
		b.showLandmark(b.landmarks[id])
	}

	b.detail = widget.NewRichTextFromMarkdown("Select a landmark to see its details.")
	b.detail.Wrapping = fyne.TextWrapWord
	b.progressLabel = widget.NewLabel("")

	openButton := widget.NewButton("Open in 3D Viewer", b.openViewer)
	resetButton := widget.NewButton("Reset Progress", func() {
		b.session.Reset()
		b.landmarkList.UnselectAll()
		b.detail.ParseMarkdown("Select a landmark to see its details.")
		b.refreshLandmarks()
	})

	top := container.NewVBox(
		container.NewHBox(widget.NewLabel("Model:"), modelSelect, layout.NewSpacer(), b.progressLabel),
		container.NewHBox(widget.NewLabel("Level:"), b.levelRadio),
		widget.NewSeparator(),
	)
	bottom := container.NewHBox(layout.NewSpacer(), resetButton, openButton)

	split := container.NewHSplit(b.landmarkList, container.NewVScroll(b.detail))
	split.Offset = 0.35

	b.window.SetContent(container.NewBorder(top, bottom, nil, nil, split))
	modelSelect.SetSelected(labels[0])
}

func (b *Browser) selectModel(id string) {
	m, ok := b.registry.Model(id)
	if !ok {
		dialog.ShowError(fmt.Errorf("unknown model %q", id), b.window)
		return
	}
	if m.ID == b.model.ID {
		return
	}
	b.model = m
	b.session.SwitchModel(m.ID)
	b.levelRadio.SetSelected(string(b.session.Level()))
	b.refreshLandmarks()
}

func (b *Browser) refreshLandmarks() {
	if b.model.ID == "" {
		return
	}
	level := b.session.Level()
	if !b.model.Supports(level) {
		b.landmarks = nil
	} else {
		b.landmarks = b.registry.CatalogFor(b.model.ID).LandmarksForLevel(level)
	}
	b.landmarkList.Refresh()
	b.progressLabel.SetText(fmt.Sprintf("Progress: %d%%", b.session.Progress(session.DefaultProgressTotal)))
}

func (b *Browser) showLandmark(lm catalog.Landmark) {
	b.session.Select(lm.ID)

	var md strings.Builder
	fmt.Fprintf(&md, "# %s %s\n\n", lm.Type.Icon(), lm.Title)
	fmt.Fprintf(&md, "*%s*\n\n%s\n\n", lm.Type, lm.Description)
	if lm.DetailedInfo != "" {
		fmt.Fprintf(&md, "%s\n\n", lm.DetailedInfo)
	}
	if len(lm.Functions) > 0 {
		md.WriteString("## Functions\n\n")
		for _, f := range lm.Functions {
			fmt.Fprintf(&md, "- %s\n", f)
		}
		md.WriteString("\n")
	}
	if len(lm.MedicalTerms) > 0 {
		fmt.Fprintf(&md, "**Medical terms:** %s\n\n", strings.Join(lm.MedicalTerms, ", "))
	}
	if lm.ClinicalSignificance != "" {
		fmt.Fprintf(&md, "## Clinical Significance\n\n%s\n\n", lm.ClinicalSignificance)
	}
	if related := b.registry.CatalogFor(b.model.ID).Related(lm); len(related) > 0 {
		titles := make([]string, len(related))
		for i, r := range related {
			titles[i] = r.Title
		}
		fmt.Fprintf(&md, "**Related:** %s\n", strings.Join(titles, ", "))
	}

	b.detail.ParseMarkdown(md.String())
	b.refreshLandmarks()
}

// openViewer launches the 3D viewer for the current model
func (b *Browser) openViewer() {
	bin, err := exec.LookPath("arviewer")
	if err != nil {
		dialog.ShowError(fmt.Errorf("arviewer not found in PATH: %w", err), b.window)
		return
	}
	cmd := exec.Command(bin, "view", b.model.ID)
	if err := cmd.Start(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to start viewer: %w", err), b.window)
		return
	}
	go func() { _ = cmd.Wait() }()
}
