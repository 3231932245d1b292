package board

import (
	"image/color"
	"time"

	"hackclock/internal/core/countdown"
	"hackclock/internal/core/model"
	"hackclock/internal/ui/display"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Controller is the countdown surface the board drives.
type Controller interface {
	ToggleMain()
	TogglePhase(index int)
	Reset()
	Snapshot() countdown.Snapshot
	Phases() []model.Phase
}

// Config defines board visuals.
type Config struct {
	Fullscreen   bool
	Size         fyne.Size
	ConfirmReset bool
}

var (
	colorLime      = color.NRGBA{R: 190, G: 242, B: 100, A: 255}
	colorEmerald   = color.NRGBA{R: 52, G: 211, B: 153, A: 255}
	colorEmeraldLo = color.NRGBA{R: 167, G: 243, B: 208, A: 255}
	colorPhaseRing = color.NRGBA{R: 110, G: 231, B: 183, A: 255}
	colorDim       = color.NRGBA{R: 190, G: 242, B: 100, A: 110}
	colorTop       = color.NRGBA{R: 20, G: 83, B: 45, A: 255}
	colorBottom    = color.NRGBA{R: 17, G: 24, B: 39, A: 255}
)

const (
	mainTextSize      = 44
	mainDoneTextSize  = 18
	phaseTextSize     = 18
	phaseDoneTextSize = 11
)

// Window shows the main clock and one card per phase.
type Window struct {
	window     fyne.Window
	controller Controller
	config     Config

	mainText   *canvas.Text
	mainRing   *canvas.Circle
	mainButton *widget.Button
	pulse      *fyne.Animation
	pulsing    bool

	phaseTexts   []*canvas.Text
	phaseButtons []*widget.Button

	resetButton *widget.Button
}

// New builds the board window for controller without showing it.
func New(app fyne.App, controller Controller, config Config) *Window {
	window := app.NewWindow(display.Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	board := &Window{
		window:     window,
		controller: controller,
		config:     config,
	}

	title := canvas.NewText(display.Title, colorLime)
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 28
	board.resetButton = widget.NewButton("Reset", board.handleReset)
	header := container.NewHBox(title, layout.NewSpacer(), board.resetButton)

	board.mainText = canvas.NewText("", colorLime)
	board.mainText.Alignment = fyne.TextAlignCenter
	board.mainText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	board.mainText.TextSize = mainTextSize
	board.mainButton = widget.NewButton(display.ToggleLabel(false), controller.ToggleMain)
	board.mainButton.Importance = widget.HighImportance

	board.mainRing = canvas.NewCircle(color.Transparent)
	board.mainRing.StrokeColor = colorEmerald
	board.mainRing.StrokeWidth = 8
	mainFace := container.New(&ringLayout{pad: 48},
		board.mainRing,
		container.NewVBox(board.mainText, container.NewCenter(board.mainButton)),
	)

	board.pulse = canvas.NewColorRGBAAnimation(colorEmerald, colorEmeraldLo, time.Second, func(value color.Color) {
		board.mainRing.StrokeColor = value
		board.mainRing.Refresh()
	})
	board.pulse.AutoReverse = true
	board.pulse.RepeatCount = fyne.AnimationRepeatForever

	phases := controller.Phases()
	cards := make([]fyne.CanvasObject, 0, len(phases))
	for index, phase := range phases {
		cards = append(cards, board.newPhaseCard(index, phase))
	}
	grid := container.NewGridWithColumns(3, cards...)

	body := container.NewBorder(nil, nil, container.NewCenter(mainFace), nil, container.NewVScroll(grid))
	content := container.NewBorder(header, nil, nil, nil, body)
	background := canvas.NewLinearGradient(colorTop, colorBottom, 135)
	window.SetContent(container.NewStack(background, container.NewPadded(content)))

	board.Render(controller.Snapshot())
	board.applyWindowMode()
	return board
}

func (board *Window) newPhaseCard(index int, phase model.Phase) fyne.CanvasObject {
	face := canvas.NewText("", colorLime)
	face.Alignment = fyne.TextAlignCenter
	face.TextStyle = fyne.TextStyle{Monospace: true}
	face.TextSize = phaseTextSize

	ring := canvas.NewCircle(color.Transparent)
	ring.StrokeColor = colorPhaseRing
	ring.StrokeWidth = 4

	name := widget.NewLabelWithStyle(phase.Name, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	name.Wrapping = fyne.TextWrapWord

	button := widget.NewButton(display.ToggleLabel(false), func() {
		board.controller.TogglePhase(index)
	})

	board.phaseTexts = append(board.phaseTexts, face)
	board.phaseButtons = append(board.phaseButtons, button)

	return container.NewVBox(
		container.NewCenter(container.New(&ringLayout{pad: 24, min: 150}, ring, face)),
		name,
		container.NewCenter(button),
	)
}

// Window returns the underlying fyne window.
func (board *Window) Window() fyne.Window {
	return board.window
}

// Show displays the board.
func (board *Window) Show() {
	board.window.Show()
	board.window.RequestFocus()
}

// Hide hides the board without closing it.
func (board *Window) Hide() {
	board.window.Hide()
}

// Follow renders every event from events on the fyne goroutine until the
// channel closes.
func (board *Window) Follow(events <-chan countdown.Event) {
	go func() {
		for event := range events {
			snapshot := event.Snapshot
			fyne.Do(func() {
				board.Render(snapshot)
			})
		}
	}()
}

// Render updates every face and button from snapshot. It must run on the
// fyne goroutine.
func (board *Window) Render(snapshot countdown.Snapshot) {
	board.mainText.Text = display.MainText(snapshot)
	if snapshot.MainDone() {
		board.mainText.TextSize = mainDoneTextSize
	} else {
		board.mainText.TextSize = mainTextSize
	}
	board.mainText.Refresh()
	board.mainButton.SetText(display.ToggleLabel(snapshot.MainRunning))
	board.setPulsing(snapshot.MainRunning && !snapshot.MainDone())

	for index, face := range board.phaseTexts {
		face.Text = display.PhaseText(snapshot, index)
		if snapshot.PhaseDone(index) {
			face.TextSize = phaseDoneTextSize
			face.Color = colorDim
		} else {
			face.TextSize = phaseTextSize
			face.Color = colorLime
		}
		face.Refresh()
		board.phaseButtons[index].SetText(display.ToggleLabel(snapshot.PhaseRunning[index]))
	}
}

// UpdateConfig applies new visuals.
func (board *Window) UpdateConfig(config Config) {
	board.config = config
	board.applyWindowMode()
}

func (board *Window) handleReset() {
	if !board.config.ConfirmReset {
		board.controller.Reset()
		return
	}
	dialog.ShowConfirm("Reset", "Reset every countdown to its full duration?", func(confirmed bool) {
		if confirmed {
			board.controller.Reset()
		}
	}, board.window)
}

func (board *Window) setPulsing(enabled bool) {
	if enabled == board.pulsing {
		return
	}
	board.pulsing = enabled
	if enabled {
		board.pulse.Start()
		return
	}
	board.pulse.Stop()
	board.mainRing.StrokeColor = colorEmerald
	board.mainRing.Refresh()
}

func (board *Window) applyWindowMode() {
	if board.config.Fullscreen {
		board.window.SetFullScreen(true)
		return
	}
	board.window.SetFullScreen(false)
	if board.config.Size.Width > 0 && board.config.Size.Height > 0 {
		board.window.Resize(board.config.Size)
	}
}
