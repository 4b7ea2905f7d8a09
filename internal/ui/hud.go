//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"porch/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Target is what the HUD reads from and adjusts.
type Target interface {
	Name() string
	Parameters() core.ParameterSnapshot
}

// HUD renders the parameter panel to the right of the porch view.
type HUD struct {
	target      Target
	width       int
	panel       *ebiten.Image
	snapshot    core.ParameterSnapshot
	controls    []hudControlState
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	offsetX     int
	title       string
}

// NewHUD constructs a HUD for target with the given panel width.
func NewHUD(target Target, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{target: target, width: width, title: "Controls"}
	if name := target.Name(); name != "" {
		h.title = fmt.Sprintf("%s controls", name)
	}
	if provider, ok := target.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		h.controls = make([]hudControlState, len(controls))
		for i, ctrl := range controls {
			h.controls[i] = hudControlState{control: ctrl, value: "--"}
		}
		h.layoutControls()
	}
	h.intSetter, _ = target.(core.IntParameterSetter)
	h.floatSetter, _ = target.(core.FloatParameterSetter)
	return h
}

// Width is the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached parameters and handles clicks on the panel. It
// reports whether the click was consumed.
func (h *HUD) Update(offsetX int) bool {
	if h == nil {
		return false
	}
	h.offsetX = offsetX
	h.snapshot = h.target.Parameters()
	h.refreshControlValues()
	return h.handleInput()
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	h.drawReadouts()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		st := &h.controls[i]
		st.hasValue = false
		st.value = "--"
		param, ok := h.snapshot.Lookup(st.control.Key)
		if !ok {
			continue
		}
		switch st.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			st.intValue = parsed
			st.floatValue = float64(parsed)
			st.value = strconv.Itoa(parsed)
			st.hasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			st.floatValue = parsed
			st.value = formatFloat(st.control, parsed)
			st.hasValue = true
		}
	}
}

func (h *HUD) handleInput() bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.offsetX {
		return false
	}
	px := mx - h.offsetX
	for i := range h.controls {
		st := &h.controls[i]
		if !st.hasValue {
			continue
		}
		if pointInRect(px, my, st.minusRect) {
			h.applyAdjustment(st, -1)
			break
		}
		if pointInRect(px, my, st.plusRect) {
			h.applyAdjustment(st, 1)
			break
		}
	}
	return true
}

// target computes the stepped value, or false when the step would leave
// the control's range.
func (st *hudControlState) target(direction int) (float64, bool) {
	step := st.control.Step
	switch st.control.Type {
	case core.ParamTypeInt:
		step = math.Round(step)
		if step <= 0 {
			step = 1
		}
	case core.ParamTypeFloat:
		if step <= 0 {
			step = 0.05
		}
	default:
		return 0, false
	}
	v := st.floatValue + float64(direction)*step
	clamped := st.control.Clamp(v)
	if math.Abs(clamped-st.floatValue) < 1e-9 {
		return 0, false
	}
	return clamped, true
}

func (h *HUD) applyAdjustment(st *hudControlState, direction int) {
	v, ok := st.target(direction)
	if !ok {
		return
	}
	switch st.control.Type {
	case core.ParamTypeInt:
		if h.intSetter != nil && h.intSetter.SetIntParameter(st.control.Key, int(math.Round(v))) {
			st.intValue = int(math.Round(v))
			st.floatValue = float64(st.intValue)
			st.value = strconv.Itoa(st.intValue)
		}
	case core.ParamTypeFloat:
		if h.floatSetter != nil && h.floatSetter.SetFloatParameter(st.control.Key, v) {
			st.floatValue = v
			st.value = formatFloat(st.control, v)
		}
	}
}

func (h *HUD) canAdjust(st *hudControlState, direction int) bool {
	switch st.control.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return false
		}
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return false
		}
	}
	_, ok := st.target(direction)
	return ok
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, panelPadding+headerBaseline+infoSpacing, dimColor)
		return
	}
	for i := range h.controls {
		st := &h.controls[i]
		y := st.top + labelBaseline
		text.Draw(h.panel, st.control.Label, face, panelPadding, y, textColor)
		valueColor := textColor
		if !st.hasValue {
			valueColor = dimColor
		}
		w := text.BoundString(face, st.value).Dx()
		text.Draw(h.panel, st.value, face, st.minusRect.Min.X-buttonGap-w, y, valueColor)
		h.drawButton(st.minusRect, "-", st.hasValue && h.canAdjust(st, -1))
		h.drawButton(st.plusRect, "+", st.hasValue && h.canAdjust(st, 1))
	}
}

// drawReadouts lists the text parameters below the controls.
func (h *HUD) drawReadouts() {
	face := basicfont.Face7x13
	y := controlsTop + len(h.controls)*lineHeight + infoSpacing
	for _, group := range h.snapshot.Groups {
		for _, p := range group.Params {
			if p.Type != core.ParamTypeText {
				continue
			}
			text.Draw(h.panel, p.Label+": "+p.Value, face, panelPadding, y, dimColor)
			y += readoutSpacing
		}
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	vector.DrawFilledRect(h.panel, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minus
		h.controls[i].plusRect = plus
	}
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	precision := 1
	switch step := ctrl.Step; {
	case step <= 0:
		precision = 2
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

var (
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	readoutSpacing = 18
	controlsTop    = panelPadding + headerBaseline + 14
)
