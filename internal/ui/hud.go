//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strconv"
	"strings"

	"defrag-timer/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Actions are the countdown commands bound to the HUD buttons.
type Actions interface {
	Toggle() bool
	ResetTimer()
}

// HUD renders the countdown panel to the right of the disk view.
type HUD struct {
	sim        core.Sim
	width      int
	height     int
	panel      *ebiten.Image
	snapshot   core.ParameterSnapshot
	panelX     int
	title      string
	actions    Actions
	toggleRect image.Rectangle
	resetRect  image.Rectangle

	controls  []hudControlState
	intSetter core.IntParameterSetter

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for sim with the given panel size.
func NewHUD(sim core.Sim, width, height int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, height: height, title: buildTitle(sim)}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if a, ok := sim.(Actions); ok {
		h.actions = a
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		h.controls = make([]hudControlState, len(controls))
		for i, ctrl := range controls {
			h.controls[i] = hudControlState{control: ctrl, value: "--"}
		}
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		h.intSetter = setter
	}
	h.layout()
	return h
}

// Update refreshes the snapshot and handles clicks on the panel.
func (h *HUD) Update(panelX int) {
	if h == nil {
		return
	}
	h.panelX = panelX
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		h.snapshot = provider.Parameters()
	} else {
		h.snapshot = core.ParameterSnapshot{}
	}
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int) {
	if h == nil || h.width <= 0 || h.height <= 0 {
		return
	}
	if h.panel == nil {
		h.panel = ebiten.NewImage(h.width, h.height)
	}
	h.panel.Fill(panelBackground)
	h.drawStatus()
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	return strings.ToUpper(name[:1]) + name[1:]
}

func (h *HUD) param(key string) string {
	if p, ok := h.snapshot.Lookup(key); ok {
		return p.Value
	}
	return "--"
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok || param.Type != core.ParamTypeInt {
			state.hasValue = false
			state.value = "--"
			continue
		}
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			state.hasValue = false
			state.value = "--"
			continue
		}
		state.intValue = parsed
		state.value = param.Value
		state.hasValue = true
	}
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelX {
		return
	}
	px := mx - h.panelX
	if h.actions != nil {
		switch {
		case pointInRect(px, my, h.toggleRect):
			h.actions.Toggle()
			return
		case pointInRect(px, my, h.resetRect):
			h.actions.ResetTimer()
			return
		}
	}
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.adjust(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.adjust(state, 1)
			return
		}
	}
}

func (h *HUD) adjust(state *hudControlState, direction int) {
	if h.intSetter == nil {
		return
	}
	target, ok := nextValue(state.control, state.intValue, direction)
	if !ok {
		return
	}
	if h.intSetter.SetIntParameter(state.control.Key, target) {
		state.intValue = target
		state.value = strconv.Itoa(target)
	}
}

// nextValue steps value by one control increment in direction, clamped to
// the control's bounds. ok is false when the value would not change.
func nextValue(ctrl core.ParameterControl, value, direction int) (int, bool) {
	step := ctrl.Step
	if step <= 0 {
		step = 1
	}
	target := ctrl.Clamp(value + direction*step)
	return target, target != value
}

func (h *HUD) drawStatus() {
	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, dimText)
	text.Draw(h.panel, h.param("remaining"), face, panelPadding, clockTop, brightText)
	text.Draw(h.panel, strings.ToUpper(h.param("state")), face, panelPadding+clockWidth, clockTop, dimText)
	if h.actions == nil {
		return
	}
	label := "Start"
	if h.param("state") == "running" {
		label = "Pause"
	}
	h.drawButton(h.toggleRect, label, h.param("state") != "completed")
	h.drawButton(h.resetRect, "Reset", true)
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, controlsTop+labelBaseline, dimText)
		return
	}
	for i := range h.controls {
		state := &h.controls[i]
		y := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, y, brightText)
		valueColor := brightText
		if !state.hasValue {
			valueColor = dimText
		}
		bounds := text.BoundString(face, state.value)
		text.Draw(h.panel, state.value, face, state.minusRect.Min.X-buttonGap-bounds.Dx(), y, valueColor)

		_, canMinus := nextValue(state.control, state.intValue, -1)
		_, canPlus := nextValue(state.control, state.intValue, 1)
		h.drawButton(state.minusRect, "-", state.hasValue && h.intSetter != nil && canMinus)
		h.drawButton(state.plusRect, "+", state.hasValue && h.intSetter != nil && canPlus)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layout() {
	if h.width <= 0 {
		return
	}
	half := (h.width - 2*panelPadding - buttonGap) / 2
	h.toggleRect = image.Rect(panelPadding, actionsTop, panelPadding+half, actionsTop+buttonSize)
	h.resetRect = image.Rect(h.toggleRect.Max.X+buttonGap, actionsTop, h.width-panelPadding, actionsTop+buttonSize)
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

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

type hudControlState struct {
	control  core.ParameterControl
	value    string
	intValue int
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// PanelWidth is the default HUD width in pixels.
const PanelWidth = 220

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	clockWidth     = 64
	clockTop       = panelPadding + headerBaseline + 24
	actionsTop     = clockTop + 16
	controlsTop    = actionsTop + buttonSize + 16
)

var (
	panelBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	brightText      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimText         = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)
