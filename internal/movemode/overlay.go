package movemode

import (
	"github.com/1broseidon/flextile/internal/tiling"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Border colors
const (
	ColorSelecting = 0x3498db // blue
	ColorGrabbed   = 0x27ae60 // green
	ColorHintText  = 0xf5f7fa
	ColorHintBg    = 0x1f2933
)

// BorderThickness is the overlay border width in pixels.
const BorderThickness = 4

const (
	hintMargin     = 12
	hintPaddingX   = 10
	hintPaddingY   = 8
	hintLineHeight = 16
	hintCharWidth  = 7
	hintMinWidth   = 220
)

// hintOverlay is a single-window text panel listing the active keys.
type hintOverlay struct {
	Window   xproto.Window
	GC       xproto.Gcontext
	Font     xproto.Font
	created  bool
	mapped   bool
	disabled bool
}

// BorderOverlay is a rectangular border made of 4 thin windows.
type BorderOverlay struct {
	Top     xproto.Window
	Bottom  xproto.Window
	Left    xproto.Window
	Right   xproto.Window
	created bool
	mapped  bool
}

// OverlayManager draws the focus border and key hint while move mode is on.
type OverlayManager struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	border BorderOverlay
	hint   hintOverlay
}

// NewOverlayManager creates an overlay manager. Nothing is created on the
// X server until the first Render.
func NewOverlayManager(xu *xgbutil.XUtil, root xproto.Window) *OverlayManager {
	return &OverlayManager{xu: xu, root: root}
}

// Render outlines rect in color and shows the hint for phase inside bounds,
// away from rect where possible.
func (m *OverlayManager) Render(rect tiling.Rect, color uint32, phase Phase, bounds tiling.Rect) error {
	if m.xu == nil {
		return nil
	}
	if err := m.showBorder(rect, color); err != nil {
		return err
	}
	m.renderHint(hintLines(phase), bounds, rect)
	return nil
}

// HideAll unmaps every overlay window without destroying it.
func (m *OverlayManager) HideAll() {
	if m.xu == nil {
		return
	}
	m.hideBorder()
	m.hideHint()
}

// Cleanup destroys all overlay windows
func (m *OverlayManager) Cleanup() {
	if m.xu == nil {
		return
	}
	m.destroyBorder()
	m.destroyHint()
}

func (m *OverlayManager) showBorder(rect tiling.Rect, color uint32) error {
	b := &m.border
	if !b.created {
		var err error
		for _, wid := range []*xproto.Window{&b.Top, &b.Bottom, &b.Left, &b.Right} {
			if *wid, err = m.createOverrideRedirectWindow(); err != nil {
				m.destroyBorder()
				return err
			}
		}
		b.created = true
	}

	x, y, w, h, t := rect.X, rect.Y, rect.Width, rect.Height, BorderThickness
	m.updateWindow(b.Top, x, y, w, t, color)
	m.updateWindow(b.Bottom, x, y+h-t, w, t, color)
	m.updateWindow(b.Left, x, y+t, t, h-2*t, color)
	m.updateWindow(b.Right, x+w-t, y+t, t, h-2*t, color)

	conn := m.xu.Conn()
	for _, wid := range []xproto.Window{b.Top, b.Bottom, b.Left, b.Right} {
		xproto.MapWindow(conn, wid)
	}
	b.mapped = true
	return nil
}

func (m *OverlayManager) hideBorder() {
	b := &m.border
	if !b.mapped {
		return
	}
	conn := m.xu.Conn()
	for _, wid := range []xproto.Window{b.Top, b.Bottom, b.Left, b.Right} {
		xproto.UnmapWindow(conn, wid)
	}
	b.mapped = false
}

func (m *OverlayManager) destroyBorder() {
	b := &m.border
	conn := m.xu.Conn()
	for _, wid := range []xproto.Window{b.Top, b.Bottom, b.Left, b.Right} {
		if wid != 0 {
			xproto.DestroyWindow(conn, wid)
		}
	}
	*b = BorderOverlay{}
}

func (m *OverlayManager) createOverrideRedirectWindow() (xproto.Window, error) {
	conn := m.xu.Conn()
	screen := m.xu.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	// Value list order follows the mask bits: CwBackPixel before
	// CwOverrideRedirect.
	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		m.root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwOverrideRedirect|xproto.CwBackPixel,
		[]uint32{0, 1},
	).Check()
	if err != nil {
		return 0, err
	}
	return wid, nil
}

func (m *OverlayManager) updateWindow(wid xproto.Window, x, y, width, height int, color uint32) {
	conn := m.xu.Conn()
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	xproto.ConfigureWindow(
		conn,
		wid,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{uint32(x), uint32(y), uint32(width), uint32(height), xproto.StackModeAbove},
	)
	xproto.ChangeWindowAttributes(conn, wid, xproto.CwBackPixel, []uint32{color})
	xproto.ClearArea(conn, false, wid, 0, 0, 0, 0)
}

func (m *OverlayManager) renderHint(lines []string, bounds tiling.Rect, avoid tiling.Rect) {
	if len(lines) == 0 || bounds.Empty() || !m.ensureHintResources() {
		m.hideHint()
		return
	}

	width, height := hintDimensions(lines)
	width = min(width, max(bounds.Width-2*hintMargin, 1))
	height = min(height, max(bounds.Height-2*hintMargin, 1))
	x, y := chooseHintPosition(bounds, []tiling.Rect{avoid}, width, height)

	conn := m.xu.Conn()
	hint := &m.hint
	xproto.ConfigureWindow(
		conn,
		hint.Window,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{uint32(x), uint32(y), uint32(width), uint32(height), xproto.StackModeAbove},
	)
	xproto.ChangeWindowAttributes(conn, hint.Window, xproto.CwBackPixel, []uint32{ColorHintBg})
	xproto.ClearArea(conn, false, hint.Window, 0, 0, 0, 0)

	baseline := hintPaddingY + hintLineHeight - 4
	for i, line := range lines {
		if len(line) > 255 {
			line = line[:255]
		}
		xproto.ImageText8(conn, byte(len(line)), xproto.Drawable(hint.Window), hint.GC,
			int16(hintPaddingX), int16(baseline+i*hintLineHeight), line)
	}

	xproto.MapWindow(conn, hint.Window)
	hint.mapped = true
}

func (m *OverlayManager) ensureHintResources() bool {
	hint := &m.hint
	if hint.disabled {
		return false
	}
	if hint.created {
		return true
	}

	conn := m.xu.Conn()
	wid, err := m.createOverrideRedirectWindow()
	if err != nil {
		hint.disabled = true
		return false
	}
	hint.Window = wid

	font, err := xproto.NewFontId(conn)
	if err != nil {
		m.disableHint()
		return false
	}
	opened := false
	for _, name := range []string{"fixed", "9x15", "8x13", "6x13"} {
		if xproto.OpenFontChecked(conn, font, uint16(len(name)), name).Check() == nil {
			opened = true
			break
		}
	}
	if !opened {
		m.disableHint()
		return false
	}
	hint.Font = font

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		m.disableHint()
		return false
	}
	err = xproto.CreateGCChecked(
		conn,
		gc,
		xproto.Drawable(wid),
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont|xproto.GcGraphicsExposures,
		[]uint32{ColorHintText, ColorHintBg, uint32(font), 0},
	).Check()
	if err != nil {
		m.disableHint()
		return false
	}
	hint.GC = gc
	hint.created = true
	return true
}

func (m *OverlayManager) disableHint() {
	m.destroyHint()
	m.hint.disabled = true
}

func (m *OverlayManager) hideHint() {
	if !m.hint.mapped {
		return
	}
	xproto.UnmapWindow(m.xu.Conn(), m.hint.Window)
	m.hint.mapped = false
}

func (m *OverlayManager) destroyHint() {
	conn := m.xu.Conn()
	hint := &m.hint
	if hint.GC != 0 {
		xproto.FreeGC(conn, hint.GC)
	}
	if hint.Font != 0 {
		xproto.CloseFont(conn, hint.Font)
	}
	if hint.Window != 0 {
		xproto.DestroyWindow(conn, hint.Window)
	}
	disabled := hint.disabled
	*hint = hintOverlay{disabled: disabled}
}

func hintLines(phase Phase) []string {
	switch phase {
	case PhaseSelecting:
		return []string{
			"Move mode: select window",
			"Arrows/hjkl  focus",
			"Enter        grab focused",
			"+ / -        grow / shrink",
			"0            reset size",
			"m            minimize",
			"b / v        next add beside / below",
			"Esc          leave",
		}
	case PhaseGrabbed:
		return []string{
			"Move mode: window grabbed",
			"Arrows        move",
			"Shift+Arrows  integrate",
			"Ctrl+Arrows   swap",
			"Enter/Esc     drop",
		}
	default:
		return nil
	}
}

func hintDimensions(lines []string) (width, height int) {
	maxChars := 0
	for _, line := range lines {
		maxChars = max(maxChars, len(line))
	}
	width = max(maxChars*hintCharWidth+2*hintPaddingX, hintMinWidth)
	height = len(lines)*hintLineHeight + 2*hintPaddingY
	return width, height
}

// chooseHintPosition tries the four corners of bounds, top right first, and
// returns the first that does not cover any of avoid.
func chooseHintPosition(bounds tiling.Rect, avoid []tiling.Rect, width, height int) (int, int) {
	width, height = max(width, 1), max(height, 1)

	left := bounds.X + hintMargin
	right := max(bounds.X+bounds.Width-hintMargin-width, left)
	top := bounds.Y + hintMargin
	bottom := max(bounds.Y+bounds.Height-hintMargin-height, top)

	candidates := []tiling.Rect{
		{X: right, Y: top, Width: width, Height: height},
		{X: left, Y: top, Width: width, Height: height},
		{X: right, Y: bottom, Width: width, Height: height},
		{X: left, Y: bottom, Width: width, Height: height},
	}
	for _, c := range candidates {
		free := true
		for _, a := range avoid {
			if rectsIntersect(c, a) {
				free = false
				break
			}
		}
		if free {
			return clampHintOrigin(c.X, c.Y, bounds, width, height)
		}
	}
	return clampHintOrigin(candidates[0].X, candidates[0].Y, bounds, width, height)
}

func clampHintOrigin(x, y int, bounds tiling.Rect, width, height int) (int, int) {
	left := bounds.X + hintMargin
	right := bounds.X + bounds.Width - hintMargin - width
	if right < left {
		left = bounds.X
		right = max(bounds.X+bounds.Width-width, left)
	}
	top := bounds.Y + hintMargin
	bottom := bounds.Y + bounds.Height - hintMargin - height
	if bottom < top {
		top = bounds.Y
		bottom = max(bounds.Y+bounds.Height-height, top)
	}
	return min(max(x, left), right), min(max(y, top), bottom)
}

func rectsIntersect(a, b tiling.Rect) bool {
	return a.X < b.Right() && a.Right() > b.X && a.Y < b.Bottom() && a.Bottom() > b.Y
}
