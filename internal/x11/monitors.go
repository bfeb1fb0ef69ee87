package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display. Usable excludes panels and docks
// when the window manager publishes a work area.
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
	Usable Area
}

// Area is a rectangle in root window coordinates.
type Area struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (a Area) contains(x, y int) bool {
	return x >= a.X && x < a.X+a.Width && y >= a.Y && y < a.Y+a.Height
}

func (a Area) intersect(b Area) (Area, bool) {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.Width, b.X+b.Width)
	y2 := min(a.Y+a.Height, b.Y+b.Height)
	if x2 <= x1 || y2 <= y1 {
		return Area{}, false
	}
	return Area{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}

func (m Monitor) bounds() Area {
	return Area{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	workArea, haveWorkArea := c.currentWorkArea()

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		m := Monitor{
			ID:     i,
			Name:   name,
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		}
		m.Usable = m.bounds()
		if haveWorkArea {
			if usable, ok := m.bounds().intersect(workArea); ok {
				m.Usable = usable
			}
		}
		monitors = append(monitors, m)
	}

	return monitors, nil
}

func (c *Connection) currentWorkArea() (Area, bool) {
	areas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(areas) == 0 {
		return Area{}, false
	}
	idx := 0
	if desktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(desktop) < len(areas) {
		idx = int(desktop)
	}
	wa := areas[idx]
	return Area{X: int(wa.X), Y: int(wa.Y), Width: int(wa.Width), Height: int(wa.Height)}, true
}

// GetActiveMonitor returns the monitor holding the active window, falling
// back to the one under the pointer and then the first monitor.
func (c *Connection) GetActiveMonitor() (*Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	if win, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && win != 0 {
		if x, y, ok := c.windowCenter(win); ok {
			if m := monitorAt(monitors, x, y); m != nil {
				return m, nil
			}
		}
	}

	if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		if m := monitorAt(monitors, int(pointer.RootX), int(pointer.RootY)); m != nil {
			return m, nil
		}
	}

	return &monitors[0], nil
}

// WindowGeometry returns a window's rectangle in root coordinates.
func (c *Connection) WindowGeometry(windowID xproto.Window) (Area, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return Area{}, err
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return Area{}, err
	}
	return Area{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

func (c *Connection) windowCenter(windowID xproto.Window) (int, int, bool) {
	a, err := c.WindowGeometry(windowID)
	if err != nil {
		return 0, 0, false
	}
	return a.X + a.Width/2, a.Y + a.Height/2, true
}

// MonitorAt returns the monitor containing the point, or nil.
func MonitorAt(monitors []Monitor, x, y int) *Monitor {
	return monitorAt(monitors, x, y)
}

func monitorAt(monitors []Monitor, x, y int) *Monitor {
	for i := range monitors {
		if monitors[i].bounds().contains(x, y) {
			return &monitors[i]
		}
	}
	return nil
}
