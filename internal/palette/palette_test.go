package palette

import (
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/1broseidon/flextile/internal/wm"
)

func TestRofiFormatItem_SingleNulSeparator(t *testing.T) {
	l := newLauncher(kindRofi)

	out := l.formatItem(Item{Label: "Focus", IsHeader: true, Icon: "go-jump", Meta: "focus"})

	if got := strings.Count(out, "\x00"); got != 1 {
		t.Fatalf("expected exactly 1 NUL separator, got %d (%q)", got, out)
	}
	if !strings.HasPrefix(out, "<b>Focus</b>\x00nonselectable\x1ftrue") {
		t.Fatalf("expected bold non-selectable header, got %q", out)
	}
	if !strings.Contains(out, "icon\x1fgo-jump") || !strings.Contains(out, "meta\x1ffocus") {
		t.Fatalf("expected icon and meta attributes, got %q", out)
	}
}

func TestFormatItem_EscapesMarkup(t *testing.T) {
	tests := []struct {
		kind launcherKind
		want string
	}{
		{kindRofi, "a &lt;b&gt;"},
		{kindWofi, "a &lt;b&gt;"},
		{kindFuzzel, "a <b>"},
		{kindDmenu, "a <b>"},
	}
	for _, tt := range tests {
		l := newLauncher(tt.kind)
		if got := l.formatItem(Item{Label: "a <b>\n"}); got != tt.want {
			t.Errorf("%s: got %q, want %q", l.Name(), got, tt.want)
		}
	}
}

func TestRofiBuildArgs(t *testing.T) {
	l := newLauncher(kindRofi)
	items := []Item{
		{Label: "Header", IsHeader: true},
		{Label: "a"},
		{Label: "b", IsActive: true},
	}
	_, selected := l.formatInput(items)
	args := l.buildArgs("flextile", "2 windows", items, selected)

	for _, pair := range [][2]string{
		{"-format", "i"},
		{"-p", "flextile"},
		{"-a", "2"},
		{"-selected-row", "2"},
		{"-mesg", "2 windows"},
	} {
		if !containsArgs(args, pair[0], pair[1]) {
			t.Fatalf("expected %s %s in %v", pair[0], pair[1], args)
		}
	}
	if !containsArg(args, "-no-custom") {
		t.Fatalf("expected -no-custom in %v", args)
	}
}

func TestFormatInput_SelectsFirstSelectable(t *testing.T) {
	l := newLauncher(kindFuzzel)
	_, selected := l.formatInput([]Item{{Label: "H", IsHeader: true}, {Label: "a"}})
	if selected != 1 {
		t.Fatalf("selected = %d, want 1", selected)
	}
}

func TestFormatInput_Disambiguation(t *testing.T) {
	tests := []struct {
		kind   launcherKind
		second string
	}{
		{kindDmenu, "Dup (2)"},
		{kindWofi, "Dup (2)"},
		{kindRofi, "Dup"},
		{kindFuzzel, "Dup"},
	}
	for _, tt := range tests {
		l := newLauncher(tt.kind)
		items := []Item{{Label: "Dup", Action: "a"}, {Label: "Dup", Action: "b"}}
		l.formatInput(items)
		if items[0].Label != "Dup" || items[1].Label != tt.second {
			t.Errorf("%s: labels = %q, %q", l.Name(), items[0].Label, items[1].Label)
		}
	}
}

func TestShow_ParsesSelection(t *testing.T) {
	items := []Item{{Label: "move left", Action: "move left"}, {Label: "move right", Action: "move right"}}

	tests := []struct {
		name   string
		kind   launcherKind
		output string
		want   string
	}{
		{"rofi index", kindRofi, "1", "move right"},
		{"fuzzel index", kindFuzzel, "0", "move left"},
		{"dmenu text", kindDmenu, "move right", "move right"},
		{"wofi text", kindWofi, "move left", "move left"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLauncher(tt.kind)
			var gotStdin string
			l.run = func(command string, args []string, stdin string) (string, error) {
				if command != l.Name() {
					t.Fatalf("ran %q, want %q", command, l.Name())
				}
				gotStdin = stdin
				return tt.output, nil
			}
			got, err := l.Show("flextile", items, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Action != tt.want {
				t.Fatalf("action = %q, want %q", got.Action, tt.want)
			}
			if !strings.Contains(gotStdin, "move left\n") {
				t.Fatalf("stdin = %q", gotStdin)
			}
		})
	}
}

func TestShow_Errors(t *testing.T) {
	l := newLauncher(kindRofi)
	if _, err := l.Show("p", nil, ""); err == nil {
		t.Fatalf("expected error for empty items")
	}

	l.run = func(string, []string, string) (string, error) { return "", nil }
	if _, err := l.Show("p", []Item{{Label: "a"}}, ""); !errors.Is(err, ErrCancelled) {
		t.Fatalf("empty selection: err = %v, want ErrCancelled", err)
	}

	l.run = func(string, []string, string) (string, error) { return "7", nil }
	if _, err := l.Show("p", []Item{{Label: "a"}}, ""); err == nil {
		t.Fatalf("expected out-of-range error")
	}

	boom := errors.New("boom")
	l.run = func(string, []string, string) (string, error) { return "", boom }
	if _, err := l.Show("p", []Item{{Label: "a"}}, ""); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestNewBackend(t *testing.T) {
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(name string) (string, error) {
		if name == "wofi" || name == "dmenu" {
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	}

	b, err := NewBackend("auto")
	if err != nil || b.Name() != "wofi" {
		t.Fatalf("auto = %v, %v; want wofi", b, err)
	}
	if b, err := NewBackend(" DMENU "); err != nil || b.Name() != "dmenu" {
		t.Fatalf("dmenu = %v, %v", b, err)
	}
	if _, err := NewBackend("rofi"); err == nil {
		t.Fatalf("expected missing rofi to fail")
	}
	if _, err := NewBackend("zenity"); err == nil {
		t.Fatalf("expected unknown backend to fail")
	}

	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	if _, err := DetectBackend(); err == nil {
		t.Fatalf("expected detection to fail with an empty PATH")
	}
}

func TestMenu_Navigation(t *testing.T) {
	items := []MenuItem{
		{Label: "Header", IsHeader: true},
		{Label: "Move", Submenu: []MenuItem{{Label: "move left", Action: "move left"}}},
		{Label: "retile", Action: "retile"},
	}

	tests := []struct {
		name    string
		actions []string
		want    string
		err     error
	}{
		{"leaf", []string{"retile"}, "retile", nil},
		{"header ignored", []string{"", "retile"}, "retile", nil},
		{"submenu", []string{"__submenu__:1", "move left"}, "move left", nil},
		{"back then leaf", []string{"__submenu__:1", "__back__", "retile"}, "retile", nil},
		{"bad submenu index", []string{"__submenu__:9", "retile"}, "retile", nil},
		{"cancel", nil, "", ErrCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBackend{actions: tt.actions}
			got, err := NewMenu(fb, "flextile", items).Show()
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			if got != tt.want {
				t.Fatalf("action = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMenu_PromptFollowsBreadcrumb(t *testing.T) {
	fb := &fakeBackend{actions: []string{"__submenu__:0", "move left"}}
	items := []MenuItem{{Label: "Move", Submenu: []MenuItem{{Label: "move left", Action: "move left"}}}}

	if _, err := NewMenu(fb, "flextile", items).Show(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fb.prompts) != 2 || fb.prompts[0] != "flextile" || fb.prompts[1] != "Move" {
		t.Fatalf("prompts = %v", fb.prompts)
	}
	if fb.rows[1][0].Action != backAction {
		t.Fatalf("submenu should start with a back row, got %+v", fb.rows[1][0])
	}
}

func TestCommandMenu_LeavesParse(t *testing.T) {
	var walk func([]MenuItem)
	count := 0
	walk = func(items []MenuItem) {
		for _, item := range items {
			if item.IsParent() {
				walk(item.Submenu)
				continue
			}
			count++
			cmd, err := wm.ParseCommand(item.Action)
			if err != nil {
				t.Fatalf("%q: %v", item.Action, err)
			}
			if cmd.String() != item.Action {
				t.Fatalf("%q is not canonical (%q)", item.Action, cmd.String())
			}
		}
	}
	walk(CommandMenu(""))
	if count < 30 {
		t.Fatalf("expected every layout command in the menu, got %d leaves", count)
	}
}

func TestCommandMenu_MarksAddMode(t *testing.T) {
	var modes []MenuItem
	for _, item := range CommandMenu("vertical-split") {
		if item.Label == "Add mode" {
			modes = item.Submenu
		}
	}
	active := 0
	for _, m := range modes {
		if m.IsActive {
			active++
			if m.Action != "mode vertical-split" {
				t.Fatalf("active mode = %q", m.Action)
			}
		}
	}
	if active != 1 {
		t.Fatalf("expected one active mode, got %d", active)
	}
}

// fakeBackend returns the row whose action matches the next scripted
// action; "" picks the first header.
type fakeBackend struct {
	actions []string
	prompts []string
	rows    [][]Item
}

func (f *fakeBackend) Show(prompt string, items []Item, message string) (Item, error) {
	f.prompts = append(f.prompts, prompt)
	f.rows = append(f.rows, items)
	if len(f.actions) == 0 {
		return Item{}, ErrCancelled
	}
	want := f.actions[0]
	f.actions = f.actions[1:]
	for _, item := range items {
		if (want == "" && item.IsHeader) || (want != "" && item.Action == want) {
			return item, nil
		}
	}
	return Item{Action: want}, nil
}

func (f *fakeBackend) Capabilities() Capabilities { return Capabilities{} }

func (f *fakeBackend) Name() string { return "fake" }

func containsArg(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

func containsArgs(args []string, a, b string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == a && args[i+1] == b {
			return true
		}
	}
	return false
}
