package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/flextile/internal/ipc"
	"github.com/1broseidon/flextile/internal/wm"
)

func layoutsFromTree(tree *ipc.TreeData, only *int) []DisplayLayout {
	out := make([]DisplayLayout, 0, len(tree.Displays))
	for _, d := range tree.Displays {
		if only != nil && d.DisplayID != *only {
			continue
		}
		dl := DisplayLayout{
			Display:  d.DisplayID,
			Shape:    d.Shape,
			AddMode:  d.AddMode,
			Mementos: d.Mementos,
			Windows:  make([]WindowPlacement, 0, len(d.Windows)),
			Debug:    d.Debug,
		}
		for _, w := range d.Windows {
			dl.Windows = append(dl.Windows, WindowPlacement{
				WindowID:  uint32(w.Payload),
				X:         w.Rect.X,
				Y:         w.Rect.Y,
				Width:     w.Rect.Width,
				Height:    w.Rect.Height,
				Focused:   w.Focused,
				Minimized: w.Minimized,
				Fixed:     w.Fixed(),
			})
		}
		out = append(out, dl)
	}
	return out
}

func (s *Server) handleGetLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args GetLayoutInput) (*mcpsdk.CallToolResult, GetLayoutOutput, error) {
	tree, err := s.daemon.GetTree(args.Debug)
	if err != nil {
		return nil, GetLayoutOutput{}, err
	}
	displays := layoutsFromTree(tree, args.Display)
	if args.Display != nil && len(displays) == 0 {
		return nil, GetLayoutOutput{}, fmt.Errorf("no layout for display %d", *args.Display)
	}
	return nil, GetLayoutOutput{Displays: displays}, nil
}

func (s *Server) handleRunCommand(_ context.Context, _ *mcpsdk.CallToolRequest, args RunCommandInput) (*mcpsdk.CallToolResult, RunCommandOutput, error) {
	// Parse locally so a typo gets a precise error without a round trip.
	cmd, err := wm.ParseCommand(args.Command)
	if err != nil {
		return nil, RunCommandOutput{}, err
	}
	canonical := cmd.String()

	if err := s.daemon.Exec(canonical); err != nil {
		return nil, RunCommandOutput{}, fmt.Errorf("%s: %w", canonical, err)
	}

	tree, err := s.daemon.GetTree(false)
	if err != nil {
		return nil, RunCommandOutput{}, err
	}
	return nil, RunCommandOutput{
		Command:  canonical,
		Displays: layoutsFromTree(tree, nil),
	}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.daemon.GetWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	out := ListWindowsOutput{Windows: make([]WindowEntry, 0, len(data.Windows))}
	for _, w := range data.Windows {
		if args.Class != "" && !strings.EqualFold(w.Class, args.Class) {
			continue
		}
		out.Windows = append(out.Windows, WindowEntry{
			WindowID: w.ID,
			Display:  w.Display,
			Title:    w.Title,
			Class:    w.Class,
			Tiled:    w.Tiled,
			Hidden:   w.Hidden,
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.daemon.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	return nil, GetStatusOutput{
		Displays:      status.Displays,
		WindowCount:   status.WindowCount,
		UptimeSeconds: status.UptimeSeconds,
	}, nil
}

func (s *Server) handleReloadConfig(_ context.Context, _ *mcpsdk.CallToolRequest, _ ReloadConfigInput) (*mcpsdk.CallToolResult, ReloadConfigOutput, error) {
	if err := s.daemon.Reload(); err != nil {
		return nil, ReloadConfigOutput{}, err
	}
	return nil, ReloadConfigOutput{Reloaded: true}, nil
}
