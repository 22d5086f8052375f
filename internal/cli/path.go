package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VergilAI/brand-book-sub003/internal/geom"
	"github.com/VergilAI/brand-book-sub003/internal/svgpath"
)

func newPathCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Decode, encode and transform SVG path data",
	}
	cmd.AddCommand(newPathDecodeCmd(app))
	cmd.AddCommand(newPathEncodeCmd(app))
	cmd.AddCommand(newPathTranslateCmd(app))
	cmd.AddCommand(newPathBoundsCmd(app))
	return cmd
}

func newPathDecodeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <path|->",
		Short: "Print the vertices of a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			verts := svgpath.Decode(strings.TrimSpace(string(data)))
			if verts == nil {
				verts = []geom.BezierPoint{}
			}
			return writeOut(cmd, app, map[string]any{"vertices": verts})
		},
	}
}

func newPathEncodeCmd(app *App) *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "encode <vertices-json|->",
		Short: "Encode a JSON vertex list as path data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			var verts []geom.BezierPoint
			if err := json.Unmarshal(data, &verts); err != nil {
				return writeErr(cmd, fmt.Errorf("parse vertices: %w", err))
			}
			return writeOut(cmd, app, map[string]any{"path": svgpath.Encode(verts, !open)})
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "Leave the path open (no Z)")
	return cmd
}

func newPathTranslateCmd(app *App) *cobra.Command {
	var dx, dy float64
	cmd := &cobra.Command{
		Use:   "translate <path|->",
		Short: "Shift every absolute coordinate of a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"path": svgpath.Translate(strings.TrimSpace(string(data)), dx, dy),
			})
		},
	}
	cmd.Flags().Float64Var(&dx, "dx", 0, "Horizontal offset")
	cmd.Flags().Float64Var(&dy, "dy", 0, "Vertical offset")
	return cmd
}

func newPathBoundsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "bounds <path|->",
		Short: "Print the bounding box of a path, controls included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, svgpath.Bounds(strings.TrimSpace(string(data))))
		},
	}
}
