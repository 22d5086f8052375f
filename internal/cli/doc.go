package cli

import (
	"encoding/json"
	"slices"

	"github.com/spf13/cobra"

	"github.com/VergilAI/brand-book-sub003/internal/document"
	"github.com/VergilAI/brand-book-sub003/internal/geom"
)

func newDocCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Work with editor documents",
	}
	cmd.AddCommand(newDocSampleCmd(app))
	cmd.AddCommand(newDocInspectCmd(app))
	return cmd
}

func newDocSampleCmd(app *App) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the built-in sample document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := document.NewSampleDocument(name).Marshal()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, json.RawMessage(data))
		},
	}
	cmd.Flags().StringVar(&name, "name", "Sample", "Document name")
	return cmd
}

type shapeSummary struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Vertices int       `json:"vertices"`
	Bounds   geom.Rect `json:"bounds"`
	Opacity  float64   `json:"opacity"`
}

func newDocInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file|->",
		Short: "Validate a document and summarize its shapes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readFile(cmd, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, err := document.Parse(data)
			if err != nil {
				return writeErr(cmd, err)
			}

			ids := make([]string, 0, len(doc.Shapes))
			for id := range doc.Shapes {
				ids = append(ids, id)
			}
			slices.Sort(ids)

			shapes := make([]shapeSummary, 0, len(ids))
			for _, id := range ids {
				s := doc.Shapes[id]
				shapes = append(shapes, shapeSummary{
					ID:       id,
					Name:     s.Name,
					Vertices: len(s.Vertices()),
					Bounds:   s.Bounds(),
					Opacity:  s.Opacity,
				})
			}
			return writeOut(cmd, app, map[string]any{
				"name":    doc.Metadata.Name,
				"version": doc.Version,
				"shapes":  shapes,
			})
		},
	}
}
