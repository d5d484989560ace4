package main

import (
	"log/slog"
	"slices"

	"github.com/philipparndt/gobbox/pkg/analysis"
	"github.com/philipparndt/gobbox/pkg/loader"
	"github.com/philipparndt/gobbox/pkg/report"
	"github.com/philipparndt/gobbox/pkg/watcher"
	"github.com/spf13/cobra"
)

type fileOptions struct {
	unit     string
	watch    bool
	edges    int
	longest  bool
	shortest bool
}

func newFileCmd(opts *globalOptions) *cobra.Command {
	fo := &fileOptions{}

	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Measure the bounding box of an STL, 3MF or OpenSCAD file",
		Long: `Load a mesh and report its bounding box metrics and mesh statistics.
OpenSCAD files are rendered with the openscad binary first. With --watch the
file and its dependencies are re-measured whenever they change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fo.watch {
				return fo.watchFile(cmd, opts, args[0])
			}
			_, err := fo.measure(cmd, opts, args[0])
			return err
		},
	}

	cmd.Flags().StringVarP(&fo.unit, "unit", "u", "", "unit label, overrides the unit declared by the file")
	cmd.Flags().BoolVarP(&fo.watch, "watch", "w", false, "re-measure when the file changes")
	cmd.Flags().IntVarP(&fo.edges, "edges", "n", 0, "list this many edges")
	cmd.Flags().BoolVarP(&fo.longest, "longest", "l", false, "list the longest edges")
	cmd.Flags().BoolVarP(&fo.shortest, "shortest", "s", false, "list the shortest edges")
	cmd.MarkFlagsMutuallyExclusive("longest", "shortest")

	return cmd
}

func (fo *fileOptions) measure(cmd *cobra.Command, opts *globalOptions, path string) (*loader.Source, error) {
	src, err := loader.Load(cmd.Context(), path)
	if err != nil {
		return nil, err
	}

	rep, err := analysis.AnalyzeModel(src.Model, opts.unit(fo.unit, src.Unit))
	if err != nil {
		return nil, err
	}

	doc := report.Document{
		Source:      path,
		Measurement: rep.Measurement,
		Mesh:        &rep.Mesh,
		Edges:       fo.selectEdges(rep),
	}
	return src, opts.write(cmd, doc)
}

func (fo *fileOptions) selectEdges(rep *analysis.ModelReport) []analysis.EdgeInfo {
	if fo.edges <= 0 {
		return nil
	}
	switch {
	case fo.longest:
		return analysis.FindLongestEdges(rep, fo.edges)
	case fo.shortest:
		return analysis.FindShortestEdges(rep, fo.edges)
	default:
		return rep.AllEdges[:min(fo.edges, len(rep.AllEdges))]
	}
}

func (fo *fileOptions) watchFile(cmd *cobra.Command, opts *globalOptions, path string) error {
	src, err := fo.measure(cmd, opts, path)
	if err != nil {
		return err
	}

	debounce, err := opts.cfg.DebounceDuration()
	if err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(debounce)
	if err != nil {
		return err
	}
	defer fw.Close()

	changes := make(chan string, 1)
	notify := func(file string) {
		select {
		case changes <- file:
		default:
		}
	}

	if err := fw.Watch(src.Watch, notify); err != nil {
		return err
	}

	ctx := cmd.Context()
	fw.Start(ctx)
	slog.Info("watching for changes", "files", src.Watch)

	for {
		select {
		case <-ctx.Done():
			return nil

		case file := <-changes:
			slog.Info("file changed, measuring again", "file", file)

			next, err := fo.measure(cmd, opts, path)
			if err != nil {
				slog.Error("measurement failed", "error", err)
				continue
			}

			if !slices.Equal(next.Watch, src.Watch) {
				if err := fw.RemoveAll(); err != nil {
					return err
				}
				if err := fw.Watch(next.Watch, notify); err != nil {
					return err
				}
				src = next
			}
		}
	}
}
