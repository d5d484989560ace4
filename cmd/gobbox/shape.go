package main

import (
	"fmt"
	"log/slog"

	"github.com/philipparndt/gobbox/pkg/geometry"
	"github.com/philipparndt/gobbox/pkg/kernel"
	"github.com/philipparndt/gobbox/pkg/kernel/sdfx"
	"github.com/philipparndt/gobbox/pkg/report"
	"github.com/philipparndt/gobbox/pkg/stl"
	"github.com/spf13/cobra"
)

type shapeOptions struct {
	translate []float64
	hole      float64
	export    string
	cells     int
	unit      string
}

func newShapeCmd(opts *globalOptions) *cobra.Command {
	so := &shapeOptions{}

	cmd := &cobra.Command{
		Use:   "shape",
		Short: "Build a solid with the sdfx kernel and measure it",
		Long: `Build a primitive solid with the sdfx geometry kernel, optionally drill a hole
through it and move it, then measure the bounding box reported by the kernel.`,
	}

	flags := cmd.PersistentFlags()
	flags.Float64SliceVar(&so.translate, "translate", nil, "move the solid by x,y,z")
	flags.Float64Var(&so.hole, "hole", 0, "drill a hole of this radius along Z through the solid")
	flags.StringVar(&so.export, "export", "", "tessellate the solid and write it to this STL file")
	flags.IntVar(&so.cells, "cells", 0, "tessellation resolution (default from settings)")
	flags.StringVarP(&so.unit, "unit", "u", "", "unit label")

	var size []float64
	box := &cobra.Command{
		Use:   "box --size x,y,z",
		Short: "Box centered on the origin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(size) != 3 {
				return fmt.Errorf("--size needs exactly three values")
			}
			return so.run(cmd, opts, func(k kernel.Kernel) (kernel.Solid, error) {
				return k.Box(size[0], size[1], size[2])
			})
		},
	}
	box.Flags().Float64SliceVar(&size, "size", nil, "edge lengths x,y,z")
	_ = box.MarkFlagRequired("size")

	var sphereRadius float64
	sphere := &cobra.Command{
		Use:   "sphere --radius r",
		Short: "Sphere centered on the origin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return so.run(cmd, opts, func(k kernel.Kernel) (kernel.Solid, error) {
				return k.Sphere(sphereRadius)
			})
		},
	}
	sphere.Flags().Float64VarP(&sphereRadius, "radius", "r", 0, "radius")
	_ = sphere.MarkFlagRequired("radius")

	var cylHeight, cylRadius float64
	cylinder := &cobra.Command{
		Use:   "cylinder --height h --radius r",
		Short: "Cylinder along Z centered on the origin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return so.run(cmd, opts, func(k kernel.Kernel) (kernel.Solid, error) {
				return k.Cylinder(cylHeight, cylRadius)
			})
		},
	}
	cylinder.Flags().Float64Var(&cylHeight, "height", 0, "height")
	cylinder.Flags().Float64VarP(&cylRadius, "radius", "r", 0, "radius")
	_ = cylinder.MarkFlagRequired("height")
	_ = cylinder.MarkFlagRequired("radius")

	cmd.AddCommand(box, sphere, cylinder)
	return cmd
}

func (so *shapeOptions) run(cmd *cobra.Command, opts *globalOptions, build func(kernel.Kernel) (kernel.Solid, error)) error {
	if so.translate != nil && len(so.translate) != 3 {
		return fmt.Errorf("--translate needs exactly three values")
	}

	k := sdfx.New()
	solid, err := build(k)
	if err != nil {
		return err
	}

	if so.hole > 0 {
		solid, err = drill(k, solid, so.hole)
		if err != nil {
			return err
		}
	}

	if so.translate != nil {
		solid = k.Translate(solid, geometry.NewVector3(so.translate[0], so.translate[1], so.translate[2]))
	}

	result, err := kernel.Measure(solid, opts.unit(so.unit, ""))
	if err != nil {
		return err
	}

	if so.export != "" {
		if err := so.exportSTL(k, solid, opts.cfg.Cells); err != nil {
			return err
		}
	}

	return opts.write(cmd, report.Document{Source: "sdfx " + cmd.Name(), Measurement: result})
}

// drill subtracts a Z cylinder through the center of the solid's bounding box
func drill(k kernel.Kernel, solid kernel.Solid, radius float64) (kernel.Solid, error) {
	bbox := solid.BoundingBox()
	cyl, err := k.Cylinder(bbox.Size().Z+2, radius)
	if err != nil {
		return nil, err
	}
	center := bbox.Center()
	return k.Difference(solid, k.Translate(cyl, center)), nil
}

func (so *shapeOptions) exportSTL(k kernel.Kernel, solid kernel.Solid, defaultCells int) error {
	cells := so.cells
	if cells <= 0 {
		cells = defaultCells
	}

	model, err := k.Tessellate(solid, cells)
	if err != nil {
		return err
	}
	if err := stl.Save(so.export, model); err != nil {
		return err
	}

	slog.Info("exported STL", "file", so.export, "triangles", model.TriangleCount(), "cells", cells)
	return nil
}
