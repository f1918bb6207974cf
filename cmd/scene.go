package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/achilleasa/pbr/scene"
	"github.com/achilleasa/pbr/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the built-in scene presets.
func ListScenes(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	logger.Noticef("available scene presets\n%s", formatPresetList())
	return nil
}

// Load a preset or scene file and print a summary of its contents.
func ShowScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene argument; expected a preset name, a scene file or a url")
	}

	sc, err := loadScene(context.Background(), ctx.Args().First(), 1, 1)
	if err != nil {
		return err
	}

	logger.Noticef("scene information\n%s", formatSceneInfo(sc))
	return nil
}

func formatPresetList() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Name", "Description"})
	for _, name := range scene.PresetNames() {
		table.Append([]string{name, scene.Presets[name].Description})
	}
	table.Render()
	return buf.String()
}

func formatSceneInfo(sc *scene.Scene) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Type", "Position", "Size", "Albedo", "Emission"})
	for index, prim := range sc.Primitives {
		var size string
		switch prim.Type {
		case scene.SpherePrimitive:
			size = fmt.Sprintf("r=%g", prim.Radius)
		case scene.PlanePrimitive:
			size = fmt.Sprintf("n=%s", formatVec(prim.Normal))
		}
		table.Append([]string{
			fmt.Sprintf("%d", index),
			prim.Type.String(),
			formatVec(prim.Origin),
			size,
			formatVec(prim.Mat.Albedo),
			formatVec(prim.Mat.Emission),
		})
	}

	camera := "Camera: none"
	if sc.Camera != nil {
		camera = sc.Camera.String()
	}
	frameSize := "unspecified"
	if sc.FrameW != 0 && sc.FrameH != 0 {
		frameSize = fmt.Sprintf("%dx%d", sc.FrameW, sc.FrameH)
	}
	table.SetFooter([]string{"", "", "", "", "TOTAL", fmt.Sprintf("%d", sc.Len())})
	table.Render()

	return fmt.Sprintf("%s\nFrame    : %s\n%s", camera, frameSize, buf.String())
}

func formatVec(v types.Vec3) string {
	return fmt.Sprintf("(%g, %g, %g)", v[0], v[1], v[2])
}
