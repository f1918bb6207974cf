package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/pbr/cmd"
	"github.com/achilleasa/pbr/renderer"
	"github.com/achilleasa/pbr/tracer/integrator"
	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	// The default version flag claims -v which is reserved for verbose logging
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pbr"
	app.Usage = "render scenes using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "log level (debug, info, notice, warning, error)",
			EnvVar: "PBR_LOG_LEVEL",
		},
		cli.StringFlag{
			Name:  "env-file",
			Value: ".env",
			Usage: "load environment overrides from this file",
		},
	}
	app.Before = cmd.LoadEnv
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a built-in scene preset, a local scene file or a scene file served over
http(s). The frame is written to the file specified by --out; its format is
selected by the file extension (ppm, png, bmp or tiff).

Pressing ctrl+c aborts the render and saves the rows completed so far.`,
			ArgsUsage: "preset|scene_file|url",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:   "width",
					Value:  renderer.DefaultFrameW,
					Usage:  "frame width",
					EnvVar: "PBR_WIDTH",
				},
				cli.IntFlag{
					Name:   "height",
					Value:  renderer.DefaultFrameH,
					Usage:  "frame height",
					EnvVar: "PBR_HEIGHT",
				},
				cli.IntFlag{
					Name:   "spp",
					Value:  renderer.DefaultSamplesPerPixel,
					Usage:  "samples for each of the 2x2 subpixels",
					EnvVar: "PBR_SPP",
				},
				cli.Int64Flag{
					Name:   "seed",
					Value:  0,
					Usage:  "random seed; renders with the same seed are identical",
					EnvVar: "PBR_SEED",
				},
				cli.IntFlag{
					Name:   "max-depth",
					Value:  integrator.DefaultMaxDepth,
					Usage:  "number of diffuse bounces before paths are terminated",
					EnvVar: "PBR_MAX_DEPTH",
				},
				cli.IntFlag{
					Name:   "block-height",
					Value:  renderer.DefaultBlockHeight,
					Usage:  "number of rows traced per block",
					EnvVar: "PBR_BLOCK_HEIGHT",
				},
				cli.StringFlag{
					Name:   "origin",
					Value:  "top",
					Usage:  "row origin of the output image (top or bottom)",
					EnvVar: "PBR_ORIGIN",
				},
				cli.StringFlag{
					Name:   "out, o",
					Value:  "frame.ppm",
					Usage:  "image filename for the rendered frame",
					EnvVar: "PBR_OUT",
				},
				cli.StringFlag{
					Name:   "thumbnail",
					Usage:  "also write a downscaled preview to this file (png, bmp or tiff)",
					EnvVar: "PBR_THUMBNAIL",
				},
				cli.IntFlag{
					Name:   "thumbnail-size",
					Value:  128,
					Usage:  "max thumbnail width and height",
					EnvVar: "PBR_THUMBNAIL_SIZE",
				},
				cli.StringFlag{
					Name:   "s3-bucket",
					Usage:  "upload the rendered frame to this bucket",
					EnvVar: "PBR_S3_BUCKET",
				},
				cli.StringFlag{
					Name:   "s3-key",
					Usage:  "object key for the uploaded frame; defaults to the output filename",
					EnvVar: "PBR_S3_KEY",
				},
				cli.StringFlag{
					Name:   "s3-region",
					Value:  "us-east-1",
					Usage:  "s3 region",
					EnvVar: "PBR_S3_REGION",
				},
				cli.StringFlag{
					Name:   "s3-endpoint",
					Usage:  "custom s3 endpoint for s3-compatible object stores",
					EnvVar: "PBR_S3_ENDPOINT",
				},
				cli.StringFlag{
					Name:   "s3-access-key",
					EnvVar: "PBR_S3_ACCESS_KEY",
				},
				cli.StringFlag{
					Name:   "s3-secret-key",
					EnvVar: "PBR_S3_SECRET_KEY",
				},
				cli.StringFlag{
					Name:   "s3-acl",
					Usage:  "canned acl for the uploaded object",
					EnvVar: "PBR_S3_ACL",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scene presets",
			Action: cmd.ListScenes,
		},
		{
			Name:      "scene-info",
			Usage:     "print the contents of a scene preset or scene file",
			ArgsUsage: "preset|scene_file|url",
			Action:    cmd.ShowScene,
		},
	}

	return app
}
