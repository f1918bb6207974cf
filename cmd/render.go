package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/achilleasa/pbr/frame"
	"github.com/achilleasa/pbr/renderer"
	"github.com/achilleasa/pbr/scene"
	"github.com/achilleasa/pbr/scene/reader"
	"github.com/achilleasa/pbr/tracer"
	"github.com/achilleasa/pbr/tracer/cpu"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene argument; expected a preset name, a scene file or a url")
	}

	opts, err := renderOptions(ctx)
	if err != nil {
		return err
	}
	if ctx.String("thumbnail") != "" && ctx.Int("thumbnail-size") <= 0 {
		return fmt.Errorf("%w: --thumbnail-size must be positive; got %d", renderer.ErrInvalidOptions, ctx.Int("thumbnail-size"))
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sc, err := loadScene(sigCtx, ctx.Args().First(), opts.FrameW, opts.FrameH)
	if err != nil {
		return err
	}

	// Scene files may request a frame size; explicit flags win
	if sc.FrameW != 0 && sc.FrameH != 0 && !ctx.IsSet("width") && !ctx.IsSet("height") {
		opts.FrameW, opts.FrameH = sc.FrameW, sc.FrameH
	}
	logger.Infof("scene contents: %s", sc)

	r, err := renderer.NewDefault(sc, tracer.NewFixedScheduler(opts.BlockHeight), cpu.NewTracer("cpu-0"), opts)
	if err != nil {
		return err
	}
	defer r.Close()

	outFile := ctx.String("out")
	fb, err := r.Render(sigCtx)
	if err != nil {
		// Keep whatever rows were traced before the interruption
		if errors.Is(err, renderer.ErrInterrupted) && fb != nil {
			logger.Warningf("render interrupted; saving partial frame to %s", outFile)
			if saveErr := frame.Save(fb, outFile); saveErr != nil {
				logger.Errorf("could not save partial frame: %v", saveErr)
			}
		}
		return err
	}

	// Display stats
	logger.Noticef("frame statistics\n%s", formatFrameStats(r.Stats()))

	if err = frame.Save(fb, outFile); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", outFile)

	if thumbFile := ctx.String("thumbnail"); thumbFile != "" {
		size := uint(ctx.Int("thumbnail-size"))
		if err = frame.SaveThumbnail(fb, thumbFile, size, size); err != nil {
			return err
		}
		logger.Noticef("wrote %dpx thumbnail to %s", size, thumbFile)
	}

	if bucket := ctx.String("s3-bucket"); bucket != "" {
		uploader, err := frame.NewS3Uploader(frame.S3Config{
			Bucket:    bucket,
			Region:    ctx.String("s3-region"),
			Endpoint:  ctx.String("s3-endpoint"),
			AccessKey: ctx.String("s3-access-key"),
			SecretKey: ctx.String("s3-secret-key"),
			ACL:       ctx.String("s3-acl"),
		})
		if err != nil {
			return err
		}

		key := ctx.String("s3-key")
		if key == "" {
			key = filepath.Base(outFile)
		}
		if err = uploader.UploadFrame(sigCtx, key, fb); err != nil {
			return err
		}
		logger.Noticef("uploaded frame to s3://%s/%s", bucket, key)
	}

	return nil
}

// Populate render options from the command flags. Values are range checked
// before they are narrowed to the unsigned option fields.
func renderOptions(ctx *cli.Context) (renderer.Options, error) {
	origin, err := frame.ParseOrigin(ctx.String("origin"))
	if err != nil {
		return renderer.Options{}, err
	}

	for _, name := range []string{"width", "height", "spp", "max-depth", "block-height"} {
		val := ctx.Int(name)
		if val < 0 || (val == 0 && name != "block-height") {
			return renderer.Options{}, fmt.Errorf("%w: --%s must be positive; got %d", renderer.ErrInvalidOptions, name, val)
		}
		if uint64(val) > math.MaxUint32 {
			return renderer.Options{}, fmt.Errorf("%w: --%s is out of range; got %d", renderer.ErrInvalidOptions, name, val)
		}
	}

	return renderer.Options{
		FrameW:          uint32(ctx.Int("width")),
		FrameH:          uint32(ctx.Int("height")),
		SamplesPerPixel: uint32(ctx.Int("spp")),
		MaxDepth:        uint32(ctx.Int("max-depth")),
		Seed:            ctx.Int64("seed"),
		BlockHeight:     uint32(ctx.Int("block-height")),
		Origin:          origin,
	}, nil
}

// Build a preset scene or read a scene description from a file or url.
func loadScene(ctx context.Context, source string, frameW, frameH uint32) (*scene.Scene, error) {
	if _, isPreset := scene.Presets[source]; isPreset {
		logger.Infof("using scene preset %q", source)
		return scene.BuildPreset(source, frameW, frameH)
	}
	return reader.ReadSceneContext(ctx, source)
}

func formatFrameStats(stats renderer.FrameStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Rows", "% of frame", "Primary rays", "Render time"})
	for _, stat := range stats.Blocks {
		table.Append([]string{
			stat.TracerId,
			fmt.Sprintf("%d-%d", stat.BlockY, stat.BlockY+stat.BlockH-1),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%d", stat.PrimaryRays),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{
		"", "", "TOTAL",
		fmt.Sprintf("%d (%.0f/s)", stats.PrimaryRays, stats.RaysPerSecond()),
		stats.RenderTime.String(),
	})

	table.Render()
	return buf.String()
}
