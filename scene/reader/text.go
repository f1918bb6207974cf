package reader

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/pbr/asset"
	"github.com/achilleasa/pbr/log"
	"github.com/achilleasa/pbr/scene"
	"github.com/achilleasa/pbr/types"
)

const (
	// Max nesting level for include directives.
	maxIncludeDepth = 16
)

type textSceneReader struct {
	logger log.Logger

	ctx context.Context

	// The parsed scene.
	sceneGraph *scene.Scene

	// Named materials.
	materials map[string]scene.Material

	// Camera settings; the camera is built once parsing completes.
	hasCamera   bool
	cameraPos   types.Vec3
	cameraLook  types.Vec3
	fieldOfView float64

	// An error stack that provides additional error information when
	// scene files include other files.
	errStack []string
}

// Read a scene description from a local file or a http/https URL.
func ReadScene(pathToScene string) (*scene.Scene, error) {
	return ReadSceneContext(context.Background(), pathToScene)
}

// Read a scene description using ctx for fetching remote resources.
func ReadSceneContext(ctx context.Context, pathToScene string) (*scene.Scene, error) {
	res, err := asset.NewResourceContext(ctx, pathToScene, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return newTextReader(ctx).Read(res)
}

// Read a scene description from an already opened resource.
func Read(res *asset.Resource) (*scene.Scene, error) {
	return newTextReader(context.Background()).Read(res)
}

func newTextReader(ctx context.Context) *textSceneReader {
	return &textSceneReader{
		logger:     log.New("scene reader"),
		ctx:        ctx,
		sceneGraph: scene.NewScene(),
		materials:  make(map[string]scene.Material),
		cameraLook: types.XYZ(0, 0, 1),
		errStack:   make([]string, 0),
	}
}

// Read scene definition.
func (r *textSceneReader) Read(sceneRes *asset.Resource) (*scene.Scene, error) {
	r.logger.Infof("parsing scene from %s", sceneRes.Path())
	start := time.Now()

	if err := r.parse(sceneRes); err != nil {
		return nil, err
	}

	if r.hasCamera {
		frameW, frameH := r.sceneGraph.FrameW, r.sceneGraph.FrameH
		if frameW == 0 || frameH == 0 {
			frameW, frameH = 1, 1
		}
		camera := scene.NewCamera(frameW, frameH)
		camera.MoveTo(r.cameraPos)
		camera.LookAt(r.cameraLook)
		camera.SetFieldOfView(r.fieldOfView)
		r.sceneGraph.SetCamera(camera)
	}

	r.logger.Infof("parsed scene in %d ms: %s", time.Since(start).Nanoseconds()/1000000, r.sceneGraph)
	return r.sceneGraph, nil
}

// Annotate err with the file location and any data in the error stack.
func (r *textSceneReader) emitError(file string, line int, err error) error {
	if len(r.errStack) == 0 {
		return fmt.Errorf("[%s: %d] error: %w", file, line, err)
	}
	return fmt.Errorf("[%s: %d] error: %w\n%s", file, line, err, strings.Join(r.errStack, "\n"))
}

// Push a frame to the error stack.
func (r *textSceneReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *textSceneReader) popFrame() {
	r.errStack = r.errStack[1:]
}

// Parse text scene format.
func (r *textSceneReader) parse(res *asset.Resource) error {
	lineNum := 0

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++

		line := scanner.Text()
		if commentIdx := strings.IndexByte(line, '#'); commentIdx != -1 {
			line = line[:commentIdx]
		}
		lineTokens := strings.Fields(line)
		if len(lineTokens) == 0 {
			continue
		}

		var err error
		switch lineTokens[0] {
		case "include":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, fmt.Errorf("unsupported syntax for 'include'; expected 1 argument; got %d", len(lineTokens)-1))
			}
			if len(r.errStack) >= maxIncludeDepth {
				return r.emitError(res.Path(), lineNum, fmt.Errorf("include depth exceeds %d levels", maxIncludeDepth))
			}

			incRes, err := asset.NewResourceContext(r.ctx, lineTokens[1], res)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [include]", res.Path(), lineNum))
			err = r.parse(incRes)
			incRes.Close()
			if err != nil {
				return err
			}
			r.popFrame()
			continue
		case "size":
			err = r.parseSize(lineTokens)
		case "camera":
			err = r.parseCamera(lineTokens)
		case "fov":
			err = r.parseFieldOfView(lineTokens)
		case "material":
			err = r.parseMaterial(lineTokens)
		case "sphere":
			err = r.parseSphere(lineTokens)
		case "plane":
			err = r.parsePlane(lineTokens)
		default:
			err = fmt.Errorf("unknown keyword '%s'", lineTokens[0])
		}

		if err != nil {
			return r.emitError(res.Path(), lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, fmt.Errorf("read error: %w", err))
	}
	return nil
}

func (r *textSceneReader) parseSize(lineTokens []string) error {
	if len(lineTokens) != 3 {
		return fmt.Errorf("unsupported syntax for 'size'; expected 2 arguments; got %d", len(lineTokens)-1)
	}

	var dims [2]uint32
	for tokIdx := 1; tokIdx <= 2; tokIdx++ {
		val, err := strconv.ParseUint(lineTokens[tokIdx], 10, 32)
		if err != nil {
			return err
		}
		if val == 0 {
			return fmt.Errorf("frame dimensions must be positive")
		}
		dims[tokIdx-1] = uint32(val)
	}

	r.sceneGraph.FrameW, r.sceneGraph.FrameH = dims[0], dims[1]
	return nil
}

func (r *textSceneReader) parseCamera(lineTokens []string) error {
	if len(lineTokens) != 7 {
		return fmt.Errorf("unsupported syntax for 'camera'; expected 6 arguments; got %d", len(lineTokens)-1)
	}

	pos, err := parseVec3(lineTokens[0:4])
	if err != nil {
		return err
	}
	look, err := parseVec3(append([]string{lineTokens[0]}, lineTokens[4:7]...))
	if err != nil {
		return err
	}

	dir := look.Sub(pos)
	if dir.Len() == 0 {
		return fmt.Errorf("camera target must differ from the camera position")
	}
	if dir[0] == 0 && dir[2] == 0 {
		return fmt.Errorf("camera cannot look straight up or down")
	}

	r.hasCamera = true
	r.cameraPos = pos
	r.cameraLook = look
	return nil
}

func (r *textSceneReader) parseFieldOfView(lineTokens []string) error {
	fov, err := parseFloat(lineTokens)
	if err != nil {
		return err
	}

	// Negated so that NaN is rejected too
	if !(fov > 0 && fov < 180) {
		return fmt.Errorf("field of view must be between 0 and 180 degrees; got %g", fov)
	}

	r.fieldOfView = fov
	return nil
}

func (r *textSceneReader) parseMaterial(lineTokens []string) error {
	if len(lineTokens) != 8 {
		return fmt.Errorf("unsupported syntax for 'material'; expected 7 arguments; got %d", len(lineTokens)-1)
	}

	name := lineTokens[1]
	if _, exists := r.materials[name]; exists {
		return fmt.Errorf("material '%s' already defined", name)
	}

	albedo, err := parseVec3(append([]string{lineTokens[0]}, lineTokens[2:5]...))
	if err != nil {
		return err
	}
	emission, err := parseVec3(append([]string{lineTokens[0]}, lineTokens[5:8]...))
	if err != nil {
		return err
	}

	r.materials[name] = scene.Material{Albedo: albedo, Emission: emission}
	return nil
}

// Lookup a previously defined material.
func (r *textSceneReader) material(name string) (scene.Material, error) {
	mat, exists := r.materials[name]
	if !exists {
		return scene.Material{}, fmt.Errorf("undefined material with name '%s'", name)
	}
	return mat, nil
}

func (r *textSceneReader) parseSphere(lineTokens []string) error {
	if len(lineTokens) != 6 {
		return fmt.Errorf("unsupported syntax for 'sphere'; expected 5 arguments; got %d", len(lineTokens)-1)
	}

	center, err := parseVec3(lineTokens[0:4])
	if err != nil {
		return err
	}
	radius, err := parseFloat([]string{lineTokens[0], lineTokens[4]})
	if err != nil {
		return err
	}
	mat, err := r.material(lineTokens[5])
	if err != nil {
		return err
	}

	_, err = r.sceneGraph.AddPrimitive(scene.NewSphere(center, radius, mat))
	return err
}

func (r *textSceneReader) parsePlane(lineTokens []string) error {
	if len(lineTokens) != 8 {
		return fmt.Errorf("unsupported syntax for 'plane'; expected 7 arguments; got %d", len(lineTokens)-1)
	}

	point, err := parseVec3(lineTokens[0:4])
	if err != nil {
		return err
	}
	normal, err := parseVec3(append([]string{lineTokens[0]}, lineTokens[4:7]...))
	if err != nil {
		return err
	}
	mat, err := r.material(lineTokens[7])
	if err != nil {
		return err
	}

	_, err = r.sceneGraph.AddPrimitive(scene.NewPlane(point, normal, mat))
	return err
}

// Parse a float row.
func parseFloat(lineTokens []string) (float64, error) {
	if len(lineTokens) != 2 {
		return 0, fmt.Errorf("unsupported syntax for '%s'; expected 1 argument; got %d", lineTokens[0], len(lineTokens)-1)
	}

	return strconv.ParseFloat(lineTokens[1], 64)
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) != 4 {
		return types.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 64)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = coord
	}
	return v, nil
}
