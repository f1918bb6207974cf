package frame

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/achilleasa/pbr/types"
)

func TestToneMap(t *testing.T) {
	type spec struct {
		in  types.Vec3
		exp RGB
	}

	specs := []spec{
		{types.XYZ(0, 0, 0), RGB{0, 0, 0}},
		{types.XYZ(1, 1, 1), RGB{255, 255, 255}},
		// Out of range values are clamped
		{types.XYZ(-3, 7, math.Inf(1)), RGB{0, 255, 255}},
		// Mid grey gets lifted by the gamma curve
		{types.XYZ(0.5, 0.5, 0.5), RGB{186, 186, 186}},
		{types.XYZ(0.2, 0, 1), RGB{123, 0, 255}},
	}

	for index, s := range specs {
		if got := ToneMap(s.in); got != s.exp {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
	}
}

func TestBufferAddressing(t *testing.T) {
	type spec struct {
		origin Origin
		x, y   int
		expOff int
	}

	specs := []spec{
		{TopLeft, 0, 0, 0},
		{TopLeft, 2, 1, 3 * (1*4 + 2)},
		{BottomLeft, 0, 0, 3 * (2 * 4)},
		{BottomLeft, 3, 2, 3 * 3},
	}

	for index, s := range specs {
		buf := New(4, 3, s.origin)
		buf.Set(s.x, s.y, RGB{10, 20, 30})

		if got := buf.Pix[s.expOff : s.expOff+3]; !bytes.Equal(got, []byte{10, 20, 30}) {
			t.Fatalf("[spec %d] expected pixel bytes at offset %d; got %v", index, s.expOff, got)
		}
		if c := buf.Get(s.x, s.y); c != (RGB{10, 20, 30}) {
			t.Fatalf("[spec %d] expected Get to return the stored color; got %v", index, c)
		}
	}
}

func TestOriginPlaneV(t *testing.T) {
	// Row 0 maps to the top of the image plane with a TopLeft origin and to
	// the bottom with a BottomLeft origin.
	if v := TopLeft.PlaneV(0); v != 0.5 {
		t.Fatalf("expected top-left v(0) = 0.5; got %f", v)
	}
	if v := BottomLeft.PlaneV(0); v != -0.5 {
		t.Fatalf("expected bottom-left v(0) = -0.5; got %f", v)
	}

	// A logical row under one policy maps to the same plane offset as the
	// mirrored row under the other policy.
	for f := 0.0; f <= 1.0; f += 0.125 {
		if TopLeft.PlaneV(f) != BottomLeft.PlaneV(1-f) {
			t.Fatalf("expected mirrored plane offsets for f=%f", f)
		}
	}
}

func TestParseOrigin(t *testing.T) {
	for _, name := range []string{"top", "bottom"} {
		origin, err := ParseOrigin(name)
		if err != nil {
			t.Fatal(err)
		}
		if origin.String() != name {
			t.Fatalf("expected origin %s; got %s", name, origin)
		}
	}

	if _, err := ParseOrigin("sideways"); err == nil {
		t.Fatal("expected an error for an unknown origin")
	}
}

func TestWritePPM(t *testing.T) {
	buf := New(2, 2, TopLeft)
	buf.Set(0, 0, RGB{255, 0, 0})
	buf.Set(1, 0, RGB{0, 255, 0})
	buf.Set(0, 1, RGB{0, 0, 255})
	buf.Set(1, 1, RGB{1, 2, 3})

	var out bytes.Buffer
	if err := buf.WritePPM(&out); err != nil {
		t.Fatal(err)
	}

	exp := append([]byte("P6 2 2 255\n"), 255, 0, 0, 0, 255, 0, 0, 0, 255, 1, 2, 3)
	if !bytes.Equal(out.Bytes(), exp) {
		t.Fatalf("expected ppm data %v; got %v", exp, out.Bytes())
	}
}

func TestWritePPMHeaderSize(t *testing.T) {
	buf := New(17, 5, BottomLeft)

	var out bytes.Buffer
	if err := buf.WritePPM(&out); err != nil {
		t.Fatal(err)
	}

	header := fmt.Sprintf("P6 %d %d 255\n", 17, 5)
	if out.Len() != len(header)+3*17*5 {
		t.Fatalf("expected %d bytes; got %d", len(header)+3*17*5, out.Len())
	}
}

func TestImageConversion(t *testing.T) {
	buf := New(3, 2, BottomLeft)
	buf.Set(2, 0, RGB{9, 8, 7})

	img := buf.Image()
	r, g, b, a := img.At(2, 1).RGBA()
	if r>>8 != 9 || g>>8 != 8 || b>>8 != 7 || a>>8 != 255 {
		t.Fatalf("expected bottom-right pixel (9, 8, 7, 255); got (%d, %d, %d, %d)", r>>8, g>>8, b>>8, a>>8)
	}
}
