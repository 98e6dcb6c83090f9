package renderer

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestToByte(t *testing.T) {
	tests := []struct {
		linear float64
		want   uint8
	}{
		{0, 0},
		{-1, 0},
		{0.25, 128}, // sqrt(0.25) = 0.5
		{1, 255},
		{4, 255},
	}

	for _, tt := range tests {
		if got := ToByte(tt.linear); got != tt.want {
			t.Errorf("ToByte(%v) = %d, want %d", tt.linear, got, tt.want)
		}
	}
}

func TestPPMWriter_Format(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewPPMWriter(&buf, 2, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	rows := [][]core.Vec3{
		{core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},
		{core.NewVec3(0, 0, 1), core.NewVec3(0.25, 0.25, 0.25)},
	}
	for y, row := range rows {
		if err := w.WriteRow(y, row); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := "P3\n2 2\n255\n255 0 0\n0 255 0\n0 0 255\n128 128 128\n"
	if buf.String() != want {
		t.Errorf("Unexpected PPM output:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestPPMWriter_Errors(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewPPMWriter(&buf, 1, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := w.WriteRow(1, []core.Vec3{{}}); err == nil {
		t.Error("Expected an error for an out-of-order row")
	}
	if err := w.WriteRow(0, []core.Vec3{{}, {}}); err == nil {
		t.Error("Expected an error for a row of the wrong width")
	}
	if err := w.WriteRow(0, []core.Vec3{{}}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := w.Close(); err == nil || !strings.Contains(err.Error(), "incomplete") {
		t.Errorf("Expected an incomplete-image error, got %v", err)
	}
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write(p []byte) (int, error) { return 0, errDiskFull }

func TestPPMWriter_PropagatesWriteErrors(t *testing.T) {
	// output is buffered, so the failure surfaces on Close
	w, err := NewPPMWriter(failingWriter{}, 1, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := w.WriteRow(0, []core.Vec3{{}}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := w.Close(); !errors.Is(err, errDiskFull) {
		t.Errorf("Expected errDiskFull, got %v", err)
	}
}

func TestImageBuffer_WritePNG(t *testing.T) {
	b := NewImageBuffer(2, 1)
	if err := b.WriteRow(0, []core.Vec3{core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0)}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := b.WritePNG(&buf); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}

	r, g, b2, a := decoded.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b2>>8 != 255 || a>>8 != 255 {
		t.Errorf("Expected white first pixel, got %d %d %d %d", r>>8, g>>8, b2>>8, a>>8)
	}
	if r, _, _, _ := decoded.At(1, 0).RGBA(); r != 0 {
		t.Errorf("Expected black second pixel, got red %d", r)
	}
}
