package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// PLYData contains the geometry loaded from a PLY file
type PLYData struct {
	Vertices []core.Vec3 // Vertex positions (x, y, z)
	Faces    []int       // Triangle indices, 3 per triangle; polygons are fan-triangulated
}

// plyProperty represents a property definition in the PLY header
type plyProperty struct {
	name      string
	dataType  string // Scalar type, or element type for lists
	isList    bool
	countType string // Type of the list length prefix
}

type plyElement struct {
	name  string
	count int
	props []plyProperty
}

type plyHeader struct {
	format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	elements []plyElement
}

// LoadPLY loads a PLY file and returns its vertex and face data
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	return ReadPLY(file)
}

// LoadPLYMesh loads a PLY file as a triangle mesh with a single material
func LoadPLYMesh(filename string, mat material.Material) (*geometry.TriangleMesh, error) {
	data, err := LoadPLY(filename)
	if err != nil {
		return nil, err
	}
	mesh, err := geometry.NewTriangleMesh(data.Vertices, data.Faces, mat, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid mesh in %s: %w", filename, err)
	}
	return mesh, nil
}

// ReadPLY parses ASCII and binary PLY streams.
// Only vertex positions and face index lists are kept; other elements and properties are skipped.
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.format {
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		values = &asciiValueReader{scanner: scanner}
	case "binary_little_endian":
		values = &binaryValueReader{r: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValueReader{r: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %q", header.format)
	}

	data := &PLYData{}
	for _, element := range header.elements {
		if err := readPLYElement(values, element, data); err != nil {
			return nil, fmt.Errorf("failed to read PLY %s data: %w", element.name, err)
		}
	}
	return data, nil
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("missing ply magic number")
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header ended before end_header: %w", err)
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.format == "" {
				return nil, fmt.Errorf("missing format line")
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", strings.TrimSpace(line))
			}
			header.format = parts[1]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.elements = append(header.elements, plyElement{name: parts[1], count: count})
		case "property":
			if len(header.elements) == 0 {
				return nil, fmt.Errorf("property outside of an element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			current := &header.elements[len(header.elements)-1]
			current.props = append(current.props, prop)
		default:
			return nil, fmt.Errorf("unknown header keyword %q", parts[0])
		}
	}
}

// parsePLYProperty parses the fields after "property"
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) < 2 {
		return plyProperty{}, fmt.Errorf("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return plyProperty{}, fmt.Errorf("invalid list property definition")
		}
		if plyTypeSize(parts[1]) == 0 || plyTypeSize(parts[2]) == 0 {
			return plyProperty{}, fmt.Errorf("unknown list types %s %s", parts[1], parts[2])
		}
		return plyProperty{name: parts[3], dataType: parts[2], isList: true, countType: parts[1]}, nil
	}

	if plyTypeSize(parts[0]) == 0 {
		return plyProperty{}, fmt.Errorf("unknown property type %s", parts[0])
	}
	return plyProperty{name: parts[1], dataType: parts[0]}, nil
}

func readPLYElement(values plyValueReader, element plyElement, data *PLYData) error {
	xi, yi, zi := -1, -1, -1
	faceIndex := -1
	for i, p := range element.props {
		switch {
		case p.name == "x" && !p.isList:
			xi = i
		case p.name == "y" && !p.isList:
			yi = i
		case p.name == "z" && !p.isList:
			zi = i
		case (p.name == "vertex_indices" || p.name == "vertex_index") && p.isList:
			faceIndex = i
		}
	}

	isVertex := element.name == "vertex"
	isFace := element.name == "face"
	if isVertex && (xi < 0 || yi < 0 || zi < 0) {
		return fmt.Errorf("vertex element needs x, y and z properties")
	}
	if isFace && faceIndex < 0 {
		return fmt.Errorf("face element needs a vertex_indices list")
	}

	scalars := make([]float64, len(element.props))
	var indices []int
	for n := 0; n < element.count; n++ {
		for i, p := range element.props {
			if !p.isList {
				v, err := values.read(p.dataType)
				if err != nil {
					return err
				}
				scalars[i] = v
				continue
			}

			length, err := values.read(p.countType)
			if err != nil {
				return err
			}
			if i == faceIndex {
				indices = indices[:0]
			}
			for k := 0; k < int(length); k++ {
				v, err := values.read(p.dataType)
				if err != nil {
					return err
				}
				if i == faceIndex {
					indices = append(indices, int(v))
				}
			}
		}

		switch {
		case isVertex:
			data.Vertices = append(data.Vertices, core.NewVec3(scalars[xi], scalars[yi], scalars[zi]))
		case isFace:
			if len(indices) < 3 {
				return fmt.Errorf("face %d has %d vertices", n, len(indices))
			}
			// Fan triangulation around the first vertex
			for k := 1; k+1 < len(indices); k++ {
				data.Faces = append(data.Faces, indices[0], indices[k], indices[k+1])
			}
		}
	}
	return nil
}

// plyTypeSize returns the byte size of a PLY scalar type, or 0 if unknown
func plyTypeSize(dataType string) int {
	switch dataType {
	case "char", "uchar", "int8", "uint8":
		return 1
	case "short", "ushort", "int16", "uint16":
		return 2
	case "int", "uint", "float", "int32", "uint32", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

// plyValueReader reads one scalar of the given PLY type as float64
type plyValueReader interface {
	read(dataType string) (float64, error)
}

type asciiValueReader struct {
	scanner *bufio.Scanner
}

func (a *asciiValueReader) read(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	v, err := strconv.ParseFloat(a.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, a.scanner.Text())
	}
	return v, nil
}

type binaryValueReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryValueReader) read(dataType string) (float64, error) {
	size := plyTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unknown PLY type %s", dataType)
	}
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default:
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}
