package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/yohandev/software-rasterizer/pkg/math3d"
)

// GLTFLoader loads glTF/GLB geometry into Mesh form. Only triangle
// primitives are read; materials and textures are ignored.
type GLTFLoader struct {
	// CalculateNormals generates normals when the file has none.
	CalculateNormals bool
	// SmoothNormals averages the generated normals across shared vertices.
	SmoothNormals bool
}

// NewGLTFLoader creates a loader with normal generation enabled.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{CalculateNormals: true, SmoothNormals: true}
}

// LoadGLB loads a glTF or binary glTF file with default options.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load reads a glTF or GLB file and returns its combined triangle geometry
// as a single mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for _, gm := range doc.Meshes {
		if err := l.appendMesh(doc, gm, mesh); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", gm.Name, err)
		}
	}

	if l.CalculateNormals && !hasNormals(mesh) {
		if l.SmoothNormals {
			mesh.CalculateSmoothNormals()
		} else {
			mesh.CalculateNormals()
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func hasNormals(m *Mesh) bool {
	for _, v := range m.Vertices {
		if v.Normal.LenSq() > 1e-6 {
			return true
		}
	}
	return false
}

// appendMesh extracts the triangle primitives of one glTF mesh.
func (l *GLTFLoader) appendMesh(doc *gltf.Document, gm *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range gm.Primitives {
		// A zero mode means the field was absent, which defaults to
		// triangles.
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3(doc, posIdx)
		if err != nil {
			return fmt.Errorf("positions: %w", err)
		}

		var normals []math3d.Vec3
		if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = readVec3(doc, idx); err != nil {
				return fmt.Errorf("normals: %w", err)
			}
		}

		var uvs []math3d.Vec2
		if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if uvs, err = readVec2(doc, idx); err != nil {
				return fmt.Errorf("uvs: %w", err)
			}
		}

		base := len(mesh.Vertices)
		for i, pos := range positions {
			v := Vertex{Position: pos}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			if i < len(uvs) {
				// glTF puts V=0 at the top; flip to bottom-left origin.
				v.UV = math3d.V2(uvs[i].X, 1-uvs[i].Y)
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []int
		if prim.Indices != nil {
			if indices, err = readIndices(doc, *prim.Indices); err != nil {
				return fmt.Errorf("indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		// glTF fronts are counter-clockwise; the rasterizer's screen-space
		// y flip makes fronts clockwise, so swap two indices per triangle.
		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, [3]int{
				base + indices[i],
				base + indices[i+2],
				base + indices[i+1],
			})
		}
	}
	return nil
}

// accessorBytes resolves an accessor to its backing bytes, element stride
// and element count. Only embedded (GLB) buffers are supported.
func accessorBytes(doc *gltf.Document, accessorIdx int, defaultStride int) ([]byte, int, int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor %d has no buffer view", accessorIdx)
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.URI != "" {
		return nil, 0, 0, fmt.Errorf("external buffer %q not supported", buffer.URI)
	}
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = defaultStride
	}
	start := view.ByteOffset + accessor.ByteOffset
	return buffer.Data[start:], stride, accessor.Count, nil
}

func float32At(b []byte, off int) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b[off:])))
}

func readVec3(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("accessor %d: want float VEC3, got %v %v",
			accessorIdx, accessor.ComponentType, accessor.Type)
	}

	data, stride, count, err := accessorBytes(doc, accessorIdx, 12)
	if err != nil {
		return nil, err
	}

	out := make([]math3d.Vec3, count)
	for i := range out {
		off := i * stride
		out[i] = math3d.V3(float32At(data, off), float32At(data, off+4), float32At(data, off+8))
	}
	return out, nil
}

func readVec2(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("accessor %d: want float VEC2, got %v %v",
			accessorIdx, accessor.ComponentType, accessor.Type)
	}

	data, stride, count, err := accessorBytes(doc, accessorIdx, 8)
	if err != nil {
		return nil, err
	}

	out := make([]math3d.Vec2, count)
	for i := range out {
		off := i * stride
		out[i] = math3d.V2(float32At(data, off), float32At(data, off+4))
	}
	return out, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("accessor %d: want SCALAR indices, got %v", accessorIdx, accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("accessor %d: unsupported index type %v", accessorIdx, accessor.ComponentType)
	}

	data, stride, count, err := accessorBytes(doc, accessorIdx, size)
	if err != nil {
		return nil, err
	}

	out := make([]int, count)
	for i := range out {
		off := i * stride
		switch size {
		case 1:
			out[i] = int(data[off])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return out, nil
}
