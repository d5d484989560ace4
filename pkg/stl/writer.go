package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/gobbox/pkg/geometry"
)

// Encode writes the model to w in binary STL format
func Encode(w io.Writer, model *Model) error {
	buffered := bufio.NewWriter(w)

	header := make([]byte, headerSize)
	copy(header, model.Name)
	if _, err := buffered.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if err := binary.Write(buffered, binary.LittleEndian, uint32(len(model.Triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i, triangle := range model.Triangles {
		f := facet{
			Normal: toFloat32(triangle.Normal),
			V1:     toFloat32(triangle.V1),
			V2:     toFloat32(triangle.V2),
			V3:     toFloat32(triangle.V3),
		}
		if err := binary.Write(buffered, binary.LittleEndian, &f); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}

	return buffered.Flush()
}

// Save writes the model to a binary STL file
func Save(filename string, model *Model) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Encode(file, model); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func toFloat32(v geometry.Vector3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
