package nn

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"organism_rl/internal/matrix"
)

// header is the six little-endian u32 fields written to nn_info.bin.
type header struct {
	InputDim  uint32
	OutputDim uint32
	HiddenDim uint32
	NumLayers uint32
	BatchSize uint32
	Role      uint32
}

func headerFromConfig(cfg Config) header {
	return header{
		InputDim:  uint32(cfg.InputDim),
		OutputDim: uint32(cfg.OutputDim),
		HiddenDim: uint32(cfg.HiddenDim),
		NumLayers: uint32(cfg.NumLayers),
		BatchSize: uint32(cfg.BatchSize),
		Role:      uint32(cfg.Role),
	}
}

func writeHeader(path string, h header) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, v := range []uint32{h.InputDim, h.OutputDim, h.HiddenDim, h.NumLayers, h.BatchSize, h.Role} {
		if err := binary.Write(f, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

func readHeader(path string) (header, error) {
	var h header
	f, err := os.Open(path)
	if err != nil {
		return h, err
	}
	defer f.Close()
	fields := []*uint32{&h.InputDim, &h.OutputDim, &h.HiddenDim, &h.NumLayers, &h.BatchSize, &h.Role}
	for _, p := range fields {
		if err := binary.Read(f, binary.LittleEndian, p); err != nil {
			return h, err
		}
	}
	return h, nil
}

// writeMatrix writes a "u32 rows; u32 cols;" header followed by rows*cols
// little-endian float64s in column-major order.
func writeMatrix(w io.Writer, m *matrix.Dense) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(m.Rows())); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(m.Cols())); err != nil {
		return err
	}
	for j := 0; j < m.Cols(); j++ {
		for i := 0; i < m.Rows(); i++ {
			if err := binary.Write(w, binary.LittleEndian, m.At(i, j)); err != nil {
				return err
			}
		}
	}
	return nil
}

// readMatrix reads a matrix written by writeMatrix.
func readMatrix(r io.Reader) (*matrix.Dense, error) {
	var rows, cols uint32
	if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &cols); err != nil {
		return nil, err
	}
	m := matrix.New(int(rows), int(cols))
	for j := 0; j < int(cols); j++ {
		for i := 0; i < int(rows); i++ {
			var v float64
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, err
			}
			m.Set(i, j, v)
		}
	}
	return m, nil
}

func writeMatrixFile(path string, m *matrix.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeMatrix(f, m)
}

func readMatrixFile(path string) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readMatrix(f)
}

// Save persists the network to dir: one nn_info.bin header, and four
// files per layer (weights, biases, and zero-filled legacy SGD velocity
// mirrors for format compatibility).
func (n *Network) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeHeader(filepath.Join(dir, "nn_info.bin"), headerFromConfig(n.Config)); err != nil {
		return err
	}
	for i, l := range n.Layers {
		if err := writeMatrixFile(filepath.Join(dir, fmt.Sprintf("layer%d_weights.bin", i)), l.W); err != nil {
			return err
		}
		if err := writeMatrixFile(filepath.Join(dir, fmt.Sprintf("layer%d_biases.bin", i)), l.B); err != nil {
			return err
		}
		if err := writeMatrixFile(filepath.Join(dir, fmt.Sprintf("layer%d_velocity_weights.bin", i)), matrix.New(l.W.Rows(), l.W.Cols())); err != nil {
			return err
		}
		if err := writeMatrixFile(filepath.Join(dir, fmt.Sprintf("layer%d_velocity_biases.bin", i)), matrix.New(l.B.Rows(), l.B.Cols())); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a network previously written by Save from dir, using cfg's
// optimizer hyperparameters and role. The dims (input, output, hidden,
// layer count, batch size) come from the on-disk header and replace cfg's;
// the header's role field is read but not used.
func Load(dir string, cfg Config, rng *rand.Rand) (*Network, error) {
	h, err := readHeader(filepath.Join(dir, "nn_info.bin"))
	if err != nil {
		return nil, err
	}
	cfg.InputDim = int(h.InputDim)
	cfg.OutputDim = int(h.OutputDim)
	cfg.HiddenDim = int(h.HiddenDim)
	cfg.NumLayers = int(h.NumLayers)
	cfg.BatchSize = int(h.BatchSize)

	n := New(cfg, rng)
	for i := range n.Layers {
		w, err := readMatrixFile(filepath.Join(dir, fmt.Sprintf("layer%d_weights.bin", i)))
		if err != nil {
			return nil, err
		}
		b, err := readMatrixFile(filepath.Join(dir, fmt.Sprintf("layer%d_biases.bin", i)))
		if err != nil {
			return nil, err
		}
		// Velocity files are read-and-discarded: no SGD optimizer path
		// is reachable in this implementation (see design notes).
		if _, err := readMatrixFile(filepath.Join(dir, fmt.Sprintf("layer%d_velocity_weights.bin", i))); err != nil {
			return nil, err
		}
		if _, err := readMatrixFile(filepath.Join(dir, fmt.Sprintf("layer%d_velocity_biases.bin", i))); err != nil {
			return nil, err
		}
		n.Layers[i].W = w
		n.Layers[i].B = b
	}
	return n, nil
}

// Exists reports whether dir holds a persisted network (nn_info.bin present).
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "nn_info.bin"))
	return err == nil
}
