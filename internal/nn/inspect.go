package nn

import (
	"path/filepath"
	"strconv"
)

// Info is the public projection of a persisted network's nn_info.bin header,
// for tools that want to report on a model directory without reconstructing
// a trainable Network.
type Info struct {
	InputDim  int
	OutputDim int
	HiddenDim int
	NumLayers int
	BatchSize int
	Role      Role
}

// ReadInfo reads dir's nn_info.bin header without loading any layer weights.
func ReadInfo(dir string) (Info, error) {
	h, err := readHeader(filepath.Join(dir, "nn_info.bin"))
	if err != nil {
		return Info{}, err
	}
	return Info{
		InputDim:  int(h.InputDim),
		OutputDim: int(h.OutputDim),
		HiddenDim: int(h.HiddenDim),
		NumLayers: int(h.NumLayers),
		BatchSize: int(h.BatchSize),
		Role:      Role(h.Role),
	}, nil
}

// LayerShape reports a layer's weight matrix dimensions without reading the
// biases or velocity mirrors.
type LayerShape struct {
	Rows int
	Cols int
}

// LayerShapes reads the weight matrix file of every layer in dir, per
// Info.NumLayers, and reports each one's rows and cols.
func LayerShapes(dir string, info Info) ([]LayerShape, error) {
	shapes := make([]LayerShape, 0, info.NumLayers)
	for i := 0; i < info.NumLayers; i++ {
		m, err := readMatrixFile(filepath.Join(dir, "layer"+strconv.Itoa(i)+"_weights.bin"))
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, LayerShape{Rows: m.Rows(), Cols: m.Cols()})
	}
	return shapes, nil
}
