// Command inspect-model prints the header and per-layer shapes of a
// network directory written by internal/nn's binary serialization format,
// without reconstructing a trainable network.
package main

import (
	"flag"
	"fmt"
	"log"

	"organism_rl/internal/nn"
)

func main() {
	dir := flag.String("dir", "", "network directory (containing nn_info.bin)")
	flag.Parse()

	if *dir == "" {
		log.Fatal("inspect-model: -dir is required")
	}

	info, err := nn.ReadInfo(*dir)
	if err != nil {
		log.Fatalf("inspect-model: reading header: %v", err)
	}

	fmt.Printf("role:        %s\n", info.Role)
	fmt.Printf("input_dim:   %d\n", info.InputDim)
	fmt.Printf("output_dim:  %d\n", info.OutputDim)
	fmt.Printf("hidden_dim:  %d\n", info.HiddenDim)
	fmt.Printf("num_layers:  %d\n", info.NumLayers)
	fmt.Printf("batch_size:  %d\n", info.BatchSize)

	shapes, err := nn.LayerShapes(*dir, info)
	if err != nil {
		log.Fatalf("inspect-model: reading layer shapes: %v", err)
	}
	for i, s := range shapes {
		fmt.Printf("layer%d:      %dx%d\n", i, s.Rows, s.Cols)
	}
}
