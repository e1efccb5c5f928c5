// Package main provides the kernelrt CLI.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/born-ml/kernelrt/half"
	"github.com/born-ml/kernelrt/internal/scalar"
	"github.com/born-ml/kernelrt/kernel"
	"github.com/born-ml/kernelrt/tensor"
)

const version = "v0.0.1-dev"

func main() {
	log.SetFlags(0)
	log.SetPrefix("kernelrt: ")

	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("kernelrt %s\n", version)
	case "features":
		fmt.Println(scalar.Features())
	case "half":
		if len(os.Args) < 3 {
			log.Fatal("half: missing value")
		}
		for _, arg := range os.Args[2:] {
			f, err := strconv.ParseFloat(arg, 32)
			if err != nil {
				log.Fatalf("half: %v", err)
			}
			h := half.FromFloat32(float32(f))
			fmt.Printf("%s -> 0x%04X -> %v\n", arg, h.Bits(), h.Float32())
		}
	case "smoke":
		if err := smoke(); err != nil {
			log.Fatal(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

// smoke runs the built-in scale kernel on a small tensor.
func smoke() error {
	rt := kernel.NewCPURuntime(kernel.DefaultLaunchConfig())
	defer rt.Close()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	if err != nil {
		return err
	}
	_, out, err := kernel.RunCompute(rt, x, 0.5)
	if err != nil {
		return err
	}
	fmt.Printf("runCompute(%v, 0.5) = %v\n", x.AsFloat32(), out.AsFloat32())
	return nil
}

func usage() {
	fmt.Println("kernelrt - kernel argument runtime")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  features   Show detected CPU features")
	fmt.Println("  half X...  Encode values as float16")
	fmt.Println("  smoke      Run the built-in scale kernel")
}
