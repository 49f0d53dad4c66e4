// Package main provides the kiln command-line tool for inspecting and
// verifying .kiln model containers.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kiln-ml/kiln/internal/container"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("kiln %s\n", version)
	case "inspect":
		requirePath("inspect")
		if err := inspect(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "kiln: %v\n", err)
			os.Exit(1)
		}
	case "verify":
		requirePath("verify")
		if err := verify(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "kiln: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("ok")
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("kiln - model container tool")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  inspect <file>   Show model type, recorded config and tensors")
	fmt.Println("  verify <file>    Validate the container, including its checksum")
	fmt.Println("  version          Show version")
}

func requirePath(cmd string) {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "kiln: %s requires a file argument\n", cmd)
		os.Exit(1)
	}
}

// inspect prints the container's header without validating the
// checksum, so corrupt files can still be examined.
func inspect(path string) error {
	r, err := container.OpenWithOptions(path, container.Options{SkipChecksumValidation: true})
	if err != nil {
		return err
	}
	defer r.Close()

	h := r.Header()
	fmt.Printf("model type:   %s\n", h.ModelType)
	fmt.Printf("kiln version: %s\n", h.KilnVersion)
	fmt.Printf("created at:   %s\n", h.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	if blob, err := r.Attr(container.ModelConfigAttr); err == nil {
		var pretty json.RawMessage = []byte(blob)
		indented, err := json.MarshalIndent(pretty, "", "  ")
		if err == nil {
			fmt.Printf("config:       %s\n", indented)
		}
	}

	fmt.Printf("\ntensors (%d):\n", len(h.Tensors))
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  NAME\tDTYPE\tSHAPE\tBYTES")
	for _, meta := range h.Tensors {
		fmt.Fprintf(w, "  %s\t%s\t%v\t%d\n", meta.Name, meta.DType, meta.Shape, meta.Size)
	}
	return w.Flush()
}

// verify opens the container with full validation, including the
// SHA-256 checksum of the tensor data.
func verify(path string) error {
	r, err := container.Open(path)
	if err != nil {
		return err
	}
	return r.Close()
}
