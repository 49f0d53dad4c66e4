package container

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/kiln-ml/kiln/tensor"
)

const kilnVersion = "0.1.0" // Current kiln version

// Writer writes models in .kiln format.
type Writer struct {
	file   *os.File
	closed bool
}

// Create creates a new .kiln file writer at path, truncating any
// existing file.
func Create(path string) (*Writer, error) {
	//nolint:gosec // G304: path comes from the caller, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	return &Writer{file: file}, nil
}

// WriteStateDict writes a state dictionary and attribute map to the
// .kiln file.
//
// Tensors are written in sorted name order so identical state dicts
// produce identical files. The attrs map carries string attributes such
// as the model_config blob; it may be nil.
func (w *Writer) WriteStateDict(stateDict map[string]*tensor.RawTensor, modelType string, attrs map[string]string) error {
	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	header := Header{
		FormatVersion: FormatVersion,
		KilnVersion:   kilnVersion,
		ModelType:     modelType,
		CreatedAt:     time.Now().UTC(),
		Attrs:         attrs,
		Tensors:       make([]TensorMeta, 0, len(stateDict)),
	}

	tensorOrder := make([]string, 0, len(stateDict))
	for name := range stateDict {
		tensorOrder = append(tensorOrder, name)
	}
	sort.Strings(tensorOrder)

	// Lay out the data section and collect it for the checksum.
	var currentOffset int64
	var dataBuf []byte
	for _, name := range tensorOrder {
		raw := stateDict[name]
		size := int64(raw.ByteSize())

		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			DType:  dtypeOf(raw.DType()),
			Shape:  []int(raw.Shape()),
			Offset: currentOffset,
			Size:   size,
		})

		currentOffset += size
		dataBuf = append(dataBuf, raw.Data()...)
	}

	checksum := computeChecksum(dataBuf)

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	// Prelude: magic, version, flags, header size, checksum.
	if _, err := w.file.WriteString(MagicBytes); err != nil {
		return fmt.Errorf("failed to write magic bytes: %w", err)
	}
	if err := binary.Write(w.file, binary.LittleEndian, uint32(FormatVersion)); err != nil {
		return fmt.Errorf("failed to write version: %w", err)
	}

	flags := FlagChecksum
	if len(attrs) > 0 {
		flags |= FlagHasAttrs
	}
	if err := binary.Write(w.file, binary.LittleEndian, flags); err != nil {
		return fmt.Errorf("failed to write flags: %w", err)
	}

	headerSize := uint64(len(headerJSON))
	if err := binary.Write(w.file, binary.LittleEndian, headerSize); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.file.Write(checksum[:]); err != nil {
		return fmt.Errorf("failed to write checksum: %w", err)
	}

	if _, err := w.file.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	//nolint:gosec // G115: headerSize is capped well below int64 range
	if padding := dataPadding(int64(headerSize)); padding > 0 {
		if _, err := w.file.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}

	if _, err := w.file.Write(dataBuf); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}

	return nil
}

// Close closes the writer and the underlying file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}
