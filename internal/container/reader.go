package container

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kiln-ml/kiln/tensor"
)

// Reader reads models from .kiln format.
type Reader struct {
	file       *os.File
	header     Header
	flags      uint32
	checksum   [ChecksumSize]byte
	dataOffset int64 // Offset where tensor data starts
	dataSize   int64 // Size of the data section
	closed     bool
}

// Options configures the behavior of Reader.
type Options struct {
	SkipChecksumValidation bool // Skip checksum validation (faster but less safe)
}

// Open creates a new .kiln file reader with full validation.
func Open(path string) (*Reader, error) {
	return OpenWithOptions(path, Options{})
}

// OpenWithOptions creates a new .kiln file reader with custom options.
//
// The file is closed again on every error path; a non-nil Reader owns
// the file until Close is called.
func OpenWithOptions(path string, opts Options) (*Reader, error) {
	//nolint:gosec // G304: path comes from the caller, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r := &Reader{file: file}

	if err := r.parseHeader(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	fileInfo, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if fileInfo.Size() < r.dataOffset {
		_ = file.Close()
		return nil, fmt.Errorf("%w: file size %d, data section starts at %d",
			ErrTruncatedFile, fileInfo.Size(), r.dataOffset)
	}
	r.dataSize = fileInfo.Size() - r.dataOffset

	if err := validateHeader(&r.header, r.dataSize); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if r.flags&FlagChecksum != 0 && !opts.SkipChecksumValidation {
		if err := r.verifyChecksum(); err != nil {
			_ = file.Close()
			return nil, err
		}
	}

	return r, nil
}

// parseHeader reads and parses the .kiln file prelude and JSON header.
func (r *Reader) parseHeader() error {
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r.file, magic); err != nil {
		return fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if string(magic) != MagicBytes {
		return ErrInvalidMagic
	}

	var version uint32
	if err := binary.Read(r.file, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("failed to read version: %w", err)
	}
	if version != FormatVersion {
		return fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	if err := binary.Read(r.file, binary.LittleEndian, &r.flags); err != nil {
		return fmt.Errorf("failed to read flags: %w", err)
	}

	var headerSize uint64
	if err := binary.Read(r.file, binary.LittleEndian, &headerSize); err != nil {
		return fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	if _, err := io.ReadFull(r.file, r.checksum[:]); err != nil {
		return fmt.Errorf("failed to read checksum: %w", err)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r.file, headerBytes); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	if err := json.Unmarshal(headerBytes, &r.header); err != nil {
		return fmt.Errorf("failed to parse header JSON: %w", err)
	}

	//nolint:gosec // G115: headerSize is capped by MaxHeaderSize
	r.dataOffset = int64(preludeSize) + int64(headerSize) + dataPadding(int64(headerSize))

	return nil
}

// verifyChecksum reads the data section and compares its SHA-256
// against the stored checksum.
func (r *Reader) verifyChecksum() error {
	data := make([]byte, r.dataSize)
	if _, err := r.file.Seek(r.dataOffset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to tensor data: %w", err)
	}
	if _, err := io.ReadFull(r.file, data); err != nil {
		return fmt.Errorf("failed to read tensor data for checksum: %w", err)
	}
	return validateChecksum(computeChecksum(data), r.checksum)
}

// Header returns the file header.
func (r *Reader) Header() Header {
	return r.header
}

// ModelType returns the model type recorded at save time.
func (r *Reader) ModelType() string {
	return r.header.ModelType
}

// Attr returns the named string attribute from the header.
// Returns ErrAttrNotFound (wrapped) if the attribute is absent.
func (r *Reader) Attr(name string) (string, error) {
	if v, ok := r.header.Attrs[name]; ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrAttrNotFound, name)
}

// TensorNames returns all tensor names in file order.
func (r *Reader) TensorNames() []string {
	names := make([]string, len(r.header.Tensors))
	for i, meta := range r.header.Tensors {
		names[i] = meta.Name
	}
	return names
}

// TensorInfo returns the metadata for a named tensor.
func (r *Reader) TensorInfo(name string) (*TensorMeta, error) {
	for _, meta := range r.header.Tensors {
		if meta.Name == name {
			return &meta, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
}

// ReadTensor loads a single named tensor from the file.
func (r *Reader) ReadTensor(name string) (*tensor.RawTensor, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}

	meta, err := r.TensorInfo(name)
	if err != nil {
		return nil, err
	}

	dtype, ok := tensor.ParseDataType(meta.DType)
	if !ok {
		return nil, fmt.Errorf("unsupported dtype: %s", meta.DType)
	}

	raw, err := tensor.NewRaw(tensor.Shape(meta.Shape), dtype)
	if err != nil {
		return nil, fmt.Errorf("invalid tensor %s: %w", name, err)
	}
	if int64(raw.ByteSize()) != meta.Size {
		return nil, fmt.Errorf("tensor %s: size %d does not match shape %v dtype %s",
			name, meta.Size, meta.Shape, meta.DType)
	}

	if _, err := r.file.Seek(r.dataOffset+meta.Offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to tensor data: %w", err)
	}
	if _, err := io.ReadFull(r.file, raw.Data()); err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}

	return raw, nil
}

// ReadStateDict reads all tensors into a state dictionary.
func (r *Reader) ReadStateDict() (map[string]*tensor.RawTensor, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}

	stateDict := make(map[string]*tensor.RawTensor, len(r.header.Tensors))
	for _, meta := range r.header.Tensors {
		raw, err := r.ReadTensor(meta.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to load tensor %s: %w", meta.Name, err)
		}
		stateDict[meta.Name] = raw
	}

	return stateDict, nil
}

// ReadTensorsInOrder reads all tensors in file order. This is the order
// used for positional weight restoration.
func (r *Reader) ReadTensorsInOrder() ([]*tensor.RawTensor, []string, error) {
	if r.closed {
		return nil, nil, fmt.Errorf("reader is closed")
	}

	tensors := make([]*tensor.RawTensor, 0, len(r.header.Tensors))
	names := make([]string, 0, len(r.header.Tensors))
	for _, meta := range r.header.Tensors {
		raw, err := r.ReadTensor(meta.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load tensor %s: %w", meta.Name, err)
		}
		tensors = append(tensors, raw)
		names = append(names, meta.Name)
	}

	return tensors, names, nil
}

// Close closes the reader and the underlying file.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}
