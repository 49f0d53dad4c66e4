package container

import (
	"time"

	"github.com/kiln-ml/kiln/tensor"
)

// Format constants.
const (
	MagicBytes      = "KILN"
	FormatVersion   = 1
	HeaderAlignment = 64 // Align tensor data to 64 bytes
	ChecksumSize    = 32 // SHA-256
	preludeSize     = 4 + 4 + 4 + 8 + ChecksumSize

	// MaxHeaderSize caps the JSON header to protect readers from
	// malformed or hostile files.
	MaxHeaderSize = 100 * 1024 * 1024
)

// Flags for the .kiln format.
const (
	FlagChecksum uint32 = 1 << 0 // bit 0: tensor data checksummed
	FlagHasAttrs uint32 = 1 << 1 // bit 1: attribute map present
)

// ModelConfigAttr is the attribute holding the JSON blob with the
// recorded construction config of the saved model.
const ModelConfigAttr = "model_config"

// Header represents the JSON header in a .kiln file.
type Header struct {
	FormatVersion int               `json:"format_version"`
	KilnVersion   string            `json:"kiln_version"`
	ModelType     string            `json:"model_type"`
	CreatedAt     time.Time         `json:"created_at"`
	Attrs         map[string]string `json:"attrs,omitempty"`
	Tensors       []TensorMeta      `json:"tensors"`
}

// TensorMeta describes a tensor in the .kiln file.
type TensorMeta struct {
	Name   string `json:"name"`   // Tensor name (e.g., "hidden.weight")
	DType  string `json:"dtype"`  // Data type (e.g., "float32")
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Offset from start of the data section
	Size   int64  `json:"size"`   // Size in bytes
}

// dataPadding returns the number of zero bytes between the JSON header
// and the 64-byte aligned data section.
func dataPadding(headerSize int64) int64 {
	pos := int64(preludeSize) + headerSize
	return (HeaderAlignment - (pos % HeaderAlignment)) % HeaderAlignment
}

// dtypeOf converts tensor.DataType to its serialized string form.
func dtypeOf(dt tensor.DataType) string {
	return dt.String()
}
