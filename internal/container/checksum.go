package container

import "crypto/sha256"

// computeChecksum computes the SHA-256 checksum of the data section.
func computeChecksum(data []byte) [ChecksumSize]byte {
	return sha256.Sum256(data)
}

// validateChecksum compares a computed checksum against the stored one.
// Returns ErrChecksumMismatch if they differ.
func validateChecksum(computed, stored [ChecksumSize]byte) error {
	if computed != stored {
		return ErrChecksumMismatch
	}
	return nil
}
