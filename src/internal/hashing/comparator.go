package hashing

import (
	"errors"
	"os"
)

// ChecksumPath returns the path of the checksum file stored next to filePath.
func ChecksumPath(filePath string) string {
	return filePath + ".md5"
}

// IsFileChanged reports whether the checksum differs from the one stored for
// filePath. A missing file or checksum file counts as changed.
func IsFileChanged(checksumProxy ChecksumProvider, filePath string) (bool, error) {
	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		return true, nil
	}

	md5, err := checksumProxy.GetChecksum()
	if err != nil {
		return false, err
	}

	checksum, err := os.ReadFile(ChecksumPath(filePath))
	if err != nil {
		return true, nil
	}
	return string(checksum) != md5, nil
}

// WriteChecksum stores the checksum next to filePath.
func WriteChecksum(checksumProxy ChecksumProvider, filePath string) error {
	checksum, err := checksumProxy.GetChecksum()
	if err != nil {
		return err
	}
	return os.WriteFile(ChecksumPath(filePath), []byte(checksum), 0644)
}
