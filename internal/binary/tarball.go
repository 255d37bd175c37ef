package binary

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Tar archives are a sequence of 512-byte blocks. Each member starts with a
// header block; its data follows, padded to the next block boundary.
const blockSize = 512

// Header field positions (POSIX ustar).
const (
	nameOffset   = 0
	nameSize     = 100
	sizeOffset   = 124
	sizeSize     = 12
	magicOffset  = 257
	prefixOffset = 345
	prefixSize   = 155
)

// ustarMagic is the POSIX magic including its NUL. GNU archives carry
// "ustar  \x00" instead and use the prefix area for timestamps.
var ustarMagic = []byte("ustar\x00")

// ExtractFile returns the content of the member called name from an
// uncompressed tar archive. The returned slice aliases archive.
//
// found is false with a nil error when the archive ends without such a
// member. Malformed headers and truncated data return an
// *ArchiveFormatError.
func ExtractFile(archive []byte, name string) (content []byte, found bool, err error) {
	total := int64(len(archive))

	var offset int64
	for offset < total {
		entry, end, err := readHeader(archive, offset)
		if err != nil {
			return nil, false, err
		}
		if end {
			return nil, false, nil
		}

		if entry.Name == name {
			dataEnd := entry.DataOffset + entry.Size
			if dataEnd > total {
				return nil, false, &ArchiveFormatError{
					Offset: offset,
					Reason: fmt.Sprintf("%s declares %d bytes but only %d remain", entry.Name, entry.Size, total-entry.DataOffset),
				}
			}
			return archive[entry.DataOffset:dataEnd:dataEnd], true, nil
		}

		offset = entry.DataOffset + padded(entry.Size)
	}

	return nil, false, nil
}

// readHeader parses the header block at offset. end is true for the all-zero
// block that terminates an archive.
func readHeader(archive []byte, offset int64) (entry ArchiveEntry, end bool, err error) {
	remaining := archive[offset:]
	if len(remaining) < blockSize {
		if isZero(remaining) {
			return ArchiveEntry{}, true, nil
		}
		return ArchiveEntry{}, false, &ArchiveFormatError{
			Offset: offset,
			Reason: fmt.Sprintf("truncated header: %d bytes", len(remaining)),
		}
	}

	hdr := remaining[:blockSize]
	if isZero(hdr) {
		return ArchiveEntry{}, true, nil
	}

	name := cString(hdr[nameOffset : nameOffset+nameSize])
	if bytes.HasPrefix(hdr[magicOffset:], ustarMagic) {
		if prefix := cString(hdr[prefixOffset : prefixOffset+prefixSize]); prefix != "" {
			name = prefix + "/" + name
		}
	}

	size, err := parseOctal(hdr[sizeOffset : sizeOffset+sizeSize])
	if err != nil {
		return ArchiveEntry{}, false, &ArchiveFormatError{
			Offset: offset,
			Reason: fmt.Sprintf("invalid size field for %q", name),
			Err:    err,
		}
	}

	return ArchiveEntry{
		Name:       name,
		Size:       size,
		DataOffset: offset + blockSize,
	}, false, nil
}

// cString returns b up to its first NUL byte.
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// parseOctal decodes a NUL/space terminated ASCII octal number.
func parseOctal(b []byte) (int64, error) {
	s := strings.Trim(cString(b), " ")
	if s == "" {
		return 0, fmt.Errorf("empty octal field")
	}
	if s[0] == '-' || s[0] == '+' {
		return 0, fmt.Errorf("signed octal field %q", s)
	}
	return strconv.ParseInt(s, 8, 64)
}

// padded rounds n up to the next block boundary.
func padded(n int64) int64 {
	return (n + blockSize - 1) &^ (blockSize - 1)
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
