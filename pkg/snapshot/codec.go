package snapshot

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/golang/snappy"
)

const (
	// Magic identifies a snapshot file
	Magic uint32 = 0x57464e31 // "WFN1"

	// Version is the current encoding version
	Version uint8 = 1

	// Format: [Magic:4][Version:1][RawLen:4][DataLen:4][Data:N][Checksum:4]
	headerSize  = 4 + 1 + 4 + 4
	trailerSize = 4

	maxPayload = 1 << 30
)

// Encode writes s to w as a snappy-compressed JSON payload framed with a
// header and a CRC32 of the compressed bytes. It returns the bytes written.
func Encode(w io.Writer, s *Snapshot) (int, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if len(raw) > maxPayload {
		return 0, fmt.Errorf("snapshot payload too large: %d bytes", len(raw))
	}

	compressed := snappy.Encode(nil, raw)

	var buf bytes.Buffer
	buf.Grow(headerSize + len(compressed) + trailerSize)

	_ = binary.Write(&buf, binary.BigEndian, Magic)
	buf.WriteByte(Version)
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(raw)))
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(compressed)))
	buf.Write(compressed)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(compressed))

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return n, fmt.Errorf("failed to write snapshot: %w", err)
	}
	return n, nil
}

// Decode reads a snapshot written by Encode
func Decode(r io.Reader) (*Snapshot, error) {
	var (
		magic   uint32
		version uint8
		rawLen  uint32
		dataLen uint32
	)

	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorrupt, err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("%w: magic %x", ErrBadMagic, magic)
	}
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorrupt, err)
	}
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	if err := binary.Read(r, binary.BigEndian, &rawLen); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorrupt, err)
	}
	if err := binary.Read(r, binary.BigEndian, &dataLen); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorrupt, err)
	}
	if rawLen > maxPayload || dataLen > maxPayload {
		return nil, fmt.Errorf("%w: payload length %d/%d", ErrCorrupt, rawLen, dataLen)
	}

	compressed := make([]byte, dataLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrCorrupt, err)
	}

	var checksum uint32
	if err := binary.Read(r, binary.BigEndian, &checksum); err != nil {
		return nil, fmt.Errorf("%w: trailer: %v", ErrCorrupt, err)
	}
	if checksum != crc32.ChecksumIEEE(compressed) {
		return nil, ErrChecksumMismatch
	}

	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %v", ErrCorrupt, err)
	}
	if len(raw) != int(rawLen) {
		return nil, fmt.Errorf("%w: decompressed %d bytes, header says %d", ErrCorrupt, len(raw), rawLen)
	}

	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrCorrupt, err)
	}
	return &s, nil
}
