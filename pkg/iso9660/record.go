package iso9660

import (
	"fmt"
	"strings"

	"github.com/bgrewell/cnf-kit/pkg/consts"
)

const flagDirectory = 0x02

// DirectoryRecord is the subset of an ISO9660 directory record needed to locate a file's data.
type DirectoryRecord struct {
	// LengthOfDirectoryRecord is the record length in bytes, as stored in its first byte.
	LengthOfDirectoryRecord uint8 `json:"length_of_directory_record"`
	// LocationOfExtent is the logical block number of the first block of the file data.
	//  | Encoding: BothByteOrder
	LocationOfExtent uint32 `json:"location_of_extent"`
	// DataLength is the length of the file data in bytes.
	//  | Encoding: BothByteOrder
	DataLength uint32 `json:"data_length"`
	// FileFlags is the raw flag byte. Bit 0 hides the entry, bit 1 marks a directory.
	FileFlags uint8 `json:"file_flags"`
	// FileIdentifier is the name as recorded, including any ";1" version. The root and parent entries
	// use the single bytes 0x00 and 0x01.
	FileIdentifier string `json:"file_identifier"`
}

// IsDirectory checks if the record describes a directory.
func (dr *DirectoryRecord) IsDirectory() bool {
	return dr.FileFlags&flagDirectory != 0
}

// IsSpecial checks for "." or ".."
func (dr *DirectoryRecord) IsSpecial() bool {
	return dr.FileIdentifier == "\x00" || dr.FileIdentifier == "\x01"
}

// Name returns the identifier without its file version, e.g. "SYSTEM.CNF" for "SYSTEM.CNF;1".
func (dr *DirectoryRecord) Name() string {
	if i := strings.LastIndex(dr.FileIdentifier, consts.ISO9660_SEPARATOR_2); i >= 0 {
		return dr.FileIdentifier[:i]
	}
	return dr.FileIdentifier
}

// Matches reports whether the record names the given file. Case and version are ignored since mastering tools
// differ on both.
func (dr *DirectoryRecord) Matches(name string) bool {
	return !dr.IsSpecial() && strings.EqualFold(dr.Name(), name)
}

// Marshal converts the DirectoryRecord into its on-disk byte representation. The recording date is written as
// zeros and the padding byte is added when the identifier length is even.
func (dr *DirectoryRecord) Marshal() ([]byte, error) {
	fi := []byte(dr.FileIdentifier)
	if len(fi) == 0 || len(fi) > 222 {
		return nil, fmt.Errorf("invalid file identifier length %d", len(fi))
	}

	size := 33 + len(fi)
	if len(fi)%2 == 0 {
		size++
	}
	buf := make([]byte, size)
	buf[0] = uint8(size)
	loc := MarshalBothByteOrders32(dr.LocationOfExtent)
	copy(buf[2:10], loc[:])
	length := MarshalBothByteOrders32(dr.DataLength)
	copy(buf[10:18], length[:])
	buf[25] = dr.FileFlags
	seq := MarshalBothByteOrders16(1)
	copy(buf[28:32], seq[:])
	buf[32] = uint8(len(fi))
	copy(buf[33:], fi)

	dr.LengthOfDirectoryRecord = uint8(size)
	return buf, nil
}

// Unmarshal decodes a DirectoryRecord from data, which must hold at least LengthOfDirectoryRecord bytes.
func (dr *DirectoryRecord) Unmarshal(data []byte) error {
	if len(data) < consts.ISO9660_MIN_RECORD_SIZE {
		return fmt.Errorf("data too short to contain a DirectoryRecord: %d bytes", len(data))
	}
	recordLength := int(data[0])
	if recordLength < consts.ISO9660_MIN_RECORD_SIZE || recordLength > len(data) {
		return fmt.Errorf("invalid directory record length %d (have %d bytes)", recordLength, len(data))
	}

	loc, err := UnmarshalUint32LSBMSB(data[2:10])
	if err != nil {
		return fmt.Errorf("failed to unmarshal Location Of Extent: %w", err)
	}
	dataLen, err := UnmarshalUint32LSBMSB(data[10:18])
	if err != nil {
		return fmt.Errorf("failed to unmarshal Data Length: %w", err)
	}

	fiLen := int(data[32])
	if 33+fiLen > recordLength {
		return fmt.Errorf("insufficient data for File Identifier")
	}

	dr.LengthOfDirectoryRecord = uint8(recordLength)
	dr.LocationOfExtent = loc
	dr.DataLength = dataLen
	dr.FileFlags = data[25]
	dr.FileIdentifier = string(data[33 : 33+fiLen])
	return nil
}
