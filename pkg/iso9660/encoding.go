package iso9660

import (
	"encoding/binary"
	"fmt"
)

// MarshalBothByteOrders32 encodes val as the 8-byte both-byte-order field used throughout ISO9660:
// little-endian first, then big-endian.
func MarshalBothByteOrders32(val uint32) [8]byte {
	var data [8]byte
	binary.LittleEndian.PutUint32(data[0:4], val)
	binary.BigEndian.PutUint32(data[4:8], val)
	return data
}

// UnmarshalUint32LSBMSB decodes an 8-byte both-byte-order field and verifies that both halves agree.
func UnmarshalUint32LSBMSB(data []byte) (uint32, error) {
	if len(data) < 8 {
		return 0, fmt.Errorf("both-byte order field needs 8 bytes, got %d", len(data))
	}
	little := binary.LittleEndian.Uint32(data[0:4])
	big := binary.BigEndian.Uint32(data[4:8])
	if little != big {
		return 0, fmt.Errorf("mismatched both-byte orders: little-endian value %d != big-endian value %d", little, big)
	}
	return little, nil
}

// MarshalBothByteOrders16 encodes val as a 4-byte both-byte-order field.
func MarshalBothByteOrders16(val uint16) [4]byte {
	var data [4]byte
	binary.LittleEndian.PutUint16(data[0:2], val)
	binary.BigEndian.PutUint16(data[2:4], val)
	return data
}
