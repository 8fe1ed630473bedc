package iso9660_test

import (
	"bytes"
	"strings"
	"testing"

	isotest "github.com/bgrewell/cnf-kit/internal/testing"
	"github.com/bgrewell/cnf-kit/pkg/consts"
	"github.com/bgrewell/cnf-kit/pkg/iso9660"
	"github.com/bgrewell/cnf-kit/pkg/options"
	"github.com/stretchr/testify/require"
)

const systemCNF = "BOOT2 = cdrom0:\\SLES_123.45;1\r\nVER = 1.00\r\nVMODE = PAL\r\n"

func TestReadSystemCNF(t *testing.T) {
	img := isotest.BuildImage(
		isotest.File{Identifier: "DATA", Directory: true},
		isotest.File{Identifier: "SLES_123.45;1", Data: bytes.Repeat([]byte{0xAA}, 5000)},
		isotest.File{Identifier: "SYSTEM.CNF;1", Data: []byte(systemCNF)},
	)

	data, err := iso9660.ReadSystemCNF(bytes.NewReader(img))
	require.NoError(t, err)
	require.Equal(t, systemCNF, string(data))
}

func TestReadRootFileIgnoresCaseAndVersion(t *testing.T) {
	img := isotest.BuildImage(isotest.File{Identifier: "system.cnf", Data: []byte(systemCNF)})

	data, err := iso9660.ReadSystemCNF(bytes.NewReader(img))
	require.NoError(t, err)
	require.Equal(t, systemCNF, string(data))
}

func TestReadRootFileSkipsDirectories(t *testing.T) {
	img := isotest.BuildImage(isotest.File{Identifier: "SYSTEM.CNF", Directory: true})

	_, err := iso9660.ReadSystemCNF(bytes.NewReader(img))
	require.ErrorIs(t, err, iso9660.ErrNotFound)
}

func TestReadSystemCNFNotFound(t *testing.T) {
	img := isotest.BuildImage(isotest.File{Identifier: "README.TXT;1", Data: []byte("hello")})

	_, err := iso9660.ReadSystemCNF(bytes.NewReader(img))
	require.ErrorIs(t, err, iso9660.ErrNotFound)
}

func TestReadSystemCNFTooLarge(t *testing.T) {
	img := isotest.BuildImage(isotest.File{Identifier: "SYSTEM.CNF;1", Data: []byte(systemCNF)})

	_, err := iso9660.ReadSystemCNF(bytes.NewReader(img), options.WithMaxFileSize(16))
	require.ErrorIs(t, err, iso9660.ErrFileTooLarge)
}

// setRootDataLength overwrites the root directory size recorded in the primary volume descriptor.
func setRootDataLength(img []byte, size uint32) {
	field := iso9660.MarshalBothByteOrders32(size)
	copy(img[isotest.SectorOffset(isotest.PVDSector)+consts.ISO9660_ROOT_RECORD_OFFSET+10:], field[:])
}

func TestReadSystemCNFOversizedRootDirectory(t *testing.T) {
	img := isotest.BuildImage(isotest.File{Identifier: "SYSTEM.CNF;1", Data: []byte(systemCNF)})
	setRootDataLength(img, 0xF0000000)

	t.Run("DirectoryLimit", func(t *testing.T) {
		_, err := iso9660.ReadSystemCNF(bytes.NewReader(img))
		require.ErrorIs(t, err, iso9660.ErrDirectoryTooLarge)
	})

	t.Run("PastEndOfImage", func(t *testing.T) {
		root, err := iso9660.RootDirectory(bytes.NewReader(img))
		require.NoError(t, err)
		require.EqualValues(t, 0xF0000000, root.DataLength)

		_, err = iso9660.ReadDirectory(bytes.NewReader(img), root)
		require.ErrorIs(t, err, iso9660.ErrExtentOutOfRange)
	})

	t.Run("RaisedLimitStillBounded", func(t *testing.T) {
		_, err := iso9660.ReadSystemCNF(bytes.NewReader(img), options.WithMaxDirectorySize(1<<32))
		require.ErrorIs(t, err, iso9660.ErrExtentOutOfRange)
	})
}

func TestRootDirectoryErrors(t *testing.T) {
	t.Run("NoPrimary", func(t *testing.T) {
		img := isotest.BuildImage()
		img[isotest.SectorOffset(isotest.PVDSector)] = 255

		_, err := iso9660.RootDirectory(bytes.NewReader(img))
		require.ErrorIs(t, err, iso9660.ErrNoPrimaryDescriptor)
	})

	t.Run("NotAnImage", func(t *testing.T) {
		img := make([]byte, isotest.SectorOffset(20))
		_, err := iso9660.RootDirectory(bytes.NewReader(img))
		require.Error(t, err)
		require.True(t, strings.Contains(err.Error(), "bad standard identifier"))
	})

	t.Run("Truncated", func(t *testing.T) {
		img := isotest.BuildImage()
		_, err := iso9660.RootDirectory(bytes.NewReader(img[:isotest.SectorOffset(isotest.PVDSector)+100]))
		require.Error(t, err)
	})
}

func TestReadDirectory(t *testing.T) {
	img := isotest.BuildImage(
		isotest.File{Identifier: "A;1", Data: []byte("a")},
		isotest.File{Identifier: "BB;1", Data: []byte("bb")},
	)
	r := bytes.NewReader(img)

	root, err := iso9660.RootDirectory(r)
	require.NoError(t, err)
	require.True(t, root.IsDirectory())
	require.EqualValues(t, isotest.RootSector, root.LocationOfExtent)

	entries, err := iso9660.ReadDirectory(r, root)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	require.True(t, entries[0].IsSpecial())
	require.True(t, entries[1].IsSpecial())
	require.Equal(t, "A", entries[2].Name())
	require.Equal(t, "BB", entries[3].Name())
	require.EqualValues(t, 2, entries[3].DataLength)
}

func TestDirectoryRecordMarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		wantLength uint8
	}{
		{"OddIdentifier", "SYSTEM.CNF;1X", 46},
		{"EvenIdentifier", "SYSTEM.CNF;1", 46},
		{"Root", "\x00", 34},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := &iso9660.DirectoryRecord{LocationOfExtent: 24, DataLength: 57, FileIdentifier: tc.identifier}
			b, err := in.Marshal()
			require.NoError(t, err)
			require.Len(t, b, int(tc.wantLength))
			require.Equal(t, tc.wantLength, in.LengthOfDirectoryRecord)

			out := &iso9660.DirectoryRecord{}
			require.NoError(t, out.Unmarshal(b))
			require.Equal(t, in, out)
		})
	}
}

func TestDirectoryRecordUnmarshalErrors(t *testing.T) {
	rec := &iso9660.DirectoryRecord{}
	require.Error(t, rec.Unmarshal([]byte{1, 2, 3}))

	good := &iso9660.DirectoryRecord{LocationOfExtent: 24, DataLength: 57, FileIdentifier: "A;1"}
	b, err := good.Marshal()
	require.NoError(t, err)
	b[9] ^= 0xFF // corrupt the big-endian half of the extent location
	require.ErrorContains(t, rec.Unmarshal(b), "mismatched both-byte orders")

	_, err = (&iso9660.DirectoryRecord{}).Marshal()
	require.Error(t, err)
}

func TestBothByteOrders(t *testing.T) {
	field := iso9660.MarshalBothByteOrders32(0x12345678)
	require.Equal(t, [8]byte{0x78, 0x56, 0x34, 0x12, 0x12, 0x34, 0x56, 0x78}, field)

	v, err := iso9660.UnmarshalUint32LSBMSB(field[:])
	require.NoError(t, err)
	require.EqualValues(t, 0x12345678, v)

	_, err = iso9660.UnmarshalUint32LSBMSB(field[:4])
	require.Error(t, err)

	require.Equal(t, [4]byte{0x34, 0x12, 0x12, 0x34}, iso9660.MarshalBothByteOrders16(0x1234))
}
