package testing

import (
	"github.com/bgrewell/cnf-kit/pkg/consts"
	"github.com/bgrewell/cnf-kit/pkg/iso9660"
)

const (
	PVDSector        = consts.ISO9660_SYSTEM_AREA_SECTORS
	TerminatorSector = PVDSector + 1
	RootSector       = PVDSector + 2
	firstDataSector  = PVDSector + 3
)

// File is an entry placed in the root directory of a synthesized image.
type File struct {
	Identifier string
	Data       []byte
	Directory  bool
}

// BuildImage assembles a minimal single-directory ISO9660 image: system area, primary volume descriptor,
// terminator, a one sector root directory and one extent per file.
func BuildImage(files ...File) []byte {
	root := &iso9660.DirectoryRecord{
		LocationOfExtent: RootSector,
		DataLength:       consts.ISO9660_SECTOR_SIZE,
		FileFlags:        0x02,
		FileIdentifier:   "\x00",
	}
	parent := *root
	parent.FileIdentifier = "\x01"

	rootDir := appendRecord(nil, root)
	rootDir = appendRecord(rootDir, &parent)

	var data []byte
	next := uint32(firstDataSector)
	for _, f := range files {
		rec := &iso9660.DirectoryRecord{
			LocationOfExtent: next,
			DataLength:       uint32(len(f.Data)),
			FileIdentifier:   f.Identifier,
		}
		if f.Directory {
			rec.FileFlags = 0x02
		}
		rootDir = appendRecord(rootDir, rec)

		sectors := (len(f.Data) + consts.ISO9660_SECTOR_SIZE - 1) / consts.ISO9660_SECTOR_SIZE
		if sectors == 0 {
			sectors = 1
		}
		chunk := make([]byte, sectors*consts.ISO9660_SECTOR_SIZE)
		copy(chunk, f.Data)
		data = append(data, chunk...)
		next += uint32(sectors)
	}
	if len(rootDir) > consts.ISO9660_SECTOR_SIZE {
		panic("root directory does not fit in one sector")
	}

	img := make([]byte, SectorOffset(firstDataSector))

	pvd := img[SectorOffset(PVDSector):]
	pvd[0] = 1
	copy(pvd[1:6], consts.ISO9660_STD_IDENTIFIER)
	pvd[6] = 1
	rootBytes, err := root.Marshal()
	if err != nil {
		panic(err)
	}
	copy(pvd[consts.ISO9660_ROOT_RECORD_OFFSET:], rootBytes)

	term := img[SectorOffset(TerminatorSector):]
	term[0] = 255
	copy(term[1:6], consts.ISO9660_STD_IDENTIFIER)
	term[6] = 1

	copy(img[SectorOffset(RootSector):], rootDir)
	return append(img, data...)
}

// SectorOffset returns the byte offset of a sector, for tests that patch an image in place.
func SectorOffset(sector int) int {
	return sector * consts.ISO9660_SECTOR_SIZE
}

func appendRecord(dir []byte, rec *iso9660.DirectoryRecord) []byte {
	b, err := rec.Marshal()
	if err != nil {
		panic(err)
	}
	return append(dir, b...)
}
