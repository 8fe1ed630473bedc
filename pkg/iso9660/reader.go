package iso9660

import (
	"errors"
	"fmt"
	"io"

	"github.com/bgrewell/cnf-kit/pkg/consts"
	"github.com/bgrewell/cnf-kit/pkg/options"
)

const (
	descriptorTypePrimary    = 1
	descriptorTypeTerminator = 255

	// Upper bound on the volume descriptor set; real discs carry a handful.
	maxVolumeDescriptors = 64
)

var (
	// ErrNotFound is returned when the requested file is not in the root directory.
	ErrNotFound = errors.New("file not found in root directory")
	// ErrNoPrimaryDescriptor is returned when the volume descriptor set has no primary volume descriptor.
	ErrNoPrimaryDescriptor = errors.New("no primary volume descriptor")
	// ErrFileTooLarge is returned when a file exceeds the configured MaxFileSize.
	ErrFileTooLarge = errors.New("file too large")
	// ErrDirectoryTooLarge is returned when the root directory extent exceeds the configured MaxDirectorySize.
	ErrDirectoryTooLarge = errors.New("directory too large")
	// ErrExtentOutOfRange is returned when an extent ends past the end of the image.
	ErrExtentOutOfRange = errors.New("extent beyond end of image")
)

// ReadSystemCNF returns the raw contents of SYSTEM.CNF from the root directory of a disc image.
func ReadSystemCNF(r io.ReaderAt, opts ...options.Option) ([]byte, error) {
	return ReadRootFile(r, consts.CNF_FILE_NAME, opts...)
}

// ReadRootFile returns the contents of the named file in the root directory of a disc image. The comparison
// ignores case and the ";1" version suffix.
func ReadRootFile(r io.ReaderAt, name string, opts ...options.Option) ([]byte, error) {
	o := options.Apply(opts...)
	log := o.Logger.WithName("iso9660")

	root, err := RootDirectory(r)
	if err != nil {
		return nil, err
	}
	log.V(1).Info("found root directory", "extent", root.LocationOfExtent, "size", root.DataLength)
	if int64(root.DataLength) > o.MaxDirectorySize {
		return nil, fmt.Errorf("%w: root directory is %d bytes, limit is %d", ErrDirectoryTooLarge, root.DataLength, o.MaxDirectorySize)
	}

	entries, err := ReadDirectory(r, root)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		log.V(2).Info("directory entry", "identifier", e.FileIdentifier, "extent", e.LocationOfExtent, "size", e.DataLength)
		if e.IsDirectory() || !e.Matches(name) {
			continue
		}
		if int64(e.DataLength) > o.MaxFileSize {
			return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrFileTooLarge, e.FileIdentifier, e.DataLength, o.MaxFileSize)
		}
		data, err := readExtent(r, e.LocationOfExtent, int(e.DataLength))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.FileIdentifier, err)
		}
		log.V(1).Info("read file", "identifier", e.FileIdentifier, "bytes", len(data))
		return data, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// RootDirectory walks the volume descriptor set starting after the system area and returns the root directory
// record of the primary volume descriptor.
func RootDirectory(r io.ReaderAt) (*DirectoryRecord, error) {
	for i := 0; i < maxVolumeDescriptors; i++ {
		sector := int64(consts.ISO9660_SYSTEM_AREA_SECTORS + i)
		buf, err := readExtent(r, uint32(sector), consts.ISO9660_SECTOR_SIZE)
		if err != nil {
			return nil, fmt.Errorf("failed to read volume descriptor at sector %d: %w", sector, err)
		}
		if string(buf[1:6]) != consts.ISO9660_STD_IDENTIFIER {
			return nil, fmt.Errorf("sector %d: bad standard identifier %q", sector, buf[1:6])
		}

		switch buf[0] {
		case descriptorTypePrimary:
			start := consts.ISO9660_ROOT_RECORD_OFFSET
			root := &DirectoryRecord{}
			if err := root.Unmarshal(buf[start : start+consts.ISO9660_ROOT_RECORD_SIZE]); err != nil {
				return nil, fmt.Errorf("failed to unmarshal root directory record: %w", err)
			}
			return root, nil
		case descriptorTypeTerminator:
			return nil, ErrNoPrimaryDescriptor
		}
	}
	return nil, ErrNoPrimaryDescriptor
}

// ReadDirectory returns the records stored in a directory's extent. Records never span a sector boundary, a zero
// length byte means the rest of the sector is padding.
func ReadDirectory(r io.ReaderAt, dir *DirectoryRecord) ([]*DirectoryRecord, error) {
	data, err := readExtent(r, dir.LocationOfExtent, int(dir.DataLength))
	if err != nil {
		return nil, fmt.Errorf("failed to read directory extent %d: %w", dir.LocationOfExtent, err)
	}

	var records []*DirectoryRecord
	offset := 0
	for offset < len(data) {
		length := int(data[offset])
		if length == 0 {
			offset = (offset/consts.ISO9660_SECTOR_SIZE + 1) * consts.ISO9660_SECTOR_SIZE
			continue
		}
		rec := &DirectoryRecord{}
		if err := rec.Unmarshal(data[offset:]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal directory record at offset %d: %w", offset, err)
		}
		records = append(records, rec)
		offset += length
	}
	return records, nil
}

// sizer is implemented by bytes.Reader, strings.Reader and io.SectionReader.
type sizer interface {
	Size() int64
}

// readExtent reads size bytes starting at sector lba. When r knows its size, extents running past the end are
// rejected before the buffer is allocated.
func readExtent(r io.ReaderAt, lba uint32, size int) ([]byte, error) {
	offset := int64(lba) * consts.ISO9660_SECTOR_SIZE
	if s, ok := r.(sizer); ok && offset+int64(size) > s.Size() {
		return nil, fmt.Errorf("%w: %d bytes at sector %d, image is %d bytes", ErrExtentOutOfRange, size, lba, s.Size())
	}
	buf := make([]byte, size)
	n, err := r.ReadAt(buf, offset)
	if n < size {
		if err == nil || errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return buf, nil
}
