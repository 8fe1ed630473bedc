package cnfkit

import (
	"fmt"
	"io"
	"os"

	"github.com/bgrewell/cnf-kit/pkg/cnf"
	"github.com/bgrewell/cnf-kit/pkg/iso9660"
	"github.com/bgrewell/cnf-kit/pkg/options"
)

// Decode parses SYSTEM.CNF text. See cnf.Decode.
func Decode(text string, opts ...options.Option) (cnf.Record, error) {
	return cnf.Decode(text, opts...)
}

// Encode renders a record in the canonical SYSTEM.CNF layout. See cnf.Encode.
func Encode(r cnf.Record, opts ...options.Option) string {
	return cnf.Encode(r, opts...)
}

// ReadFile decodes a SYSTEM.CNF stored as a plain file.
func ReadFile(location string, opts ...options.Option) (cnf.Record, error) {
	o := options.Apply(opts...)

	info, err := os.Stat(location)
	if err != nil {
		return cnf.Record{}, fmt.Errorf("failed to stat %s: %w", location, err)
	}
	if info.Size() > o.MaxFileSize {
		return cnf.Record{}, fmt.Errorf("%w: %s is %d bytes, limit is %d", iso9660.ErrFileTooLarge, location, info.Size(), o.MaxFileSize)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return cnf.Record{}, fmt.Errorf("failed to read %s: %w", location, err)
	}
	o.Logger.V(1).Info("read SYSTEM.CNF", "path", location, "bytes", len(data))

	r, err := cnf.DecodeBytes(data, opts...)
	if err != nil {
		return cnf.Record{}, fmt.Errorf("failed to decode %s: %w", location, err)
	}
	return r, nil
}

// ReadImage decodes the SYSTEM.CNF found in the root directory of an ISO9660 disc image.
func ReadImage(location string, opts ...options.Option) (cnf.Record, error) {
	o := options.Apply(opts...)

	f, err := os.Open(location)
	if err != nil {
		return cnf.Record{}, fmt.Errorf("failed to open image %s: %w", location, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return cnf.Record{}, fmt.Errorf("failed to stat image %s: %w", location, err)
	}

	data, err := iso9660.ReadSystemCNF(io.NewSectionReader(f, 0, info.Size()), opts...)
	if err != nil {
		return cnf.Record{}, fmt.Errorf("failed to read SYSTEM.CNF from %s: %w", location, err)
	}
	o.Logger.V(1).Info("read SYSTEM.CNF from image", "image", location, "bytes", len(data))

	r, err := cnf.DecodeBytes(data, opts...)
	if err != nil {
		return cnf.Record{}, fmt.Errorf("failed to decode SYSTEM.CNF from %s: %w", location, err)
	}
	return r, nil
}

// WriteFile encodes r and writes it to location.
func WriteFile(location string, r cnf.Record, opts ...options.Option) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("refusing to write invalid record: %w", err)
	}
	if err := os.WriteFile(location, cnf.EncodeBytes(r, opts...), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", location, err)
	}
	return nil
}
