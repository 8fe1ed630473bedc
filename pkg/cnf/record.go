package cnf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bgrewell/cnf-kit/pkg/consts"
)

// ErrInvalidValue is returned by Record.Validate for values that would not survive an encode/decode round trip.
var ErrInvalidValue = errors.New("invalid value")

// Record is the decoded form of a SYSTEM.CNF file.
type Record struct {
	// ElfPath is the BOOT2 value, the drive-qualified path of the executable the BIOS starts,
	// e.g. cdrom0:\SLUS_213.48;1
	ElfPath string `json:"elf_path" yaml:"elf_path"`
	// Version is the VER value, a free-form label such as 1.00.
	Version string `json:"version" yaml:"version"`
	// VideoMode is the VMODE value.
	VideoMode VideoMode `json:"video_mode" yaml:"video_mode"`
	// HDDUnitPower is the optional HDDUNITPOWER value. Empty means the line is absent.
	HDDUnitPower string `json:"hdd_unit_power,omitempty" yaml:"hdd_unit_power,omitempty"`
}

// HasHDDUnitPower reports whether the record carries an HDDUNITPOWER line.
func (r Record) HasHDDUnitPower() bool {
	return r.HDDUnitPower != ""
}

// Validate checks a record built by hand. Records returned by Decode always pass.
func (r Record) Validate() error {
	fields := []struct {
		key      string
		value    string
		required bool
	}{
		{consts.CNF_KEY_BOOT2, r.ElfPath, true},
		{consts.CNF_KEY_VERSION, r.Version, true},
		{consts.CNF_KEY_HDD_UNIT_POWER, r.HDDUnitPower, false},
	}
	for _, f := range fields {
		if f.value == "" {
			if f.required {
				return fmt.Errorf("%w: %s", ErrMissingField, f.key)
			}
			continue
		}
		if strings.ContainsAny(f.value, "\r\n") {
			return fmt.Errorf("%w: %s contains a line break", ErrInvalidValue, f.key)
		}
		if strings.TrimSpace(f.value) != f.value {
			return fmt.Errorf("%w: %s has surrounding whitespace", ErrInvalidValue, f.key)
		}
	}
	if !r.VideoMode.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownVideoMode, int(r.VideoMode))
	}
	return nil
}

// String renders the record in the canonical CRLF layout.
func (r Record) String() string {
	return Encode(r)
}
