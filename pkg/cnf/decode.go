package cnf

import (
	"strings"

	"github.com/bgrewell/cnf-kit/pkg/consts"
	"github.com/bgrewell/cnf-kit/pkg/options"
)

// Editors on Windows sometimes prepend a byte order mark.
const utf8BOM = "\ufeff"

// Decode parses the text of a SYSTEM.CNF file.
//
// Lines may end in CRLF or LF and may carry arbitrary surrounding whitespace; blank lines are skipped and a leading
// UTF-8 byte order mark is dropped. Each other line must contain a '=' with a non-empty key in front of it. Keys are
// matched case-sensitively. Unknown keys are ignored and a repeated key keeps its last value. An empty VMODE value
// is an unknown video mode. On error the zero Record is returned together with a
// *DecodeError wrapping ErrMalformedLine, ErrUnknownVideoMode or ErrMissingField.
func Decode(text string, opts ...options.Option) (Record, error) {
	o := options.Apply(opts...)
	log := o.Logger.WithName("cnf")

	var (
		elfPath, version, hddUnitPower string
		videoMode                      VideoMode
		haveMode                       bool
		seen                           = map[string]bool{}
	)

	text = strings.TrimPrefix(text, utf8BOM)
	for i, raw := range strings.Split(text, consts.CNF_LINE_ENDING_LF) {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, consts.CNF_ASSIGN)
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !ok || key == "" {
			log.V(1).Info("cannot split line", "line", lineNo, "text", line)
			return Record{}, &DecodeError{Line: lineNo, Err: ErrMalformedLine}
		}

		if seen[key] {
			log.V(1).Info("repeated key, keeping last value", "line", lineNo, "key", key)
		}
		seen[key] = true

		switch key {
		case consts.CNF_KEY_BOOT2:
			if o.StripVersionInfo {
				value = strings.TrimSuffix(value, consts.ISO9660_VERSION_SUFFIX)
			}
			elfPath = value
		case consts.CNF_KEY_VERSION:
			version = value
		case consts.CNF_KEY_VIDEO_MODE:
			mode, err := ParseVideoMode(value)
			if err != nil {
				log.V(1).Info("cannot parse video mode", "line", lineNo, "value", value)
				return Record{}, &DecodeError{Line: lineNo, Key: key, Err: err}
			}
			videoMode, haveMode = mode, true
		case consts.CNF_KEY_HDD_UNIT_POWER:
			hddUnitPower = value
		default:
			log.V(1).Info("ignoring unknown key", "line", lineNo, "key", key)
			continue
		}
		log.V(2).Info("decoded field", "line", lineNo, "key", key, "value", value)
	}

	var missing string
	switch {
	case elfPath == "":
		missing = consts.CNF_KEY_BOOT2
	case version == "":
		missing = consts.CNF_KEY_VERSION
	case !haveMode:
		missing = consts.CNF_KEY_VIDEO_MODE
	}
	if missing != "" {
		log.V(1).Info("required field absent", "key", missing)
		return Record{}, &DecodeError{Key: missing, Err: ErrMissingField}
	}

	return Record{
		ElfPath:      elfPath,
		Version:      version,
		VideoMode:    videoMode,
		HDDUnitPower: hddUnitPower,
	}, nil
}

// DecodeBytes is Decode for raw file contents.
func DecodeBytes(data []byte, opts ...options.Option) (Record, error) {
	return Decode(string(data), opts...)
}
