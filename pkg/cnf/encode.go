package cnf

import (
	"strings"

	"github.com/bgrewell/cnf-kit/pkg/consts"
	"github.com/bgrewell/cnf-kit/pkg/options"
)

// Encode renders r in the layout the BIOS expects: BOOT2, VER, VMODE and, when set, HDDUNITPOWER, each written as
// "KEY = VALUE" and terminated with the configured line ending (CRLF by default).
func Encode(r Record, opts ...options.Option) string {
	o := options.Apply(opts...)

	elfPath := r.ElfPath
	if o.StripVersionInfo && !strings.HasSuffix(elfPath, consts.ISO9660_VERSION_SUFFIX) {
		elfPath += consts.ISO9660_VERSION_SUFFIX
	}

	var sb strings.Builder
	writeLine(&sb, consts.CNF_KEY_BOOT2, elfPath, o.LineEnding)
	writeLine(&sb, consts.CNF_KEY_VERSION, r.Version, o.LineEnding)
	writeLine(&sb, consts.CNF_KEY_VIDEO_MODE, r.VideoMode.String(), o.LineEnding)
	if r.HasHDDUnitPower() {
		writeLine(&sb, consts.CNF_KEY_HDD_UNIT_POWER, r.HDDUnitPower, o.LineEnding)
	}
	return sb.String()
}

// EncodeBytes is Encode returning the raw bytes to write to disc.
func EncodeBytes(r Record, opts ...options.Option) []byte {
	return []byte(Encode(r, opts...))
}

func writeLine(sb *strings.Builder, key, value, ending string) {
	sb.WriteString(key)
	sb.WriteString(consts.CNF_SEPARATOR)
	sb.WriteString(value)
	sb.WriteString(ending)
}
