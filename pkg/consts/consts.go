package consts

const (
	// SYSTEM.CNF key for the boot executable path.
	CNF_KEY_BOOT2 = "BOOT2"

	// SYSTEM.CNF key for the title version.
	CNF_KEY_VERSION = "VER"

	// SYSTEM.CNF key for the video mode.
	CNF_KEY_VIDEO_MODE = "VMODE"

	// SYSTEM.CNF key for the optional hard-disk unit power setting.
	CNF_KEY_HDD_UNIT_POWER = "HDDUNITPOWER"

	// Key/value separator as written by retail mastering tools.
	CNF_SEPARATOR = " = "

	// Character the decoder splits key and value on.
	CNF_ASSIGN = "="

	// Line terminator the BIOS-authored files use.
	CNF_LINE_ENDING_CRLF = "\r\n"

	// Unix style line terminator, accepted on decode and optional on encode.
	CNF_LINE_ENDING_LF = "\n"

	// Name of the boot configuration file in the root directory of the disc.
	CNF_FILE_NAME = "SYSTEM.CNF"

	// Default upper bound on the size of a SYSTEM.CNF read from an image.
	CNF_MAX_FILE_SIZE = 64 * 1024

	// Default upper bound on the size of the root directory extent read from an image.
	ISO9660_MAX_DIRECTORY_SIZE = 64 * ISO9660_SECTOR_SIZE

	// Number of system area sectors.
	ISO9660_SYSTEM_AREA_SECTORS = 16

	// Standard ISO9660 identifier.
	ISO9660_STD_IDENTIFIER = "CD001"

	// ISO9660 default sector size.
	ISO9660_SECTOR_SIZE = 2048

	// Offset of the root directory record inside a primary volume descriptor.
	ISO9660_ROOT_RECORD_OFFSET = 156

	// Size of the root directory record embedded in the primary volume descriptor.
	ISO9660_ROOT_RECORD_SIZE = 34

	// Minimum length of a directory record (33 fixed bytes plus a 1 byte identifier).
	ISO9660_MIN_RECORD_SIZE = 34

	// ISO9660 file version separator 0x3B.
	ISO9660_SEPARATOR_2 = ";"

	// File version suffix appended to identifiers on ISO9660 volumes.
	ISO9660_VERSION_SUFFIX = ";1"

	// d-characters: 37 characters in the following positions of the International Reference Version
	// | 3/0 - 3/9
	// | 4/1 - 5/10
	// | 5/15
	D_CHARACTERS = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_"
)
