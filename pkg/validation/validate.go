package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bgrewell/cnf-kit/pkg/cnf"
	"github.com/bgrewell/cnf-kit/pkg/consts"
)

type Severity int

const (
	SEVERITY_WARNING Severity = iota
	SEVERITY_ERROR
)

func (s Severity) String() string {
	if s == SEVERITY_ERROR {
		return "error"
	}
	return "warning"
}

// Issue is a single lint finding for a record field.
type Issue struct {
	Field    string
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Field, i.Message)
}

// Devices the PS2 IOP modules expose for boot paths.
var knownDevices = map[string]bool{
	"cdrom":  true,
	"cdrom0": true,
	"hdd0":   true,
	"pfs0":   true,
	"mc0":    true,
	"mc1":    true,
	"mass":   true,
	"host":   true,
}

var versionRegexp = regexp.MustCompile(`^[0-9]+\.[0-9]{2}$`)

// ValidISO9660FileIdentifier reports whether identifier uses only d-characters and the two ISO9660 separators.
func ValidISO9660FileIdentifier(identifier string) bool {
	return validateIdentifierRune(identifier, ".;")
}

// validateIdentifierRune checks each rune in the identifier against the d-characters plus additionalChars.
func validateIdentifierRune(identifier string, additionalChars string) bool {
	if identifier == "" {
		return false
	}
	allowed := consts.D_CHARACTERS + additionalChars
	for _, r := range identifier {
		if !strings.ContainsRune(allowed, r) {
			return false
		}
	}
	return true
}

// Lint reports problems in r that a BIOS or a disc mastering tool would trip over. Errors make the record
// unusable; warnings flag values that are legal but unusual for retail discs.
func Lint(r cnf.Record) []Issue {
	var issues []Issue
	if err := r.Validate(); err != nil {
		issues = append(issues, Issue{Field: "record", Severity: SEVERITY_ERROR, Message: err.Error()})
	}
	issues = append(issues, lintBootPath(r.ElfPath)...)
	if r.Version != "" && !versionRegexp.MatchString(r.Version) {
		issues = append(issues, Issue{
			Field:    consts.CNF_KEY_VERSION,
			Severity: SEVERITY_WARNING,
			Message:  fmt.Sprintf("%q is not in the usual N.NN form", r.Version),
		})
	}
	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SEVERITY_ERROR {
			return true
		}
	}
	return false
}

func lintBootPath(path string) []Issue {
	if path == "" {
		return nil
	}
	issue := func(sev Severity, format string, args ...interface{}) Issue {
		return Issue{Field: consts.CNF_KEY_BOOT2, Severity: sev, Message: fmt.Sprintf(format, args...)}
	}

	device, rest, ok := strings.Cut(path, ":")
	if !ok {
		return []Issue{issue(SEVERITY_ERROR, "%q has no device prefix", path)}
	}
	if !knownDevices[device] {
		return []Issue{issue(SEVERITY_WARNING, "unknown device %q", device)}
	}
	if !strings.HasPrefix(device, "cdrom") {
		return nil
	}

	var issues []Issue
	if !strings.HasPrefix(rest, `\`) {
		issues = append(issues, issue(SEVERITY_ERROR, "cdrom paths must start with a backslash"))
	}
	name := rest[strings.LastIndex(rest, `\`)+1:]
	if !strings.HasSuffix(name, consts.ISO9660_VERSION_SUFFIX) {
		issues = append(issues, issue(SEVERITY_WARNING, "%q lacks the %s file version", name, consts.ISO9660_VERSION_SUFFIX))
	}
	for _, dir := range strings.Split(strings.Trim(rest, `\`), `\`) {
		if !ValidISO9660FileIdentifier(dir) {
			issues = append(issues, issue(SEVERITY_ERROR, "%q contains characters outside the ISO9660 d-characters", dir))
		}
	}
	return issues
}
