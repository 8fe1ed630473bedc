package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bgrewell/cnf-kit"
	"github.com/bgrewell/cnf-kit/pkg/cnf"
	"github.com/bgrewell/cnf-kit/pkg/logging"
	"github.com/bgrewell/cnf-kit/pkg/options"
	"github.com/bgrewell/cnf-kit/pkg/validation"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var (
	errorLabel   = color.New(color.FgRed).SprintFunc()
	warningLabel = color.New(color.FgYellow).SprintFunc()
	okLabel      = color.New(color.FgGreen).SprintFunc()
)

// errLintFailed is returned by check when at least one error-level issue was found.
var errLintFailed = errors.New("lint reported errors")

type app struct {
	out     io.Writer
	log     *logging.Logger
	opts    []options.Option
	yaml    bool
	spinner bool
}

func (a *app) run(command, path string) error {
	a.log = a.log.WithName(command)
	a.log.Debug("running command", "path", path)
	switch command {
	case "show":
		return a.show(path)
	case "normalize":
		return a.normalize(path)
	case "build":
		return a.build(path)
	case "extract":
		return a.extract(path)
	case "check":
		return a.check(path)
	case "scan":
		return a.scan(path)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) show(path string) error {
	r, err := cnfkit.ReadFile(path, a.opts...)
	if err != nil {
		return err
	}
	return a.printRecord(r)
}

func (a *app) normalize(path string) error {
	r, err := cnfkit.ReadFile(path, a.opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.out, cnfkit.Encode(r, a.opts...))
	return err
}

func (a *app) build(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	var r cnf.Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid record in %s: %w", path, err)
	}
	_, err = io.WriteString(a.out, cnfkit.Encode(r, a.opts...))
	return err
}

func (a *app) extract(path string) error {
	r, err := cnfkit.ReadImage(path, a.opts...)
	if err != nil {
		return err
	}
	if a.yaml {
		return a.printRecord(r)
	}
	_, err = io.WriteString(a.out, cnfkit.Encode(r, a.opts...))
	return err
}

func (a *app) check(path string) error {
	// Lint inspects the boot path exactly as written, ";1" included.
	opts := append(append([]options.Option{}, a.opts...), options.WithStripVersionInfo(false))
	r, err := cnfkit.ReadFile(path, opts...)
	if err != nil {
		return err
	}
	issues := validation.Lint(r)
	for _, i := range issues {
		label := warningLabel(i.Severity.String())
		if i.Severity == validation.SEVERITY_ERROR {
			label = errorLabel(i.Severity.String())
		}
		fmt.Fprintf(a.out, "%s: %s: %s\n", label, i.Field, i.Message)
	}
	if validation.HasErrors(issues) {
		return errLintFailed
	}
	if len(issues) == 0 {
		fmt.Fprintf(a.out, "%s %s\n", okLabel("ok"), path)
	}
	return nil
}

func (a *app) printRecord(r cnf.Record) error {
	if a.yaml {
		enc := yaml.NewEncoder(a.out)
		defer enc.Close()
		return enc.Encode(r)
	}
	fmt.Fprintf(a.out, "Boot path:      %s\n", r.ElfPath)
	fmt.Fprintf(a.out, "Version:        %s\n", r.Version)
	fmt.Fprintf(a.out, "Video mode:     %s\n", r.VideoMode)
	if r.HasHDDUnitPower() {
		fmt.Fprintf(a.out, "HDD unit power: %s\n", r.HDDUnitPower)
	}
	return nil
}
