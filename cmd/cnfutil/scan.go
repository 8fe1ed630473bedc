package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bgrewell/cnf-kit"
	"github.com/bgrewell/cnf-kit/pkg/cnf"
	"github.com/theckman/yacspin"
	"golang.org/x/term"
)

type scanResult struct {
	image  string
	record cnf.Record
	err    error
}

// truncateString truncates the input string to the specified max length.
// If truncation occurs, it prepends "..." to indicate the string has been shortened.
func truncateString(input string, maxLength int) string {
	if len(input) <= maxLength {
		return input
	}
	if maxLength <= 3 {
		return input[len(input)-maxLength:]
	}
	return "..." + input[len(input)-(maxLength-3):]
}

// progressMessage fits "[n/total] name" into the terminal width.
func progressMessage(name string, current, total, width int) string {
	fixedPart := fmt.Sprintf(" [%d/%d] ", current, total)
	availableSpace := width - len(fixedPart) - 6
	if availableSpace < 10 {
		availableSpace = 10
	}
	return fixedPart + truncateString(name, availableSpace)
}

// InitializeSpinner sets up and starts the yacspin spinner.
func InitializeSpinner() (*yacspin.Spinner, error) {
	settings := yacspin.Config{
		Frequency:         100 * time.Millisecond,
		ShowCursor:        false,
		SpinnerAtEnd:      false,
		CharSet:           yacspin.CharSets[14],
		Colors:            []string{"fgHiCyan"},
		StopColors:        []string{"fgHiGreen"},
		StopFailColors:    []string{"fgHiRed"},
		StopFailCharacter: "✗",
		StopCharacter:     "✓",
	}

	spinner, err := yacspin.New(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create spinner: %w", err)
	}
	if err := spinner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start spinner: %w", err)
	}
	return spinner, nil
}

// findImages returns the .iso files directly inside dir, sorted by name.
func findImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var images []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".iso") {
			continue
		}
		images = append(images, filepath.Join(dir, e.Name()))
	}
	sort.Strings(images)
	return images, nil
}

func (a *app) scan(dir string) error {
	images, err := findImages(dir)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return fmt.Errorf("no .iso files in %s", dir)
	}

	var spinner *yacspin.Spinner
	if a.spinner {
		spinner, err = InitializeSpinner()
		if err != nil {
			a.log.Error(err, "progress updates will be disabled")
			spinner = nil
		}
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width = 80
	}

	results := make([]scanResult, 0, len(images))
	failed := 0
	for i, image := range images {
		if spinner != nil {
			spinner.Message(progressMessage(filepath.Base(image), i+1, len(images), width))
		}
		a.log.Trace("scanning image", "image", image, "index", i+1, "total", len(images))
		r, err := cnfkit.ReadImage(image, a.opts...)
		if err != nil {
			failed++
			a.log.Debug("scan failed", "image", image, "error", err)
		}
		results = append(results, scanResult{image: image, record: r, err: err})
	}

	if spinner != nil {
		msg := fmt.Sprintf(" Scanned %d images, %d failed", len(images), failed)
		if failed > 0 {
			spinner.StopFailMessage(msg)
			_ = spinner.StopFail()
		} else {
			spinner.StopMessage(msg)
			_ = spinner.Stop()
		}
	}

	a.log.Info("scan complete", "images", len(images), "failed", failed)
	for _, res := range results {
		name := filepath.Base(res.image)
		if res.err != nil {
			fmt.Fprintf(a.out, "%s\t%s %v\n", name, errorLabel("error"), res.err)
			continue
		}
		fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\n", name, res.record.ElfPath, res.record.Version, res.record.VideoMode)
	}
	return nil
}
