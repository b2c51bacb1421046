package ocrconv

// The label manifest and the skipped-region error log.

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Manifest is the append-only label file of the output dataset. Each record
// is one line mapping a cropped image file name to its text label, separated
// by a single tab.
type Manifest struct {
	f *os.File
	w *bufio.Writer
	n int
}

// CreateManifest creates the manifest file at path.
func CreateManifest(path string) (*Manifest, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create the manifest file %q: %v", path, err)
	}
	return &Manifest{f: f, w: bufio.NewWriter(f)}, nil
}

// Append writes one manifest record.
func (m *Manifest) Append(fileName, label string) error {
	if _, err := fmt.Fprintf(m.w, "%s\t%s\n", fileName, label); err != nil {
		return fmt.Errorf("failed to write the manifest record for %q: %v", fileName, err)
	}
	m.n++
	return nil
}

// Count is the number of records written so far.
func (m *Manifest) Count() int {
	return m.n
}

// Close flushes and closes the manifest. The manifest is only complete once
// Close has returned without an error.
func (m *Manifest) Close() (err error) {
	defer closeWithErrCheck(m.f, &err)
	return m.w.Flush()
}

const dashedLine = "--------------------------------------------------------------------------------"

// ErrorLog records regions that were skipped because their bounding box is
// empty or does not fit the image.
//
// Writes go unbuffered to the file, so records written before a fatal abort
// of the run are not lost.
type ErrorLog struct {
	f *os.File
}

// CreateErrorLog creates the error log file at path.
func CreateErrorLog(path string) (*ErrorLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create the error log %q: %v", path, err)
	}
	return &ErrorLog{f: f}, nil
}

// BeginGroup writes a header for the named group. Subsequent records belong
// to that group until EndGroup is called.
func (l *ErrorLog) BeginGroup(name string) error {
	_, err := fmt.Fprintf(l.f, "Convert error logs of %q\n%s\n", name, dashedLine)
	return err
}

// EndGroup terminates the current group section.
func (l *ErrorLog) EndGroup() error {
	_, err := fmt.Fprintln(l.f, dashedLine)
	return err
}

// Record logs one skipped region with its source image, label and the
// rejected bounding box.
func (l *ErrorLog) Record(imageFile, label string, b BoundingBox) error {
	_, err := fmt.Fprintf(l.f, "%s: label %q has invalid bounding box %v\n",
		imageFile, label, b)
	return err
}

// Close closes the error log.
func (l *ErrorLog) Close() error {
	return l.f.Close()
}

// parseManifestLine splits one manifest line at its first tab into the crop
// file name and the label. Labels may themselves contain tabs.
func parseManifestLine(line string) (fileName, label string, err error) {
	i := strings.IndexByte(line, '\t')
	if i < 0 {
		return "", "", fmt.Errorf("no tab separator in %q", line)
	}
	return line[:i], line[i+1:], nil
}

// readLines returns a slice of lines read from the file at path.
func readLines(path string) (lines []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file %q: %v", path, err)
	}
	defer closeWithErrCheck(f, &err)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %q as lines: %v", path, err)
	}

	return lines, nil
}

// closeWithErrCheck calls c.Close(). If it returns an error, and (*e == nil),
// e is set to that error.
func closeWithErrCheck(c io.Closer, e *error) {
	err := c.Close()
	if err != nil && *e == nil {
		*e = err
	}
}
