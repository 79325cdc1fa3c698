package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"summer/internal/logger"
)

// DefaultPath returns the path of the configuration file in the user
// configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "summer", "config.yaml"), nil
}

// Load reads the configuration file at path.
//
// The styles in the files listed in colors.style_files are appended to
// colors.styles. Their paths are relative to the directory of the main
// file.
func Load(path string) (*Root, error) {
	root := &Root{Collector: DefaultCollector()}
	if err := decodeFile(path, root); err != nil {
		return nil, err
	}

	if root.Columns == nil {
		root.Columns = DefaultColumns()
	}

	dir := filepath.Dir(path)
	for _, file := range root.Colors.StyleFiles {
		if !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}

		var styles []Style
		if err := decodeFile(file, &styles); err != nil {
			return nil, err
		}

		logger.Debug("style file loaded", "path", file, "styles", len(styles))
		root.Colors.Styles = append(root.Colors.Styles, styles...)
	}
	root.Colors.StyleFiles = nil

	if err := root.Validate(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return root, nil
}

// LoadDefault reads the file at DefaultPath. If it does not exist, the
// built-in configuration is returned.
func LoadDefault() (*Root, error) {
	path, err := DefaultPath()
	if err != nil {
		logger.Debug("no user configuration directory", "error", err)
		return Default(), nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logger.Debug("configuration file not found", "path", path)
		return Default(), nil
	}

	return Load(path)
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &LoadError{Path: path, Err: err, source: data}
	}

	return nil
}

// Dump writes root as YAML.
func Dump(w io.Writer, root *Root) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(root); err != nil {
		return err
	}

	return enc.Close()
}

// LoadError is returned when a configuration file cannot be read or
// parsed.
type LoadError struct {
	Path string
	Err  error

	source []byte
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

var lineRef = regexp.MustCompile(`line (\d+):`)

// Error formats parse errors with the line of the file where they were
// found:
//
//	cannot parse configuration file.
//
//	   --> /home/user/.config/summer/config.yaml
//	    |
//	  3 |   - tipe: directory
//	    |     ^^^^^^^^^^^^^^^
//
//	yaml: unmarshal errors: ...
func (e *LoadError) Error() string {
	if e.source == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}

	msg := e.Err.Error()

	m := lineRef.FindStringSubmatch(msg)
	if m == nil {
		return fmt.Sprintf("%s: %s", e.Path, msg)
	}

	n, _ := strconv.Atoi(m[1])
	line, ok := sourceLine(e.source, n)
	if !ok {
		return fmt.Sprintf("%s: %s", e.Path, msg)
	}

	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	marks := color.New(color.FgRed, color.Bold).Sprint(strings.Repeat("^", max(len(strings.TrimRight(line, " \t"))-indent, 1)))

	var b strings.Builder
	fmt.Fprintf(&b, "cannot parse configuration file.\n\n   --> %s\n", e.Path)
	fmt.Fprintf(&b, "    |\n")
	fmt.Fprintf(&b, "%3d | %s\n", n, line)
	fmt.Fprintf(&b, "    | %s%s\n", strings.Repeat(" ", indent), marks)
	fmt.Fprintf(&b, "\n%s", msg)
	return b.String()
}

func sourceLine(source []byte, n int) (string, bool) {
	if n < 1 {
		return "", false
	}

	sc := bufio.NewScanner(bytes.NewReader(source))
	for i := 1; sc.Scan(); i++ {
		if i == n {
			return sc.Text(), true
		}
	}

	return "", false
}
