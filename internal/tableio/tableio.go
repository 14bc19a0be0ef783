// Package tableio reads and writes code tables.
//
// The text format has one "symbol code" pair per line, separated by
// whitespace. Blank lines are ignored, and so are lines starting with '#'
// unless they hold exactly a symbol and a dot/dash code, which makes "# .-.-"
// an entry for the '#' symbol. The json,
// yaml, cbor and msgpack formats hold a single object mapping each symbol to
// its code.
package tableio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kumarlokesh/morse-tree/internal/codec"
	"github.com/kumarlokesh/morse-tree/internal/morse"
)

// Format identifies a table file encoding
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatCBOR    Format = "cbor"
	FormatMsgpack Format = "msgpack"
)

var (
	// ErrUnknownFormat is returned for a format name or file extension that is not supported.
	ErrUnknownFormat = errors.New("unknown table format")
	// ErrInvalidEntry is returned for a table entry that cannot be parsed.
	ErrInvalidEntry = errors.New("invalid table entry")
)

// maxTableSize bounds how much of a table file is read
const maxTableSize = 1 << 20

// ParseFormat converts a format name to a Format
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSON, FormatYAML, FormatCBOR, FormatMsgpack:
		return f, nil
	case "txt":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	case "mp", "msgp":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks a format from the file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return FormatText, nil
	}
	return ParseFormat(ext)
}

// Load reads a table from path. An empty format is derived from the extension.
func Load(path string, format Format) (*morse.CodeTable, error) {
	if format == "" {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table file: %w", err)
	}
	defer f.Close()

	table, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load table %s: %w", path, err)
	}
	return table, nil
}

// Read parses a table in the given format
func Read(r io.Reader, format Format) (*morse.CodeTable, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxTableSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	if len(data) > maxTableSize {
		return nil, fmt.Errorf("table exceeds %d bytes", maxTableSize)
	}

	var entries map[rune]string
	switch format {
	case FormatText:
		entries, err = readText(data)
	case FormatJSON:
		entries, err = readObject(data, codec.JSON[map[string]string]{})
	case FormatYAML:
		entries, err = readObject(data, yamlCodec{})
	case FormatCBOR:
		entries, err = readObject(data, codec.MustCBOR[map[string]string]())
	case FormatMsgpack:
		entries, err = readObject(data, codec.Msgpack[map[string]string]{})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return morse.NewTable(entries)
}

func readText(data []byte) (map[rune]string, error) {
	entries := make(map[rune]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if strings.HasPrefix(text, "#") && !(len(fields) == 2 && isCode(fields[1])) {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: want \"symbol code\", got %q", ErrInvalidEntry, line, text)
		}
		if err := addEntry(entries, fields[0], fields[1]); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan table: %w", err)
	}
	return entries, nil
}

// isCode reports whether s is a non-empty string of dots and dashes
func isCode(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if ch != morse.Dot && ch != morse.Dash {
			return false
		}
	}
	return true
}

func readObject(data []byte, c codec.Codec[map[string]string]) (map[rune]string, error) {
	obj, err := c.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	entries := make(map[rune]string, len(obj))
	for key, code := range obj {
		if err := addEntry(entries, key, code); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func addEntry(entries map[rune]string, key, code string) error {
	sym, err := morse.ParseSymbol(key)
	if err != nil || sym == morse.Placeholder {
		return fmt.Errorf("%w: symbol %q must be a single character", ErrInvalidEntry, key)
	}
	if prev, ok := entries[rune(sym)]; ok && prev != code {
		return fmt.Errorf("%w: %q listed with codes %q and %q", ErrInvalidEntry, key, prev, code)
	}
	entries[rune(sym)] = code
	return nil
}

// Write encodes table in the given format. The text format lists symbols in
// ascending order.
func Write(w io.Writer, table *morse.CodeTable, format Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatText:
		data = writeText(table)
	case FormatJSON:
		data, err = codec.JSON[map[string]string]{}.Encode(table.Entries())
	case FormatYAML:
		data, err = yamlCodec{}.Encode(table.Entries())
	case FormatCBOR:
		data, err = codec.MustCBOR[map[string]string]().Encode(table.Entries())
	case FormatMsgpack:
		data, err = codec.Msgpack[map[string]string]{}.Encode(table.Entries())
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

func writeText(table *morse.CodeTable) []byte {
	var buf bytes.Buffer
	for _, sym := range table.Symbols() {
		code, _ := table.Code(rune(sym))
		fmt.Fprintf(&buf, "%s %s\n", sym, code)
	}
	return buf.Bytes()
}

// yamlCodec adapts gopkg.in/yaml.v3 to codec.Codec
type yamlCodec struct{}

func (yamlCodec) Encode(v map[string]string) ([]byte, error) {
	return yaml.Marshal(v)
}

func (yamlCodec) Decode(b []byte) (map[string]string, error) {
	var v map[string]string
	err := yaml.Unmarshal(b, &v)
	return v, err
}
