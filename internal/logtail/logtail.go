package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"
)

// timeLayout matches the encoder in the logging package.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Entry is one decoded log line.
type Entry struct {
	Time    time.Time
	Level   string
	Logger  string
	Message string
	// Fields holds every other key of the JSON object.
	Fields map[string]any
	// Raw is the original line. Lines that are not JSON only carry Raw.
	Raw string
}

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		count = min(count+1, maxLines)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if count < maxLines {
		return slices.Clone(ring[:count]), nil
	}
	lines := make([]string, 0, count)
	lines = append(lines, ring[idx:]...)
	return append(lines, ring[:idx]...), nil
}

// Tail reads the last maxLines of path and decodes each one.
func Tail(path string, maxLines int) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line))
	}
	return entries, nil
}

// Parse decodes one JSON log line.
func Parse(line string) Entry {
	entry := Entry{Raw: line}

	var obj map[string]any
	if err := json.Unmarshal([]byte(line), &obj); err != nil {
		return entry
	}

	entry.Level = stringField(obj, "level")
	entry.Logger = stringField(obj, "logger")
	entry.Message = stringField(obj, "msg")
	if ts := stringField(obj, "time"); ts != "" {
		if parsed, err := time.Parse(timeLayout, ts); err == nil {
			entry.Time = parsed
		}
	}
	delete(obj, "caller")
	delete(obj, "stacktrace")
	if len(obj) > 0 {
		entry.Fields = obj
	}
	return entry
}

func stringField(obj map[string]any, key string) string {
	v, ok := obj[key]
	if !ok {
		return ""
	}
	delete(obj, key)
	s, _ := v.(string)
	return s
}

// String renders the entry as "15:04:05 WARN  [state] message key=value".
func (e Entry) String() string {
	if e.Level == "" && e.Message == "" {
		return e.Raw
	}

	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("15:04:05"))
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "%-5s", strings.ToUpper(e.Level))
	if e.Logger != "" {
		b.WriteString(" [")
		b.WriteString(e.Logger)
		b.WriteString("]")
	}
	b.WriteString(" ")
	b.WriteString(e.Message)
	for _, k := range slices.Sorted(maps.Keys(e.Fields)) {
		fmt.Fprintf(&b, " %s=%v", k, e.Fields[k])
	}
	return b.String()
}
