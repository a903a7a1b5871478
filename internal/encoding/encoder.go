// Package encoding is the JSON codec for values persisted in text columns.
package encoding

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
)

// bufferPool recycles encode buffers across column writes.
var bufferPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

// Marshal encodes v compactly without HTML escaping and without the
// trailing newline a json.Encoder adds.
func Marshal(v interface{}) ([]byte, error) {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	data := bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Unmarshal decodes data into v. Empty input leaves v untouched.
func Unmarshal(data []byte, v interface{}) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// Column encodes v for a TEXT column.
func Column(v interface{}) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode column: %w", err)
	}
	return string(data), nil
}

// ScanColumn decodes a TEXT column written by Column.
func ScanColumn(column string, v interface{}) error {
	if err := Unmarshal([]byte(column), v); err != nil {
		return fmt.Errorf("decode column: %w", err)
	}
	return nil
}
