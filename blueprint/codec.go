package blueprint

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

const dumpIndent = "    "

// FormatError reports bytes that are not deflate-compressed JSON.
type FormatError struct {
	Stage string // "inflate" or "json"
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("blueprint: invalid container (%s): %v", e.Stage, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Encode serializes doc as compact JSON and compresses it with zlib at the
// default level. The output depends only on doc.
func Encode(doc *Document) ([]byte, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("blueprint: marshal: %w", err)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		return nil, fmt.Errorf("blueprint: compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("blueprint: compress: %w", err)
	}
	return buf.Bytes(), nil
}

// Inflate decompresses a container and checks that the payload is JSON.
// Streams without a zlib header are retried as raw deflate.
func Inflate(data []byte) ([]byte, error) {
	payload, err := inflateZlib(data)
	if errors.Is(err, zlib.ErrHeader) {
		payload, err = inflateRaw(data)
	}
	if err != nil {
		return nil, &FormatError{Stage: "inflate", Err: err}
	}
	if !json.Valid(payload) {
		return nil, &FormatError{Stage: "json", Err: errors.New("payload is not valid JSON")}
	}
	return payload, nil
}

func inflateZlib(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func inflateRaw(data []byte) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()
	return io.ReadAll(fr)
}

// Decode inflates data and parses it into a Document. Only JSON syntax and
// field types are checked.
func Decode(data []byte) (*Document, error) {
	payload, err := Inflate(data)
	if err != nil {
		return nil, err
	}
	doc := new(Document)
	if err := json.Unmarshal(payload, doc); err != nil {
		return nil, &FormatError{Stage: "json", Err: err}
	}
	return doc, nil
}

// Dump renders doc as JSON indented by four spaces.
func Dump(doc *Document) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", dumpIndent)
	if err != nil {
		return nil, fmt.Errorf("blueprint: marshal: %w", err)
	}
	return out, nil
}

// DumpRaw re-indents arbitrary JSON text by four spaces, keeping fields the
// Document model does not know about.
func DumpRaw(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", dumpIndent); err != nil {
		return nil, &FormatError{Stage: "json", Err: err}
	}
	return buf.Bytes(), nil
}
