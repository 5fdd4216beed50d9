package shardmux

import (
	"bytes"
)

// Response holds a raw command response document.
type Response struct {
	buf     []byte
	data    Metadata
	decoded bool
}

// NewResponse wraps an encoded response document.
func NewResponse(data []byte) *Response {
	return &Response{buf: data}
}

// Decode decodes the response document. The result is cached; repeated
// calls return the same document.
func (resp *Response) Decode() (Metadata, error) {
	if resp.decoded {
		return resp.data, nil
	}
	md, err := DecodeMetadata(newDecoder(bytes.NewReader(resp.buf)))
	if err != nil {
		return nil, err
	}
	resp.data = md
	resp.decoded = true
	return resp.data, nil
}
