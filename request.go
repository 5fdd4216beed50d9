package shardmux

import (
	"github.com/vmihailenco/msgpack/v5"
)

// Request is a command the router sends over a backend connection.
type Request interface {
	// Command returns the command name. Query handlers attached to
	// composite connections dispatch on it.
	Command() string
	// Body fills an encoder with the command body.
	Body(enc *msgpack.Encoder) error
}

type baseRequest struct {
	command string
}

// Command returns the command name.
func (req *baseRequest) Command() string {
	return req.command
}

// ProbeRequest is the topology probe issued against newly created
// single-node connections to learn the backend's role.
type ProbeRequest struct {
	baseRequest
}

// NewProbeRequest returns a new ProbeRequest.
func NewProbeRequest() *ProbeRequest {
	req := new(ProbeRequest)
	req.command = "ismaster"
	return req
}

// Body fills an encoder with the probe command body.
func (req *ProbeRequest) Body(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(1); err != nil {
		return err
	}
	if err := enc.EncodeString(req.command); err != nil {
		return err
	}
	return enc.EncodeInt(1)
}
