// Package api is the wire contract of the chitwiser Connect services: the
// request and response messages, the JSON codec they travel in, typed
// clients, and handler constructors for servers.
package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// codecName replaces Connect's built-in protobuf-JSON codec for
// application/json requests.
const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// WithJSON makes handlers and clients exchange plain JSON messages.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
