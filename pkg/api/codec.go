// Package api defines the kitty RPC surface: request and response messages,
// procedure names, and typed Connect clients and handlers for the auth,
// group and inventory services.
//
// Messages are plain Go structs carried as JSON. Every client and handler
// built here installs Codec, so both sides agree on the wire format.
package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"connectrpc.com/connect"
)

// ReasonHeader carries the ledger failure reason on error responses.
const ReasonHeader = "Kitty-Error-Reason"

// Codec marshals messages as JSON. It registers under the "json" name, so
// Connect serves it for application/json requests.
type Codec struct{}

var _ connect.Codec = Codec{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body leaves msg zeroed.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

// ErrorReason returns the ledger failure reason attached to an RPC error,
// or "" if there is none.
func ErrorReason(err error) string {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return ""
	}
	return connectErr.Meta().Get(ReasonHeader)
}
