package odoo

import (
	"fmt"
	"strings"
)

// AuthError reports rejected credentials or a call made without a session.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// NotFoundError reports an id or model the server does not know.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError reports record values the server rejected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// RPCError is any other failure reported by the server, kept verbatim.
type RPCError struct {
	Code    int
	Name    string
	Message string
}

func (e *RPCError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("odoo rpc error %s: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("odoo rpc error: %s", e.Message)
}

// mapError turns an Odoo JSON-RPC error payload into one of the typed
// errors above, keyed on the exception class name in error.data.name
// (e.g. "odoo.exceptions.MissingError").
func mapError(e *rpcError) error {
	msg := e.Data.Message
	if msg == "" {
		msg = e.Message
	}

	name := e.Data.Name
	switch name[strings.LastIndex(name, ".")+1:] {
	case "AccessDenied", "AccessError":
		return &AuthError{Message: msg}
	case "MissingError":
		return &NotFoundError{Message: msg}
	case "ValidationError", "UserError":
		return &ValidationError{Message: msg}
	}
	return &RPCError{Code: e.Code, Name: name, Message: msg}
}
