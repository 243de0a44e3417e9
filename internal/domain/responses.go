package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
)

// ErrMalformedResponse is returned when a backend answer is not the agreed JSON shape.
var ErrMalformedResponse = errors.New("malformed response")

// RequestData maps request parameter names to values for a single request.
type RequestData map[string]any

// Values form-encodes the request data. Keys are emitted in sorted order.
func (d RequestData) Values() url.Values {
	v := url.Values{}
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Set(k, fmt.Sprint(d[k]))
	}
	return v
}

// OptionsResponse is the answer to a selection input's option fetch.
type OptionsResponse struct {
	Errors string
	Data   []string
}

// PreflightResponse reports the users an overload would unenroll.
// Users is a sample and may be shorter than Count.
type PreflightResponse struct {
	Count int      `json:"count"`
	Users []string `json:"users"`
}

// ActionResponse is the answer to a command control request. Rendering
// precedence is Empty, then Errors, then Datatable, then Message.
type ActionResponse struct {
	Empty     bool
	Errors    string
	Datatable json.RawMessage
	Message   string
}

func DecodeOptionsResponse(body []byte) (OptionsResponse, error) {
	var raw struct {
		Errors json.RawMessage `json:"errors"`
		Data   []string        `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return OptionsResponse{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return OptionsResponse{Errors: payloadText(raw.Errors), Data: raw.Data}, nil
}

func DecodePreflightResponse(body []byte) (PreflightResponse, error) {
	var resp PreflightResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return PreflightResponse{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return resp, nil
}

func DecodeActionResponse(body []byte) (ActionResponse, error) {
	if !json.Valid(body) {
		return ActionResponse{}, fmt.Errorf("%w: invalid json", ErrMalformedResponse)
	}
	if IsEmptyPayload(body) {
		return ActionResponse{Empty: true}, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		// A non-empty string or array has no errors, datatable or message.
		return ActionResponse{}, nil
	}
	resp := ActionResponse{
		Errors:  payloadText(fields["errors"]),
		Message: payloadText(fields["message"]),
	}
	if dt := fields["datatable"]; !IsEmptyPayload(dt) {
		resp.Datatable = dt
	}
	return resp, nil
}

// IsEmptyPayload reports whether a JSON value carries nothing worth rendering:
// absent, null, "", [], {} and scalar non-strings all count as empty.
func IsEmptyPayload(raw json.RawMessage) bool {
	if len(bytes.TrimSpace(raw)) == 0 {
		return true
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return true
	}
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return true
	}
}

// payloadText returns a JSON string unquoted, or any other non-empty value as
// its compact JSON text.
func payloadText(raw json.RawMessage) string {
	if IsEmptyPayload(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
