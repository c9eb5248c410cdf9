package dispatch

import (
	"net/http"
	"strconv"
	"strings"
)

// A Response is the finalized result handed back to the transport
// layer: a status line, headers, body bytes, and, for redirects, the
// target recorded for introspection and testing.
type Response struct {
	StatusLine   string
	Header       http.Header
	Body         []byte
	RedirectedTo string
}

// Code parses the numeric status code out of the status line,
// defaulting to 200 when the line is malformed.
func (resp *Response) Code() int {
	fields := strings.Fields(resp.StatusLine)
	if len(fields) == 0 {
		return http.StatusOK
	}

	code, err := strconv.Atoi(fields[0])
	if err != nil {
		return http.StatusOK
	}

	return code
}

// Write flushes the Response to w.
func (resp *Response) Write(w http.ResponseWriter) error {
	for k, vals := range resp.Header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}

	w.WriteHeader(resp.Code())
	_, err := w.Write(resp.Body)
	return err
}
