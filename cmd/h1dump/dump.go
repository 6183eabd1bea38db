package main

import (
	"io"

	"github.com/indigo-web/h1frame/http"
	"github.com/indigo-web/h1frame/http/headers"
	json "github.com/json-iterator/go"
)

type field struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type message struct {
	Method  string  `json:"method,omitempty"`
	Target  string  `json:"target,omitempty"`
	Form    string  `json:"form,omitempty"`
	URI     string  `json:"uri,omitempty"`
	Code    int     `json:"code,omitempty"`
	Reason  string  `json:"reason,omitempty"`
	Proto   string  `json:"proto"`
	Headers []field `json:"headers"`
	Body    string  `json:"body"`
}

func fromRequest(request *http.Request, body []byte) message {
	return message{
		Method:  request.Method,
		Target:  request.Target,
		Form:    request.Form.String(),
		URI:     request.URI.String(),
		Proto:   request.Proto.String(),
		Headers: fields(request.Headers),
		Body:    string(body),
	}
}

func fromResponse(response *http.Response, body []byte) message {
	return message{
		Code:    int(response.Code),
		Reason:  response.Reason,
		Proto:   response.Proto.String(),
		Headers: fields(response.Headers),
		Body:    string(body),
	}
}

func fields(hdrs *headers.Headers) []field {
	list := make([]field, 0, hdrs.Len())
	for name, values := range hdrs.Iter() {
		list = append(list, field{Name: name, Values: values})
	}

	return list
}

// writeJSON renders the message as a single line of JSON.
func writeJSON(w io.Writer, msg message) error {
	stream := json.ConfigDefault.BorrowStream(w)
	defer json.ConfigDefault.ReturnStream(stream)

	stream.WriteVal(msg)
	stream.WriteRaw("\n")
	return stream.Flush()
}
