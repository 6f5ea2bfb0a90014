// Package jsonapi reads the JSON:API documents the Patreon API responds
// with and flattens their resources into the raw mappings patreon.Decode
// accepts.
package jsonapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/willmadison/patreon-sync-tools/patreon"
)

type Document struct {
	Data     json.RawMessage `json:"data"`
	Included []Resource      `json:"included"`
	Links    Links           `json:"links"`
	Meta     Meta            `json:"meta"`
	Errors   []Error         `json:"errors"`
}

type Resource struct {
	ID            string                  `json:"id"`
	Type          patreon.Kind            `json:"type"`
	Attributes    map[string]any          `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships"`
}

// Relationship holds the raw linkage: null, one identifier or a list.
type Relationship struct {
	Data json.RawMessage `json:"data"`
}

type Identifier struct {
	ID   string       `json:"id"`
	Type patreon.Kind `json:"type"`
}

type Links struct {
	Self string `json:"self"`
	Next string `json:"next"`
}

type Meta struct {
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Total   int     `json:"total"`
	Cursors Cursors `json:"cursors"`
}

type Cursors struct {
	Next *string `json:"next"`
}

// Error is one entry of a document's "errors" member.
type Error struct {
	ID       string `json:"id"`
	Code     int    `json:"code"`
	CodeName string `json:"code_name"`
	Status   string `json:"status"`
	Title    string `json:"title"`
	Detail   string `json:"detail"`
}

func (e Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s (%s)", e.Title, e.CodeName)
	}
	return fmt.Sprintf("%s (%s): %s", e.Title, e.CodeName, e.Detail)
}

func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := decode(r, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON:API document")
	}
	return &doc, nil
}

// Err joins the document's errors, or returns nil if it has none.
func (d *Document) Err() error {
	if len(d.Errors) == 0 {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, e)
	}
	return fmt.Errorf("API error: %w", joinErrors(errs))
}

// Resources returns the primary data as a list whether the document holds
// a single resource, an array or null.
func (d *Document) Resources() ([]Resource, error) {
	data := bytes.TrimSpace(d.Data)

	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		return nil, nil
	case data[0] == '[':
		var resources []Resource
		if err := decode(bytes.NewReader(data), &resources); err != nil {
			return nil, errors.Wrap(err, "failed to parse primary data")
		}
		return resources, nil
	}

	var resource Resource
	if err := decode(bytes.NewReader(data), &resource); err != nil {
		return nil, errors.Wrap(err, "failed to parse primary data")
	}
	return []Resource{resource}, nil
}

// NextCursor returns the cursor of the following page, or "" on the last.
func (d *Document) NextCursor() string {
	if d.Meta.Pagination.Cursors.Next == nil {
		return ""
	}
	return *d.Meta.Pagination.Cursors.Next
}

// decode keeps numbers as json.Number so large integers survive intact.
func decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec.Decode(v)
}

func joinErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}

	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	return errors.New(strings.Join(messages, "; "))
}
