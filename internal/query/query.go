// Package query builds the optional query strings used by list endpoints.
package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Builder collects parameters in insertion order, skipping absent values
type Builder struct {
	keys   []string
	values url.Values
}

// New creates an empty builder
func New() *Builder {
	return &Builder{values: url.Values{}}
}

func (b *Builder) set(key, value string) *Builder {
	if _, ok := b.values[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.values.Set(key, value)
	return b
}

// String adds key when value is non-empty
func (b *Builder) String(key, value string) *Builder {
	if value == "" {
		return b
	}
	return b.set(key, value)
}

// Int adds key when value is non-nil. Zero is a valid value.
func (b *Builder) Int(key string, value *int) *Builder {
	if value == nil {
		return b
	}
	return b.set(key, strconv.Itoa(*value))
}

// Date adds key as YYYY-MM-DD when value is non-zero
func (b *Builder) Date(key string, value time.Time) *Builder {
	if value.IsZero() {
		return b
	}
	return b.set(key, value.Format(dateLayout))
}

// Values returns the collected parameters
func (b *Builder) Values() url.Values {
	return b.values
}

// Encode returns the query string without a leading "?".
// Keys keep insertion order, unlike url.Values.Encode.
func (b *Builder) Encode() string {
	var sb strings.Builder
	for _, k := range b.keys {
		for _, v := range b.values[k] {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(url.QueryEscape(k))
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(v))
		}
	}
	return sb.String()
}

// AppendTo appends the query to path, adding "?" only when parameters are set
func (b *Builder) AppendTo(path string) string {
	q := b.Encode()
	if q == "" {
		return path
	}
	return path + "?" + q
}
