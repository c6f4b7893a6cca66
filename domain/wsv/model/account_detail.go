package model

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// AccountDetail is the detail store of an account: a key/value
// namespace per writer account.
type AccountDetail map[string]map[string]string

// NewAccountDetail returns an empty AccountDetail
func NewAccountDetail() AccountDetail {
	return make(AccountDetail)
}

// Set upserts key=value inside the namespace of writer, creating the
// namespace if needed. Other namespaces and other keys are untouched.
func (detail AccountDetail) Set(writer, key, value string) {
	namespace, ok := detail[writer]
	if !ok {
		namespace = make(map[string]string)
		detail[writer] = namespace
	}
	namespace[key] = value
}

// Get returns the value of key inside the namespace of writer
func (detail AccountDetail) Get(writer, key string) (string, bool) {
	namespace, ok := detail[writer]
	if !ok {
		return "", false
	}
	value, ok := namespace[key]
	return value, ok
}

// Writers returns the writers that own a namespace, sorted
func (detail AccountDetail) Writers() []string {
	writers := make([]string, 0, len(detail))
	for writer := range detail {
		writers = append(writers, writer)
	}
	sort.Strings(writers)
	return writers
}

// Keys returns the keys in the namespace of writer, sorted
func (detail AccountDetail) Keys(writer string) []string {
	namespace := detail[writer]
	keys := make([]string, 0, len(namespace))
	for key := range namespace {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep clone of AccountDetail. Cloning a nil
// AccountDetail returns an empty one.
func (detail AccountDetail) Clone() AccountDetail {
	clone := make(AccountDetail, len(detail))
	for writer, namespace := range detail {
		namespaceClone := make(map[string]string, len(namespace))
		for key, value := range namespace {
			namespaceClone[key] = value
		}
		clone[writer] = namespaceClone
	}
	return clone
}

// Equal returns whether detail equals to other. A nil
// AccountDetail equals an empty one.
func (detail AccountDetail) Equal(other AccountDetail) bool {
	if len(detail) != len(other) {
		return false
	}
	for writer, namespace := range detail {
		otherNamespace, ok := other[writer]
		if !ok || len(namespace) != len(otherNamespace) {
			return false
		}
		for key, value := range namespace {
			otherValue, ok := otherNamespace[key]
			if !ok || value != otherValue {
				return false
			}
		}
	}
	return true
}

// String returns the canonical JSON text of detail: writers and keys
// sorted, a space after every colon and comma.
// e.g. {"admin": {"id": "val"}, "id@domain": {"key": "value"}}
func (detail AccountDetail) String() string {
	var builder strings.Builder
	builder.WriteByte('{')
	for i, writer := range detail.Writers() {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(quoteJSON(writer))
		builder.WriteString(": {")
		for j, key := range detail.Keys(writer) {
			if j > 0 {
				builder.WriteString(", ")
			}
			builder.WriteString(quoteJSON(key))
			builder.WriteString(": ")
			builder.WriteString(quoteJSON(detail[writer][key]))
		}
		builder.WriteByte('}')
	}
	builder.WriteByte('}')
	return builder.String()
}

func quoteJSON(s string) string {
	// Marshaling a string never fails
	quoted, _ := json.Marshal(s)
	return string(quoted)
}

// ParseAccountDetail parses the JSON text of a detail store, as produced
// by AccountDetail.String
func ParseAccountDetail(jsonText string) (AccountDetail, error) {
	detail := NewAccountDetail()
	if strings.TrimSpace(jsonText) == "" {
		return detail, nil
	}
	err := json.Unmarshal([]byte(jsonText), &detail)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed account detail %s", jsonText)
	}
	for writer, namespace := range detail {
		if namespace == nil {
			detail[writer] = make(map[string]string)
		}
	}
	return detail, nil
}
