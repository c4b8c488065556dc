package shopapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcceptsJSON(t *testing.T) {
	tests := map[string]bool{
		"application/json":                    true,
		"*/*":                                 true,
		"text/html, application/json;q=0.9":   true,
		"text/html,application/xhtml+xml,*/*": true,
		"":                                    false,
		"text/html":                           false,
		"application/xml, text/plain":         false,
		"application/jso, n":                  false,
	}
	for accept, expected := range tests {
		assert.Equal(t, expected, acceptsJSON(accept), accept)
	}
}

func TestIsJSONContentType(t *testing.T) {
	assert.True(t, isJSONContentType("application/json"))
	assert.False(t, isJSONContentType("application/json; charset=utf-8"))
	assert.False(t, isJSONContentType("text/plain"))
	assert.False(t, isJSONContentType(""))
}
