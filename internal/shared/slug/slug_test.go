package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Acme Desk Lamp", "acme-desk-lamp"},
		{"  Trimmed  ", "trimmed"},
		{"Ünïcode & Symbols!!", "n-code-symbols"},
		{"already-a-slug", "already-a-slug"},
		{"---", "item"},
		{"", "item"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FromName(tt.in), tt.in)
	}
}
