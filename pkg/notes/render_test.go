package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPlainText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "divs and blank line",
			body: `<div><h1>Shopping</h1></div><div>Milk</div><div><br></div><div>Eggs</div>`,
			want: "Shopping\n\nMilk\n\nEggs",
		},
		{
			name: "list items",
			body: `<ul><li>one</li><li>two</li></ul>`,
			want: "- one\n- two",
		},
		{
			name: "entities decoded",
			body: `<div>Fish &amp; Chips</div>`,
			want: "Fish & Chips",
		},
		{
			name: "plain text passes through",
			body: "just text",
			want: "just text",
		},
		{
			name: "style dropped",
			body: `<style>div{}</style><div>kept</div>`,
			want: "kept",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderPlainText(tt.body))
		})
	}
}
