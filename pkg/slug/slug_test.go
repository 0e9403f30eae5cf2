package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/himtrails/tourbook/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  []slug.Option
		want  string
	}{
		{name: "simple", input: "Harshil Valley", want: "harshil-valley"},
		{name: "punctuation", input: "Price: ₹12,999!", want: "price-12-999"},
		{name: "diacritics", input: "Kedārnāth Yatra & Trek", want: "kedarnath-yatra-trek"},
		{name: "edges", input: "  --Char Dham--  ", want: "char-dham"},
		{name: "empty", input: "", want: ""},
		{name: "no alphanumerics", input: "!@#$%", want: ""},
		{name: "devanagari only", input: "केदारनाथ", want: ""},
		{name: "separator", input: "Valley of Flowers", opts: []slug.Option{slug.Separator("_")}, want: "valley_of_flowers"},
		{name: "max length at separator", input: "Valley of Flowers", opts: []slug.Option{slug.MaxLength(12)}, want: "valley-of"},
		{name: "max length inside word", input: "Tungnath", opts: []slug.Option{slug.MaxLength(4)}, want: "tung"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slug.Make(tt.input, tt.opts...))
		})
	}
}
