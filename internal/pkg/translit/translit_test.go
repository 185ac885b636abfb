package translit

import "testing"

func TestLetters(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Ana", "ANA"},
		{"  li ", "LI"},
		{"José", "JOSE"},
		{"Łukasz", "UKASZ"},
		{"O'Brien", "OBRIEN"},
		{"Zoë-Anne", "ZOEANNE"},
		{"王", "WANG"},
		{"李明", "LIMING"},
		{"", ""},
		{"123", ""},
	}
	for _, c := range cases {
		got := Letters(c.input)
		if got != c.want {
			t.Errorf("Letters(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}
