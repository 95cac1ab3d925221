package card

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		c    byte
		want [BitRows]bool
	}{
		{
			name: "capital A",
			c:    'A', // 0b1000001
			want: [BitRows]bool{true, false, false, false, false, false, true},
		},
		{
			name: "at sign",
			c:    '@', // 0b1000000
			want: [BitRows]bool{false, false, false, false, false, false, true},
		},
		{
			name: "delete",
			c:    0x7f,
			want: [BitRows]bool{true, true, true, true, true, true, true},
		},
		{
			name: "nul",
			c:    0,
			want: [BitRows]bool{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, Bits(tt.c)); diff != "" {
				t.Fatalf("Bits(%q) mismatch (-want +got):\n%s", tt.c, diff)
			}
		})
	}
}

func TestBitsMatchesShift(t *testing.T) {
	t.Parallel()

	for c := 0; c < 128; c++ {
		bits := Bits(byte(c))
		for i := 0; i < BitRows; i++ {
			want := (c>>i)&1 == 1
			if bits[i] != want {
				t.Fatalf("Bits(%d)[%d] = %v, want %v", c, i, bits[i], want)
			}
		}
	}
}

func TestNewRejectsWideHeader(t *testing.T) {
	t.Parallel()

	_, err := New("café", "")
	if !errors.Is(err, ErrNot7Bit) {
		t.Fatalf("New returned %v, want ErrNot7Bit", err)
	}
	var ce *CharError
	if !errors.As(err, &ce) {
		t.Fatalf("New returned %T, want *CharError", err)
	}
	if ce.Position != 3 || ce.Rune != 'é' {
		t.Fatalf("CharError = %+v, want rune U+00E9 at 3", ce)
	}

	c, err := New("me@example.com", "café owner")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if c.Footer != "café owner" {
		t.Fatalf("footer = %q", c.Footer)
	}
}

func TestAcceptHeaderRune(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		r           rune
		wantOK      bool
		wantWarning string
	}{
		{name: "ascii letter", r: 'a', wantOK: true},
		{name: "delete boundary", r: 127, wantOK: false}, // control character
		{name: "code 200", r: 200, wantOK: false, wantWarning: Warning7Bit},
		{name: "newline", r: '\n', wantOK: false},
		{name: "tilde", r: '~', wantOK: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, warning := AcceptHeaderRune(tt.r)
			if ok != tt.wantOK || warning != tt.wantWarning {
				t.Fatalf("AcceptHeaderRune(%d) = %v, %q; want %v, %q", tt.r, ok, warning, tt.wantOK, tt.wantWarning)
			}
		})
	}
}

func TestFilterHeader(t *testing.T) {
	t.Parallel()

	kept, warning := FilterHeader([]rune{'a', 200, '\t', 'b'})
	if diff := cmp.Diff([]rune{'a', 'b'}, kept); diff != "" {
		t.Fatalf("FilterHeader mismatch (-want +got):\n%s", diff)
	}
	if warning != Warning7Bit {
		t.Fatalf("warning = %q, want %q", warning, Warning7Bit)
	}

	if _, warning := FilterHeader([]rune("plain")); warning != "" {
		t.Fatalf("unexpected warning %q", warning)
	}

	if got := string(FilterFooter([]rune("x\tyé"))); got != "xyé" {
		t.Fatalf("FilterFooter = %q", got)
	}
}

func TestInchesToUnits(t *testing.T) {
	t.Parallel()

	if got := InchesToUnits(3.5); got != Width {
		t.Fatalf("InchesToUnits(3.5) = %d, want %d", got, Width)
	}
	if got := InchesToUnits(0.25); got != 18 {
		t.Fatalf("InchesToUnits(0.25) = %d, want 18", got)
	}
}
