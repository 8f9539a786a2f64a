package extract

import (
	"errors"
	"strings"
	"testing"
)

func TestRecoverPrimaryPassKeepsNarrowClass(t *testing.T) {
	data := []byte("<<Jane/Doe>>\x00\x01jane@example.com\t\t(555) 010-2000   Staff Engineer, Platform Team; 10 years.")

	got, err := Recover(data)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	want := "JaneDoejane@example.com (555) 010-2000 Staff Engineer Platform Team 10 years."
	if got != want {
		t.Fatalf("Recover = %q, want %q", got, want)
	}
}

func TestRecoverFallsBackToDecodedRuns(t *testing.T) {
	data := []byte("Name: Ana,\x00\x00Skills: Go;\x7fSQL!")

	got, err := Recover(data)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	want := "Name: Ana, Skills: Go; SQL!"
	if got != want {
		t.Fatalf("Recover = %q, want %q", got, want)
	}
}

func TestRecoverPrimaryThreshold(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "49 narrow chars uses fallback",
			data: strings.Repeat("a", 49) + ",",
			want: strings.Repeat("a", 49) + ",",
		},
		{
			name: "50 narrow chars stays on primary pass",
			data: strings.Repeat("a", 50) + ",",
			want: strings.Repeat("a", 50),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := Recover([]byte(tt.data))
			if err != nil {
				t.Fatalf("Recover: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Recover = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecoverTooShort(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "header only", data: []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")},
		{name: "binary stream", data: []byte{0x78, 0x9c, 0xed, 0xbd, 0x07, 0x60, 0x1c, 0x49, 0x96, 0x25, 0x26, 0x2f}},
		{name: "nineteen chars", data: []byte(strings.Repeat("x", 19))},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Recover(tt.data)
			if !errors.Is(err, ErrTextTooShort) {
				t.Fatalf("expected ErrTextTooShort, got %v", err)
			}
		})
	}
}

func TestRecoverTreatsLatin1NoBreakSpaceAsWhitespace(t *testing.T) {
	data := append([]byte(strings.Repeat("word ", 10)), 0xA0, 'e', 'n', 'd')

	got, err := Recover(data)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	want := strings.Repeat("word ", 10) + "end"
	if got != want {
		t.Fatalf("Recover = %q, want %q", got, want)
	}
}

func TestRecoverFallbackTrimsByteOrderMark(t *testing.T) {
	data := []byte("\xef\xbb\xbfSkills: Go, SQL; Kafka!")

	got, err := Recover(data)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if got != "Skills: Go, SQL; Kafka!" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"   leading and trailing   ",
		"tabs\t\tand\nnewlines\r\n",
		"odd <chars> {here} #1 & more",
		"a \x01b",
		"mixed\u00a0nbsp\u2003em space\ufeffbom",
		"already normal text",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
		if strings.Contains(once, "  ") {
			t.Fatalf("Normalize(%q) = %q contains a double space", in, once)
		}
	}
}

func TestNormalizeKeepsUnderscoreAndBroadPunctuation(t *testing.T) {
	got := Normalize("snake_case, \"quoted\" it's: ok?")
	if got != "snake_case, \"quoted\" it's: ok?" {
		t.Fatalf("unexpected %q", got)
	}
}
