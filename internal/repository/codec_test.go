package repository

import (
	"testing"

	"career-match/internal/domain/level"
)

func TestDecodeLevels_NamesAndLegacyNumbers(t *testing.T) {
	got, err := decodeLevels([]byte(`{"Python":"Advanced","SQL":2,"Git":"unknown"}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := map[string]level.Level{"Python": level.Advanced, "SQL": level.Intermediate, "Git": level.NotProvided}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s: expected %v, got %v", k, v, got[k])
		}
	}
}

func TestDecodeLevels_Null(t *testing.T) {
	for _, in := range [][]byte{nil, []byte("null")} {
		got, err := decodeLevels(in)
		if err != nil || got != nil {
			t.Fatalf("expected nil map, got %v err=%v", got, err)
		}
	}
}

func TestEncodeLevels_RoundTrip(t *testing.T) {
	b, err := encodeLevels(map[string]level.Level{"Go": level.Basic})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if string(b) != `{"Go":"Basic"}` {
		t.Fatalf("unexpected encoding %s", b)
	}
	empty, _ := encodeLevels(nil)
	if string(empty) != `{}` {
		t.Fatalf("expected {}, got %s", empty)
	}
}

func TestDecodeVector(t *testing.T) {
	s := "[1,2.5,3]"
	v, err := decodeVector(&s)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(v) != 3 || v[1] != 2.5 {
		t.Fatalf("unexpected vector %v", v)
	}
	if v, err := decodeVector(nil); err != nil || v != nil {
		t.Fatalf("expected nil vector")
	}
	if encodeVector(nil) != nil {
		t.Fatalf("expected nil for empty embedding")
	}
}
