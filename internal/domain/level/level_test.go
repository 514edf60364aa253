package level

import (
	"encoding/json"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Level
	}{
		{name: "nil", in: nil, want: NotProvided},
		{name: "basic", in: "Basic", want: Basic},
		{name: "padded", in: "  Advanced ", want: Advanced},
		{name: "unknown string", in: "Expert", want: NotProvided},
		{name: "lowercase is unknown", in: "basic", want: NotProvided},
		{name: "not provided", in: "Not Provided", want: NotProvided},
		{name: "int", in: 2, want: Intermediate},
		{name: "json float", in: float64(3), want: Advanced},
		{name: "int64 out of range kept", in: int64(5), want: Level(5)},
		{name: "json number", in: json.Number("1"), want: Basic},
		{name: "unsupported type", in: []string{"Basic"}, want: NotProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassifyTotality(t *testing.T) {
	for _, req := range All() {
		if req == NotProvided {
			continue
		}
		for _, usr := range All() {
			st := Classify(req, usr)
			switch st {
			case StatusMissing, StatusWeak, StatusAchieved:
			default:
				t.Fatalf("Classify(%v, %v) returned unexpected status %q", req, usr, st)
			}
		}
		if got := Classify(req, req); got != StatusAchieved {
			t.Fatalf("Classify(%v, %v) = %q, want Achieved", req, req, got)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		req, usr Level
		want     Status
	}{
		{Intermediate, NotProvided, StatusMissing},
		{Intermediate, Basic, StatusWeak},
		{Intermediate, Advanced, StatusAchieved},
		{Basic, Basic, StatusAchieved},
		{Advanced, Intermediate, StatusWeak},
	}
	for _, tt := range tests {
		if got := Classify(tt.req, tt.usr); got != tt.want {
			t.Fatalf("Classify(%v, %v) = %q, want %q", tt.req, tt.usr, got, tt.want)
		}
	}
}

func TestLevelJSON(t *testing.T) {
	var m map[string]Level
	if err := json.Unmarshal([]byte(`{"SQL":"Advanced","Go":2,"Rust":null,"Java":"?"}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["SQL"] != Advanced || m["Go"] != Intermediate || m["Rust"] != NotProvided || m["Java"] != NotProvided {
		t.Fatalf("unexpected decode: %#v", m)
	}

	b, err := json.Marshal(map[string]Level{"SQL": Basic})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"SQL":"Basic"}` {
		t.Fatalf("unexpected encode: %s", b)
	}
}

func TestStatusIsGap(t *testing.T) {
	if !StatusMissing.IsGap() || !StatusWeak.IsGap() || StatusAchieved.IsGap() {
		t.Fatalf("IsGap classification mismatch")
	}
}
