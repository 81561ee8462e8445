package particle

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestParseRange tests the fixed and bracket range formats
func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Range
		wantErr string
	}{
		{"Integer", "120", Range{120, 120}, ""},
		{"Float", "0.25", Range{0.25, 0.25}, ""},
		{"Negative", "-10.5", Range{-10.5, -10.5}, ""},
		{"Range", "[2 8]", Range{2, 8}, ""},
		{"Padded", "  [ 1   4 ] ", Range{1, 4}, ""},
		{"Inverted", "[-10 -14]", Range{-14, -10}, ""},
		{"Empty", "", Range{}, "empty range"},
		{"Garbage", "abc", Range{}, "invalid range value"},
		{"Unterminated", "[1 2", Range{}, "unterminated"},
		{"OneBound", "[1]", Range{}, "exactly two bounds"},
		{"BadMax", "[1 x]", Range{}, "invalid range max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ParseRange(%q) error = %v, want containing %q", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRange(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRange_Random(t *testing.T) {
	r := Range{Min: 2, Max: 8}
	if got := r.Random(fixedRand(0)); got != 2 {
		t.Errorf("Random(0) = %v, want 2", got)
	}
	if got := r.Random(fixedRand(0.5)); got != 5 {
		t.Errorf("Random(0.5) = %v, want 5", got)
	}

	rng := newTestRand()
	for i := 0; i < 1000; i++ {
		v := r.Random(rng)
		if v < 2 || v >= 8 {
			t.Fatalf("Random = %v, want in [2, 8)", v)
		}
	}

	if got := Fixed(7).Random(rng); got != 7 {
		t.Errorf("Fixed(7).Random = %v", got)
	}
}

func TestRange_YAML(t *testing.T) {
	var doc struct {
		A Range `yaml:"a"`
		B Range `yaml:"b"`
		C Range `yaml:"c"`
		D Range `yaml:"d"`
	}
	src := `
a: 5
b: "[2 8]"
c: [14, 10]
d: [0.2, 0.5]
`
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.A != Fixed(5) {
		t.Errorf("a = %v", doc.A)
	}
	if doc.B != (Range{2, 8}) {
		t.Errorf("b = %v", doc.B)
	}
	if doc.C != (Range{10, 14}) {
		t.Errorf("c = %v, want normalised [10 14]", doc.C)
	}
	if doc.D != (Range{0.2, 0.5}) {
		t.Errorf("d = %v", doc.D)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), "c: [10, 14]") {
		t.Errorf("marshalled range not in flow form:\n%s", out)
	}
}

func TestRange_YAMLErrors(t *testing.T) {
	var doc struct {
		R Range `yaml:"r"`
	}
	for _, src := range []string{"r: [1, 2, 3]", "r: {min: 1}", "r: nope"} {
		if err := yaml.Unmarshal([]byte(src), &doc); err == nil {
			t.Errorf("yaml %q: expected error", src)
		}
	}
}

func TestParams_Validate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero rocket speed", func(p *Params) { p.RocketSpeed = Fixed(0) }},
		{"inverted spark speed", func(p *Params) { p.SparkSpeed = Range{Min: 8, Max: 2} }},
		{"negative gravity", func(p *Params) { p.Gravity = -1 }},
		{"drag one", func(p *Params) { p.Drag = 1 }},
		{"zero decay", func(p *Params) { p.Decay = 0 }},
		{"zero size", func(p *Params) { p.SparkSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParams_SparkTicks(t *testing.T) {
	p := DefaultParams()
	for _, decay := range []float64{4, 3, 3.5, 1} {
		p.Decay = decay
		want := int(MaxLifespan/decay) + 1
		if got := p.SparkTicks(); got != want {
			t.Errorf("decay %v: SparkTicks = %d, want %d", decay, got, want)
		}
	}
}
