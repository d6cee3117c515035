package stitch

import "testing"

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want FormatKind
	}{
		{name: "pes v1", data: []byte("#PES0001junk"), want: FormatPES},
		{name: "pes v6", data: []byte("#PES0060junk"), want: FormatPES},
		{name: "pec", data: []byte("#PEC0001junk"), want: FormatPEC},
		{name: "short", data: []byte("#PE"), want: FormatUnknown},
		{name: "empty", data: nil, want: FormatUnknown},
		{name: "other", data: []byte("LA:header"), want: FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sniff(tt.data); got != tt.want {
				t.Errorf("Sniff(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestFormatKind_String(t *testing.T) {
	tests := []struct {
		kind FormatKind
		want string
	}{
		{FormatPES, "PES"},
		{FormatPEC, "PEC"},
		{FormatUnknown, "unknown"},
		{FormatKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("FormatKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
