package stitch

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

// testPatternV6 carries the metadata a version 6 container records: hoop,
// descriptive strings, and a thread chart with explicit RGB values.
func testPatternV6() *Pattern {
	return &Pattern{
		Program: Program{
			Stitch(0, 0),
			Stitch(10, 20),
			Stitch(-5, 5),
			ColorChange(1),
			Move(30, 0),
			Stitch(0, 0),
			Stitch(-8, -8),
			End(),
		},
		Colors: ColorTable{
			{
				Index: 0, RGB: &Color{237, 23, 31},
				CatalogNumber: "800", Description: "Red", Brand: "Brother", Chart: "Embroidery",
			},
			{
				Index: 1, RGB: &Color{0, 0, 0},
				CatalogNumber: "900", Description: "Black", Brand: "Brother", Chart: "Embroidery",
			},
		},
		Meta: ContainerMetadata{
			Label:    "V6TEST",
			Name:     "sampler",
			Category: "demo",
			Author:   "nobody",
			Keywords: "test",
			Comments: "two color sampler",
			Hoop:     &Hoop{Width: 130, Height: 180},
		},
	}
}

func TestPES_RoundTripV1(t *testing.T) {
	p := testPattern()
	data, err := Encode(p, VersionPES1)
	if err != nil {
		t.Fatalf("Encode(VersionPES1) error: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if got.Meta.Version != VersionPES1 {
		t.Errorf("version = %q, want %q", got.Meta.Version, VersionPES1)
	}
	if !reflect.DeepEqual(got.Program, p.Program) {
		t.Errorf("program mismatch:\ngot  %+v\nwant %+v", got.Program, p.Program)
	}
	if !reflect.DeepEqual(got.Colors, p.Colors) {
		t.Errorf("color table mismatch:\ngot  %+v\nwant %+v", got.Colors, p.Colors)
	}
	if got.Meta.Label != "SAMPLE" {
		t.Errorf("label = %q, want %q", got.Meta.Label, "SAMPLE")
	}
	if got.Meta.Hoop != nil {
		t.Errorf("version 1 decoded a hoop: %+v", got.Meta.Hoop)
	}
	if len(got.Meta.ObjectOffsets) != 1 {
		t.Fatalf("object offsets = %v, want one entry", got.Meta.ObjectOffsets)
	}
	if want := p.Program.Extents(); got.Extents != want {
		t.Errorf("extents = %+v, want %+v", got.Extents, want)
	}
}

func TestPES_RoundTripV1_EmptyProgram(t *testing.T) {
	p := &Pattern{Program: Program{End()}, Meta: ContainerMetadata{Label: "EMPTY"}}
	data, err := Encode(p, VersionPES1)
	if err != nil {
		t.Fatalf("Encode(empty program) error: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode(empty program) error: %v", err)
	}
	if !reflect.DeepEqual(got.Program, p.Program) {
		t.Errorf("program = %+v, want %+v", got.Program, p.Program)
	}
	if len(got.Colors) != 0 {
		t.Errorf("decoded %d colors from colorless file", len(got.Colors))
	}
	if got.Extents != (Extents{}) {
		t.Errorf("extents = %+v, want zero", got.Extents)
	}
}

func TestPES_RoundTripV6(t *testing.T) {
	p := testPatternV6()
	data, err := Encode(p, VersionPES6)
	if err != nil {
		t.Fatalf("Encode(VersionPES6) error: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if got.Meta.Version != VersionPES6 {
		t.Errorf("version = %q, want %q", got.Meta.Version, VersionPES6)
	}
	if !reflect.DeepEqual(got.Program, p.Program) {
		t.Errorf("program mismatch:\ngot  %+v\nwant %+v", got.Program, p.Program)
	}
	// The chart from the version 6 header replaces the catalog mapping.
	if !reflect.DeepEqual(got.Colors, p.Colors) {
		t.Errorf("thread chart mismatch:\ngot  %+v\nwant %+v", got.Colors, p.Colors)
	}
	if got.Meta.Hoop == nil || *got.Meta.Hoop != *p.Meta.Hoop {
		t.Errorf("hoop = %+v, want %+v", got.Meta.Hoop, p.Meta.Hoop)
	}

	meta := []struct {
		field, got, want string
	}{
		{"Label", got.Meta.Label, "V6TEST"},
		{"Name", got.Meta.Name, "sampler"},
		{"Category", got.Meta.Category, "demo"},
		{"Author", got.Meta.Author, "nobody"},
		{"Keywords", got.Meta.Keywords, "test"},
		{"Comments", got.Meta.Comments, "two color sampler"},
		{"ImageFile", got.Meta.ImageFile, ""},
	}
	for _, m := range meta {
		if m.got != m.want {
			t.Errorf("Meta.%s = %q, want %q", m.field, m.got, m.want)
		}
	}
}

func TestPES_ReEncodeV6Stable(t *testing.T) {
	p := testPatternV6()
	data, err := Encode(p, VersionPES6)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	data2, err := Encode(got, VersionPES6)
	if err != nil {
		t.Fatalf("re-encode error: %v", err)
	}
	if !reflect.DeepEqual(data, data2) {
		t.Error("re-encoded container differs from original bytes")
	}
}

func TestDecode_BadMagic(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		[]byte("#PE"),
		[]byte("JUNKJUNKJUNK"),
		[]byte("#PES00ABxxxx"),
	} {
		if _, err := Decode(data); !errors.Is(err, ErrMalformedHeader) {
			t.Errorf("Decode(%q) = %v, want ErrMalformedHeader", data, err)
		}
	}
}

func TestDecode_UnsupportedVersion(t *testing.T) {
	data, err := Encode(testPatternV6(), VersionPES6)
	if err != nil {
		t.Fatal(err)
	}
	patched := append([]byte{}, data...)
	copy(patched[4:8], "0099")

	_, err = Decode(patched)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("Decode(version 0099) = %v, want ErrUnsupportedVersion", err)
	}
	var oe *OffsetError
	if !errors.As(err, &oe) {
		t.Fatal("error does not carry an OffsetError")
	}
	if oe.Offset != 4 {
		t.Errorf("OffsetError.Offset = %d, want 4", oe.Offset)
	}
}

func TestDecode_TruncatedHeader(t *testing.T) {
	for _, data := range [][]byte{
		[]byte("#PES0001"),           // no directory offset
		[]byte("#PES0001\x08\x00"),   // short directory offset
		[]byte("#PES0001\xFF\xFF\x00\x00"), // offset beyond buffer
	} {
		if _, err := Decode(data); !errors.Is(err, ErrMalformedHeader) {
			t.Errorf("Decode(%q) = %v, want ErrMalformedHeader", data, err)
		}
	}
}

func TestEncode_UnsupportedVersion(t *testing.T) {
	_, err := Encode(testPattern(), "0042")
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("Encode(version 0042) = %v, want ErrUnsupportedVersion", err)
	}
}

func TestEncode_VersionCapability(t *testing.T) {
	p := testPattern()
	p.Meta.ObjectOffsets = []uint32{0, 1}

	if _, err := Encode(p, VersionPES1); !errors.Is(err, ErrVersionCapabilityExceeded) {
		t.Errorf("Encode(two objects, VersionPES1) = %v, want ErrVersionCapabilityExceeded", err)
	}
	if _, err := Encode(p, VersionPES6); err != nil {
		t.Errorf("Encode(two objects, VersionPES6) error: %v", err)
	}
}

func TestPES_RoundTripV6_PreservesStringBytes(t *testing.T) {
	// Length-prefixed PES strings carry their exact bytes; only the
	// space-padded PEC label field is trimmed.
	p := testPatternV6()
	p.Meta.Name = " padded "
	p.Meta.Comments = "ends with space "

	data, err := Encode(p, VersionPES6)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Meta.Name != " padded " {
		t.Errorf("Name = %q, want %q", got.Meta.Name, " padded ")
	}
	if got.Meta.Comments != "ends with space " {
		t.Errorf("Comments = %q, want %q", got.Meta.Comments, "ends with space ")
	}
}

func TestEncode_AddendumColorLimit(t *testing.T) {
	colors := make(ColorTable, 129)
	for i := range colors {
		colors[i] = ColorEntry{Index: i, CatalogID: i%64 + 1}
	}
	p := &Pattern{Program: Program{End()}, Colors: colors}

	// The version 6 addendum palette field is 128 bytes.
	if _, err := Encode(p, VersionPES6); !errors.Is(err, ErrVersionCapabilityExceeded) {
		t.Fatalf("Encode(129 colors, VersionPES6) = %v, want ErrVersionCapabilityExceeded", err)
	}
	// Version 1 has no addendum and takes the same table.
	if _, err := Encode(p, VersionPES1); err != nil {
		t.Errorf("Encode(129 colors, VersionPES1) error: %v", err)
	}
}

func TestEncode_PECDispatch(t *testing.T) {
	p := testPattern()
	viaEncode, err := Encode(p, VersionPEC)
	if err != nil {
		t.Fatal(err)
	}
	direct, err := EncodePEC(p)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(viaEncode, direct) {
		t.Error("Encode(VersionPEC) differs from EncodePEC")
	}
}

func TestSupportedVersions(t *testing.T) {
	got := SupportedVersions()
	for _, want := range []string{VersionPES1, VersionPES6} {
		found := false
		for _, v := range got {
			if v == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("SupportedVersions() = %v, missing %q", got, want)
		}
	}
}

func TestDecode_Concurrent(t *testing.T) {
	data, err := Encode(testPatternV6(), VersionPES6)
	if err != nil {
		t.Fatal(err)
	}
	want, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Decode(data)
			if err != nil {
				t.Errorf("concurrent Decode error: %v", err)
				return
			}
			if !reflect.DeepEqual(got, want) {
				t.Error("concurrent Decode result differs")
			}
		}()
	}
	wg.Wait()
}
