package viewdoc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleDocument() *Document {
	return NewDocument([]View{
		{Name: "header", Start: 0, End: 15, Color: RGBA8(0, 128, 128, 255)},
		{Name: "table", Start: 16, End: 63, Color: Color{R: 0.25, G: 0.5, B: 0.75, A: 0.5}, Mode: ModeOutlined},
	})
}

func TestRoundTripSaveLoad(t *testing.T) {
	doc := sampleDocument()
	path := filepath.Join(t.TempDir(), "project.hexview")
	if err := Save(path, doc); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Version != VersionV1 {
		t.Fatalf("version mismatch: got %d", loaded.Version)
	}
	if len(loaded.Views) != len(doc.Views) {
		t.Fatalf("expected %d views, got %d", len(doc.Views), len(loaded.Views))
	}
	for i := range doc.Views {
		if loaded.Views[i] != doc.Views[i] {
			t.Fatalf("view %d mismatch: got %#v want %#v", i, loaded.Views[i], doc.Views[i])
		}
	}
}

func TestEncodeTruncatesLongNames(t *testing.T) {
	long := strings.Repeat("x", MaxNameLen+10)
	blob, err := Encode(NewDocument([]View{{Name: long, Start: 1, End: 2, Color: RGBA8(255, 0, 0, 255)}}))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Decode(blob)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Views[0].Name; got != long[:MaxNameLen] {
		t.Fatalf("unexpected name: %q", got)
	}
}

func TestTruncateNameKeepsRunesWhole(t *testing.T) {
	name := strings.Repeat("é", MaxNameLen+3)
	got := TruncateName(name)
	if got != strings.Repeat("é", MaxNameLen) {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if TruncateName("short") != "short" {
		t.Fatalf("short names must be kept")
	}
}

func TestDecodeLegacyDocumentWithoutHeader(t *testing.T) {
	legacy := `{"views":[{"name":"a","start":4,"end":9,"color_r":1,"color_g":0,"color_b":0,"color_a":1}]}`
	doc, err := Decode([]byte(legacy))
	if err != nil {
		t.Fatalf("legacy decode failed: %v", err)
	}
	if doc.Version != 0 {
		t.Fatalf("expected legacy version 0, got %d", doc.Version)
	}
	if len(doc.Views) != 1 || doc.Views[0].Start != 4 || doc.Views[0].End != 9 {
		t.Fatalf("unexpected views: %#v", doc.Views)
	}
	if doc.Views[0].Mode != ModeFilled {
		t.Fatalf("mode should default to filled")
	}
}

func TestDecodeMissingFieldAbortsLoad(t *testing.T) {
	blob := `{"format":"hexview.views","version":1,"views":[
		{"name":"ok","start":0,"end":1,"color_r":0,"color_g":0,"color_b":0,"color_a":1},
		{"name":"broken","start":2,"color_r":0,"color_g":0,"color_b":0,"color_a":1}
	]}`
	_, err := Decode([]byte(blob))
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if derr.Index != 1 || derr.Field != "end" {
		t.Fatalf("unexpected decode error: %+v", derr)
	}
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	_, err := Decode([]byte(`{"format":"hexview.views","version":9,"views":[]}`))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestDecodeRejectsForeignFormat(t *testing.T) {
	_, err := Decode([]byte(`{"format":"something-else","views":[]}`))
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
	_, err = Decode([]byte(`not json`))
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat for garbage, got %v", err)
	}
}

func TestDecodeClampsColorChannels(t *testing.T) {
	blob := `{"views":[{"name":"c","start":0,"end":0,"color_r":2,"color_g":-1,"color_b":0.5,"color_a":1}]}`
	doc, err := Decode([]byte(blob))
	if err != nil {
		t.Fatal(err)
	}
	c := doc.Views[0].Color
	if c.R != 1 || c.G != 0 || c.B != 0.5 || c.A != 1 {
		t.Fatalf("unexpected clamped color: %#v", c)
	}
}

func TestDecodeRejectsUnknownMode(t *testing.T) {
	blob := `{"views":[{"name":"c","start":0,"end":0,"color_r":0,"color_g":0,"color_b":0,"color_a":1,"mode":"dotted"}]}`
	_, err := Decode([]byte(blob))
	var derr *DecodeError
	if !errors.As(err, &derr) || derr.Index != 0 {
		t.Fatalf("expected DecodeError for view 0, got %v", err)
	}
}

func TestCompressedEncryptedRoundTrip(t *testing.T) {
	doc := sampleDocument()
	path := filepath.Join(t.TempDir(), "secure.hexview")
	opts := SaveOptions{Compression: true, Encryption: EncryptionOptions{Enabled: true, Password: "pw123"}}
	if err := SaveWithOptions(path, doc, opts); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	info, err := InspectEnvelope(path)
	if err != nil {
		t.Fatal(err)
	}
	if !info.Wrapped || !info.Compressed || !info.Encrypted {
		t.Fatalf("unexpected envelope info: %#v", info)
	}

	if _, err := Load(path); !errors.Is(err, ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
	if _, err := LoadWithOptions(path, LoadOptions{Password: "wrong"}); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	loaded, err := LoadWithOptions(path, LoadOptions{Password: "pw123"})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.Views) != 2 || loaded.Views[1] != doc.Views[1] {
		t.Fatalf("unexpected views after secure round trip: %#v", loaded.Views)
	}
}

func TestCompressedOnlyRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compressed.hexview")
	if err := SaveWithOptions(path, sampleDocument(), SaveOptions{Compression: true}); err != nil {
		t.Fatal(err)
	}
	info, err := InspectEnvelope(path)
	if err != nil {
		t.Fatal(err)
	}
	if !info.Compressed || info.Encrypted {
		t.Fatalf("unexpected envelope info: %#v", info)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("compressed load failed: %v", err)
	}
}

func TestSaveRequiresPasswordWhenEncrypting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nopass.hexview")
	err := SaveWithOptions(path, sampleDocument(), SaveOptions{Encryption: EncryptionOptions{Enabled: true, Password: "  "}})
	if !errors.Is(err, ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("nothing should be written on failure")
	}
}

func TestLoadRejectsTruncatedEnvelope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.hexview")
	if err := os.WriteFile(path, []byte(envelopeMagic+"x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidEnvelope) {
		t.Fatalf("expected ErrInvalidEnvelope, got %v", err)
	}
}

func TestLoadRejectsCorruptCompressedPayload(t *testing.T) {
	h := envelopeHeader{version: envelopeVersionV1, flags: envFlagCompressed}
	payload := []byte("not a zlib stream")
	h.payloadLen = uint64(len(payload))
	blob := append(h.appendTo(nil), payload...)

	path := filepath.Join(t.TempDir(), "corrupt.hexview")
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatal(err)
	}
	info, err := InspectEnvelope(path)
	if err != nil || !info.Wrapped || !info.Compressed {
		t.Fatalf("unexpected envelope info %#v, %v", info, err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidEnvelope) {
		t.Fatalf("expected ErrInvalidEnvelope, got %v", err)
	}
}

func TestEnvelopeHeaderLayout(t *testing.T) {
	h := envelopeHeader{version: envelopeVersionV1, flags: envFlagEncrypted, payloadLen: 7}
	h.salt[0], h.nonce[0] = 0x11, 0x22
	b := h.appendTo(nil)
	if len(b) != envHeaderSize {
		t.Fatalf("header is %d bytes, want %d", len(b), envHeaderSize)
	}
	got, err := parseEnvelopeHeader(b)
	if err != nil {
		t.Fatal(err)
	}
	if got != h {
		t.Fatalf("header mismatch: got %#v want %#v", got, h)
	}
}
