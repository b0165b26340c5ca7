package textenc

import (
	"bytes"
	"testing"
)

func TestDecode_PlainUTF8(t *testing.T) {
	in := []byte("Doe,Jane,Acme,Clerk,$50000\n")
	out, enc, err := Decode(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc != "utf-8" {
		t.Errorf("encoding = %q, want utf-8", enc)
	}
	if !bytes.Equal(out, in) {
		t.Errorf("output changed: %q", out)
	}
}

func TestDecode_UTF8BOM(t *testing.T) {
	payload := []byte("First Name,Last Name\n")
	in := append([]byte{0xEF, 0xBB, 0xBF}, payload...)
	out, enc, err := Decode(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc != "utf-8-bom" {
		t.Errorf("encoding = %q, want utf-8-bom", enc)
	}
	if !bytes.Equal(out, payload) {
		t.Errorf("BOM not stripped: %q", out)
	}
}

func TestDecode_UTF16LE(t *testing.T) {
	// "Doe" with an LE BOM.
	in := []byte{0xFF, 0xFE, 'D', 0x00, 'o', 0x00, 'e', 0x00}
	out, enc, err := Decode(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc != "utf-16le" {
		t.Errorf("encoding = %q, want utf-16le", enc)
	}
	if string(out) != "Doe" {
		t.Errorf("output = %q, want Doe", out)
	}
}

func TestDecode_UTF16BE(t *testing.T) {
	in := []byte{0xFE, 0xFF, 0x00, 'D', 0x00, 'o', 0x00, 'e'}
	out, enc, err := Decode(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc != "utf-16be" {
		t.Errorf("encoding = %q, want utf-16be", enc)
	}
	if string(out) != "Doe" {
		t.Errorf("output = %q, want Doe", out)
	}
}

func TestDecode_Latin1Fallback(t *testing.T) {
	// "Muñoz" in Latin-1: ñ is 0xF1, invalid as UTF-8.
	in := []byte{'M', 'u', 0xF1, 'o', 'z'}
	out, enc, err := Decode(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc != "latin-1" {
		t.Errorf("encoding = %q, want latin-1", enc)
	}
	if string(out) != "Muñoz" {
		t.Errorf("output = %q, want Muñoz", out)
	}
}

func TestDecode_Empty(t *testing.T) {
	out, enc, err := Decode(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 || enc != "utf-8" {
		t.Errorf("got %q/%q, want empty utf-8", out, enc)
	}
}
