package json

import (
	"encoding/json"
	"strings"
	"testing"

	"ecometl/internal/config"
)

func TestDecodeAllArray(t *testing.T) {
	t.Parallel()

	in := `[{"id": "1", "price": 9.99}, {"id": "2"}]`
	recs, err := DecodeAll(strings.NewReader(in), Options{AllowArrays: true})
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	// Numbers stay json.Number so integral values are not mangled.
	if n, ok := recs[0]["price"].(json.Number); !ok || n.String() != "9.99" {
		t.Fatalf("price = %v (%T), want json.Number", recs[0]["price"], recs[0]["price"])
	}
}

func TestDecodeAllArrayDisallowed(t *testing.T) {
	t.Parallel()

	_, err := DecodeAll(strings.NewReader(`[{"id": 1}]`), Options{AllowArrays: false})
	if err == nil || !strings.Contains(err.Error(), "allow_arrays") {
		t.Fatalf("err = %v, want allow_arrays refusal", err)
	}
}

func TestDecodeAllNDJSON(t *testing.T) {
	t.Parallel()

	in := "{\"id\": \"1\"}\n{\"id\": \"2\"}\n"
	recs, err := DecodeAll(strings.NewReader(in), Options{})
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
}

func TestDecodeAllRejectsScalars(t *testing.T) {
	t.Parallel()

	if _, err := DecodeAll(strings.NewReader(`"just a string"`), Options{}); err == nil {
		t.Fatal("expected error for non-object root")
	}
	if _, err := DecodeAll(strings.NewReader(`[1, 2]`), Options{AllowArrays: true}); err == nil {
		t.Fatal("expected error for array of non-objects")
	}
}

func TestDecodeAllEmptyInput(t *testing.T) {
	t.Parallel()

	recs, err := DecodeAll(strings.NewReader(""), Options{})
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("records = %d, want 0", len(recs))
	}
}

func TestFromConfigOptions(t *testing.T) {
	t.Parallel()

	if opt := FromConfigOptions(nil); !opt.AllowArrays {
		t.Fatal("allow_arrays should default to true")
	}
	if opt := FromConfigOptions(config.Options{"allow_arrays": false}); opt.AllowArrays {
		t.Fatal("allow_arrays=false should stick")
	}
}
