package optional

import (
	"encoding/json"
	"strings"
	"testing"
)

type payload struct {
	Endereco Value[string] `json:"endereco"`
	Telefone Value[string] `json:"telefone"`
	Nota     Value[int]    `json:"nota"`
}

func TestUnmarshalPresence(t *testing.T) {
	var p payload
	if err := json.Unmarshal([]byte(`{"endereco":"","telefone":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if v, ok := p.Endereco.Get(); !ok || v != "" {
		t.Fatalf("empty string must be present: %q %v", v, ok)
	}
	if !p.Telefone.Present() || !p.Telefone.IsNull() {
		t.Fatal("null must be present and null")
	}
	if p.Telefone.Ptr() != nil {
		t.Fatal("null must map to nil pointer")
	}
	if p.Nota.Present() {
		t.Fatal("missing field must be absent")
	}
}

func TestMapAndPtr(t *testing.T) {
	v := Of("  Rua X  ").Map(strings.TrimSpace)
	if got := v.Ptr(); got == nil || *got != "Rua X" {
		t.Fatalf("Ptr()=%v", got)
	}

	var absent Value[string]
	if absent.Map(strings.TrimSpace).Present() {
		t.Fatal("Map must not make a value present")
	}
}

func TestMarshal(t *testing.T) {
	b, err := json.Marshal(payload{Endereco: Of("Rua X"), Nota: Null[int]()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"endereco":"Rua X","telefone":null,"nota":null}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}
