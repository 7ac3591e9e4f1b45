package domain

import "testing"

func TestSubmodelCloneIndependence(t *testing.T) {
	orig := sampleSubmodel("sm-1")
	cp := orig.Clone()

	if !orig.Equal(cp) {
		t.Fatal("expected clone to equal original")
	}

	cp.SemanticID.Keys = append(cp.SemanticID.Keys, Key{Type: KeyTypeSubmodel, Value: "extra"})
	cp.Endpoints[0].Interface = "changed"

	if len(orig.SemanticID.Keys) != 1 {
		t.Errorf("semantic id keys shared with clone: %v", orig.SemanticID.Keys)
	}
	if orig.Endpoints[0].Interface != InterfaceSubmodel {
		t.Errorf("endpoints shared with clone: %s", orig.Endpoints[0].Interface)
	}
	if orig.Equal(cp) {
		t.Error("expected mutated clone to differ")
	}
}

func TestReferenceEqual(t *testing.T) {
	a := NewReference(ExternalReference, Key{Type: KeyTypeGlobalReference, Value: "a"}, Key{Type: KeyTypeSubmodel, Value: "b"})

	tests := []struct {
		name  string
		other *Reference
		equal bool
	}{
		{"same", a.Clone(), true},
		{"nil", nil, false},
		{"different type", &Reference{Type: ModelReference, Keys: a.Keys}, false},
		{"reversed keys", NewReference(ExternalReference, a.Keys[1], a.Keys[0]), false},
		{"prefix", NewReference(ExternalReference, a.Keys[0]), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Equal(tt.other); got != tt.equal {
				t.Errorf("Equal() = %v, want %v", got, tt.equal)
			}
		})
	}

	var nilRef *Reference
	if !nilRef.Equal(nil) {
		t.Error("expected nil references to be equal")
	}
}

func TestPlacement(t *testing.T) {
	n := Nested("shell-1")
	if n.IsStandalone() {
		t.Error("nested placement reported standalone")
	}
	if !n.OwnedBy("shell-1") || n.OwnedBy("shell-2") {
		t.Error("unexpected owner check result")
	}
	if n.String() != "nested(shell-1)" {
		t.Errorf("unexpected String(): %s", n.String())
	}

	s := Standalone()
	if !s.IsStandalone() || s.OwnedBy("") {
		t.Error("unexpected standalone placement")
	}
}

func TestParseIDMatch(t *testing.T) {
	tests := []struct {
		input   string
		want    IDMatch
		wantErr bool
	}{
		{"", IDMatchExact, false},
		{"exact", IDMatchExact, false},
		{"FOLD", IDMatchFold, false},
		{" fold ", IDMatchFold, false},
		{"lower", "", true},
	}

	for _, tt := range tests {
		got, err := ParseIDMatch(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIDMatch(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseIDMatch(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestIDMatchKey(t *testing.T) {
	if IDMatchExact.Key("Shell-A") != "Shell-A" {
		t.Error("exact key should not change the id")
	}
	if IDMatchFold.Key("Shell-A") != IDMatchFold.Key("shell-a") {
		t.Error("folded keys should match regardless of case")
	}
	if IDMatchExact.Same("a", "A") {
		t.Error("exact matching should be case-sensitive")
	}
	if !IDMatchFold.Same("a", "A") {
		t.Error("fold matching should ignore case")
	}
}
