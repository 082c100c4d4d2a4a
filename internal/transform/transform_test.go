package transform

import "testing"

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog(Base64(), Base64())
	if err == nil {
		t.Fatal("expected error for duplicate transform id")
	}
}

func TestNewCatalogRejectsNil(t *testing.T) {
	if _, err := NewCatalog(nil); err == nil {
		t.Fatal("expected error for nil transform")
	}
}

func TestDefaultCatalogLookup(t *testing.T) {
	c := DefaultCatalog()
	if c.Len() < 15 {
		t.Fatalf("default catalog has %d transforms, want at least 15", c.Len())
	}

	for _, id := range []string{"base64", "hex", "rot13", "caesar", "morse"} {
		tr, ok := c.Lookup(id)
		if !ok {
			t.Errorf("transform %s missing from default catalog", id)
			continue
		}
		if tr.ID() != id {
			t.Errorf("lookup(%s) returned transform with id %s", id, tr.ID())
		}
	}

	if _, ok := c.Lookup("no-such-transform"); ok {
		t.Error("lookup of unknown id should fail")
	}
}

func TestTransformsSortedAndCopied(t *testing.T) {
	c := DefaultCatalog()
	list := c.Transforms()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID() >= list[i].ID() {
			t.Fatalf("transforms not sorted: %s before %s", list[i-1].ID(), list[i].ID())
		}
	}

	list[0] = nil
	if c.Transforms()[0] == nil {
		t.Error("mutating the returned slice must not affect the catalog")
	}
}

func TestUsableRejectsControlBytes(t *testing.T) {
	if usable("\x00\x01\x02\x03") {
		t.Error("control bytes should not be usable")
	}
	if usable("") {
		t.Error("empty string should not be usable")
	}
	if !usable("hello\tworld\n") {
		t.Error("printable text with whitespace should be usable")
	}
}
