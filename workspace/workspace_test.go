package workspace

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	w, err := Open("")
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if data, err := w.GetJSON("missing"); err != nil || data != nil {
		t.Fatalf("missing article: data=%v err=%v", data, err)
	}

	doc := []byte(`{"version":"1.7"}`)
	if err := w.WriteJSON("a1", doc); err != nil {
		t.Fatal(err)
	}
	got, err := w.GetJSON("a1")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, doc) {
		t.Fatalf("got %q", got)
	}

	// rewrite replaces
	doc2 := []byte(`{"version":"1.7","title":"x"}`)
	if err := w.WriteJSON("a1", doc2); err != nil {
		t.Fatal(err)
	}
	got, err = w.GetJSON("a1")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, doc2) {
		t.Fatalf("got %q", got)
	}
}

func TestErrorLog(t *testing.T) {
	w, err := Open("")
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.LogError("a1", "component", "tweet: no url"); err != nil {
		t.Fatal(err)
	}
	if err := w.LogError("a1", "component", "image: unresolvable src"); err != nil {
		t.Fatal(err)
	}
	if err := w.LogError("a2", "parse", "empty body"); err != nil {
		t.Fatal(err)
	}

	errs, err := w.GetErrors("a1")
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 2 {
		t.Fatalf("want 2 errors, got %d", len(errs))
	}
	if errs[0].Value != "tweet: no url" || errs[1].Value != "image: unresolvable src" {
		t.Fatalf("errors out of order: %+v", errs)
	}

	errs, err = w.GetErrors("a2")
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 1 || errs[0].Key != "parse" {
		t.Fatalf("a2 errors: %+v", errs)
	}
}
