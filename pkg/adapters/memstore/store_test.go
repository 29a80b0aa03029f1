package memstore

import (
	"context"
	"testing"

	"github.com/user/codeshot/pkg/ports"
)

func TestPutGetDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	entry := ports.Entry{Data: []byte{1, 2, 3}, Filename: "a_code_image.png"}
	if err := s.Put(ctx, "id-1", entry); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := s.Get(ctx, "id-1")
	if !ok {
		t.Fatal("Get: entry missing")
	}
	if got.Filename != "a_code_image.png" {
		t.Errorf("filename: expected a_code_image.png, got %s", got.Filename)
	}
	if len(got.Data) != 3 {
		t.Errorf("data: expected 3 bytes, got %d", len(got.Data))
	}

	if err := s.Delete(ctx, "id-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := s.Get(ctx, "id-1"); ok {
		t.Error("entry still present after Delete")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	original := []byte{1, 2, 3}
	if err := s.Put(ctx, "id-1", ports.Entry{Data: original, Filename: "f.png"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	original[0] = 99

	got, _ := s.Get(ctx, "id-1")
	if got.Data[0] != 1 {
		t.Errorf("stored data aliased caller buffer: got %d", got.Data[0])
	}

	got.Data[1] = 99
	again, _ := s.Get(ctx, "id-1")
	if again.Data[1] != 2 {
		t.Errorf("returned data aliased stored buffer: got %d", again.Data[1])
	}
}

func TestClearRemovesEverything(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := s.Put(ctx, id, ports.Entry{Data: []byte{0}, Filename: id}); err != nil {
			t.Fatalf("Put %s: %v", id, err)
		}
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", s.Len())
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store after Clear, got %d entries", s.Len())
	}
}

func TestPutRejectsEmpty(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Put(ctx, "", ports.Entry{Data: []byte{1}}); err == nil {
		t.Error("expected error for empty id")
	}
	if err := s.Put(ctx, "id", ports.Entry{}); err == nil {
		t.Error("expected error for empty data")
	}
}

func TestDeleteMissingIsNoop(t *testing.T) {
	s := New()
	if err := s.Delete(context.Background(), "nope"); err != nil {
		t.Errorf("Delete missing id: %v", err)
	}
}
