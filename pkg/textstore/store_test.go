package textstore

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeSource struct {
	texts map[uuid.UUID]string
	err   error
	loads int
}

func (f *fakeSource) LoadContent(ctx context.Context, documentID uuid.UUID) (string, error) {
	f.loads++
	if f.err != nil {
		return "", f.err
	}
	return f.texts[documentID], nil
}

func TestTextCachesLoads(t *testing.T) {
	id := uuid.New()
	source := &fakeSource{texts: map[uuid.UUID]string{id: "年假政策全文"}}
	store := NewStore(source)

	for i := 0; i < 3; i++ {
		if got := store.Text(context.Background(), id); got != "年假政策全文" {
			t.Fatalf("Text() = %q, want stored text", got)
		}
	}
	if source.loads != 1 {
		t.Errorf("source loaded %d times, want 1 (cached afterwards)", source.loads)
	}
}

func TestTextLoadFailureYieldsEmpty(t *testing.T) {
	source := &fakeSource{err: errors.New("db down")}
	store := NewStore(source)

	if got := store.Text(context.Background(), uuid.New()); got != "" {
		t.Errorf("Text() = %q, want empty on load failure", got)
	}
}

func TestTextFailureNotCached(t *testing.T) {
	id := uuid.New()
	source := &fakeSource{err: errors.New("db down")}
	store := NewStore(source)

	store.Text(context.Background(), id)
	source.err = nil
	source.texts = map[uuid.UUID]string{id: "恢复后的内容"}

	if got := store.Text(context.Background(), id); got != "恢复后的内容" {
		t.Errorf("Text() = %q, want reload after earlier failure", got)
	}
}

func TestInvalidateForcesReload(t *testing.T) {
	id := uuid.New()
	source := &fakeSource{texts: map[uuid.UUID]string{id: "旧版本"}}
	store := NewStore(source)

	store.Text(context.Background(), id)
	source.texts[id] = "新版本"
	store.Invalidate(id)

	if got := store.Text(context.Background(), id); got != "新版本" {
		t.Errorf("Text() = %q, want reloaded text after invalidation", got)
	}
	if source.loads != 2 {
		t.Errorf("source loaded %d times, want 2", source.loads)
	}
}

func TestEmptyContentCached(t *testing.T) {
	id := uuid.New()
	source := &fakeSource{texts: map[uuid.UUID]string{}}
	store := NewStore(source)

	store.Text(context.Background(), id)
	store.Text(context.Background(), id)

	if source.loads != 1 {
		t.Errorf("source loaded %d times, want empty content cached too", source.loads)
	}
}
