package storage

import (
	"context"
	"io"
	"testing"
)

func TestMemory(t *testing.T) {
	m := NewMemory()
	m.AddFile("locales/en.json", []byte(`{"a":1}`))
	m.AddFile("locales/fr.json", []byte(`{"a":2}`))
	m.AddDir("locales/nested")
	m.AddFile("/abs/dir/de.json", []byte(`{}`))
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		for _, p := range []string{"locales", "locales/", "locales/en.json", "/abs", "/abs/dir/de.json"} {
			ok, err := m.Exists(ctx, p)
			if err != nil || !ok {
				t.Errorf("Exists(%s) = %v, %v; want true", p, ok, err)
			}
		}
		if ok, _ := m.Exists(ctx, "locales/it.json"); ok {
			t.Error("Exists(locales/it.json) should be false")
		}
	})

	t.Run("Stat", func(t *testing.T) {
		info, err := m.Stat(ctx, "locales")
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if !info.IsDir {
			t.Error("locales should be a directory")
		}

		info, err = m.Stat(ctx, "locales/en.json")
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if info.IsDir || info.Size != 7 {
			t.Errorf("Stat(en.json) = %+v", info)
		}

		if _, err := m.Stat(ctx, "nope"); err == nil {
			t.Error("Stat() should fail for missing path")
		}
	})

	t.Run("List", func(t *testing.T) {
		entries, err := m.List(ctx, "locales/")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name)
		}
		want := []string{"en.json", "fr.json", "nested"}
		if len(names) != len(want) {
			t.Fatalf("List() names = %v, want %v", names, want)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("List() names = %v, want %v", names, want)
				break
			}
		}
		if !entries[2].IsDir {
			t.Error("nested should be a directory")
		}

		if _, err := m.List(ctx, "missing"); err == nil {
			t.Error("List() should fail for missing directory")
		}
	})

	t.Run("Read", func(t *testing.T) {
		r, err := m.Read(ctx, "./locales/en.json")
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		defer r.Close()
		data, _ := io.ReadAll(r)
		if string(data) != `{"a":1}` {
			t.Errorf("Read() = %s", data)
		}

		if _, err := m.Read(ctx, "locales"); err == nil {
			t.Error("Read() should fail on a directory")
		}
		if _, err := m.Read(ctx, "missing.json"); err == nil {
			t.Error("Read() should fail on a missing file")
		}
	})
}
