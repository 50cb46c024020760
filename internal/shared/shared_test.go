package shared

import (
	"errors"
	"testing"
)

func TestNormalizeQueryKey(t *testing.T) {
	tc := []struct {
		name   string
		artist string
		title  string
		want   string
	}{
		{
			name:   "basic normalization",
			artist: "Artist Name",
			title:  "Album Title",
			want:   "artist name|album title",
		},
		{
			name:   "extra whitespace",
			artist: "  Artist   Name  ",
			title:  "  Album   Title  ",
			want:   "artist name|album title",
		},
		{
			name:   "mixed case",
			artist: "ArTiSt NaMe",
			title:  "AlBuM TiTlE",
			want:   "artist name|album title",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeQueryKey(tt.artist, tt.title)
			if got != tt.want {
				t.Errorf("NormalizeQueryKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChunk(t *testing.T) {
	makeItems := func(n int) []int {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		return items
	}

	t.Run("Preserves Order And Elements", func(t *testing.T) {
		items := makeItems(250)

		chunks, err := Chunk(items, 99)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(chunks) != 3 {
			t.Fatalf("expected 3 chunks for 250 items, got %d", len(chunks))
		}

		var flattened []int
		for _, chunk := range chunks {
			if len(chunk) > 99 {
				t.Errorf("chunk exceeds limit: %d", len(chunk))
			}
			flattened = append(flattened, chunk...)
		}

		if len(flattened) != len(items) {
			t.Fatalf("expected %d items after flattening, got %d", len(items), len(flattened))
		}
		for i, v := range items {
			if flattened[i] != v {
				t.Errorf("item %d: expected %d, got %d", i, v, flattened[i])
			}
		}
	})

	t.Run("Exact Multiple", func(t *testing.T) {
		chunks, err := Chunk(makeItems(198), 99)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) != 2 || len(chunks[0]) != 99 || len(chunks[1]) != 99 {
			t.Errorf("expected two full chunks, got %d", len(chunks))
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		chunks, err := Chunk([]int{}, 99)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) != 0 {
			t.Errorf("expected no chunks, got %d", len(chunks))
		}
	})

	t.Run("Invalid Size", func(t *testing.T) {
		_, err := Chunk(makeItems(10), 0)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}

		_, err = Chunk(makeItems(10), -1)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Error("expected non-empty IDs")
	}
	if a == b {
		t.Error("expected unique IDs")
	}
}

func TestGenerateState(t *testing.T) {
	state, err := GenerateState()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state) != 36 {
		t.Errorf("expected UUID-shaped state token, got %q", state)
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]int{"count": 3}

	compact, err := MarshalJSON(data, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(compact) != `{"count":3}` {
		t.Errorf("unexpected compact output: %s", compact)
	}

	pretty, err := MarshalJSON(data, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pretty) <= len(compact) {
		t.Error("expected indented output to be longer")
	}
}
