package mobgen

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
)

func TestParseDocument_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"truncated", `{"mobs":{"player"`},
		{"not an object", `[1,2,3]`},
		{"empty input", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseDocument([]byte(tt.input))
			if !errors.Is(err, ParseError) {
				t.Errorf("ParseDocument error = %v, want %v", err, ParseError)
			}
		})
	}
}

func TestLoadDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "input.json")
	content := `{"name":"demo","mobs":{"player":` + playerRaw + `}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}

	if _, err := doc.Player(); err != nil {
		t.Errorf("Player() failed on loaded document: %v", err)
	}
}

func TestLoadDocument_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadDocument(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestVariant_Passthrough(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument([]byte(`{
		"name": "demo",
		"tileset": {"path": "atlas.png", "tile": 16},
		"mobs": {"player": ` + playerRaw + `}
	}`))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}

	gen := seededGen(11)
	mobs, err := gen.GenerateMobs(doc, 3)
	if err != nil {
		t.Fatalf("GenerateMobs failed: %v", err)
	}

	variant := doc.Variant(mobs)

	data, err := json.MarshalIndent(variant, "", "  ")
	if err != nil {
		t.Fatalf("marshal variant: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("re-parse variant: %v", err)
	}

	if decoded["name"] != "demo" {
		t.Errorf("name = %v, want demo", decoded["name"])
	}

	tileset, ok := decoded["tileset"].(map[string]any)
	if !ok || tileset["path"] != "atlas.png" || tileset["tile"] != float64(16) {
		t.Errorf("tileset not passed through: %v", decoded["tileset"])
	}
}

// Round trip: serialize a variant, parse it back, and re-check the record
// invariants against the in-memory structure.
func TestVariant_RoundTrip(t *testing.T) {
	t.Parallel()

	const n = 12

	base := testBase(t)

	mobs, err := seededGen(21).GenerateMobs(base, n)
	if err != nil {
		t.Fatalf("GenerateMobs failed: %v", err)
	}

	data, err := json.MarshalIndent(base.Variant(mobs), "", "  ")
	if err != nil {
		t.Fatalf("marshal variant: %v", err)
	}

	parsed, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("re-parse variant: %v", err)
	}

	var parsedMobs map[string]json.RawMessage
	if err := json.Unmarshal(parsed["mobs"], &parsedMobs); err != nil {
		t.Fatalf("decode mobs table: %v", err)
	}

	if len(parsedMobs) != n+1 {
		t.Fatalf("got %d entries, want %d", len(parsedMobs), n+1)
	}

	// Player survives as the same JSON value
	var wantPlayer, gotPlayer any
	if err := json.Unmarshal([]byte(playerRaw), &wantPlayer); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(parsedMobs["player"], &gotPlayer); err != nil {
		t.Fatalf("decode player: %v", err)
	}
	if !reflect.DeepEqual(gotPlayer, wantPlayer) {
		t.Errorf("player = %v, want %v", gotPlayer, wantPlayer)
	}

	for i := 1; i <= n; i++ {
		key := "mob_" + strconv.Itoa(i)

		raw, ok := parsedMobs[key]
		if !ok {
			t.Fatalf("%s missing after round trip", key)
		}

		var mob Mob
		if err := json.Unmarshal(raw, &mob); err != nil {
			t.Fatalf("decode %s: %v", key, err)
		}

		inMemory := mobs[key].(Mob)
		if mob != inMemory {
			t.Errorf("%s = %+v, want %+v", key, mob, inMemory)
		}
	}
}
