package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	rooms, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if len(rooms) != 5 {
		t.Fatalf("expected 5 rooms, got %d", len(rooms))
	}
	cabin := rooms[2]
	if cabin.Name != "Cabine Silêncio 3" || cabin.Noise != "MÁXIMO" || cabin.Location != "Térreo" || !cabin.Reserved {
		t.Fatalf("unexpected third room: %#v", cabin)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses the embedded catalog", func(t *testing.T) {
		t.Parallel()
		rooms, err := Load(" ")
		if err != nil || len(rooms) != 5 {
			t.Fatalf("expected embedded rooms, got %d, %v", len(rooms), err)
		}
	})

	t.Run("reads a custom file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "rooms.yaml")
		doc := "rooms:\n  - id: a\n    name: Sala Nova\n    ruido: CALMO\n    luz: ALTA\n    local: Andar 4\n"
		if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
			t.Fatalf("write file: %v", err)
		}
		rooms, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(rooms) != 1 || rooms[0].Name != "Sala Nova" || rooms[0].Reserved {
			t.Fatalf("unexpected rooms: %#v", rooms)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatalf("expected error for missing file")
		}
	})
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		doc  string
		want string
	}{
		"malformed":    {doc: "rooms: [", want: "decode"},
		"missing id":   {doc: "rooms:\n  - name: X\n    ruido: CALMO\n    luz: ALTA\n", want: "no id"},
		"duplicate id": {doc: "rooms:\n  - {id: a, name: X, ruido: CALMO, luz: ALTA}\n  - {id: a, name: Y, ruido: CALMO, luz: ALTA}\n", want: "duplicate"},
		"bad noise":    {doc: "rooms:\n  - {id: a, name: X, ruido: ALTO, luz: ALTA}\n", want: "ruido"},
		"bad light":    {doc: "rooms:\n  - {id: a, name: X, ruido: CALMO, luz: FORTE}\n", want: "luz"},
	}
	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tc.doc))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
