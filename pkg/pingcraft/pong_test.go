package pingcraft

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewPong_defaults(t *testing.T) {
	// Older or non-compliant servers may omit version and players
	// entirely; that is not an error.
	pong, err := newPong([]byte(`{"description":"Hello"}`))
	if err != nil {
		t.Fatal(err)
	}

	if pong.Version != "" || pong.Protocol != 0 {
		t.Errorf("version: got %q/%d, want empty", pong.Version, pong.Protocol)
	}
	if pong.OnlinePlayers != 0 || pong.MaxPlayers != 0 {
		t.Errorf("players: got %d/%d, want 0/0", pong.OnlinePlayers, pong.MaxPlayers)
	}
	if len(pong.Sample) != 0 {
		t.Errorf("sample: got %v, want empty", pong.Sample)
	}
	if pong.MOTD != "Hello" {
		t.Errorf("motd: got %q, want %q", pong.MOTD, "Hello")
	}
}

func TestNewPong_descriptionFlattening(t *testing.T) {
	pong, err := newPong([]byte(`{"description":{"text":"A","extra":[{"text":"B"}]}}`))
	if err != nil {
		t.Fatal(err)
	}

	if pong.MOTD != "AB" {
		t.Errorf("got: %q, want: %q", pong.MOTD, "AB")
	}
}

func TestNewPong_favicon(t *testing.T) {
	pong, err := newPong([]byte(`{"favicon":"data:image/png;base64,QUJD"}`))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(pong.Favicon, []byte{0x41, 0x42, 0x43}) {
		t.Errorf("got: %v, want: [41 42 43]", pong.Favicon)
	}
}

func TestNewPong_faviconMissingPrefix(t *testing.T) {
	_, err := newPong([]byte(`{"favicon":"QUJD"}`))
	if !errors.Is(err, ErrInvalidFavicon) {
		t.Errorf("want ErrInvalidFavicon, got %v", err)
	}
}

func TestNewPong_faviconBadBase64(t *testing.T) {
	_, err := newPong([]byte(`{"favicon":"data:image/png;base64,!!!"}`))
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("want ErrInvalidEncoding, got %v", err)
	}
}

func TestNewPong_invalidUTF8(t *testing.T) {
	_, err := newPong([]byte{'{', 0xff, 0xfe, '}'})
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("want ErrInvalidEncoding, got %v", err)
	}
}

func TestNewPong_notAnObject(t *testing.T) {
	for _, doc := range []string{`"hi"`, `42`, `[1,2]`, `{broken`, `null`, ``, `  `} {
		if _, err := newPong([]byte(doc)); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("doc %q: want ErrInvalidStatus, got %v", doc, err)
		}
	}
}

func TestNewPong_sample(t *testing.T) {
	doc := `{"players":{"max":20,"online":2,"sample":[
		{"name":"Notch","id":"069a79f4-44e9-4726-a5be-fca90e38aaf5"},
		{"name":"jeb_","id":"853c80ef-3c37-49fd-aa49-938b674adae6"}
	]}}`

	pong, err := newPong([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}

	if len(pong.Sample) != 2 {
		t.Fatalf("sample: got %d entries, want 2", len(pong.Sample))
	}

	if pong.Sample[0].Name != "Notch" {
		t.Errorf("got: %q, want: %q", pong.Sample[0].Name, "Notch")
	}

	id, err := pong.Sample[0].UUID()
	if err != nil {
		t.Fatal(err)
	}
	if id.String() != "069a79f4-44e9-4726-a5be-fca90e38aaf5" {
		t.Errorf("got: %q", id.String())
	}

	if _, err := (Player{ID: "not a uuid"}).UUID(); err == nil {
		t.Error("expected error for malformed player id")
	}
}
