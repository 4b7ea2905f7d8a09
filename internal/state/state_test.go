package state

import (
	"encoding/json"
	"errors"
	"testing"

	"porch/internal/core"
)

func TestDefaults(t *testing.T) {
	s := New()
	a := s.Avatar()
	if a.BodyType != BodyMedium || a.Accessory != AccessoryNone {
		t.Fatalf("unexpected default avatar %+v", a)
	}
	if a.HairColor.String() != "#734d26" || a.SkinTone.String() != "#f6d7b0" {
		t.Fatalf("unexpected default colours %s %s", a.HairColor, a.SkinTone)
	}
	if s.IdleMode() {
		t.Fatal("idle mode should start off")
	}
}

func TestSetAvatarProp(t *testing.T) {
	s := New()
	steps := []struct {
		prop, value string
		wantErr     error
	}{
		{"bodyType", "slim", nil},
		{"bodyType", "huge", ErrInvalidValue},
		{"hairColor", "#112233", nil},
		{"hairColor", "red", ErrInvalidValue},
		{"skinTone", "aabbcc", nil},
		{"accessory", "hat", nil},
		{"accessory", "cape", ErrInvalidValue},
		{"shoeSize", "42", ErrUnknownProp},
	}
	for _, st := range steps {
		err := s.SetAvatarProp(st.prop, st.value)
		if st.wantErr == nil && err != nil {
			t.Fatalf("%s=%s: unexpected error %v", st.prop, st.value, err)
		}
		if st.wantErr != nil && !errors.Is(err, st.wantErr) {
			t.Fatalf("%s=%s: expected %v, got %v", st.prop, st.value, st.wantErr, err)
		}
	}
	a := s.Avatar()
	if a.BodyType != BodySlim || a.HairColor.String() != "#112233" || a.SkinTone.String() != "#aabbcc" || a.Accessory != AccessoryHat {
		t.Fatalf("failed setters must not change state: %+v", a)
	}
}

func TestBodyScale(t *testing.T) {
	cases := map[BodyType]core.Vec3{
		BodySlim:   {X: 0.8, Y: 1, Z: 0.8},
		BodyMedium: {X: 1, Y: 1, Z: 1},
		BodyFull:   {X: 1.2, Y: 1, Z: 1.2},
	}
	for body, want := range cases {
		a := DefaultAvatar()
		a.BodyType = body
		if got := a.BodyScale(); got != want {
			t.Fatalf("%s: scale %+v, want %+v", body, got, want)
		}
	}
}

func TestToggleIdleMode(t *testing.T) {
	s := New()
	if !s.ToggleIdleMode() || !s.IdleMode() {
		t.Fatal("first toggle should enable idle mode")
	}
	if s.ToggleIdleMode() {
		t.Fatal("second toggle should disable idle mode")
	}
	s.SetIdleMode(true)
	if !s.IdleMode() {
		t.Fatal("SetIdleMode(true) ignored")
	}
}

func TestNextBodyTypeCycles(t *testing.T) {
	b := BodySlim
	for i := 0; i < 3; i++ {
		b = NextBodyType(b)
	}
	if b != BodySlim {
		t.Fatalf("expected cycle back to slim, got %s", b)
	}
}

func TestAvatarJSON(t *testing.T) {
	b, err := json.Marshal(DefaultAvatar())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"bodyType":"medium","hairColor":"#734d26","skinTone":"#f6d7b0","accessory":"none"}`
	if string(b) != want {
		t.Fatalf("got %s", b)
	}
	var back AvatarConfig
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != DefaultAvatar() {
		t.Fatalf("round trip mismatch %+v", back)
	}
}

func TestSetAvatarValidates(t *testing.T) {
	s := New()
	bad := DefaultAvatar()
	bad.Accessory = "monocle"
	if err := s.SetAvatar(bad); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if s.Avatar().Accessory != AccessoryNone {
		t.Fatal("invalid avatar must not be applied")
	}
}
