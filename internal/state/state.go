// Package state holds the application-wide settings the scene reads: the
// avatar's look and the idle-mode switch.
package state

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"porch/internal/core"
)

var (
	// ErrUnknownProp is returned by SetAvatarProp for unrecognized fields.
	ErrUnknownProp = errors.New("unknown avatar property")
	// ErrInvalidValue is returned when a setter receives a value outside its
	// domain.
	ErrInvalidValue = errors.New("invalid value")
)

// BodyType selects the avatar's proportions.
type BodyType string

const (
	BodySlim   BodyType = "slim"
	BodyMedium BodyType = "medium"
	BodyFull   BodyType = "full"
)

// Accessory is an optional avatar add-on.
type Accessory string

const (
	AccessoryNone Accessory = "none"
	AccessoryHat  Accessory = "hat"
)

// Color is an opaque RGB colour that encodes as #rrggbb.
type Color color.RGBA

// ParseColor reads a #rrggbb string.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("colour %q: %w", s, ErrInvalidValue)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("colour %q: %w", s, ErrInvalidValue)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustColor is ParseColor for constants.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ToRGBA converts to the image/color form.
func (c Color) ToRGBA() color.RGBA { return color.RGBA(c) }

// MarshalText encodes the colour as #rrggbb.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText decodes a #rrggbb colour.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// AvatarConfig describes the avatar's look.
type AvatarConfig struct {
	BodyType  BodyType  `json:"bodyType" yaml:"bodyType"`
	HairColor Color     `json:"hairColor" yaml:"hairColor"`
	SkinTone  Color     `json:"skinTone" yaml:"skinTone"`
	Accessory Accessory `json:"accessory" yaml:"accessory"`
}

// DefaultAvatar returns the starting avatar.
func DefaultAvatar() AvatarConfig {
	return AvatarConfig{
		BodyType:  BodyMedium,
		HairColor: MustColor("#734d26"),
		SkinTone:  MustColor("#f6d7b0"),
		Accessory: AccessoryNone,
	}
}

// BodyScale maps the body type to the avatar's scale vector.
func (a AvatarConfig) BodyScale() core.Vec3 {
	switch a.BodyType {
	case BodySlim:
		return core.Vec3{X: 0.8, Y: 1, Z: 0.8}
	case BodyFull:
		return core.Vec3{X: 1.2, Y: 1, Z: 1.2}
	}
	return core.Vec3{X: 1, Y: 1, Z: 1}
}

// Validate reports the first out-of-domain field.
func (a AvatarConfig) Validate() error {
	if _, err := parseBodyType(string(a.BodyType)); err != nil {
		return err
	}
	if _, err := parseAccessory(string(a.Accessory)); err != nil {
		return err
	}
	return nil
}

// AppState is the explicit replacement for a global store. It is not safe
// for concurrent use; the scene loop owns it.
type AppState struct {
	avatar AvatarConfig
	idle   bool
}

// New returns state with the default avatar and idle mode off.
func New() *AppState {
	return &AppState{avatar: DefaultAvatar()}
}

// Avatar returns a copy of the avatar config.
func (s *AppState) Avatar() AvatarConfig { return s.avatar }

// SetAvatar replaces the avatar config after validating it.
func (s *AppState) SetAvatar(a AvatarConfig) error {
	if err := a.Validate(); err != nil {
		return err
	}
	s.avatar = a
	return nil
}

func (s *AppState) SetBodyType(b BodyType) error {
	parsed, err := parseBodyType(string(b))
	if err != nil {
		return err
	}
	s.avatar.BodyType = parsed
	return nil
}

func (s *AppState) SetHairColor(c Color) { s.avatar.HairColor = c }

func (s *AppState) SetSkinTone(c Color) { s.avatar.SkinTone = c }

func (s *AppState) SetAccessory(a Accessory) error {
	parsed, err := parseAccessory(string(a))
	if err != nil {
		return err
	}
	s.avatar.Accessory = parsed
	return nil
}

// SetAvatarProp sets one avatar field by its name, parsing value for it.
func (s *AppState) SetAvatarProp(prop, value string) error {
	switch prop {
	case "bodyType":
		return s.SetBodyType(BodyType(value))
	case "hairColor":
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		s.SetHairColor(c)
	case "skinTone":
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		s.SetSkinTone(c)
	case "accessory":
		return s.SetAccessory(Accessory(value))
	default:
		return fmt.Errorf("%q: %w", prop, ErrUnknownProp)
	}
	return nil
}

// IdleMode reports whether autonomous activity is enabled.
func (s *AppState) IdleMode() bool { return s.idle }

func (s *AppState) SetIdleMode(on bool) { s.idle = on }

// ToggleIdleMode flips idle mode and returns the new value.
func (s *AppState) ToggleIdleMode() bool {
	s.idle = !s.idle
	return s.idle
}

// NextBodyType cycles slim → medium → full → slim.
func NextBodyType(b BodyType) BodyType {
	switch b {
	case BodySlim:
		return BodyMedium
	case BodyMedium:
		return BodyFull
	}
	return BodySlim
}

func parseBodyType(v string) (BodyType, error) {
	switch b := BodyType(v); b {
	case BodySlim, BodyMedium, BodyFull:
		return b, nil
	}
	return "", fmt.Errorf("body type %q: %w", v, ErrInvalidValue)
}

func parseAccessory(v string) (Accessory, error) {
	switch a := Accessory(v); a {
	case AccessoryNone, AccessoryHat:
		return a, nil
	}
	return "", fmt.Errorf("accessory %q: %w", v, ErrInvalidValue)
}
