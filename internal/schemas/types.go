package schemas

import (
	"github.com/google/uuid"
	"github.com/segmentio/ksuid"

	"github.com/wippyai/tide/either"
)

type Person struct {
	Name string
	Age  int32
}

type GameMode int

const (
	Survival GameMode = iota
	Creative
	Adventure
	Spectator
)

// Position is spliced into the record that holds it.
type Position struct {
	X, Y, Z float64
}

type Player struct {
	ID       uuid.UUID
	Nickname *string
	Position Position
	Level    int32
	Mode     GameMode
	Tags     []string
	Scores   map[string]int64
}

// ConsumeEffect is applied when an item is consumed.
type ConsumeEffect interface {
	EffectType() string
}

type StatusEffect struct {
	ID        string
	Amplifier int8
	Duration  int32
}

type ApplyStatusEffects struct {
	Effects     []StatusEffect
	Probability float32
}

type RemoveStatusEffects struct {
	Effects []string
}

type ClearAllStatusEffects struct{}

type TeleportRandomly struct {
	Diameter float32
}

type PlaySound struct {
	Sound string
}

func (ApplyStatusEffects) EffectType() string    { return "apply_effects" }
func (RemoveStatusEffects) EffectType() string   { return "remove_effects" }
func (ClearAllStatusEffects) EffectType() string { return "clear_all_effects" }
func (TeleportRandomly) EffectType() string      { return "teleport_randomly" }
func (PlaySound) EffectType() string             { return "play_sound" }

type Consumable struct {
	Item    string
	Effects []ConsumeEffect
}

// Node is one entry of a recursive outline.
type Node struct {
	Name     string
	Children []Node
}

type Session struct {
	ID      ksuid.KSUID
	Owner   uuid.UUID
	Started int64
	Token   []byte
	// Outcome is a failure reason on the left or a score on the right.
	Outcome either.Either[string, int32]
}
