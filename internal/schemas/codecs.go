package schemas

import (
	"github.com/google/uuid"
	"github.com/segmentio/ksuid"

	"github.com/wippyai/tide/codec"
	"github.com/wippyai/tide/either"
)

var (
	personName = codec.Field("name", codec.String, func(p Person) string { return p.Name })
	personAge  = codec.Field("age", codec.VarInt, func(p Person) int32 { return p.Age })

	PersonCodec = codec.Struct[Person](func(v codec.Values) Person {
		return Person{Name: personName.Of(v), Age: personAge.Of(v)}
	}, personName, personAge)
)

var GameModeCodec = codec.Enum[GameMode]("survival", "creative", "adventure", "spectator")

var (
	positionX = codec.Field("x", codec.Double, func(p Position) float64 { return p.X })
	positionY = codec.Field("y", codec.Double, func(p Position) float64 { return p.Y })
	positionZ = codec.Field("z", codec.Double, func(p Position) float64 { return p.Z })

	PositionCodec = codec.Struct[Position](func(v codec.Values) Position {
		return Position{X: positionX.Of(v), Y: positionY.Of(v), Z: positionZ.Of(v)}
	}, positionX, positionY, positionZ)
)

var (
	playerID       = codec.Field("id", codec.UUID, func(p Player) uuid.UUID { return p.ID })
	playerNickname = codec.Field("nickname", codec.Optional(codec.String), func(p Player) *string { return p.Nickname })
	playerPosition = codec.Inline(PositionCodec, func(p Player) Position { return p.Position })
	playerLevel    = codec.Field("level", codec.Default(codec.VarInt, 1), func(p Player) int32 { return p.Level })
	playerMode     = codec.Field("mode", codec.Default(GameModeCodec, Survival), func(p Player) GameMode { return p.Mode })
	playerTags     = codec.Field("tags", codec.List(codec.String), func(p Player) []string { return p.Tags })
	playerScores   = codec.Field("scores", codec.OrderedMap(codec.String, codec.VarLong), func(p Player) map[string]int64 { return p.Scores })

	PlayerCodec = codec.Struct[Player](func(v codec.Values) Player {
		return Player{
			ID:       playerID.Of(v),
			Nickname: playerNickname.Of(v),
			Position: playerPosition.Of(v),
			Level:    playerLevel.Of(v),
			Mode:     playerMode.Of(v),
			Tags:     playerTags.Of(v),
			Scores:   playerScores.Of(v),
		}
	}, playerID, playerNickname, playerPosition, playerLevel, playerMode, playerTags, playerScores)
)

var (
	statusID        = codec.Field("id", codec.String, func(s StatusEffect) string { return s.ID })
	statusAmplifier = codec.Field("amplifier", codec.Default(codec.Byte, 0), func(s StatusEffect) int8 { return s.Amplifier })
	statusDuration  = codec.Field("duration", codec.Default(codec.VarInt, 1), func(s StatusEffect) int32 { return s.Duration })

	StatusEffectCodec = codec.Struct[StatusEffect](func(v codec.Values) StatusEffect {
		return StatusEffect{ID: statusID.Of(v), Amplifier: statusAmplifier.Of(v), Duration: statusDuration.Of(v)}
	}, statusID, statusAmplifier, statusDuration)

	applyEffects     = codec.Field("effects", codec.List(StatusEffectCodec), func(a ApplyStatusEffects) []StatusEffect { return a.Effects })
	applyProbability = codec.Field("probability", codec.Default(codec.Float, 1), func(a ApplyStatusEffects) float32 { return a.Probability })
	applyCodec       = codec.Struct[ApplyStatusEffects](func(v codec.Values) ApplyStatusEffects {
		return ApplyStatusEffects{Effects: applyEffects.Of(v), Probability: applyProbability.Of(v)}
	}, applyEffects, applyProbability)

	removeEffects = codec.Field("effects", codec.List(codec.String), func(r RemoveStatusEffects) []string { return r.Effects })
	removeCodec   = codec.Struct[RemoveStatusEffects](func(v codec.Values) RemoveStatusEffects {
		return RemoveStatusEffects{Effects: removeEffects.Of(v)}
	}, removeEffects)

	clearAllCodec = codec.Struct[ClearAllStatusEffects](func(codec.Values) ClearAllStatusEffects { return ClearAllStatusEffects{} })

	teleportDiameter = codec.Field("diameter", codec.Default(codec.Float, 16), func(t TeleportRandomly) float32 { return t.Diameter })
	teleportCodec    = codec.Struct[TeleportRandomly](func(v codec.Values) TeleportRandomly {
		return TeleportRandomly{Diameter: teleportDiameter.Of(v)}
	}, teleportDiameter)

	playSoundCodec = codec.Convert(codec.String,
		func(s string) PlaySound { return PlaySound{Sound: s} },
		func(p PlaySound) string { return p.Sound },
	)

	ConsumeEffectCodec = codec.Union(codec.String, ConsumeEffect.EffectType, map[string]codec.Codec[ConsumeEffect]{
		"apply_effects":     codec.Variant[ConsumeEffect](applyCodec),
		"remove_effects":    codec.Variant[ConsumeEffect](removeCodec),
		"clear_all_effects": codec.Variant[ConsumeEffect](clearAllCodec),
		"teleport_randomly": codec.Variant[ConsumeEffect](teleportCodec),
		"play_sound":        codec.Variant[ConsumeEffect](playSoundCodec),
	})

	consumableItem    = codec.Field("item", codec.String, func(c Consumable) string { return c.Item })
	consumableEffects = codec.Field("on_consume", codec.List(ConsumeEffectCodec), func(c Consumable) []ConsumeEffect { return c.Effects })

	ConsumableCodec = codec.Struct[Consumable](func(v codec.Values) Consumable {
		return Consumable{Item: consumableItem.Of(v), Effects: consumableEffects.Of(v)}
	}, consumableItem, consumableEffects)
)

func noChildren(a, b []Node) bool {
	return len(a) == 0 && len(b) == 0
}

// NodeCodec leaves out empty child lists in keyed formats.
var NodeCodec = codec.Recursive(func(self codec.Codec[Node]) codec.Codec[Node] {
	name := codec.Field("name", codec.String, func(n Node) string { return n.Name })
	children := codec.Field("children", codec.DefaultFunc(codec.List(self), nil, noChildren), func(n Node) []Node { return n.Children })
	return codec.Struct[Node](func(v codec.Values) Node {
		return Node{Name: name.Of(v), Children: children.Of(v)}
	}, name, children)
})

var (
	sessionID      = codec.Field("id", codec.KSUID, func(s Session) ksuid.KSUID { return s.ID })
	sessionOwner   = codec.Field("owner", codec.UUIDIntArray, func(s Session) uuid.UUID { return s.Owner })
	sessionStarted = codec.Field("started", codec.Long, func(s Session) int64 { return s.Started })
	sessionToken   = codec.Field("token", codec.Bytes, func(s Session) []byte { return s.Token })
	sessionOutcome = codec.Field("outcome", codec.TaggedEither(codec.String, codec.VarInt), func(s Session) either.Either[string, int32] { return s.Outcome })

	SessionCodec = codec.Struct[Session](func(v codec.Values) Session {
		return Session{
			ID:      sessionID.Of(v),
			Owner:   sessionOwner.Of(v),
			Started: sessionStarted.Of(v),
			Token:   sessionToken.Of(v),
			Outcome: sessionOutcome.Of(v),
		}
	}, sessionID, sessionOwner, sessionStarted, sessionToken, sessionOutcome)
)
