package codec_test

import (
	"github.com/google/uuid"

	"github.com/wippyai/tide/codec"
)

type person struct {
	Name string
	Age  int32
}

var (
	personName = codec.Field("name", codec.String, func(p person) string { return p.Name })
	personAge  = codec.Field("age", codec.VarInt, func(p person) int32 { return p.Age })

	personCodec = codec.Struct[person](func(v codec.Values) person {
		return person{Name: personName.Of(v), Age: personAge.Of(v)}
	}, personName, personAge)
)

type gameMode int

const (
	survival gameMode = iota
	creative
	adventure
)

var gameModeCodec = codec.Enum[gameMode]("survival", "creative", "adventure")

type player struct {
	ID       uuid.UUID
	Nickname *string
	Level    int32
	Mode     gameMode
	Tags     []string
	Scores   map[string]int64
}

var (
	playerID       = codec.Field("id", codec.UUID, func(p player) uuid.UUID { return p.ID })
	playerNickname = codec.Field("nickname", codec.Optional(codec.String), func(p player) *string { return p.Nickname })
	playerLevel    = codec.Field("level", codec.Default(codec.VarInt, 1), func(p player) int32 { return p.Level })
	playerMode     = codec.Field("mode", codec.Default(gameModeCodec, survival), func(p player) gameMode { return p.Mode })
	playerTags     = codec.Field("tags", codec.List(codec.String), func(p player) []string { return p.Tags })
	playerScores   = codec.Field("scores", codec.OrderedMap(codec.String, codec.VarLong), func(p player) map[string]int64 { return p.Scores })

	playerCodec = codec.Struct[player](func(v codec.Values) player {
		return player{
			ID:       playerID.Of(v),
			Nickname: playerNickname.Of(v),
			Level:    playerLevel.Of(v),
			Mode:     playerMode.Of(v),
			Tags:     playerTags.Of(v),
			Scores:   playerScores.Of(v),
		}
	}, playerID, playerNickname, playerLevel, playerMode, playerTags, playerScores)
)

func ptr[T any](v T) *T {
	return &v
}

func samplePlayer() player {
	return player{
		ID:       uuid.MustParse("f81d4fae-7dec-11d0-a765-00a0c91e6bf6"),
		Nickname: ptr("maya"),
		Level:    42,
		Mode:     creative,
		Tags:     []string{"builder", "admin"},
		Scores:   map[string]int64{"arena": 9000000000, "parkour": -3},
	}
}
