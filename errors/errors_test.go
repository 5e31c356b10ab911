package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseEncode,
				Kind:   KindTypeMismatch,
				Path:   []string{"players", "3", "level"},
				GoType: "int32",
				Format: "json",
				Detail: "cannot convert",
			},
			contains: []string{"[encode]", "type_mismatch", "players.3.level", "int32", "json", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[decode]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseParse,
				Kind:   KindInvalidData,
				Detail: "bad document",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[parse]", "invalid_data", "bad document", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindTypeMismatch,
		Path:  []string{"effects", "0"},
	}

	if !err.Is(&Error{Phase: PhaseEncode, Kind: KindTypeMismatch}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, Encoding) {
		t.Error("errors.Is should match the phase-only target")
	}
	if errors.Is(err, Decoding) {
		t.Error("encode error must not match Decoding")
	}
}

func TestPhaseHelpers(t *testing.T) {
	dec := FieldMissing(PhaseDecode, nil, "name")
	enc := Overflow(PhaseEncode, nil, 9, "bitset of 8")

	if !IsDecoding(dec) || IsEncoding(dec) {
		t.Errorf("phase helpers misclassified %v", dec)
	}
	if !IsEncoding(enc) || IsDecoding(enc) {
		t.Errorf("phase helpers misclassified %v", enc)
	}
	if IsDecoding(errors.New("plain")) {
		t.Error("plain errors have no phase")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseEncode, KindTypeMismatch).
		Path("player", "nickname").
		GoType("string").
		Format("toml").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "string", "int").
		Build()

	if err.Phase != PhaseEncode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseEncode)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "player" || err.Path[1] != "nickname" {
		t.Errorf("Path = %v, want [player nickname]", err.Path)
	}
	if err.GoType != "string" {
		t.Errorf("GoType = %v, want 'string'", err.GoType)
	}
	if err.Format != "toml" {
		t.Errorf("Format = %v, want 'toml'", err.Format)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected string, got int" {
		t.Errorf("Detail = %v, want 'expected string, got int'", err.Detail)
	}
}

func TestWithPath(t *testing.T) {
	inner := FieldMissing(PhaseDecode, []string{"age"}, "age")
	wrapped := WithPath(PhaseDecode, inner, "data")

	var e *Error
	if !errors.As(wrapped, &e) {
		t.Fatalf("WithPath returned %T", wrapped)
	}
	if got := strings.Join(e.Path, "."); got != "data.age" {
		t.Errorf("Path = %q, want data.age", got)
	}
	if len(inner.Path) != 1 {
		t.Errorf("WithPath mutated the original error: %v", inner.Path)
	}

	plain := WithPath(PhaseEncode, errors.New("boom"), "name")
	if !IsEncoding(plain) {
		t.Errorf("plain error should be wrapped with the phase, got %v", plain)
	}
	if WithPath(PhaseDecode, nil, "x") != nil {
		t.Error("nil error should stay nil")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseEncode, []string{"age"}, "int32", "json")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
		if err.GoType != "int32" || err.Format != "json" {
			t.Errorf("GoType=%v Format=%v", err.GoType, err.Format)
		}
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		err := InvalidUTF8(PhaseDecode, []string{"name"}, []byte{0xff, 0xfe})
		if err.Kind != KindInvalidUTF8 {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidUTF8)
		}
	})

	t.Run("FieldMissing", func(t *testing.T) {
		err := FieldMissing(PhaseDecode, []string{"person"}, "name")
		if err.Kind != KindFieldMissing {
			t.Errorf("Kind = %v, want %v", err.Kind, KindFieldMissing)
		}
		if !strings.Contains(err.Error(), `"name"`) {
			t.Errorf("message should name the field: %s", err)
		}
	})

	t.Run("InvalidDiscriminant", func(t *testing.T) {
		err := InvalidDiscriminant(PhaseDecode, []string{"variant"}, "TELEPORT")
		if err.Kind != KindInvalidVariant {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidVariant)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseDecode, []string{"friends"}, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("LimitExceeded", func(t *testing.T) {
		err := LimitExceeded(PhaseDecode, "string", 40, 32)
		if err.Kind != KindLimitExceeded {
			t.Errorf("Kind = %v, want %v", err.Kind, KindLimitExceeded)
		}
		for _, s := range []string{"32", "40"} {
			if !strings.Contains(err.Detail, s) {
				t.Errorf("Detail %q should mention %s", err.Detail, s)
			}
		}
	})

	t.Run("InvalidEnum", func(t *testing.T) {
		err := InvalidEnum(PhaseDecode, []string{"mode"}, "hardcore", "GameMode")
		if err.Kind != KindInvalidEnum {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidEnum)
		}
	})

	t.Run("NotInitialized", func(t *testing.T) {
		err := NotInitialized(PhaseEncode, "recursive codec")
		if err.Kind != KindNotInitialized {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotInitialized)
		}
	})
}
