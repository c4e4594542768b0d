// Package wire implements WireCodec: JSON encode/decode and schema
// validation for every envelope in §6. Envelopes are "tagged variants" —
// the {"type": ...} field selects which concrete Go struct a frame decodes
// into — rather than dynamically-typed dictionaries.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ProtocolVersion is the only wire version this codec understands.
const ProtocolVersion = 1

// Envelope is the common header every frame carries.
type Envelope struct {
	Type string `json:"type" validate:"required"`
	V    int    `json:"v" validate:"required"`
	TS   string `json:"ts,omitempty"`
}

// --- Client -> Core (bots) ---

type HelloBot struct {
	Envelope
	Team     string `json:"team" validate:"required"`
	JoinCode string `json:"join_code,omitempty"`
}

type ClientAction struct {
	Envelope
	HandID string `json:"hand_id" validate:"required"`
	Action string `json:"action" validate:"required,oneof=FOLD CHECK CALL RAISE_TO"`
	Amount *int64 `json:"amount,omitempty"`
}

// --- Core -> Client (bots) ---

type TableConfig struct {
	Variant      string `json:"variant"`
	Seats        int    `json:"seats"`
	StartStack   int64  `json:"starting_stack"`
	SmallBlind   int64  `json:"sb"`
	BigBlind     int64  `json:"bb"`
	MoveTimeMs   int64  `json:"move_time_ms"`
}

type Welcome struct {
	Envelope
	TableID string      `json:"table_id"`
	Seat    int         `json:"seat"`
	Config  TableConfig `json:"config"`
}

type LobbyPlayer struct {
	Seat      int    `json:"seat"`
	Team      string `json:"team"`
	Connected bool   `json:"connected"`
	Stack     int64  `json:"stack"`
}

type Lobby struct {
	Envelope
	Players []LobbyPlayer `json:"players"`
}

type StackEntry struct {
	Seat  int   `json:"seat"`
	Stack int64 `json:"stack"`
}

type StartHand struct {
	Envelope
	HandID string       `json:"hand_id"`
	Seed   int64        `json:"seed"`
	Button int          `json:"button"`
	Stacks []StackEntry `json:"stacks"`
}

type YouView struct {
	Hole   [2]string `json:"hole"`
	Stack  int64     `json:"stack"`
	ToCall int64     `json:"to_call"`
	TimeMs int64     `json:"time_ms"`
}

type TableView struct {
	SmallBlind int64 `json:"sb"`
	BigBlind   int64 `json:"bb"`
	Seats      int   `json:"seats"`
	Button     int   `json:"button"`
}

type PlayerView struct {
	Seat      int   `json:"seat"`
	Stack     int64 `json:"stack"`
	HasFolded bool  `json:"has_folded"`
	Committed int64 `json:"committed"`
}

// ActPrompt is the private action prompt, sent only to the acting seat.
type ActPrompt struct {
	Envelope
	HandID      string       `json:"hand_id"`
	Seat        int          `json:"seat"`
	Phase       string       `json:"phase"`
	You         YouView      `json:"you"`
	Table       TableView    `json:"table"`
	Players     []PlayerView `json:"players"`
	Community   []string     `json:"community"`
	Legal       []string     `json:"legal"`
	CallAmount  int64        `json:"call_amount"`
	MinRaiseTo  int64        `json:"min_raise_to"`
	MaxRaiseTo  int64        `json:"max_raise_to"`
}

// GameEvent is a public event, one of the ev values listed in §6.
type GameEvent struct {
	Envelope
	Ev        string   `json:"ev"`
	Seat      int      `json:"seat,omitempty"`
	Amount    int64    `json:"amount,omitempty"`
	Cards     []string `json:"cards,omitempty"`
	Pot       int64    `json:"pot,omitempty"`
	PotIdx    int      `json:"pot_idx,omitempty"`
	Winners   []int    `json:"winners,omitempty"`
	Hole      []string `json:"hole,omitempty"`
	BestFive  []string `json:"best_five,omitempty"`
	Category  string   `json:"category,omitempty"`
}

type EndHand struct {
	Envelope
	HandID string       `json:"hand_id"`
	Stacks []StackEntry `json:"stacks"`
}

type Snapshot struct {
	Envelope
	TableID        string       `json:"table_id"`
	Seat           int          `json:"seat"`
	HandID         string       `json:"hand_id,omitempty"`
	Phase          string       `json:"phase,omitempty"`
	You            *YouView     `json:"you,omitempty"`
	Table          *TableView   `json:"table,omitempty"`
	Players        []PlayerView `json:"players,omitempty"`
	Community      []string     `json:"community,omitempty"`
	Legal          []string     `json:"legal,omitempty"`
	TimeMsRemaining int64       `json:"time_ms_remaining,omitempty"`
}

type Winner struct {
	Seat int    `json:"seat"`
	Team string `json:"team"`
}

type MatchEnd struct {
	Envelope
	Winner       Winner       `json:"winner"`
	FinalStacks  []StackEntry `json:"final_stacks"`
}

type ErrorFrame struct {
	Envelope
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// --- Spectator / operator channel ---

type HelloSpectator struct {
	Envelope
	Role    string `json:"role" validate:"required,oneof=spectator operator"`
	Control string `json:"control,omitempty"`
	Mode    string `json:"mode,omitempty" validate:"omitempty,oneof=live presentation"`
}

type Control struct {
	Envelope
	Command string `json:"command" validate:"required,oneof=START_HAND SKIP_ACTION FORFEIT_SEAT"`
	Seat    *int   `json:"seat,omitempty"`
}

type SpectatorStatus struct {
	Envelope
	InHand             bool `json:"in_hand"`
	AwaitingManualStart bool `json:"awaiting_manual_start"`
	ManualStartArmed   bool `json:"manual_start_armed"`
	PlayersReady       int  `json:"players_ready"`
	CanStart           bool `json:"can_start"`
}

// Decode sniffs the "type" field of raw and unmarshals into the matching
// concrete struct, then runs struct-tag validation. The returned value is a
// pointer to one of the envelope types above, except for "hello", which
// returns only the decoded type header, unvalidated.
func Decode(raw []byte) (any, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("bad_schema: %w", err)
	}

	var out any
	switch head.Type {
	case "hello":
		// Ambiguous between bot and spectator/operator hello; callers
		// distinguish by endpoint (/ws vs /spectate) and re-decode with
		// DecodeHelloBot or DecodeHelloSpectator.
		return &head, nil
	case "action":
		out = &ClientAction{}
	case "control":
		out = &Control{}
	default:
		return nil, fmt.Errorf("bad_schema: unknown frame type %q", head.Type)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("bad_schema: %w", err)
	}
	if err := validate.Struct(out); err != nil {
		return nil, fmt.Errorf("bad_schema: %w", err)
	}
	return out, nil
}

// DecodeHelloBot decodes and validates a bot-channel hello frame.
func DecodeHelloBot(raw []byte) (*HelloBot, error) {
	h := &HelloBot{}
	if err := json.Unmarshal(raw, h); err != nil {
		return nil, fmt.Errorf("bad_schema: %w", err)
	}
	if err := validate.Struct(h); err != nil {
		return nil, fmt.Errorf("bad_schema: %w", err)
	}
	return h, nil
}

// DecodeHelloSpectator decodes and validates a spectator/operator hello frame.
func DecodeHelloSpectator(raw []byte) (*HelloSpectator, error) {
	h := &HelloSpectator{}
	if err := json.Unmarshal(raw, h); err != nil {
		return nil, fmt.Errorf("bad_schema: %w", err)
	}
	if err := validate.Struct(h); err != nil {
		return nil, fmt.Errorf("bad_schema: %w", err)
	}
	return h, nil
}

// Marshal encodes v as JSON. It does not fill in the envelope version;
// callers set Envelope.V themselves.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}
