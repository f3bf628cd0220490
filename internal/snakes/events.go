package snakes

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Event is one decoded contract log entry. The concrete type identifies
// the event; log entries that do not decode against the known schema
// become Unrecognized rather than errors.
type Event interface {
	isGameEvent()
}

// GameStarted is emitted when a stake is placed and a game begins
type GameStarted struct {
	Player    common.Address
	BetAmount *big.Int
}

// DiceRolled is emitted for every roll with the resulting position
type DiceRolled struct {
	Player      common.Address
	DiceValue   uint64
	NewPosition uint64
}

// SnakeHit is emitted when a roll lands on a snake head
type SnakeHit struct {
	Player       common.Address
	FromPosition uint64
	ToPosition   uint64
}

// LadderClimbed is emitted when a roll lands on a ladder base
type LadderClimbed struct {
	Player       common.Address
	FromPosition uint64
	ToPosition   uint64
}

// GameWon is emitted when the player reaches the final square
type GameWon struct {
	Player      common.Address
	PrizeAmount *big.Int
}

// GameReset is emitted when the player clears their game
type GameReset struct {
	Player common.Address
}

// Unrecognized wraps a log entry that did not match any known event
type Unrecognized struct {
	Log types.Log
}

func (GameStarted) isGameEvent()   {}
func (DiceRolled) isGameEvent()    {}
func (SnakeHit) isGameEvent()      {}
func (LadderClimbed) isGameEvent() {}
func (GameWon) isGameEvent()       {}
func (GameReset) isGameEvent()     {}
func (Unrecognized) isGameEvent()  {}

// DecodeLogs decodes receipt logs in emission order. Decoding is best
// effort; entries that fail to decode are returned as Unrecognized.
func DecodeLogs(logs []*types.Log) []Event {
	events := make([]Event, 0, len(logs))
	for _, l := range logs {
		if l == nil {
			continue
		}
		events = append(events, DecodeLog(*l))
	}
	return events
}

// DecodeLog decodes a single log entry against the contract ABI
func DecodeLog(l types.Log) Event {
	contract, err := ABI()
	if err != nil || len(l.Topics) == 0 {
		return Unrecognized{Log: l}
	}

	ev, err := contract.EventByID(l.Topics[0])
	if err != nil {
		return Unrecognized{Log: l}
	}

	// Every known event carries the player as its single indexed field.
	if len(l.Topics) < 2 {
		return Unrecognized{Log: l}
	}
	player := common.BytesToAddress(l.Topics[1].Bytes())

	values, err := contract.Unpack(ev.Name, l.Data)
	if err != nil {
		return Unrecognized{Log: l}
	}

	switch ev.Name {
	case "GameStarted":
		amount, ok := bigIntAt(values, 0)
		if !ok {
			return Unrecognized{Log: l}
		}
		return GameStarted{Player: player, BetAmount: amount}
	case "DiceRolled":
		value, ok := bigIntAt(values, 0)
		position, ok2 := bigIntAt(values, 1)
		if !ok || !ok2 {
			return Unrecognized{Log: l}
		}
		return DiceRolled{Player: player, DiceValue: value.Uint64(), NewPosition: position.Uint64()}
	case "SnakeHit":
		from, ok := bigIntAt(values, 0)
		to, ok2 := bigIntAt(values, 1)
		if !ok || !ok2 {
			return Unrecognized{Log: l}
		}
		return SnakeHit{Player: player, FromPosition: from.Uint64(), ToPosition: to.Uint64()}
	case "LadderClimbed":
		from, ok := bigIntAt(values, 0)
		to, ok2 := bigIntAt(values, 1)
		if !ok || !ok2 {
			return Unrecognized{Log: l}
		}
		return LadderClimbed{Player: player, FromPosition: from.Uint64(), ToPosition: to.Uint64()}
	case "GameWon":
		prize, ok := bigIntAt(values, 0)
		if !ok {
			return Unrecognized{Log: l}
		}
		return GameWon{Player: player, PrizeAmount: prize}
	case "GameReset":
		return GameReset{Player: player}
	default:
		return Unrecognized{Log: l}
	}
}

func bigIntAt(values []interface{}, idx int) (*big.Int, bool) {
	if idx >= len(values) {
		return nil, false
	}
	v, ok := values[idx].(*big.Int)
	return v, ok
}
