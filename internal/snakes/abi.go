package snakes

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// contractABI is the call and event surface of the SnakesAndLadders
// contract deployed on Sepolia.
const contractABI = `[
  {"type":"function","name":"startGame","stateMutability":"payable","inputs":[],"outputs":[]},
  {"type":"function","name":"rollDice","stateMutability":"nonpayable","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"resetGame","stateMutability":"nonpayable","inputs":[],"outputs":[]},
  {"type":"function","name":"getGameState","stateMutability":"view","inputs":[{"name":"player","type":"address"}],"outputs":[{"name":"gameInProgress","type":"bool"},{"name":"currentPosition","type":"uint256"},{"name":"prizePool","type":"uint256"}]},
  {"type":"function","name":"BET_AMOUNT","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"event","name":"GameStarted","anonymous":false,"inputs":[{"name":"player","type":"address","indexed":true},{"name":"betAmount","type":"uint256","indexed":false}]},
  {"type":"event","name":"DiceRolled","anonymous":false,"inputs":[{"name":"player","type":"address","indexed":true},{"name":"diceValue","type":"uint256","indexed":false},{"name":"newPosition","type":"uint256","indexed":false}]},
  {"type":"event","name":"SnakeHit","anonymous":false,"inputs":[{"name":"player","type":"address","indexed":true},{"name":"fromPosition","type":"uint256","indexed":false},{"name":"toPosition","type":"uint256","indexed":false}]},
  {"type":"event","name":"LadderClimbed","anonymous":false,"inputs":[{"name":"player","type":"address","indexed":true},{"name":"fromPosition","type":"uint256","indexed":false},{"name":"toPosition","type":"uint256","indexed":false}]},
  {"type":"event","name":"GameWon","anonymous":false,"inputs":[{"name":"player","type":"address","indexed":true},{"name":"prizeAmount","type":"uint256","indexed":false}]},
  {"type":"event","name":"GameReset","anonymous":false,"inputs":[{"name":"player","type":"address","indexed":true}]}
]`

var (
	parsedABI  abi.ABI
	parseOnce  sync.Once
	parseError error
)

// ABI returns the parsed contract ABI. The ABI string is a compile-time
// constant, so parsing can only fail if it is edited into an invalid state.
func ABI() (abi.ABI, error) {
	parseOnce.Do(func() {
		parsedABI, parseError = abi.JSON(strings.NewReader(contractABI))
	})
	return parsedABI, parseError
}
