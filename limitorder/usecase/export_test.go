package limitorderusecase

import (
	"github.com/osmosis-labs/osmosis/osmomath"

	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
)

func FillProgress(remainingIn, initialIn osmomath.Int) (limitorderdomain.FillStatus, osmomath.Dec) {
	return fillProgress(remainingIn, initialIn)
}

func FloorTick(tick, tickSpacing int32) int32 {
	return floorTick(tick, tickSpacing)
}
