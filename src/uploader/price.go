package uploader

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/CalebEverett/arloader/src/utils/arweave"
)

// Block size used for pricing calculations
const PriceBlockSize = 256 * 1024

// Winston prices measured off the gateway price curve. Base covers the
// first block, every further block adds Incremental.
type PriceTerms struct {
	Base        uint64
	Incremental uint64
}

// GetPriceTerms samples the price endpoint at one and two blocks and
// applies the reward multiplier.
func GetPriceTerms(ctx context.Context, client *arweave.Client, rewardMultiplier float64) (out PriceTerms, err error) {
	one, err := client.GetPrice(ctx, PriceBlockSize)
	if err != nil {
		return
	}
	two, err := client.GetPrice(ctx, 2*PriceBlockSize)
	if err != nil {
		return
	}

	multiplier := decimal.NewFromFloat(rewardMultiplier)
	base := decimal.NewFromBigInt(&one.Int, 0).Mul(multiplier).Round(0)
	second := decimal.NewFromBigInt(&two.Int, 0).Mul(multiplier).Round(0)

	out.Base = uint64(base.IntPart())
	out.Incremental = uint64(second.Sub(base).IntPart())
	return
}

// Reward for a payload of dataSize bytes.
func (self PriceTerms) Reward(dataSize uint64) uint64 {
	blocks := dataSize / PriceBlockSize
	if dataSize%PriceBlockSize != 0 {
		blocks++
	}
	if blocks == 0 {
		blocks = 1
	}
	return self.Base + self.Incremental*(blocks-1)
}
