package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/nativeswap/nativeswap/x/amm/types"
)

func TestComputeSwapOutput(t *testing.T) {
	out, err := types.ComputeSwapOutput(math.NewInt(1_000), math.NewInt(100_000), math.NewInt(100_000), 30)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(987), out)

	// no fee: plain x*y=k
	out, err = types.ComputeSwapOutput(math.NewInt(100), math.NewInt(100), math.NewInt(100), 0)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(50), out)

	_, err = types.ComputeSwapOutput(math.NewInt(1), math.ZeroInt(), math.NewInt(100), 30)
	require.ErrorIs(t, err, types.ErrEmptyPool)

	_, err = types.ComputeSwapOutput(math.NewInt(1), math.NewInt(100), math.NewInt(100), types.FeeDenominator+1)
	require.ErrorIs(t, err, types.ErrInvalidFee)
}

func TestSwapFee(t *testing.T) {
	fee, err := types.SwapFee(math.NewInt(10_000), 30)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(30), fee)

	fee, err = types.SwapFee(math.NewInt(33), 30)
	require.NoError(t, err)
	require.True(t, fee.IsZero())
}

func TestPriceImpactBps(t *testing.T) {
	impact, err := types.PriceImpactBps(math.NewInt(1_000), math.NewInt(987), math.NewInt(100_000), math.NewInt(100_000))
	require.NoError(t, err)
	require.Equal(t, uint64(130), impact)

	impact, err = types.PriceImpactBps(math.NewInt(10), math.NewInt(20), math.NewInt(100), math.NewInt(100))
	require.NoError(t, err)
	require.Zero(t, impact)

	_, err = types.PriceImpactBps(math.ZeroInt(), math.ZeroInt(), math.NewInt(100), math.NewInt(100))
	require.ErrorIs(t, err, types.ErrDivisionByZero)
}

func TestExceedsTradeCap(t *testing.T) {
	reserve := math.NewInt(100_000)

	over, err := types.ExceedsTradeCap(math.NewInt(50_000), reserve)
	require.NoError(t, err)
	require.False(t, over, "exactly half the reserve is allowed")

	over, err = types.ExceedsTradeCap(math.NewInt(50_001), reserve)
	require.NoError(t, err)
	require.True(t, over)
}

func TestSpotPrice(t *testing.T) {
	price, err := types.SpotPrice(math.NewInt(123), math.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, "8130081300813008", price.String())

	price, err = types.SpotPrice(math.NewInt(1_000), math.NewInt(2_000))
	require.NoError(t, err)
	require.Equal(t, types.PriceScale.MulRaw(2), price)

	_, err = types.SpotPrice(math.ZeroInt(), math.NewInt(1))
	require.ErrorIs(t, err, types.ErrEmptyPool)
}

func TestSwapDirection(t *testing.T) {
	for _, d := range []types.SwapDirection{types.BaseForAsset, types.AssetForBase} {
		parsed, err := types.ParseSwapDirection(d.String())
		require.NoError(t, err)
		require.Equal(t, d, parsed)
	}
	_, err := types.ParseSwapDirection("sideways")
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

// A trade never returns more than the output reserve and never lowers the
// constant product.
func TestSwapOutputPreservesProduct(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := math.NewInt(rapid.Int64Range(1, 1<<50).Draw(t, "reserveIn"))
		reserveOut := math.NewInt(rapid.Int64Range(1, 1<<50).Draw(t, "reserveOut"))
		amountIn := math.NewInt(rapid.Int64Range(1, 1<<50).Draw(t, "amountIn"))
		feeBps := rapid.Uint64Range(0, types.MaxFeeBps).Draw(t, "feeBps")

		out, err := types.ComputeSwapOutput(amountIn, reserveIn, reserveOut, feeBps)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.GTE(reserveOut) {
			t.Fatalf("output %s drains reserve %s", out, reserveOut)
		}
		before := reserveIn.Mul(reserveOut)
		after := reserveIn.Add(amountIn).Mul(reserveOut.Sub(out))
		if after.LT(before) {
			t.Fatalf("product decreased: %s -> %s", before, after)
		}

		impact, err := types.PriceImpactBps(amountIn, out, reserveIn, reserveOut)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if impact > types.MaxSlippageBps {
			t.Fatalf("impact %d out of range", impact)
		}
	})
}

func TestFeeNeverIncreasesOutput(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := math.NewInt(rapid.Int64Range(1, 1<<40).Draw(t, "reserveIn"))
		reserveOut := math.NewInt(rapid.Int64Range(1, 1<<40).Draw(t, "reserveOut"))
		amountIn := math.NewInt(rapid.Int64Range(1, 1<<40).Draw(t, "amountIn"))
		lo := rapid.Uint64Range(0, types.MaxFeeBps).Draw(t, "lo")
		hi := rapid.Uint64Range(lo, types.MaxFeeBps).Draw(t, "hi")

		outLo, err := types.ComputeSwapOutput(amountIn, reserveIn, reserveOut, lo)
		if err != nil {
			t.Fatal(err)
		}
		outHi, err := types.ComputeSwapOutput(amountIn, reserveIn, reserveOut, hi)
		if err != nil {
			t.Fatal(err)
		}
		if outHi.GT(outLo) {
			t.Fatalf("fee %d yields %s > fee %d yields %s", hi, outHi, lo, outLo)
		}
	})
}
