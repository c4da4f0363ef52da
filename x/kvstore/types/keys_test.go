package types_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/nativeswap/nativeswap/x/kvstore/types"
)

func TestSlotDiscriminatorsAreLengthPrefixed(t *testing.T) {
	a := types.Slot("d", []byte("ab"), []byte("c"))
	b := types.Slot("d", []byte("a"), []byte("bc"))
	require.NotEqual(t, a, b)
	require.Len(t, a, 32)
}

func TestKindsDoNotAlias(t *testing.T) {
	key := types.NewKey("pool", []byte("ATOM"))
	seen := make(map[string]types.Kind)
	for k := types.KindUint; k <= types.KindAddress; k++ {
		require.True(t, k.Valid())
		bz := string(key.Bytes(k))
		_, dup := seen[bz]
		require.False(t, dup, "kind %s aliases another kind", k)
		seen[bz] = k
	}
	require.False(t, types.Kind(0).Valid())
}

func TestSlotIsInjective(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d1 := rapid.StringMatching(`[a-z_]{0,8}`).Draw(t, "d1")
		d2 := rapid.StringMatching(`[a-z_]{0,8}`).Draw(t, "d2")
		p1 := rapid.SliceOfN(rapid.SliceOfN(rapid.Byte(), 0, 6), 0, 3).Draw(t, "p1")
		p2 := rapid.SliceOfN(rapid.SliceOfN(rapid.Byte(), 0, 6), 0, 3).Draw(t, "p2")

		same := d1 == d2 && len(p1) == len(p2)
		if same {
			for i := range p1 {
				if !bytes.Equal(p1[i], p2[i]) {
					same = false
					break
				}
			}
		}
		if same != bytes.Equal(types.Slot(d1, p1...), types.Slot(d2, p2...)) {
			t.Fatalf("slot collision: (%q,%x) vs (%q,%x)", d1, p1, d2, p2)
		}
	})
}
