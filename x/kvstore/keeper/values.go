package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/nativeswap/nativeswap/x/kvstore/types"
)

// set writes an encoded value after the writer check.
func (k Keeper) set(ctx context.Context, caller sdk.AccAddress, kind types.Kind, key types.Key, bz []byte) error {
	if err := k.requireWriter(ctx, caller); err != nil {
		return err
	}
	if bz == nil {
		bz = []byte{}
	}
	k.getStore(ctx).Set(key.Bytes(kind), bz)
	return nil
}

func (k Keeper) get(ctx context.Context, kind types.Kind, key types.Key) []byte {
	return k.getStore(ctx).Get(key.Bytes(kind))
}

// Has reports whether a value of kind was ever written under key and not
// cleared since. Get* cannot make this distinction.
func (k Keeper) Has(ctx context.Context, kind types.Kind, key types.Key) bool {
	return k.getStore(ctx).Has(key.Bytes(kind))
}

// Clear resets the value of kind under key to its zero value.
func (k Keeper) Clear(ctx context.Context, caller sdk.AccAddress, kind types.Kind, key types.Key) error {
	if !kind.Valid() {
		return types.ErrInvalidKind.Wrapf("kind %d", kind)
	}
	if err := k.requireWriter(ctx, caller); err != nil {
		return err
	}
	k.getStore(ctx).Delete(key.Bytes(kind))
	return nil
}

// SetUint stores an unsigned integer.
func (k Keeper) SetUint(ctx context.Context, caller sdk.AccAddress, key types.Key, value math.Uint) error {
	if value.IsNil() {
		return types.ErrInvalidValue.Wrap("nil uint")
	}
	bz, err := value.Marshal()
	if err != nil {
		return types.ErrInvalidValue.Wrapf("marshal uint: %v", err)
	}
	return k.set(ctx, caller, types.KindUint, key, bz)
}

// GetUint returns the stored unsigned integer or zero.
func (k Keeper) GetUint(ctx context.Context, key types.Key) math.Uint {
	bz := k.get(ctx, types.KindUint, key)
	if len(bz) == 0 {
		return math.ZeroUint()
	}
	var v math.Uint
	if err := v.Unmarshal(bz); err != nil {
		k.Logger(ctx).Error("corrupt uint value", "domain", key.Domain, "error", err)
		return math.ZeroUint()
	}
	return v
}

// SetInt stores a signed integer.
func (k Keeper) SetInt(ctx context.Context, caller sdk.AccAddress, key types.Key, value math.Int) error {
	if value.IsNil() {
		return types.ErrInvalidValue.Wrap("nil int")
	}
	bz, err := value.Marshal()
	if err != nil {
		return types.ErrInvalidValue.Wrapf("marshal int: %v", err)
	}
	return k.set(ctx, caller, types.KindInt, key, bz)
}

// GetInt returns the stored signed integer or zero.
func (k Keeper) GetInt(ctx context.Context, key types.Key) math.Int {
	bz := k.get(ctx, types.KindInt, key)
	if len(bz) == 0 {
		return math.ZeroInt()
	}
	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		k.Logger(ctx).Error("corrupt int value", "domain", key.Domain, "error", err)
		return math.ZeroInt()
	}
	return v
}

// SetString stores a text value.
func (k Keeper) SetString(ctx context.Context, caller sdk.AccAddress, key types.Key, value string) error {
	return k.set(ctx, caller, types.KindString, key, []byte(value))
}

// GetString returns the stored text or "".
func (k Keeper) GetString(ctx context.Context, key types.Key) string {
	return string(k.get(ctx, types.KindString, key))
}

// SetBool stores a boolean.
func (k Keeper) SetBool(ctx context.Context, caller sdk.AccAddress, key types.Key, value bool) error {
	bz := []byte{0}
	if value {
		bz[0] = 1
	}
	return k.set(ctx, caller, types.KindBool, key, bz)
}

// GetBool returns the stored boolean or false.
func (k Keeper) GetBool(ctx context.Context, key types.Key) bool {
	bz := k.get(ctx, types.KindBool, key)
	return len(bz) == 1 && bz[0] == 1
}

// SetBytes stores a byte blob. The slice is copied.
func (k Keeper) SetBytes(ctx context.Context, caller sdk.AccAddress, key types.Key, value []byte) error {
	bz := make([]byte, len(value))
	copy(bz, value)
	return k.set(ctx, caller, types.KindBytes, key, bz)
}

// GetBytes returns the stored blob or nil.
func (k Keeper) GetBytes(ctx context.Context, key types.Key) []byte {
	bz := k.get(ctx, types.KindBytes, key)
	if len(bz) == 0 {
		return nil
	}
	out := make([]byte, len(bz))
	copy(out, bz)
	return out
}

// SetAddress stores an identifier reference.
func (k Keeper) SetAddress(ctx context.Context, caller sdk.AccAddress, key types.Key, value sdk.AccAddress) error {
	return k.set(ctx, caller, types.KindAddress, key, value.Bytes())
}

// GetAddress returns the stored identifier or an empty address.
func (k Keeper) GetAddress(ctx context.Context, key types.Key) sdk.AccAddress {
	bz := k.get(ctx, types.KindAddress, key)
	if len(bz) == 0 {
		return nil
	}
	out := make([]byte, len(bz))
	copy(out, bz)
	return sdk.AccAddress(out)
}
