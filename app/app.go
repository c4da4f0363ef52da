// Package app composes the store, ledger, asset and emergency modules into
// a single engine.
//
// Every mutating call runs on a branch of the committed multistore under a
// global lock, so calls are totally ordered and a failed call leaves no
// trace. A successful call is written back and committed as a new store
// version. Reads run on a branch of the last committed version.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/nativeswap/nativeswap/app/telemetry"
	ammkeeper "github.com/nativeswap/nativeswap/x/amm/keeper"
	ammtypes "github.com/nativeswap/nativeswap/x/amm/types"
	emergencykeeper "github.com/nativeswap/nativeswap/x/emergency/keeper"
	emergencytypes "github.com/nativeswap/nativeswap/x/emergency/types"
	kvkeeper "github.com/nativeswap/nativeswap/x/kvstore/keeper"
	kvtypes "github.com/nativeswap/nativeswap/x/kvstore/types"
	"github.com/nativeswap/nativeswap/x/shared/errclass"
	sharedkeeper "github.com/nativeswap/nativeswap/x/shared/keeper"
	sharedtypes "github.com/nativeswap/nativeswap/x/shared/types"
	tokenskeeper "github.com/nativeswap/nativeswap/x/tokens/keeper"
	tokenstypes "github.com/nativeswap/nativeswap/x/tokens/types"
)

const (
	// Name is the engine name used in logs and spans
	Name = "nativeswap"

	// EngineStoreKey holds engine metadata such as the active ledger version
	EngineStoreKey = "engine"

	// DefaultNativeDenom is the settlement asset when none is configured
	DefaultNativeDenom = "unative"
)

var ledgerVersionKey = []byte("ledger_version")

// engineCtxKey marks a context as already running inside the engine.
type engineCtxKey struct{}

// Roles is the fixed role membership of a deployment.
type Roles struct {
	Admins       []sdk.AccAddress
	FeeOperators []sdk.AccAddress
	Signers      []sdk.AccAddress
}

// Config configures an App.
type Config struct {
	ChainID     string
	NativeDenom string
	Roles       Roles

	// InvariantCheck runs the ledger invariants before every commit and
	// rejects the call if one is broken.
	InvariantCheck bool
}

// Option customizes an App.
type Option func(*App)

// WithClock replaces the wall clock used for block times.
func WithClock(clock func() time.Time) Option {
	return func(app *App) {
		app.clock = clock
	}
}

// WithMeter records engine operation counts on meter.
func WithMeter(meter metric.Meter) Option {
	return func(app *App) {
		app.meter = meter
	}
}

// App is the engine.
type App struct {
	mu sync.RWMutex

	logger log.Logger
	cms    storetypes.CommitMultiStore
	keys   map[string]*storetypes.KVStoreKey
	cfg    Config
	clock  func() time.Time
	policy *sharedkeeper.StaticPolicy
	errs   *errclass.Handler
	meter  metric.Meter
	ops    metric.Int64Counter

	StoreKeeper     kvkeeper.Keeper
	TokensKeeper    tokenskeeper.Keeper
	EmergencyKeeper emergencykeeper.Keeper

	// ledger is the active ledger logic version. It is replaced by
	// UpgradeLedger and read only under mu.
	ledger ammkeeper.Keeper
}

// NewApp opens the engine over db. An empty db must be initialized with
// InitChain before use; an existing db resumes at its last version.
func NewApp(logger log.Logger, db dbm.DB, cfg Config, opts ...Option) (*App, error) {
	if len(cfg.Roles.Admins) == 0 {
		return nil, fmt.Errorf("at least one administrator is required")
	}
	if cfg.NativeDenom == "" {
		cfg.NativeDenom = DefaultNativeDenom
	}
	if err := sdk.ValidateDenom(cfg.NativeDenom); err != nil {
		return nil, fmt.Errorf("invalid native denom: %w", err)
	}

	policy, err := sharedkeeper.NewStaticPolicy(cfg.Roles.Admins, cfg.Roles.FeeOperators, cfg.Roles.Signers)
	if err != nil {
		return nil, fmt.Errorf("invalid role configuration: %w", err)
	}

	app := &App{
		logger: logger.With("module", "engine"),
		cfg:    cfg,
		clock:  time.Now,
		policy: policy,
		errs:   errclass.NewHandler(logger.With("module", "engine")),
		meter:  otel.Meter(Name),
		keys:   make(map[string]*storetypes.KVStoreKey),
	}
	for _, opt := range opts {
		opt(app)
	}

	app.ops, err = app.meter.Int64Counter(
		"nativeswap.engine.operations",
		metric.WithDescription("Engine operations by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, name := range []string{kvtypes.StoreKey, tokenstypes.StoreKey, emergencytypes.StoreKey, EngineStoreKey} {
		key := storetypes.NewKVStoreKey(name)
		app.keys[name] = key
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load latest version: %w", err)
	}
	app.cms = cms

	app.StoreKeeper = kvkeeper.NewKeeper(app.keys[kvtypes.StoreKey], policy)
	app.TokensKeeper = tokenskeeper.NewKeeper(app.keys[tokenstypes.StoreKey])
	app.EmergencyKeeper = emergencykeeper.NewKeeper(app.keys[emergencytypes.StoreKey], policy, ledgerRouter{app: app})

	version := string(cms.GetKVStore(app.keys[EngineStoreKey]).Get(ledgerVersionKey))
	app.ledger = app.newLedger(version)

	app.logger.Info("engine loaded",
		"version", cms.LastCommitID().Version,
		"ledger_version", app.ledger.Version(),
		"native_denom", cfg.NativeDenom,
	)
	return app, nil
}

func (app *App) newLedger(version string) ammkeeper.Keeper {
	return ammkeeper.NewKeeper(app.StoreKeeper, app.TokensKeeper, app.policy, app.cfg.NativeDenom, version)
}

// ledgerRouter forwards emergency withdrawals to whichever ledger version
// is active when the proposal executes.
type ledgerRouter struct {
	app *App
}

func (r ledgerRouter) ExecuteEmergencyWithdraw(ctx context.Context, caller sdk.AccAddress, asset string, to sdk.AccAddress, amount math.Int) error {
	return r.app.ledger.ExecuteEmergencyWithdraw(ctx, caller, asset, to, amount)
}

// Logger returns the engine logger.
func (app *App) Logger() log.Logger {
	return app.logger
}

// Policy returns the role policy.
func (app *App) Policy() *sharedkeeper.StaticPolicy {
	return app.policy
}

// NativeDenom returns the settlement asset.
func (app *App) NativeDenom() string {
	return app.cfg.NativeDenom
}

// ChainID returns the configured chain id.
func (app *App) ChainID() string {
	return app.cfg.ChainID
}

// LastCommitID returns the id of the last committed store version.
func (app *App) LastCommitID() storetypes.CommitID {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cms.LastCommitID()
}

// LedgerVersion returns the active ledger logic version.
func (app *App) LedgerVersion() string {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.ledger.Version()
}

// Close releases the underlying store.
func (app *App) Close() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if closer, ok := app.cms.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func (app *App) newContext(ms storetypes.MultiStore, goCtx context.Context) sdk.Context {
	header := cmtproto.Header{
		ChainID: app.cfg.ChainID,
		Height:  app.cms.LastCommitID().Version + 1,
		Time:    app.clock().UTC(),
	}
	return sdk.NewContext(ms, header, false, app.logger).WithContext(goCtx)
}

// nested reports whether goCtx already runs inside an engine call, which
// happens when a transfer hook calls back into the engine.
func nested(goCtx context.Context) bool {
	return goCtx.Value(engineCtxKey{}) != nil
}

// exec runs fn as one atomic engine call and commits on success.
func (app *App) exec(goCtx context.Context, module, op string, fn func(ctx sdk.Context) error) error {
	return app.execCommit(goCtx, module, op, fn, nil)
}

// execCommit is exec with a hook that runs under the lock after commit.
func (app *App) execCommit(goCtx context.Context, module, op string, fn func(ctx sdk.Context) error, onCommit func()) error {
	if nested(goCtx) {
		return sharedtypes.ErrReentrancy.Wrapf("nested engine call %s.%s", module, op)
	}

	goCtx, span := telemetry.StartOperation(goCtx, module, op)
	defer span.End()

	app.mu.Lock()
	defer app.mu.Unlock()
	if err := goCtx.Err(); err != nil {
		return err
	}

	cacheMS := app.cms.CacheMultiStore()
	ctx := app.newContext(cacheMS, context.WithValue(goCtx, engineCtxKey{}, op))

	err := fn(ctx)
	if err == nil && app.cfg.InvariantCheck {
		if msg, broken := ammkeeper.AllInvariants(app.ledger)(ctx); broken {
			err = ammtypes.ErrInvariantViolation.Wrap(msg)
		}
	}
	if err != nil {
		class := app.errs.Handle(module+"."+op, err)
		app.ops.Add(goCtx, 1, metric.WithAttributes(
			attribute.String("op", op),
			attribute.String("result", class.String()),
		))
		telemetry.FinishOperation(span, 0, err)
		return err
	}

	cacheMS.Write()
	commitID := app.cms.Commit()
	if onCommit != nil {
		onCommit()
	}

	app.ops.Add(goCtx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("result", "ok"),
	))
	telemetry.FinishOperation(span, commitID.Version, nil)
	app.logger.Debug("committed", "op", module+"."+op, "version", commitID.Version)
	return nil
}

// query runs fn on a branch of the last committed state.
func (app *App) query(goCtx context.Context, fn func(ctx sdk.Context) error) error {
	if nested(goCtx) {
		return sharedtypes.ErrReentrancy.Wrap("engine query from inside an engine call")
	}
	app.mu.RLock()
	defer app.mu.RUnlock()
	return fn(app.newContext(app.cms.CacheMultiStore(), goCtx))
}

// InitChain applies genesis to an empty database: it mints the initial
// allocations, makes the ledger the store writer, initializes the fee,
// registers the emergency module as executor and stores the approval
// parameters.
func (app *App) InitChain(goCtx context.Context, gs GenesisState) error {
	if err := gs.Validate(len(app.cfg.Roles.Signers)); err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}
	admin := app.cfg.Roles.Admins[0]

	return app.exec(goCtx, "app", "init_chain", func(ctx sdk.Context) error {
		if app.cms.LastCommitID().Version != 0 || !app.StoreKeeper.Writer(ctx).Empty() {
			return sharedtypes.ErrGenesisApplied
		}
		for _, a := range gs.Allocations {
			if err := app.TokensKeeper.Mint(ctx, a.Address, a.Denom, a.Amount); err != nil {
				return err
			}
		}
		if err := app.StoreKeeper.ReassignWriter(ctx, admin, app.ledger.Identity()); err != nil {
			return err
		}
		if err := app.ledger.Initialize(ctx, admin, gs.FeeBps); err != nil {
			return err
		}
		if err := app.ledger.SetEmergencyExecutor(ctx, admin, emergencytypes.ModuleAddress); err != nil {
			return err
		}
		if err := app.EmergencyKeeper.SetParams(ctx, gs.Emergency, len(app.cfg.Roles.Signers)); err != nil {
			return err
		}
		ctx.KVStore(app.keys[EngineStoreKey]).Set(ledgerVersionKey, []byte(app.ledger.Version()))
		app.logger.Info("genesis applied", "allocations", len(gs.Allocations), "fee_bps", gs.FeeBps)
		return nil
	})
}

// Initialized reports whether genesis has been applied.
func (app *App) Initialized() bool {
	return app.LastCommitID().Version > 0
}

// UpgradeLedger switches to a new ledger logic version. The store writer
// moves to the new version's identity in the same commit; pool data stays
// where it is.
func (app *App) UpgradeLedger(goCtx context.Context, caller sdk.AccAddress, version string) error {
	var next ammkeeper.Keeper
	return app.execCommit(goCtx, "app", "upgrade_ledger", func(ctx sdk.Context) error {
		if version == "" || version == app.ledger.Version() {
			return sharedtypes.ErrInvalidVersion.Wrapf("cannot upgrade %s to %q", app.ledger.Version(), version)
		}
		next = app.newLedger(version)
		if err := app.StoreKeeper.ReassignWriter(ctx, caller, next.Identity()); err != nil {
			return err
		}
		ctx.KVStore(app.keys[EngineStoreKey]).Set(ledgerVersionKey, []byte(version))
		return nil
	}, func() {
		app.logger.Info("ledger upgraded", "from", app.ledger.Version(), "to", next.Version())
		app.ledger = next
	})
}
