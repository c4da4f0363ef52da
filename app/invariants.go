package app

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	ammkeeper "github.com/nativeswap/nativeswap/x/amm/keeper"
)

type invariantRoute struct {
	module    string
	route     string
	invariant sdk.Invariant
}

// invariantRegistry collects invariant routes in registration order.
type invariantRegistry struct {
	routes []invariantRoute
}

var _ sdk.InvariantRegistry = (*invariantRegistry)(nil)

// RegisterRoute implements sdk.InvariantRegistry.
func (r *invariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r.routes = append(r.routes, invariantRoute{module: moduleName, route: route, invariant: invar})
}

func ammRegister(reg sdk.InvariantRegistry, app *App) {
	ammkeeper.RegisterInvariants(reg, app.ledger)
}
