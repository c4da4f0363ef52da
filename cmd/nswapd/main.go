package main

import (
	"os"

	"github.com/nativeswap/nativeswap/app"
	"github.com/nativeswap/nativeswap/cmd/nswapd/cmd"
)

func main() {
	app.SetConfig()

	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
