//go:build tools

// Package roomchat tracks tool dependencies invoked through go generate,
// such as mockgen, so they stay pinned in go.mod.
package roomchat

import (
	_ "go.uber.org/mock/mockgen"
)
