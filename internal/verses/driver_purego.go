// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build purego

// Pure Go SQLite driver for builds without CGO.
//
// Build with: go build -tags purego
package verses

import (
	_ "modernc.org/sqlite"
)

// driverName is the database/sql driver registered by modernc.org/sqlite.
const driverName = "sqlite"
