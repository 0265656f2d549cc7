// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !purego

package verses

import (
	_ "github.com/mattn/go-sqlite3"
)

// driverName is the database/sql driver registered by mattn/go-sqlite3.
const driverName = "sqlite3"
