package model

import (
	"school/internal/model/iface"
)

// Repository defines the database operations. It is an alias for
// iface.Repository, which lives in a leaf package so that the SQL
// implementation can reference it without importing this package.
type Repository = iface.Repository
