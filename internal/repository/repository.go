// Package repository handles all interactions with the database.
//
// Every read operation is a single parameterized SQL statement issued
// through a database.Querier, so the same code runs against the pgx
// pool, the degraded client and test doubles.
package repository
