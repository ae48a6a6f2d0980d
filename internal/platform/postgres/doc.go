// Package postgres implements the store interfaces on PostgreSQL through the
// pgx database/sql driver. It owns the SQL schema (goose migrations embedded
// in the binary) and maps driver errors onto the store package's sentinels.
package postgres
