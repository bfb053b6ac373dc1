// Package domain provides the shared types of syncstatus: accounts, sync
// outcomes and the two event streams the account and sync engines emit.
//
// This package follows strict import rules:
//   - CAN import: standard library
//   - MUST NOT import: any internal packages
//
// All JSON field names use snake_case.
package domain
