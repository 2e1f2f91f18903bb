// Package domain contains the core model of the compiler hook: define values
// and their constraints, the raw, override and resolved project configurations,
// the on-disk project layout and the error taxonomy.
//
// The domain does not depend on JSON/YAML parsing, subprocesses or the
// filesystem. Infra/adapters map into/from these types.
package domain
