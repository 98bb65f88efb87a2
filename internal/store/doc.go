// Package store defines the uniform repository contract both storage
// engines implement: create/read/update/delete/list per entity, with a
// shared error taxonomy and identical failure semantics. Application
// code talks to these interfaces exclusively; no engine-native error or
// driver type crosses this boundary.
package store
