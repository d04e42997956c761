// Package schema is the configuration model for property validation.
//
// A [Definition] states whether a property is required, the severity
// reported when a required property is missing, and a description for
// hosts. Definitions are partitioned by [Scope]: file-level and
// function-level properties are independent sets and are never validated
// against each other.
//
// # Layers
//
// The resolved schema merges three layers in increasing priority:
//
//  1. Built-in defaults.
//  2. The project configuration file, a JSON document at the workspace
//     root (see [LoadProject]). Its absence is not an error.
//  3. Host settings, supplied as an extra [Layer].
//
// Merging is field-level: a [Partial] overrides only the fields it sets,
// and omitted fields inherit from the layer below. Scope membership lists
// append in order without duplicates. A malformed entry in any layer is
// skipped with a warning; it never invalidates the rest of its layer.
//
// # Snapshots
//
// A [Store] owns the layers. [Store.Reload] rebuilds the resolved schema
// and atomically publishes an immutable, versioned [Snapshot];
// [Store.Resolve] returns the current one. Reloading with unchanged inputs
// yields a content-equal snapshot. Snapshots are safe for concurrent
// reads, and one analysis pass holds a single snapshot throughout.
package schema
