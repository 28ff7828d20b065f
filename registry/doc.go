// Package registry houses concrete implementations of core.ContainerRegistry.
// The interface itself (and the Container types) live in the core package so
// the engine depends only on the contract, never on a concrete store.
//
// Registration is keyed purely by container id. A list rendered through a
// portal, inside a modal or inside a tooltip registers exactly like any other
// list, which is what lets a drag cross those boundaries.
package registry
