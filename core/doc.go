// Package core provides the foundational domain types and contracts used by the
// sortable drag-and-drop engine. It defines:
//
//   - Items (identified records held by a list container)
//   - Containers (registered drop targets with group membership and order)
//   - DragSession (the single in-flight drag record)
//   - DragPayload / DropResult (the callback wire contract)
//   - Small interfaces for the container registry and the clock
//
// Implementation concerns (registry storage, timers, the session state
// machine) live in sibling packages and depend only on these contracts, so a
// container nested inside a portal or modal is modelled exactly like any
// other: by its id and group, never by its position in a render tree.
package core
