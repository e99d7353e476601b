/*
Package domain contains the core types shared by the arbor schema engine and its adapters.

It defines the error taxonomy of the engine, the render output contract consumed by the
templating layers, and the persisted snapshot of a form session. This package is kept pure
and free of external dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Op: A single display primitive emitted by a traversal pass (group, list, item, text, widget).
  - Target: The single field a traversal pass exposes as actionable.
  - State: The persisted snapshot of a session (schema, submitted values, pending target).
  - LifecycleHooks: Callbacks fired by the session host for observability.
*/
package domain
