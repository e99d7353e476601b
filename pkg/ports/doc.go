/*
Package ports defines the driven ports (interfaces) of the form engine.

These interfaces decouple session handling from external implementations, allowing
the engine to work with various storage backends and schema sources.

# Key Interfaces

  - StateStore: Responsible for persisting and loading session State.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
  - SchemaSource: Supplies schema definitions (e.g., from Loam or a directory of YAML files).

SessionHost is the one driving port: the HTTP, MCP and terminal adapters talk to the
engine through it.
*/
package ports
