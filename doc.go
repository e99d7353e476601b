/*
Package arbor is a declarative, incremental form engine.

A developer declares a record once, as value domains, structures and unions (see
package schema, or package dsl for definitions loaded at runtime), and arbor derives
from it an input workflow that asks for exactly one missing field per request, checks
every answer against its declared domain and renders the current state as abstract
display primitives that any front end (HTML, Markdown, JSON, MCP) can present.

# Concept

Each request against a session runs one traversal pass over the record. The pass shows
every value set so far and stops at the first field that still lacks one: the pending
target. Only that field accepts input on the next request. Unions materialise the
variant picked by their selector the moment the selector is answered, so later passes
ask for the fields of that variant.

Sessions are persisted as a snapshot of submitted codes (domain.State) through a
ports.StateStore and rebuilt on every request, so the engine holds no per-session
memory and any replica can serve any request.

# Usage

	eng, err := arbor.New(arbor.WithStore(memory.NewStore()))
	if err != nil {
		log.Fatal(err)
	}
	if err := eng.Register("signup", newSignup); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	resp, err := eng.Create(ctx, "signup")
	for err == nil && !resp.Complete {
		fmt.Println(render.Markdown(resp.Ops))
		resp, err = eng.Submit(ctx, resp.SessionID, resp.Target.Field, readAnswer())
	}

# Adapters

Gateways live under pkg/adapters: http serves the query-string form protocol and a JSON
API, mcp exposes the same operations as MCP tools. Stores for memory, files and Redis
implement ports.StateStore; persistence/middleware adds envelope encryption.
*/
package arbor
