/*
Package observability provides tools for monitoring form sessions.

It turns the engine's lifecycle hooks into Prometheus metrics
and combines several hook sets into one so gateways (e.g. the SSE stream) can listen
alongside them.
*/
package observability
