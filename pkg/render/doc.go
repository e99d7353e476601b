/*
Package render turns the display primitives of a traversal pass into concrete output.

Recorder is the schema.Sink used by the session host: it keeps the ordered primitive
stream so it can be returned over JSON or formatted later. HTML wraps a stream in the page
shell served by the gateway, using templates parsed once into a Cache that callers build at
startup and pass by reference. Markdown produces the text representation used by the
terminal runner.
*/
package render
