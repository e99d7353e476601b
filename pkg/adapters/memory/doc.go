// Package memory provides an in-process StateStore for tests and single-replica deployments.
package memory
