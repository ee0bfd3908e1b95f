/*
Package observability provides tools for monitoring the FX controller generator.

It includes Prometheus metrics fed by lifecycle hooks, structured-log hooks for
debugging passes, and a helper to combine several hook sets into one.
*/
package observability
