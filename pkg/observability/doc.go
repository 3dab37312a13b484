/*
Package observability turns evaluator lifecycle events into logs and Prometheus metrics.

Both helpers return domain.LifecycleHooks; combine them with LifecycleHooks.Merge and
pass the result to cyoa.WithLifecycleHooks.
*/
package observability
