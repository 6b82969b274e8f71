// Package metrics defines the Prometheus collectors of the service and small
// helpers that record into them.
//
// HTTP collectors are fed by the request middleware. Content collectors cover
// the synchronization layer: object store latency, mutations per collection,
// fallback cache outcomes and the data source each store load ended up using.
//
// All collectors register with the default registry through promauto and are
// exposed on /metrics.
package metrics
