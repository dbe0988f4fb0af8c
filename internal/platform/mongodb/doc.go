// Package mongodb provides the MongoDB implementation of store.TaskStore,
// the default backend of the service. Tasks live in a single collection
// keyed by ObjectID; every mutation is one atomic find-and-modify call.
package mongodb
