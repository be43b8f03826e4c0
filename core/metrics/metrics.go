// Package metrics holds the backend-neutral instrumentation primitives shared
// by the engine and expiry packages. Concrete backends live under adapters/.
package metrics

// Timer measures the duration of an operation. Call ObserveDuration when
// the operation completes to record the elapsed time:
//
//	defer m.SnapshotSaveDuration().ObserveDuration()
type Timer interface {
	ObserveDuration()
}
