// Package log defines standard attribute keys for scaling operations.
//
// Using these keys consistently enables structured log analysis and filtering
// across fit, transform and parameter-loading workflows. The keys follow a
// hierarchical naming convention (e.g., "model.name", "data.samples").

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the estimator type.
	// Example: "RobustScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "fit_transform", "inverse_transform", "load_params"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Example: "preprocessing"
	ComponentKey = "ml.component"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	// Important for debugging shape mismatches between fit and transform.
	FeaturesKey = "data.features"

	// DataTypeKey specifies the numeric type of data being processed.
	// Examples: "float64", "float32"
	DataTypeKey = "data.type"
)

// Performance Metrics
const (
	// DurationMsKey records the wall-clock duration of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error Context
const (
	// ErrorTypeKey identifies the structured error type attached to a log record.
	// Examples: "NotFittedError", "DimensionError", "ValidationError"
	ErrorTypeKey = "error.type"
)
