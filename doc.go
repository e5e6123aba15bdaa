// Package robustscale provides outlier-resistant feature scaling for Go,
// designed for backend services and real-time inference applications.
//
// RobustScale implements a scikit-learn-compatible RobustScaler: each feature
// is centered by its median and scaled by its interquartile range (IQR),
// which makes the transform far less sensitive to outliers than
// mean/variance-based standardization.
//
// # Features
//
// - scikit-learn parity: the same linear-interpolation quantiles, so parameters
// exported from Python can be loaded and reused verbatim
// - Robust Error Handling: structured errors with stack traces
// - Fast inference path: single-row transform with float32 output
// - CPU-parallel fitting across feature columns
//
// # Installation
//
// Install RobustScale using go get:
//
//	go get github.com/YuminosukeSato/robustscale
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/robustscale/preprocessing"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
//
//	    scaler := preprocessing.NewRobustScalerDefault()
//	    scaled, err := scaler.FitTransform(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println(mat.Formatted(scaled))
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - preprocessing: RobustScaler and the order-statistics kernel (Median, Quantile)
//   - core/model: estimator state, transformer interfaces and gob persistence
//   - core/parallel: CPU-parallel execution helpers
//   - pkg/errors: structured errors and scikit-learn-style warnings
//   - pkg/log: structured logging setup
package robustscale
