package preprocessing

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/robustscale/pkg/errors"
)

// SklearnRobustScalerParams represents the JSON export of a fitted
// sklearn.preprocessing.RobustScaler. Python side:
//
//	import json
//	json.dump({
//	    "center_": scaler.center_.tolist(),
//	    "scale_": scaler.scale_.tolist(),
//	    "n_features_in_": scaler.n_features_in_,
//	}, open("scaler.json", "w"))
//
// The struct is a pure transfer shape: it is validated and discarded,
// never retained by the scaler.
type SklearnRobustScalerParams struct {
	Center      []float64 `json:"center_"`
	Scale       []float64 `json:"scale_"`
	NFeaturesIn int       `json:"n_features_in_"`
}

// NewRobustScalerFromSklearnJSON creates a RobustScaler from a JSON parameter
// file exported by scikit-learn. The returned scaler behaves identically to
// one fitted locally on the same data.
func NewRobustScalerFromSklearnJSON(path string) (*RobustScaler, error) {
	scaler := NewRobustScalerDefault()
	if err := scaler.LoadSklearnParams(path); err != nil {
		return nil, err
	}
	return scaler, nil
}

// LoadSklearnParams loads fitted parameters from a scikit-learn JSON export.
//
// Structural failures (field lengths inconsistent with n_features_in_) are
// reported as DimensionError, I/O and parse failures as wrapped errors; in
// every failure case the scaler's prior state is left untouched. On success
// center and scale are replaced together, never one without the other.
func (s *RobustScaler) LoadSklearnParams(path string) error {
	// Validate file path
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return errors.NewValidationError("path", "path traversal detected", path)
	}

	file, err := os.Open(cleanPath)
	if err != nil {
		return errors.Wrapf(err, "failed to open sklearn parameter file %s", cleanPath)
	}
	defer file.Close()

	return s.LoadSklearnParamsFrom(file)
}

// LoadSklearnParamsFrom loads fitted parameters from a readable byte source.
// Same validation and atomicity guarantees as LoadSklearnParams.
func (s *RobustScaler) LoadSklearnParamsFrom(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read sklearn parameters")
	}

	var params SklearnRobustScalerParams
	if err := json.Unmarshal(data, &params); err != nil {
		return errors.Wrap(err, "failed to parse sklearn parameters")
	}

	if params.NFeaturesIn < 0 {
		return errors.NewValidationError("n_features_in_", "must be non-negative", params.NFeaturesIn)
	}
	if len(params.Center) != params.NFeaturesIn {
		return errors.NewDimensionError("RobustScaler.LoadSklearnParams: center_", params.NFeaturesIn, len(params.Center), 1)
	}
	if len(params.Scale) != params.NFeaturesIn {
		return errors.NewDimensionError("RobustScaler.LoadSklearnParams: scale_", params.NFeaturesIn, len(params.Scale), 1)
	}

	// Commit only after all validation passed
	s.Center = params.Center
	s.Scale = params.Scale
	s.NFeatures = params.NFeaturesIn

	s.SetFitted()
	return nil
}
