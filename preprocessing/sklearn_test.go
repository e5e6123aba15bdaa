package preprocessing

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YuminosukeSato/robustscale/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func writeParamsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scaler.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write parameter file: %v", err)
	}
	return path
}

func TestLoadSklearnParams(t *testing.T) {
	path := writeParamsFile(t, `{
		"center_": [3.0, 4.0],
		"scale_": [2.0, 2.0],
		"n_features_in_": 2
	}`)

	scaler := NewRobustScalerDefault()
	if err := scaler.LoadSklearnParams(path); err != nil {
		t.Fatalf("LoadSklearnParams() error = %v", err)
	}

	if !scaler.IsFitted() {
		t.Error("scaler should be fitted after loading parameters")
	}
	if scaler.NumFeatures() != 2 {
		t.Errorf("NumFeatures() = %d, want 2", scaler.NumFeatures())
	}

	// ロードしたパラメータはローカルで学習した場合と同一に振る舞う
	got, err := scaler.Transform1D([]float64{1, 2})
	if err != nil {
		t.Fatalf("Transform1D() error = %v", err)
	}
	want := []float32{-1.0, -1.0}
	for j := range want {
		if math.Abs(float64(got[j]-want[j])) > 1e-5 {
			t.Errorf("Transform1D()[%d] = %v, want %v", j, got[j], want[j])
		}
	}
}

func TestLoadSklearnParamsMatchesLocalFit(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})

	fitted := NewRobustScalerDefault()
	if err := fitted.Fit(X); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	path := writeParamsFile(t, `{
		"center_": [3.0, 4.0],
		"scale_": [2.0, 2.0],
		"n_features_in_": 2
	}`)
	loaded, err := NewRobustScalerFromSklearnJSON(path)
	if err != nil {
		t.Fatalf("NewRobustScalerFromSklearnJSON() error = %v", err)
	}

	wantOut, err := fitted.Transform(X)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	gotOut, err := loaded.Transform(X)
	if err != nil {
		t.Fatalf("loaded Transform() error = %v", err)
	}
	if !mat.EqualApprox(gotOut, wantOut, 1e-12) {
		t.Error("loaded scaler should transform identically to a locally fitted one")
	}
}

func TestLoadSklearnParamsStructuralValidation(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantExpected int
		wantGot      int
	}{
		{
			name: "center_ length mismatch",
			content: `{
				"center_": [1.0, 2.0, 3.0],
				"scale_": [1.0, 1.0],
				"n_features_in_": 2
			}`,
			wantExpected: 2,
			wantGot:      3,
		},
		{
			name: "scale_ length mismatch",
			content: `{
				"center_": [1.0, 2.0],
				"scale_": [1.0],
				"n_features_in_": 2
			}`,
			wantExpected: 2,
			wantGot:      1,
		},
		{
			name: "missing fields",
			content: `{
				"n_features_in_": 2
			}`,
			wantExpected: 2,
			wantGot:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeParamsFile(t, tt.content)

			scaler := NewRobustScalerDefault()
			err := scaler.LoadSklearnParams(path)
			if err == nil {
				t.Fatal("LoadSklearnParams() should fail on inconsistent parameters")
			}

			var dimErr *errors.DimensionError
			if !errors.As(err, &dimErr) {
				t.Fatalf("error = %v, want DimensionError", err)
			}
			if dimErr.Expected != tt.wantExpected || dimErr.Got != tt.wantGot {
				t.Errorf("DimensionError expected=%d got=%d, want %d and %d",
					dimErr.Expected, dimErr.Got, tt.wantExpected, tt.wantGot)
			}

			if scaler.IsFitted() {
				t.Error("failed load should not mark the scaler as fitted")
			}
		})
	}
}

func TestLoadSklearnParamsFailureLeavesStateUntouched(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	scaler := NewRobustScalerDefault()
	if err := scaler.Fit(X); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	wantCenter := append([]float64(nil), scaler.Center...)
	wantScale := append([]float64(nil), scaler.Scale...)

	path := writeParamsFile(t, `{
		"center_": [9.0],
		"scale_": [9.0, 9.0],
		"n_features_in_": 2
	}`)
	if err := scaler.LoadSklearnParams(path); err == nil {
		t.Fatal("LoadSklearnParams() should fail on inconsistent parameters")
	}

	if !scaler.IsFitted() {
		t.Error("failed load should leave the scaler fitted")
	}
	for j := range wantCenter {
		if scaler.Center[j] != wantCenter[j] || scaler.Scale[j] != wantScale[j] {
			t.Fatalf("failed load mutated prior state: center=%v scale=%v", scaler.Center, scaler.Scale)
		}
	}
}

func TestLoadSklearnParamsIOAndParseFailures(t *testing.T) {
	scaler := NewRobustScalerDefault()

	// 存在しないファイル
	err := scaler.LoadSklearnParams(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("LoadSklearnParams() should fail on a missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error should wrap os.ErrNotExist, got %v", err)
	}
	var dimErr *errors.DimensionError
	if errors.As(err, &dimErr) {
		t.Error("I/O failure should not be reported as a structural DimensionError")
	}

	// 不正なJSON
	path := writeParamsFile(t, `{"center_": [1.0`)
	err = scaler.LoadSklearnParams(path)
	if err == nil {
		t.Fatal("LoadSklearnParams() should fail on malformed JSON")
	}
	if errors.As(err, &dimErr) {
		t.Error("parse failure should not be reported as a structural DimensionError")
	}

	if scaler.IsFitted() {
		t.Error("failed loads should not mark the scaler as fitted")
	}
}

func TestLoadSklearnParamsNegativeFeatureCount(t *testing.T) {
	path := writeParamsFile(t, `{
		"center_": [],
		"scale_": [],
		"n_features_in_": -1
	}`)

	scaler := NewRobustScalerDefault()
	err := scaler.LoadSklearnParams(path)
	if err == nil {
		t.Fatal("LoadSklearnParams() should reject a negative n_features_in_")
	}
	var valErr *errors.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestLoadSklearnParamsRejectsPathTraversal(t *testing.T) {
	scaler := NewRobustScalerDefault()
	err := scaler.LoadSklearnParams("../../etc/scaler.json")
	if err == nil {
		t.Fatal("LoadSklearnParams() should reject path traversal")
	}
	var valErr *errors.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestLoadSklearnParamsFromReader(t *testing.T) {
	scaler := NewRobustScalerDefault()
	r := strings.NewReader(`{
		"center_": [1.5],
		"scale_": [0.5],
		"n_features_in_": 1
	}`)

	if err := scaler.LoadSklearnParamsFrom(r); err != nil {
		t.Fatalf("LoadSklearnParamsFrom() error = %v", err)
	}

	got, err := scaler.Transform1D([]float64{2.0})
	if err != nil {
		t.Fatalf("Transform1D() error = %v", err)
	}
	if math.Abs(float64(got[0])-1.0) > 1e-6 {
		t.Errorf("Transform1D()[0] = %v, want 1.0", got[0])
	}
}
