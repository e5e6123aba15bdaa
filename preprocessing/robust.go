package preprocessing

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/YuminosukeSato/robustscale/core/model"
	"github.com/YuminosukeSato/robustscale/core/parallel"
	"github.com/YuminosukeSato/robustscale/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// iqrFloor はIQRの下限値。定数特徴量によるゼロ除算を防ぐ。
const iqrFloor = 1e-8

// fitColumnsThreshold はFitで列の並列処理に切り替える特徴量数の閾値
const fitColumnsThreshold = 64

// RobustScaler はscikit-learn互換のロバストスケーラー
// 各特徴量を中央値でセンタリングし、四分位範囲（IQR = Q3 - Q1）でスケーリングする。
// 平均・分散ベースの標準化と異なり、外れ値の影響を受けにくい。
type RobustScaler struct {
	model.BaseEstimator

	// Center は各特徴量の中央値
	Center []float64

	// Scale は各特徴量のIQR（下限値でフロア済み）
	Scale []float64

	// NFeatures は特徴量の数
	NFeatures int

	// WithCentering は中央値を引くかどうか (デフォルト: true)
	WithCentering bool

	// WithScaling はIQRで割るかどうか (デフォルト: true)
	WithScaling bool
}

// NewRobustScaler は新しいRobustScalerを作成する
//
// パラメータ:
//   - withCentering: 中央値を引くかどうか (デフォルト: true)
//   - withScaling: IQRで割るかどうか (デフォルト: true)
//
// 戻り値:
//   - *RobustScaler: 新しいRobustScalerインスタンス
//
// 使用例:
//
//	scaler := preprocessing.NewRobustScaler(true, true)
//	err := scaler.Fit(X)
//	XScaled, err := scaler.Transform(X)
func NewRobustScaler(withCentering, withScaling bool) *RobustScaler {
	return &RobustScaler{
		WithCentering: withCentering,
		WithScaling:   withScaling,
	}
}

// NewRobustScalerDefault はデフォルト設定でRobustScalerを作成する
func NewRobustScalerDefault() *RobustScaler {
	return NewRobustScaler(true, true)
}

// NumFeatures は現在の特徴量数を返す（未学習の場合は0）
func (s *RobustScaler) NumFeatures() int {
	return s.NFeatures
}

// Fit は訓練データから統計情報（中央値、IQR）を計算する
//
// 各特徴量は独立に処理される: center = median(列)、
// scale = max(Q3 - Q1, 1e-8)。下限値により定数特徴量でもscaleは常に正になる。
// 以前の学習結果は完全に置き換えられる（部分的な更新は発生しない）。
//
// パラメータ:
//   - X: 訓練データ (n_samples × n_features の行列)
//
// 戻り値:
//   - error: エラーが発生した場合
func (s *RobustScaler) Fit(X mat.Matrix) (err error) {
	defer errors.Recover(&err, "RobustScaler.Fit")

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("RobustScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	center := make([]float64, c)
	scale := make([]float64, c)
	rawIQR := make([]float64, c)

	parallel.ParallelizeWithThreshold(c, fitColumnsThreshold, func(start, end int) {
		for j := start; j < end; j++ {
			col := mat.Col(nil, j, X)

			if s.WithCentering {
				center[j] = Median(col)
			}

			if s.WithScaling {
				q1 := Quantile(col, 0.25)
				q3 := Quantile(col, 0.75)
				rawIQR[j] = q3 - q1
				scale[j] = rawIQR[j]
				if scale[j] < iqrFloor {
					scale[j] = iqrFloor
				}
			} else {
				scale[j] = 1.0
			}
		}
	})

	// 警告は並列区間の外で、列順に発行する
	if s.WithScaling {
		for j := 0; j < c; j++ {
			if rawIQR[j] < iqrFloor {
				errors.Warn(errors.NewConstantFeatureWarning(j, rawIQR[j], iqrFloor))
			}
		}
	}

	// centerとscaleは必ず同時に置き換える
	s.Center = center
	s.Scale = scale
	s.NFeatures = c

	s.SetFitted()
	return nil
}

// Transform は学習済みの統計情報を使ってデータをスケーリングする
//
// 各要素は (x - center) / scale に写される。入力行列は変更されない。
//
// パラメータ:
//   - X: 変換するデータ（列数は学習時の特徴量数と一致すること）
//
// 戻り値:
//   - mat.Matrix: スケーリングされたデータ
//   - error: エラーが発生した場合
func (s *RobustScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("RobustScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("RobustScaler.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			value := X.At(i, j)
			scaled := (value - s.Center[j]) / s.Scale[j]
			result.Set(i, j, scaled)
		}
	}

	return result, nil
}

// Transform1D は1行分の特徴量ベクトルを変換する
//
// 行列を介さない推論パス向けのAPI。演算はfloat64で行い、出力時のみ
// float32に落とす（レイテンシ重視の単一サンプル推論ではメモリ帯域が
// 精度より重要になるため）。
//
// 長さの不一致は回復可能なエラーとして報告される。このAPIは外部からの
// 推論リクエストなど信頼境界のデータを直接受けることが多いためである。
//
// パラメータ:
//   - x: 特徴量ベクトル（長さは学習時の特徴量数と一致すること）
//
// 戻り値:
//   - []float32: スケーリングされたベクトル
//   - error: エラーが発生した場合
func (s *RobustScaler) Transform1D(x []float64) ([]float32, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("RobustScaler", "Transform1D")
	}

	if len(x) != s.NFeatures {
		return nil, errors.NewDimensionError("RobustScaler.Transform1D", s.NFeatures, len(x), 1)
	}

	result := make([]float32, len(x))
	for j, value := range x {
		result[j] = float32((value - s.Center[j]) / s.Scale[j])
	}

	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
//
// パラメータ:
//   - X: 訓練・変換するデータ
//
// 戻り値:
//   - mat.Matrix: スケーリングされたデータ
//   - error: エラーが発生した場合
func (s *RobustScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform はスケーリングされたデータを元のスケールに戻す
//
// 各要素は x*scale + center に写される。
//
// パラメータ:
//   - X: スケーリングされたデータ
//
// 戻り値:
//   - mat.Matrix: 元のスケールに戻されたデータ
//   - error: エラーが発生した場合
func (s *RobustScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("RobustScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("RobustScaler.InverseTransform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			value := X.At(i, j)
			original := value*s.Scale[j] + s.Center[j]
			result.Set(i, j, original)
		}
	}

	return result, nil
}

// GetParams はスケーラーのパラメータを取得する
func (s *RobustScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_centering": s.WithCentering,
		"with_scaling":   s.WithScaling,
	}
}

// String はスケーラーの文字列表現を返す
func (s *RobustScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("RobustScaler(with_centering=%t, with_scaling=%t)", s.WithCentering, s.WithScaling)
	}
	return fmt.Sprintf("RobustScaler(with_centering=%t, with_scaling=%t, n_features=%d)",
		s.WithCentering, s.WithScaling, s.NFeatures)
}

// robustScalerState はgobシリアライズ用の内部表現。
// BaseEstimatorの学習状態は非公開フィールドのため、明示的に持ち回る。
type robustScalerState struct {
	Center        []float64
	Scale         []float64
	NFeatures     int
	WithCentering bool
	WithScaling   bool
	Fitted        bool
}

// GobEncode はencoding/gobのためのシリアライズを実装する
func (s *RobustScaler) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	state := robustScalerState{
		Center:        s.Center,
		Scale:         s.Scale,
		NFeatures:     s.NFeatures,
		WithCentering: s.WithCentering,
		WithScaling:   s.WithScaling,
		Fitted:        s.IsFitted(),
	}
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode はencoding/gobのためのデシリアライズを実装する
func (s *RobustScaler) GobDecode(data []byte) error {
	var state robustScalerState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}

	s.Center = state.Center
	s.Scale = state.Scale
	s.NFeatures = state.NFeatures
	s.WithCentering = state.WithCentering
	s.WithScaling = state.WithScaling
	if state.Fitted {
		s.SetFitted()
	} else {
		s.Reset()
	}
	return nil
}
