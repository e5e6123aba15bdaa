package model

import "gonum.org/v1/gonum/mat"

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// InverseTransformer は逆変換可能な変換器のインターフェース
type InverseTransformer interface {
	Transformer

	// InverseTransform は変換を逆方向に適用する
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}

// RowTransformer は単一サンプルを変換できる変換器のインターフェース。
// 推論時のレイテンシを抑えるため、出力は単精度に落とされる。
type RowTransformer interface {
	// Transform1D は1行分の特徴量ベクトルを変換する
	Transform1D(x []float64) ([]float32, error)
}
