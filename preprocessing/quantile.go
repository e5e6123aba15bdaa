package preprocessing

import (
	"fmt"
	"math"
	"sort"
)

// Median は数列の中央値を計算する
//
// 要素数が奇数の場合はソート後の中央の値、偶数の場合は中央2要素の算術平均を返す。
// 入力はコピーされるため、呼び出し元のスライスは変更されない。
// NaNを含む入力はサポートされない（動作は未定義）。
//
// パラメータ:
//   - values: 空でない数列
//
// 戻り値:
//   - float64: 中央値
//
// 空のスライスを渡した場合はpanicする（呼び出し側の契約違反）。
func Median(values []float64) float64 {
	if len(values) == 0 {
		panic("preprocessing: Median: empty slice")
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2.0
	}
	return sorted[n/2]
}

// Quantile は線形補間による分位点を計算する
//
// numpy/scikit-learnのデフォルト（"linear"）と同じ補間方式を用いる:
// 実数ランク index = q*(n-1) を計算し、index を挟む2つの順序統計量の間を
// 小数部で線形補間する。index が最終要素に達する場合は最大値をそのまま返す
// （q=1.0 および上端での浮動小数点丸めの両方をカバーする）。
// scikit-learnで学習したパラメータとの数値的互換性のため、この方式を変更してはならない。
//
// パラメータ:
//   - values: 空でない数列
//   - q: [0, 1] の範囲の分位点
//
// 戻り値:
//   - float64: 分位点の値
//
// qが範囲外の場合、および空のスライスを渡した場合はpanicする（呼び出し側の契約違反）。
func Quantile(values []float64, q float64) float64 {
	if q < 0.0 || q > 1.0 {
		panic(fmt.Sprintf("preprocessing: Quantile: q must be in [0, 1], got %v", q))
	}
	if len(values) == 0 {
		panic("preprocessing: Quantile: empty slice")
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	index := q * float64(n-1)
	i := int(math.Floor(index))
	t := index - float64(i)

	if i >= n-1 {
		return sorted[n-1]
	}
	return sorted[i] + t*(sorted[i+1]-sorted[i])
}
