package reserveconfig

import "fmt"

// 利用率上限 100%
const MaxUtilizationBps uint32 = 10_000

// DefaultCurvePoints 三段利率曲线：0% → 0.01%，1% → 1%，100% → 1000%
func DefaultCurvePoints() []CurvePoint {
	return []CurvePoint{
		{UtilizationRateBps: 0, BorrowRateBps: 1},
		{UtilizationRateBps: 100, BorrowRateBps: 100},
		{UtilizationRateBps: MaxUtilizationBps, BorrowRateBps: 100_000},
	}
}

// ValidateCurve 检查点数与单调性：
// 1. 1 ≤ len ≤ CurvePointCount
// 2. 首点利用率为 0，末点利用率为 100%
// 3. 利用率与利率均不递减
func ValidateCurve(points []CurvePoint) error {
	if len(points) == 0 || len(points) > CurvePointCount {
		return fmt.Errorf("%w: got %d points, want 1..%d", ErrInvalidCurve, len(points), CurvePointCount)
	}
	if points[0].UtilizationRateBps != 0 {
		return fmt.Errorf("%w: first point utilization must be 0, got %d", ErrInvalidCurve, points[0].UtilizationRateBps)
	}
	if last := points[len(points)-1]; last.UtilizationRateBps != MaxUtilizationBps {
		return fmt.Errorf("%w: last point utilization must be %d, got %d", ErrInvalidCurve, MaxUtilizationBps, last.UtilizationRateBps)
	}
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		if cur.UtilizationRateBps < prev.UtilizationRateBps || cur.BorrowRateBps < prev.BorrowRateBps {
			return fmt.Errorf("%w: point %d (%d,%d) decreases from (%d,%d)", ErrInvalidCurve,
				i, cur.UtilizationRateBps, cur.BorrowRateBps, prev.UtilizationRateBps, prev.BorrowRateBps)
		}
	}
	return nil
}

// PadCurve 校验后补齐到 CurvePointCount：未使用的槽位重复最后一个点，
// 链上把这些槽位视为"停在最大值"
func PadCurve(points []CurvePoint) (BorrowRateCurve, error) {
	if err := ValidateCurve(points); err != nil {
		return BorrowRateCurve{}, err
	}

	var curve BorrowRateCurve
	n := copy(curve.Points[:], points)
	last := points[len(points)-1]
	for i := n; i < CurvePointCount; i++ {
		curve.Points[i] = last
	}
	return curve, nil
}
