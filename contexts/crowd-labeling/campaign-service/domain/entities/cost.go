package entities

import "github.com/shopspring/decimal"

// EstimateCost computes the expected total campaign spend: the number of paid
// quiz assignments, ceil(termCount * timesPerTerm / termsPerQuiz), multiplied
// by the per-quiz reward. Reward arithmetic stays in fixed-point decimal so
// monetary output never picks up float drift.
func EstimateCost(termCount, timesPerTerm, termsPerQuiz int, rewardPerQuiz decimal.Decimal) decimal.Decimal {
	if termCount <= 0 || timesPerTerm <= 0 || termsPerQuiz <= 0 {
		return decimal.Zero
	}
	assignments := termCount * timesPerTerm
	numQuizzes := (assignments + termsPerQuiz - 1) / termsPerQuiz
	return rewardPerQuiz.Mul(decimal.NewFromInt(int64(numQuizzes)))
}
