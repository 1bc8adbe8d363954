package collections

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestRiskScore(t *testing.T) {
	tests := []struct {
		name         string
		daysOverdue  int
		outstanding  string
		total        string
		paymentCount int
		want         string
	}{
		// 0/2 + (0/1100)*30 + 0 + 0
		{"fresh purchase with payments", 0, "0", "1100", 3, "0"},
		// 0/2 + (1100/1100)*30 + 20 + 0
		{"no payments not overdue", 0, "1100", "1100", 0, "50"},
		// 20/2 + (500/1000)*30 + 0 + 0
		{"mildly overdue", 20, "500", "1000", 2, "25"},
		// min(100/2,40)=40 + (800/1000)*30=24 + 0 + 10
		{"long overdue capped delinquency", 100, "800", "1000", 1, "74"},
		// 40 + 30 + 20 + 10 = 100 exactly at the cap
		{"worst case hits cap", 400, "1000", "1000", 0, "100"},
		// 91 days crosses the >90 penalty: min(45.5,40)=40 + 15 + 10
		{"just past ninety days", 91, "500", "1000", 5, "65"},
		// 90 days does not trigger the penalty: 45 capped to 40 + 15
		{"exactly ninety days", 90, "500", "1000", 5, "55"},
		{"zero total yields no ratio points", 10, "0", "0", 0, "25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RiskScore(tt.daysOverdue, d(tt.outstanding), d(tt.total), tt.paymentCount)
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestRiskScore_Deterministic(t *testing.T) {
	first := RiskScore(37, d("412.50"), d("980"), 2)
	for i := 0; i < 10; i++ {
		assert.True(t, first.Equal(RiskScore(37, d("412.50"), d("980"), 2)))
	}
}

func TestRiskScore_NeverExceedsBounds(t *testing.T) {
	cases := []struct {
		days    int
		out     string
		total   string
		payCnt  int
	}{
		{0, "0", "100", 10},
		{10000, "100", "100", 0},
		{50, "99.99", "100", 0},
	}
	for _, c := range cases {
		score := RiskScore(c.days, d(c.out), d(c.total), c.payCnt)
		assert.True(t, score.GreaterThanOrEqual(decimal.Zero))
		assert.True(t, score.LessThanOrEqual(decimal.NewFromInt(100)))
	}
}

func TestCollectionEfficiency(t *testing.T) {
	assert.True(t, CollectionEfficiency(d("500"), d("2000")).Equal(d("25")))
	assert.True(t, CollectionEfficiency(d("2000"), d("2000")).Equal(d("100")))
	assert.True(t, CollectionEfficiency(d("0"), d("2000")).IsZero())
	assert.True(t, CollectionEfficiency(d("500"), d("0")).IsZero(), "no assigned balance yields zero, not an error")
}
