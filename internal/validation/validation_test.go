package validation

import (
	"errors"
	"testing"
	"time"
)

func TestEmailDomain(t *testing.T) {
	cases := []struct {
		email string
		want  error
	}{
		{"ravi@pesu.edu", nil},
		{"RAVI@PESU.EDU", nil}, // 大小写不敏感
		{"ravi@gmail.com", ErrInvalidEmailDomain},
		{"ravi@pesu.edu.in", ErrInvalidEmailDomain},
		{"", ErrInvalidEmailDomain},
	}
	for _, c := range cases {
		if got := EmailDomain(c.email, "@pesu.edu"); !errors.Is(got, c.want) {
			t.Errorf("EmailDomain(%q) = %v，期望 %v", c.email, got, c.want)
		}
	}
}

func TestFutureDeadline(t *testing.T) {
	today := time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)

	// 截止日等于当天 → 拒绝
	if err := FutureDeadline(today, today); !errors.Is(err, ErrDeadlineNotFuture) {
		t.Errorf("当天截止应返回 ErrDeadlineNotFuture，实际: %v", err)
	}
	// 当天更晚的时刻仍算当天 → 拒绝
	sameDayLater := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	if err := FutureDeadline(sameDayLater, today); !errors.Is(err, ErrDeadlineNotFuture) {
		t.Errorf("当天晚些时刻应返回 ErrDeadlineNotFuture，实际: %v", err)
	}
	// 明天 → 通过
	if err := FutureDeadline(today.AddDate(0, 0, 1), today); err != nil {
		t.Errorf("次日截止应通过，实际: %v", err)
	}
	// 昨天 → 拒绝
	if err := FutureDeadline(today.AddDate(0, 0, -1), today); !errors.Is(err, ErrDeadlineNotFuture) {
		t.Errorf("过去日期应返回 ErrDeadlineNotFuture，实际: %v", err)
	}
}

func TestProficiency(t *testing.T) {
	for _, ok := range []string{"Beginner", "Intermediate", "Advanced"} {
		if err := Proficiency(ok); err != nil {
			t.Errorf("Proficiency(%q) 应通过，实际: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "beginner", "Expert", "中级"} {
		if err := Proficiency(bad); !errors.Is(err, ErrInvalidProficiency) {
			t.Errorf("Proficiency(%q) 应返回 ErrInvalidProficiency，实际: %v", bad, err)
		}
	}
}

func TestRating(t *testing.T) {
	for _, ok := range []int{1, 3, 5} {
		if err := Rating(ok); err != nil {
			t.Errorf("Rating(%d) 应通过，实际: %v", ok, err)
		}
	}
	for _, bad := range []int{0, -1, 6} {
		if err := Rating(bad); !errors.Is(err, ErrRatingOutOfRange) {
			t.Errorf("Rating(%d) 应返回 ErrRatingOutOfRange，实际: %v", bad, err)
		}
	}
}

func TestPositiveAmount(t *testing.T) {
	if err := PositiveAmount(5000.00); err != nil {
		t.Errorf("正金额应通过，实际: %v", err)
	}
	for _, bad := range []float64{0, -0.01} {
		if err := PositiveAmount(bad); !errors.Is(err, ErrNonPositiveAmount) {
			t.Errorf("PositiveAmount(%v) 应返回 ErrNonPositiveAmount，实际: %v", bad, err)
		}
	}
}
