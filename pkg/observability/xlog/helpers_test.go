package xlog_test

import "time"

// timeNow 测试记录用的固定时间戳，避免每个用例各自取 time.Now。
func timeNow() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}
