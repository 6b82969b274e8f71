package site_test

import "time"

var fixedNow = time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
