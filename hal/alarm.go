package hal

// alarmSchedule computes the targets of a one-shot alarm on a free-running
// 32-bit microsecond counter that is re-armed once per period.
type alarmSchedule struct {
	period uint32
	target uint32
}

// arm starts a fresh cadence: the next target is one period after now.
func (a *alarmSchedule) arm(now uint32) uint32 {
	a.target = now + a.period
	return a.target
}

// next advances the target by one period from the previous target, so the
// cadence does not drift with interrupt latency. A target already in the past
// (a missed tick) restarts the cadence from now.
func (a *alarmSchedule) next(now uint32) uint32 {
	a.target += a.period
	if int32(a.target-now) <= 0 {
		return a.arm(now)
	}
	return a.target
}
