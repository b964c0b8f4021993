// internals/features/attendance/sessions/service/resolver.go
package service

import (
	attModel "kampusku_backend/internals/features/attendance/sessions/model"
)

// ResolveFullDay derives the single aggregate status for one student's day
// from the per-slot map. Pure and order-independent; read paths call this
// on every read instead of trusting the stored overall field, because
// partial marking can change the correct aggregate at any time.
//
// Rules: empty map means absent (unmarked rolls up as absent); a single
// distinct status wins; medical anywhere in a mixed set wins so a student
// who left early on medical leave is not penalized; anything else is mixed.
func ResolveFullDay(m attModel.SlotStatusMap) attModel.AttendanceStatus {
	if len(m) == 0 {
		return attModel.AttendanceAbsent
	}

	distinct := make(map[attModel.AttendanceStatus]struct{}, len(m))
	for _, st := range m {
		distinct[st] = struct{}{}
	}

	if len(distinct) == 1 {
		for st := range distinct {
			return st
		}
	}
	if _, ok := distinct[attModel.AttendanceMedical]; ok {
		return attModel.AttendanceMedical
	}
	return attModel.AttendanceMixed
}
