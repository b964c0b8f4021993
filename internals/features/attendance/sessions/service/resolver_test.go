package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	attModel "kampusku_backend/internals/features/attendance/sessions/model"
)

func TestResolveFullDay(t *testing.T) {
	s1 := uuid.NewString()
	s2 := uuid.NewString()
	s3 := uuid.NewString()

	tests := []struct {
		name string
		in   attModel.SlotStatusMap
		want attModel.AttendanceStatus
	}{
		{
			name: "empty map rolls up as absent",
			in:   attModel.SlotStatusMap{},
			want: attModel.AttendanceAbsent,
		},
		{
			name: "nil map rolls up as absent",
			in:   nil,
			want: attModel.AttendanceAbsent,
		},
		{
			name: "all present",
			in: attModel.SlotStatusMap{
				s1: attModel.AttendancePresent,
				s2: attModel.AttendancePresent,
				s3: attModel.AttendancePresent,
			},
			want: attModel.AttendancePresent,
		},
		{
			name: "single slot late",
			in:   attModel.SlotStatusMap{s1: attModel.AttendanceLate},
			want: attModel.AttendanceLate,
		},
		{
			name: "all excused",
			in: attModel.SlotStatusMap{
				s1: attModel.AttendanceExcused,
				s2: attModel.AttendanceExcused,
			},
			want: attModel.AttendanceExcused,
		},
		{
			name: "medical dominates a mixed set",
			in: attModel.SlotStatusMap{
				s1: attModel.AttendancePresent,
				s2: attModel.AttendanceMedical,
				s3: attModel.AttendanceAbsent,
			},
			want: attModel.AttendanceMedical,
		},
		{
			name: "present and absent without medical is mixed",
			in: attModel.SlotStatusMap{
				s1: attModel.AttendancePresent,
				s2: attModel.AttendanceAbsent,
			},
			want: attModel.AttendanceMixed,
		},
		{
			name: "late and excused is mixed",
			in: attModel.SlotStatusMap{
				s1: attModel.AttendanceLate,
				s2: attModel.AttendanceExcused,
			},
			want: attModel.AttendanceMixed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveFullDay(tt.in))
		})
	}
}

// The aggregate must not depend on which slot was marked first, so two maps
// with the same contents always resolve identically.
func TestResolveFullDayOrderIndependent(t *testing.T) {
	s1, s2, s3 := uuid.NewString(), uuid.NewString(), uuid.NewString()

	a := attModel.SlotStatusMap{
		s1: attModel.AttendancePresent,
		s2: attModel.AttendanceMedical,
		s3: attModel.AttendanceLate,
	}
	b := attModel.SlotStatusMap{
		s3: attModel.AttendanceLate,
		s1: attModel.AttendancePresent,
		s2: attModel.AttendanceMedical,
	}
	assert.Equal(t, ResolveFullDay(a), ResolveFullDay(b))
	assert.Equal(t, attModel.AttendanceMedical, ResolveFullDay(a))
}
