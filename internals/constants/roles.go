package constants

// Role names carried in the JWT "role" claim.
const (
	RoleAdmin   = "admin"
	RoleFaculty = "faculty"
	RoleStudent = "student"
)

// AttendanceWriterRoles may call the mutating attendance endpoints.
var AttendanceWriterRoles = []string{RoleAdmin, RoleFaculty}

// TimetableWriterRoles may create/edit/deactivate timetable entries.
var TimetableWriterRoles = []string{RoleAdmin}
