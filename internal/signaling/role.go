package signaling

// Role identifies which side of the broadcast a connection plays.
type Role string

const (
	// RoleTeacher is the broadcasting side; at most one per room.
	RoleTeacher Role = "teacher"

	// RoleStudent is a receiving side; any number per room.
	RoleStudent Role = "student"
)
