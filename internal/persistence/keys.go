package persistence

// Storage keys shared by every backend.
const (
	KeyUser         = "@neurosync:user"
	KeyReservations = "@neurosync:reservations"
	KeyTheme        = "@neurosync:theme"
)
