package mysql

const upsertReservationsPrefix = "INSERT INTO reservations\n" +
	"  (id, guest_name, room_type, checkin_date, checkout_date, length_of_stay, rate_type, honors_status, special_requests)\n" +
	"VALUES "

// seq is left alone so a re-ingested booking keeps its original position.
const upsertReservationsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  guest_name       = VALUES(guest_name),\n" +
	"  room_type        = VALUES(room_type),\n" +
	"  checkin_date     = VALUES(checkin_date),\n" +
	"  checkout_date    = VALUES(checkout_date),\n" +
	"  length_of_stay   = VALUES(length_of_stay),\n" +
	"  rate_type        = VALUES(rate_type),\n" +
	"  honors_status    = VALUES(honors_status),\n" +
	"  special_requests = VALUES(special_requests)"

const insertRejectSQL = `
INSERT INTO ingest_rejects (source_id, reason) VALUES (?, ?)
`

const selectReservationCols = `
SELECT id, guest_name, room_type, checkin_date, checkout_date, length_of_stay,
       rate_type, honors_status, COALESCE(special_requests, '')
FROM reservations
`

// Stays touching [from, to]: arrivals, stay-overs and departures.
const listActiveSQL = selectReservationCols + `
WHERE checkin_date <= ? AND checkout_date >= ?
ORDER BY seq
`

const listAllSQL = selectReservationCols + `
ORDER BY seq
`
