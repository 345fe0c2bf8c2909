package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/guest-hub/internal/model"
)

// ListingLoader is anything that can return a complete listings snapshot.
type ListingLoader interface {
    Listings(ctx context.Context) ([]model.Listing, error)
}

// ListingRepo reads listings and their availability calendars from MySQL.
// The guest hub treats this store as read-only: rows are written by the
// channel manager import and every read returns a full snapshot.
type ListingRepo struct {
    db *sql.DB
}

// NewListingRepo returns a new ListingRepo bound to the given database.
func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{db: db} }

// DB exposes the underlying handle for health checks.
func (r *ListingRepo) DB() *sql.DB { return r.db }

// Listings returns every listing with its availability entries ordered by
// day.  Listings without availability rows are included with an empty
// calendar.  Nullable columns map to the zero value, which downstream code
// reads as "not provided".
func (r *ListingRepo) Listings(ctx context.Context) ([]model.Listing, error) {
    const q = `SELECT l.id, l.title,
                      a.day, a.booked_by, a.guest_name, a.is_past, a.check_in, a.guests
               FROM listings l
               LEFT JOIN listing_availability a ON a.listing_id = l.id
               ORDER BY l.id, a.day`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []model.Listing
    for rows.Next() {
        var (
            id        uint64
            title     string
            day       sql.NullTime
            bookedBy  sql.NullString
            guestName sql.NullString
            isPast    sql.NullBool
            checkIn   sql.NullString
            guests    sql.NullInt64
        )
        if err := rows.Scan(&id, &title, &day, &bookedBy, &guestName, &isPast, &checkIn, &guests); err != nil {
            return nil, err
        }
        // rows arrive grouped by listing; start a new listing on id change
        if len(out) == 0 || out[len(out)-1].ID != id {
            out = append(out, model.Listing{ID: id, Title: title, Availability: []model.AvailabilityEntry{}})
        }
        if !day.Valid {
            continue // listing without availability rows
        }
        cur := &out[len(out)-1]
        cur.Availability = append(cur.Availability, model.AvailabilityEntry{
            Date:      day.Time.UTC().Format(model.DateLayout),
            BookedBy:  bookedBy.String,
            GuestName: guestName.String,
            IsPast:    isPast.Valid && isPast.Bool,
            CheckIn:   checkIn.String,
            Guests:    int(guests.Int64),
        })
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
