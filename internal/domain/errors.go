package domain

import "errors"

// ErrSlotTaken is returned by BookingStore implementations when the
// requested (date, time) pair is already reserved.
var ErrSlotTaken = errors.New("time slot is already booked")
