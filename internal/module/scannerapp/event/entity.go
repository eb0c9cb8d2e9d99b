package event

import "time"

type Event struct {
	ID            string
	Name          string
	StartDateTime time.Time
	EndDateTime   time.Time
}
