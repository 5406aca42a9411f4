package models

import "time"

type LeaveApplication struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	UserID             uint      `json:"user_id" gorm:"index;not null"`
	UserName           string    `json:"user_name" gorm:"size:120;not null"`
	RegistrationNumber string    `json:"registration_number" gorm:"size:30;not null"`
	Phone              string    `json:"phone" gorm:"size:20;not null"`
	StartDate          string    `json:"start_date" gorm:"size:10;not null"` // YYYY-MM-DD
	EndDate            string    `json:"end_date" gorm:"size:10;not null"`   // YYYY-MM-DD
	Reason             string    `json:"reason" gorm:"type:text;not null"`
	Section            string    `json:"section" gorm:"size:5"`
	Year               string    `json:"year" gorm:"size:5"`
	CreatedAt          time.Time `json:"created_at"`
}

const dateLayout = "2006-01-02"

// Days is the inclusive calendar-day span of the leave: both bounds count,
// so a same-day leave is 1 day. Reversed bounds still count positively.
// Unparsable dates count as 0.
func (l LeaveApplication) Days() int {
	start, err := time.Parse(dateLayout, l.StartDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(dateLayout, l.EndDate)
	if err != nil {
		return 0
	}
	span := end.Sub(start)
	if span < 0 {
		span = -span
	}
	return int(span.Hours()/24) + 1
}

// TotalDays sums Days over a set of applications.
func TotalDays(apps []LeaveApplication) int {
	total := 0
	for _, a := range apps {
		total += a.Days()
	}
	return total
}
