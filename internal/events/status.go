package events

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusSoldOut Status = "SOLD_OUT"
)

func (s Status) String() string {
	return string(s)
}
