//go:generate go tool stringer -type=Status

package registration

import "fmt"

type Status int

const (
	PENDING Status = iota
	PAID
)

func ParseStatus(s string) (Status, error) {
	switch s {
	case PENDING.String():
		return PENDING, nil
	case PAID.String():
		return PAID, nil
	default:
		return Status(0), fmt.Errorf("unknown registration status: %q", s)
	}
}
