package entity

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded}

func (s PaymentStatus) Valid() bool {
	for _, v := range PaymentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s PaymentStatus) Display() string {
	switch s {
	case PaymentPending:
		return "Pending"
	case PaymentCompleted:
		return "Completed"
	case PaymentFailed:
		return "Failed"
	case PaymentRefunded:
		return "Refunded"
	}
	return string(s)
}
