package domain

import (
	"strings"
	"time"
)

// StatusInput carries the fields the classifier reads from one bill.
type StatusInput struct {
	InfoQuery           string
	InfoQueryAnsweredAt *time.Time
	ReceivedDate        *time.Time
	ReceivedAmount      *int64
	BillAmount          int64
	OverdueDays         int
}

// ClassifyStatus derives the bill lifecycle status. The decision order is
// load-bearing: an open information query blocks progress regardless of
// payment state, full vs partial receipt is only judged once a receipt date
// exists, and everything else falls back to the due-date check.
func ClassifyStatus(in StatusInput) BillStatus {
	if strings.TrimSpace(in.InfoQuery) != "" && in.InfoQueryAnsweredAt == nil {
		return BillStatusNMI
	}
	if in.ReceivedDate != nil && in.ReceivedAmount != nil {
		if *in.ReceivedAmount >= in.BillAmount {
			return BillStatusReceived
		}
		return BillStatusPartial
	}
	if in.OverdueDays > 0 {
		return BillStatusOverdue
	}
	return BillStatusPending
}

// hasOpenInfoQuery reports an unanswered, non-empty info query.
func hasOpenInfoQuery(b RawBill) bool {
	return strings.TrimSpace(b.InfoQuery) != "" && b.InfoQueryAnsweredAt == nil
}

// hasInfoQuery reports any non-empty info query, answered or not. Summary
// cards count these; the classifier only treats unanswered ones as blocking.
// The two readings match the source system and are kept distinct on purpose.
func hasInfoQuery(b RawBill) bool {
	return strings.TrimSpace(b.InfoQuery) != ""
}
