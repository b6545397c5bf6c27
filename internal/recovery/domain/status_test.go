package domain

import "testing"

func amount(v int64) *int64 { return &v }

func TestStatusOpenInfoQueryWinsOverPayment(t *testing.T) {
	// An unanswered query blocks progress even when fully paid.
	got := ClassifyStatus(StatusInput{
		InfoQuery:      "needs discharge summary",
		ReceivedDate:   daysAgo(1),
		ReceivedAmount: amount(10000),
		BillAmount:     10000,
		OverdueDays:    90,
	})
	if got != BillStatusNMI {
		t.Fatalf("got %q, want %q", got, BillStatusNMI)
	}
}

func TestStatusAnsweredQueryFallsThrough(t *testing.T) {
	got := ClassifyStatus(StatusInput{
		InfoQuery:           "needs discharge summary",
		InfoQueryAnsweredAt: daysAgo(2),
		ReceivedDate:        daysAgo(1),
		ReceivedAmount:      amount(10000),
		BillAmount:          10000,
	})
	if got != BillStatusReceived {
		t.Fatalf("got %q, want %q", got, BillStatusReceived)
	}
}

func TestStatusWhitespaceQueryIsNoQuery(t *testing.T) {
	got := ClassifyStatus(StatusInput{InfoQuery: "   \t"})
	if got != BillStatusPending {
		t.Fatalf("got %q, want %q", got, BillStatusPending)
	}
}

func TestStatusReceivedVsPartial(t *testing.T) {
	full := ClassifyStatus(StatusInput{
		ReceivedDate:   daysAgo(1),
		ReceivedAmount: amount(10000),
		BillAmount:     10000,
	})
	if full != BillStatusReceived {
		t.Fatalf("full payment: got %q, want %q", full, BillStatusReceived)
	}

	partial := ClassifyStatus(StatusInput{
		ReceivedDate:   daysAgo(1),
		ReceivedAmount: amount(6000),
		BillAmount:     10000,
	})
	if partial != BillStatusPartial {
		t.Fatalf("partial payment: got %q, want %q", partial, BillStatusPartial)
	}
}

func TestStatusReceiptNeedsBothDateAndAmount(t *testing.T) {
	// A receipt date without an amount is not a receipt yet.
	got := ClassifyStatus(StatusInput{
		ReceivedDate: daysAgo(1),
		BillAmount:   10000,
		OverdueDays:  5,
	})
	if got != BillStatusOverdue {
		t.Fatalf("got %q, want %q", got, BillStatusOverdue)
	}
}

func TestStatusOverdueFallback(t *testing.T) {
	got := ClassifyStatus(StatusInput{BillAmount: 10000, OverdueDays: 45})
	if got != BillStatusOverdue {
		t.Fatalf("got %q, want %q", got, BillStatusOverdue)
	}
}

func TestStatusPendingDefault(t *testing.T) {
	got := ClassifyStatus(StatusInput{BillAmount: 10000})
	if got != BillStatusPending {
		t.Fatalf("got %q, want %q", got, BillStatusPending)
	}
}
